package kernel

import (
	"math"
	"strconv"
	"strings"

	"backoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	// MaxMoney is the largest representable amount.
	MaxMoney int64 = math.MaxInt64
	// MinMoney is the smallest representable amount. It is -MaxMoney rather than math.MinInt64 so
	// that Neg and Abs never overflow.
	MinMoney int64 = -math.MaxInt64
)

var maxMoneyDecimal = decimal.NewFromInt(MaxMoney)

// Money is a signed amount in the smallest currency unit. FCFA has no minor unit, so one unit is
// one franc. Money is a comparable value; the zero value is a valid zero amount.
//
// All arithmetic is overflow-checked and returns errs.ValueIsOutOfRangeError instead of wrapping.
type Money struct {
	amount int64
}

// Zero is the zero amount.
var Zero = Money{}

// NewMoney returns an amount of units. math.MinInt64 is rejected.
func NewMoney(units int64) (Money, error) {
	if units < MinMoney {
		return Money{}, errs.NewValueIsOutOfRangeError("money", units, MinMoney, MaxMoney)
	}
	return Money{amount: units}, nil
}

// MustMoney is NewMoney for constants and test fixtures.
func MustMoney(units int64) Money {
	m, err := NewMoney(units)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseAmount parses a positive whole monetary magnitude as sent by clients ("1000", "1e3",
// "250.0"). Non-numeric, fractional, non-positive or out-of-range input fails with
// errs.InvalidAmountError.
func ParseAmount(s string) (Money, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Money{}, errs.NewInvalidAmountErrorWithCause(s, errs.ErrValueIsRequired)
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Money{}, errs.NewInvalidAmountErrorWithCause(s, err)
	}

	return AmountFromDecimal(d)
}

// AmountFromDecimal applies the ParseAmount rules to an already decoded number.
func AmountFromDecimal(d decimal.Decimal) (Money, error) {
	switch {
	case !d.IsInteger():
		return Money{}, errs.NewInvalidAmountErrorWithCause(d.String(), errFractionalAmount)
	case !d.IsPositive():
		return Money{}, errs.NewInvalidAmountErrorWithCause(d.String(), errNonPositiveAmount)
	case d.GreaterThan(maxMoneyDecimal):
		return Money{}, errs.NewInvalidAmountErrorWithCause(d.String(), errAmountTooLarge)
	}
	return Money{amount: d.IntPart()}, nil
}

var (
	errFractionalAmount  = errs.NewValueIsInvalidError("amount must be a whole number of units")
	errNonPositiveAmount = errs.NewValueIsInvalidError("amount must be greater than 0")
	errAmountTooLarge    = errs.NewValueIsInvalidError("amount exceeds the supported range")
)

// Amount returns the number of units.
func (m Money) Amount() int64 {
	return m.amount
}

// Decimal returns the amount as a decimal for rate arithmetic.
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(m.amount)
}

// Add returns m + other.
func (m Money) Add(other Money) (Money, error) {
	sum := m.amount + other.amount
	if (other.amount > 0 && sum < m.amount) || (other.amount < 0 && sum > m.amount) || sum < MinMoney {
		return Money{}, errs.NewValueIsOutOfRangeError("money", m.String()+" + "+other.String(), MinMoney, MaxMoney)
	}
	return Money{amount: sum}, nil
}

// Sub returns m - other.
func (m Money) Sub(other Money) (Money, error) {
	return m.Add(other.Neg())
}

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{amount: -m.amount}
}

// Abs returns |m|.
func (m Money) Abs() Money {
	if m.amount < 0 {
		return m.Neg()
	}
	return m
}

func (m Money) IsNegative() bool { return m.amount < 0 }
func (m Money) IsPositive() bool { return m.amount > 0 }
func (m Money) IsZero() bool     { return m.amount == 0 }

// Equal reports whether both amounts are identical.
func (m Money) Equal(other Money) bool {
	return m.amount == other.amount
}

func (m Money) String() string {
	return strconv.FormatInt(m.amount, 10)
}
