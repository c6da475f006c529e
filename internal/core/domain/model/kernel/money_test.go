package kernel_test

import (
	"math"
	"testing"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	valid := map[string]int64{
		"1000":                1000,
		" 400 ":               400,
		"1e3":                 1000,
		"250.0":               250,
		"9223372036854775807": math.MaxInt64,
	}
	for in, want := range valid {
		t.Run("valid "+in, func(t *testing.T) {
			m, err := kernel.ParseAmount(in)

			require.NoError(t, err)
			assert.Equal(t, want, m.Amount())
		})
	}

	invalid := []string{"", "   ", "abc", "0", "-5", "12.5", "0.0001", "9223372036854775808", "1e30"}
	for _, in := range invalid {
		t.Run("invalid "+in, func(t *testing.T) {
			_, err := kernel.ParseAmount(in)

			require.ErrorIs(t, err, errs.ErrInvalidAmount)
			assert.Equal(t, errs.KindInvalidAmount, errs.KindOf(err))
		})
	}
}

func TestAmountFromDecimal(t *testing.T) {
	m, err := kernel.AmountFromDecimal(decimal.NewFromInt(42))
	require.NoError(t, err)
	assert.Equal(t, int64(42), m.Amount())

	_, err = kernel.AmountFromDecimal(decimal.NewFromFloat(-0.5))
	require.ErrorIs(t, err, errs.ErrInvalidAmount)
}

func TestNewMoney(t *testing.T) {
	m, err := kernel.NewMoney(-600)
	require.NoError(t, err)
	assert.True(t, m.IsNegative())
	assert.Equal(t, "-600", m.String())

	_, err = kernel.NewMoney(math.MinInt64)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("add and sub", func(t *testing.T) {
		balance := kernel.Zero

		balance, err := balance.Sub(kernel.MustMoney(1000))
		require.NoError(t, err)
		assert.Equal(t, int64(-1000), balance.Amount())

		balance, err = balance.Add(kernel.MustMoney(400))
		require.NoError(t, err)
		assert.Equal(t, int64(-600), balance.Amount())
	})

	t.Run("overflow upwards", func(t *testing.T) {
		_, err := kernel.MustMoney(kernel.MaxMoney).Add(kernel.MustMoney(1))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("overflow downwards", func(t *testing.T) {
		_, err := kernel.MustMoney(kernel.MinMoney).Sub(kernel.MustMoney(1))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("lower bound is reachable", func(t *testing.T) {
		m, err := kernel.MustMoney(-1).Sub(kernel.MustMoney(kernel.MaxMoney - 1))

		require.NoError(t, err)
		assert.Equal(t, kernel.MinMoney, m.Amount())
		assert.Equal(t, kernel.MaxMoney, m.Abs().Amount())
	})

	t.Run("neg abs predicates", func(t *testing.T) {
		m := kernel.MustMoney(250)

		assert.Equal(t, int64(-250), m.Neg().Amount())
		assert.Equal(t, m, m.Neg().Abs())
		assert.True(t, m.IsPositive())
		assert.True(t, kernel.Zero.IsZero())
		assert.True(t, m.Equal(kernel.MustMoney(250)))
		assert.True(t, m.Decimal().Equal(decimal.NewFromInt(250)))
	})
}
