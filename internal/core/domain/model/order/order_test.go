package order_test

import (
	"testing"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func km(t *testing.T, v string) kernel.Distance {
	t.Helper()
	d, err := kernel.ParseDistance(v)
	require.NoError(t, err)
	return d
}

func createValidOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "Plateau", "Almadies", km(t, "12"), kernel.MustMoney(1700), kernel.MustMoney(170))
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending unassigned order", func(t *testing.T) {
		id := kernel.NewUUID()

		o, err := order.NewOrder(id, " Plateau ", "Almadies", km(t, "12.5"), kernel.MustMoney(1750), kernel.MustMoney(175))

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, "Plateau", o.Origin())
		assert.Equal(t, "Almadies", o.Destination())
		assert.True(t, o.Distance().Km().Equal(decimal.RequireFromString("12.5")))
		assert.Equal(t, int64(1750), o.Fare().Amount())
		assert.Equal(t, int64(175), o.Commission().Amount())
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.Agent())
		assert.False(t, o.CommissionSettled())
	})

	t.Run("should join validation errors", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, "", " ", kernel.Distance{}, kernel.MustMoney(-1), kernel.Zero)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "value is required: origin")
		assert.Contains(t, err.Error(), "value is required: destination")
		assert.Contains(t, err.Error(), "distance must be created")
		assert.Contains(t, err.Error(), "fare")
	})

	t.Run("commission cannot exceed fare", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "A", "B", km(t, "1"), kernel.MustMoney(100), kernel.MustMoney(101))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("free order is allowed", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "A", "B", km(t, "0"), kernel.Zero, kernel.Zero)

		require.NoError(t, err)
	})
}

func TestRestoreOrder(t *testing.T) {
	agentID := kernel.NewUUID()

	t.Run("delivered and settled", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), "A", "B", km(t, "3"),
			kernel.MustMoney(800), kernel.MustMoney(80), order.Delivered, &agentID, true)

		require.NoError(t, err)
		assert.True(t, o.IsAssignedTo(agentID))
		assert.True(t, o.CommissionSettled())
	})

	t.Run("delivered without agent", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), "A", "B", km(t, "3"),
			kernel.MustMoney(800), kernel.MustMoney(80), order.Delivered, nil, false)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("settled but pending", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), "A", "B", km(t, "3"),
			kernel.MustMoney(800), kernel.MustMoney(80), order.Pending, &agentID, true)

		require.ErrorIs(t, err, order.ErrOrderIsNotDelivered)
	})

	t.Run("copies the agent reference", func(t *testing.T) {
		id := kernel.NewUUID()
		o, err := order.RestoreOrder(kernel.NewUUID(), "A", "B", km(t, "3"),
			kernel.MustMoney(800), kernel.MustMoney(80), order.Pending, &id, false)
		require.NoError(t, err)

		id = kernel.NewUUID()

		assert.False(t, o.IsAssignedTo(id))
	})
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	var zero order.Order

	assert.Equal(t, order.ErrOrderIsNotConstructed, nilOrder.Validate())
	assert.Equal(t, order.ErrOrderIsNotConstructed, zero.Validate())
}

func TestOrder_IsEqual(t *testing.T) {
	a := createValidOrder(t)
	b := createValidOrder(t)

	assert.True(t, a.IsEqual(a))
	assert.False(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(nil))
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("assign reassign deliver settle", func(t *testing.T) {
		o := createValidOrder(t)
		first := kernel.NewUUID()
		second := kernel.NewUUID()

		require.NoError(t, o.Assign(first))
		require.NoError(t, o.Assign(second))
		assert.True(t, o.IsAssignedTo(second))

		require.NoError(t, o.Deliver())
		assert.Equal(t, order.Delivered, o.Status())

		require.NoError(t, o.MarkCommissionSettled())
		assert.True(t, o.CommissionSettled())
	})

	t.Run("deliver without agent", func(t *testing.T) {
		o := createValidOrder(t)

		assert.Equal(t, order.ErrOrderHasNoAgent, o.Deliver())
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("deliver twice", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID()))
		require.NoError(t, o.Deliver())

		require.ErrorIs(t, o.Deliver(), errs.ErrInvalidTransition)
	})

	t.Run("assign after delivery", func(t *testing.T) {
		o := createValidOrder(t)
		agentID := kernel.NewUUID()
		require.NoError(t, o.Assign(agentID))
		require.NoError(t, o.Deliver())

		require.Error(t, o.Assign(kernel.NewUUID()))
		assert.True(t, o.IsAssignedTo(agentID))
	})

	t.Run("assign invalid agent", func(t *testing.T) {
		o := createValidOrder(t)

		require.ErrorIs(t, o.Assign(kernel.UUID{}), kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("settle before delivery", func(t *testing.T) {
		o := createValidOrder(t)

		assert.Equal(t, order.ErrOrderIsNotDelivered, o.MarkCommissionSettled())
	})

	t.Run("settle twice", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID()))
		require.NoError(t, o.Deliver())
		require.NoError(t, o.MarkCommissionSettled())

		assert.Equal(t, order.ErrCommissionAlreadySettled, o.MarkCommissionSettled())
	})
}
