package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilmi2809/tubeseai/internal/domain/order"
)

func TestNewItem(t *testing.T) {
	t.Run("snapshots price into subtotal", func(t *testing.T) {
		item, err := order.NewItem("i1", "o1", "p1", 3, 9.99)
		require.NoError(t, err)
		assert.Equal(t, 3, item.Quantity)
		assert.InDelta(t, 29.97, item.Subtotal, 1e-9)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := order.NewItem("i1", "o1", "p1", 0, 9.99)
		assert.ErrorIs(t, err, order.ErrInvalidQuantity)

		_, err = order.NewItem("i1", "o1", "p1", -1, 9.99)
		assert.ErrorIs(t, err, order.ErrInvalidQuantity)
	})
}

func TestNew(t *testing.T) {
	t.Run("total is the sum of item subtotals", func(t *testing.T) {
		a, err := order.NewItem("i1", "o1", "p1", 2, 10.00)
		require.NoError(t, err)
		b, err := order.NewItem("i2", "o1", "p2", 1, 5.50)
		require.NoError(t, err)

		o, err := order.New("o1", "u1", []order.Item{a, b}, order.Address{})
		require.NoError(t, err)

		assert.InDelta(t, 25.50, o.TotalAmount, 1e-9)
		assert.Equal(t, order.StatusPending, o.Status)
		assert.Equal(t, order.PaymentStatusPending, o.PaymentStatus)
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		_, err := order.New("o1", "u1", nil, order.Address{})
		assert.ErrorIs(t, err, order.ErrNoItems)
	})
}

func TestClone(t *testing.T) {
	item, err := order.NewItem("i1", "o1", "p1", 1, 1.00)
	require.NoError(t, err)
	o, err := order.New("o1", "u1", []order.Item{item}, order.Address{City: "Springfield"})
	require.NoError(t, err)

	clone := o.Clone()
	clone.Items[0].Quantity = 99
	clone.Status = order.StatusCancelled

	assert.Equal(t, 1, o.Items[0].Quantity)
	assert.Equal(t, order.StatusPending, o.Status)
}

func TestStatusCanTransitionTo(t *testing.T) {
	testCases := []struct {
		from    order.Status
		to      order.Status
		allowed bool
	}{
		{order.StatusPending, order.StatusConfirmed, true},
		{order.StatusPending, order.StatusCancelled, true},
		{order.StatusPending, order.StatusDelivered, false},
		{order.StatusConfirmed, order.StatusProcessing, true},
		{order.StatusProcessing, order.StatusShipped, true},
		{order.StatusShipped, order.StatusDelivered, true},
		{order.StatusShipped, order.StatusCancelled, false},
		{order.StatusDelivered, order.StatusPending, false},
		{order.StatusCancelled, order.StatusConfirmed, false},
		{order.StatusPending, order.StatusPending, true},
	}

	for _, tc := range testCases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := order.ParseStatus("SHIPPED")
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, s)

	_, err = order.ParseStatus("TELEPORTED")
	assert.ErrorIs(t, err, order.ErrUnknownStatus)
}

func TestParsePaymentStatus(t *testing.T) {
	s, err := order.ParsePaymentStatus("PAID")
	require.NoError(t, err)
	assert.Equal(t, order.PaymentStatusPaid, s)

	_, err = order.ParsePaymentStatus("paid")
	assert.ErrorIs(t, err, order.ErrUnknownStatus)
}
