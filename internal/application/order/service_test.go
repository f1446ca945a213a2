package order_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apporder "github.com/ilmi2809/tubeseai/internal/application/order"
	domain "github.com/ilmi2809/tubeseai/internal/domain/order"
	"github.com/ilmi2809/tubeseai/internal/infrastructure/memory"
)

type fakeUsers struct {
	users map[string]*apporder.User
}

func (f *fakeUsers) GetUser(_ context.Context, id string) (*apporder.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apporder.ErrUserNotFound
}

type deduction struct {
	productID string
	quantity  int
}

type fakeCatalog struct {
	products  map[string]*apporder.Product
	deductErr error
	deducted  []deduction
}

func (f *fakeCatalog) GetProduct(_ context.Context, id string) (*apporder.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, apporder.ErrProductNotFound
}

func (f *fakeCatalog) DeductStock(_ context.Context, productID string, quantity int) error {
	if f.deductErr != nil {
		return f.deductErr
	}
	f.deducted = append(f.deducted, deduction{productID: productID, quantity: quantity})
	return nil
}

type fakeQueue struct {
	tasks []string
}

func (f *fakeQueue) Enqueue(_ context.Context, task string, _ func(context.Context) error) error {
	f.tasks = append(f.tasks, task)
	return nil
}

type seqIDs struct {
	n int
}

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

type fixture struct {
	svc     *apporder.Service
	repo    *memory.OrderStore
	catalog *fakeCatalog
	queue   *fakeQueue
}

func newFixture() *fixture {
	users := &fakeUsers{users: map[string]*apporder.User{
		"u1": {ID: "u1", Name: "Ada", Email: "ada@example.com"},
	}}
	catalog := &fakeCatalog{products: map[string]*apporder.Product{
		"p1": {ID: "p1", Name: "Widget", Price: 10.00, Stock: 5},
		"p2": {ID: "p2", Name: "Gadget", Price: 5.50, Stock: 1},
	}}
	queue := &fakeQueue{}
	repo := memory.NewOrderStore()

	return &fixture{
		svc:     apporder.NewService(repo, users, catalog, &seqIDs{}, queue),
		repo:    repo,
		catalog: catalog,
		queue:   queue,
	}
}

func validInput() apporder.CreateOrderInput {
	return apporder.CreateOrderInput{
		UserID: "u1",
		Items: []apporder.ItemInput{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
		ShippingAddress: domain.Address{Street: "1 Main St", City: "Springfield", ZipCode: "12345"},
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots prices and decrements stock", func(t *testing.T) {
		f := newFixture()

		o, err := f.svc.CreateOrder(ctx, validInput())
		require.NoError(t, err)

		assert.Equal(t, domain.StatusPending, o.Status)
		assert.Equal(t, domain.PaymentStatusPending, o.PaymentStatus)
		assert.InDelta(t, 25.50, o.TotalAmount, 1e-9)
		require.Len(t, o.Items, 2)
		assert.InDelta(t, 10.00, o.Items[0].Price, 1e-9)
		assert.InDelta(t, 20.00, o.Items[0].Subtotal, 1e-9)

		assert.Equal(t, []deduction{{"p1", 2}, {"p2", 1}}, f.catalog.deducted)
		assert.Empty(t, f.queue.tasks)

		stored, err := f.repo.Get(ctx, o.ID)
		require.NoError(t, err)
		assert.InDelta(t, o.TotalAmount, stored.TotalAmount, 1e-9)
	})

	t.Run("unknown user leaves no order behind", func(t *testing.T) {
		f := newFixture()
		in := validInput()
		in.UserID = "ghost"

		_, err := f.svc.CreateOrder(ctx, in)
		assert.ErrorIs(t, err, apporder.ErrUserNotFound)

		orders, err := f.repo.List(ctx, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("unknown product leaves no order behind", func(t *testing.T) {
		f := newFixture()
		in := validInput()
		in.Items[0].ProductID = "p404"

		_, err := f.svc.CreateOrder(ctx, in)
		assert.ErrorIs(t, err, apporder.ErrProductNotFound)
		assert.Empty(t, f.catalog.deducted)
	})

	t.Run("insufficient stock rejects the whole order", func(t *testing.T) {
		f := newFixture()
		in := validInput()
		in.Items[1].Quantity = 2 // Gadget has stock 1

		_, err := f.svc.CreateOrder(ctx, in)
		assert.ErrorIs(t, err, apporder.ErrInsufficientStock)
		assert.Contains(t, err.Error(), "Gadget")

		orders, listErr := f.repo.List(ctx, 10, 0)
		require.NoError(t, listErr)
		assert.Empty(t, orders)
	})

	t.Run("empty items rejected", func(t *testing.T) {
		f := newFixture()
		in := validInput()
		in.Items = nil

		_, err := f.svc.CreateOrder(ctx, in)
		assert.ErrorIs(t, err, domain.ErrNoItems)
	})

	t.Run("failed stock decrement keeps the order and queues a retry", func(t *testing.T) {
		f := newFixture()
		f.catalog.deductErr = errors.New("product service down")

		o, err := f.svc.CreateOrder(ctx, validInput())
		require.NoError(t, err)

		stored, err := f.repo.Get(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, stored.Status)

		assert.Equal(t, []string{"product.deductStock", "product.deductStock"}, f.queue.tasks)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("applies any known status", func(t *testing.T) {
		f := newFixture()
		o, err := f.svc.CreateOrder(ctx, validInput())
		require.NoError(t, err)

		updated, err := f.svc.UpdateOrderStatus(ctx, o.ID, "CONFIRMED")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, updated.Status)

		// Out-of-lifecycle jumps are accepted for legacy callers.
		updated, err = f.svc.UpdateOrderStatus(ctx, o.ID, "DELIVERED")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDelivered, updated.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		f := newFixture()
		o, err := f.svc.CreateOrder(ctx, validInput())
		require.NoError(t, err)

		_, err = f.svc.UpdateOrderStatus(ctx, o.ID, "LOST")
		assert.ErrorIs(t, err, domain.ErrUnknownStatus)
	})

	t.Run("missing order", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.UpdateOrderStatus(ctx, "o404", "CONFIRMED")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUpdatePaymentStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	o, err := f.svc.CreateOrder(ctx, validInput())
	require.NoError(t, err)

	updated, err := f.svc.UpdatePaymentStatus(ctx, o.ID, "PAID")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, updated.PaymentStatus)
	assert.Equal(t, domain.StatusPending, updated.Status)

	_, err = f.svc.UpdatePaymentStatus(ctx, o.ID, "SETTLED")
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	o, err := f.svc.CreateOrder(ctx, validInput())
	require.NoError(t, err)

	cancelled, err := f.svc.CancelOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
}

func TestListOrders(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	for i := 0; i < 3; i++ {
		_, err := f.svc.CreateOrder(ctx, validInput())
		require.NoError(t, err)
	}

	t.Run("clamps non-positive limit to the default", func(t *testing.T) {
		orders, err := f.svc.ListOrders(ctx, 0, 0)
		require.NoError(t, err)
		assert.Len(t, orders, 3)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		orders, err := f.svc.ListOrders(ctx, 2, 2)
		require.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("lists by user", func(t *testing.T) {
		orders, err := f.svc.ListUserOrders(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, orders, 3)

		orders, err = f.svc.ListUserOrders(ctx, "u2")
		require.NoError(t, err)
		assert.Empty(t, orders)
	})
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	o1, err := f.svc.CreateOrder(ctx, validInput())
	require.NoError(t, err)
	_, err = f.svc.CreateOrder(ctx, validInput())
	require.NoError(t, err)

	_, err = f.svc.UpdateOrderStatus(ctx, o1.ID, "DELIVERED")
	require.NoError(t, err)
	_, err = f.svc.UpdatePaymentStatus(ctx, o1.ID, "PAID")
	require.NoError(t, err)

	stats, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 1, stats.PendingOrders)
	assert.Equal(t, 1, stats.CompletedOrders)
	assert.InDelta(t, 25.50, stats.TotalRevenue, 1e-9)
}
