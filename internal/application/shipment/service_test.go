package shipment_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appshipment "github.com/ilmi2809/tubeseai/internal/application/shipment"
	domain "github.com/ilmi2809/tubeseai/internal/domain/shipment"
	"github.com/ilmi2809/tubeseai/internal/infrastructure/memory"
)

type fakeOrders struct {
	orders        map[string]*appshipment.Order
	updateErr     error
	statusUpdates []string
}

func (f *fakeOrders) GetOrder(_ context.Context, id string) (*appshipment.Order, error) {
	if o, ok := f.orders[id]; ok {
		return o, nil
	}
	return nil, appshipment.ErrOrderNotFound
}

func (f *fakeOrders) UpdateOrderStatus(_ context.Context, id, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.statusUpdates = append(f.statusUpdates, id+":"+status)
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
	return "ship-" + strconv.Itoa(s.n)
}

type fixture struct {
	svc    *appshipment.Service
	repo   *memory.ShipmentStore
	orders *fakeOrders
	queue  *fakeQueue
}

func newFixture() *fixture {
	orders := &fakeOrders{orders: map[string]*appshipment.Order{
		"o1": {ID: "o1", UserID: "u1", Status: "CONFIRMED", TotalAmount: 25.50},
		"o2": {ID: "o2", UserID: "u1", Status: "PENDING", TotalAmount: 10.00},
	}}
	queue := &fakeQueue{}
	repo := memory.NewShipmentStore()

	return &fixture{
		svc:    appshipment.NewService(repo, orders, &seqIDs{}, queue, "12345"),
		repo:   repo,
		orders: orders,
		queue:  queue,
	}
}

func validInput() appshipment.CreateShipmentInput {
	return appshipment.CreateShipmentInput{
		OrderID: "o1",
		UserID:  "u1",
		Carrier: "UPS",
		ShippingAddress: domain.Address{
			Street:  "1 Main St",
			City:    "Springfield",
			ZipCode: "54321",
		},
		Weight:     2,
		Dimensions: domain.Dimensions{Length: 10, Width: 5, Height: 4},
	}
}

func TestCreateShipment(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmed order ships and the order is marked shipped", func(t *testing.T) {
		f := newFixture()

		sh, err := f.svc.CreateShipment(ctx, validInput())
		require.NoError(t, err)

		assert.Equal(t, domain.StatusPending, sh.Status)
		assert.Equal(t, "UPS", sh.Carrier)
		assert.True(t, strings.HasPrefix(sh.TrackingNumber, "1Z"))
		assert.Len(t, sh.TrackingNumber, 16)
		assert.Greater(t, sh.Cost, 0.0)
		assert.True(t, sh.EstimatedDelivery.After(time.Now()))

		assert.Equal(t, []string{"o1:SHIPPED"}, f.orders.statusUpdates)

		stored, err := f.repo.GetByTracking(ctx, sh.TrackingNumber)
		require.NoError(t, err)
		assert.Equal(t, sh.ID, stored.ID)
	})

	t.Run("pending order is not shippable", func(t *testing.T) {
		f := newFixture()
		in := validInput()
		in.OrderID = "o2"

		_, err := f.svc.CreateShipment(ctx, in)
		assert.ErrorIs(t, err, appshipment.ErrOrderNotShippable)
	})

	t.Run("unknown order", func(t *testing.T) {
		f := newFixture()
		in := validInput()
		in.OrderID = "o404"

		_, err := f.svc.CreateShipment(ctx, in)
		assert.ErrorIs(t, err, appshipment.ErrOrderNotFound)
	})

	t.Run("unknown carrier", func(t *testing.T) {
		f := newFixture()
		in := validInput()
		in.Carrier = "PIGEON"

		_, err := f.svc.CreateShipment(ctx, in)
		assert.ErrorIs(t, err, appshipment.ErrUnsupportedCarrier)
	})

	t.Run("propagation failure keeps the shipment and queues a retry", func(t *testing.T) {
		f := newFixture()
		f.orders.updateErr = errors.New("order service down")

		sh, err := f.svc.CreateShipment(ctx, validInput())
		require.NoError(t, err)

		_, err = f.repo.Get(ctx, sh.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"order.updateOrderStatus"}, f.queue.tasks)
	})
}

func TestCalculateShipping(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	quotes := f.svc.CalculateShipping(ctx, "", "54321", 2, domain.Dimensions{})
	require.Len(t, quotes, 5)

	// Empty origin falls back to the warehouse zip, so the quotes match an
	// explicit warehouse origin.
	explicit := f.svc.CalculateShipping(ctx, "12345", "54321", 2, domain.Dimensions{})
	assert.Equal(t, explicit, quotes)
}

func TestUpdateShipmentStatus(t *testing.T) {
	ctx := context.Background()

	create := func(t *testing.T, f *fixture) *domain.Shipment {
		t.Helper()
		sh, err := f.svc.CreateShipment(ctx, validInput())
		require.NoError(t, err)
		return sh
	}

	t.Run("in transit update records the location", func(t *testing.T) {
		f := newFixture()
		sh := create(t, f)

		updated, err := f.svc.UpdateShipmentStatus(ctx, sh.ID, "IN_TRANSIT", "Memphis Hub")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInTransit, updated.Status)
		assert.Equal(t, "Memphis Hub", updated.Location)
		assert.True(t, updated.ActualDelivery.IsZero())

		// Only the SHIPPED propagation from creation so far.
		assert.Equal(t, []string{"o1:SHIPPED"}, f.orders.statusUpdates)
	})

	t.Run("delivery stamps the time and marks the order delivered", func(t *testing.T) {
		f := newFixture()
		sh := create(t, f)

		updated, err := f.svc.MarkAsDelivered(ctx, sh.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDelivered, updated.Status)
		assert.False(t, updated.ActualDelivery.IsZero())
		assert.Equal(t, []string{"o1:SHIPPED", "o1:DELIVERED"}, f.orders.statusUpdates)
	})

	t.Run("repeated delivery is accepted and re-propagated", func(t *testing.T) {
		f := newFixture()
		sh := create(t, f)

		_, err := f.svc.MarkAsDelivered(ctx, sh.ID)
		require.NoError(t, err)

		again, err := f.svc.MarkAsDelivered(ctx, sh.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDelivered, again.Status)
		assert.False(t, again.ActualDelivery.IsZero())
		assert.Equal(t, []string{"o1:SHIPPED", "o1:DELIVERED", "o1:DELIVERED"}, f.orders.statusUpdates)
	})

	t.Run("delivery propagation failure keeps the shipment delivered", func(t *testing.T) {
		f := newFixture()
		sh := create(t, f)
		f.orders.updateErr = errors.New("order service down")

		updated, err := f.svc.MarkAsDelivered(ctx, sh.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDelivered, updated.Status)
		assert.Equal(t, []string{"order.updateOrderStatus"}, f.queue.tasks)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		f := newFixture()
		sh := create(t, f)

		_, err := f.svc.UpdateShipmentStatus(ctx, sh.ID, "TELEPORTED", "")
		assert.ErrorIs(t, err, domain.ErrUnknownStatus)
	})

	t.Run("unknown shipment", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.UpdateShipmentStatus(ctx, "ship-404", "IN_TRANSIT", "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestTrackShipment(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	events := f.svc.TrackShipment(ctx, "1Z12345678ABCDEF")
	require.NotEmpty(t, events)
	for _, e := range events {
		assert.Equal(t, "1Z12345678ABCDEF", e.TrackingNumber)
	}
}

func TestQueriesAndStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	first, err := f.svc.CreateShipment(ctx, validInput())
	require.NoError(t, err)
	_, err = f.svc.CreateShipment(ctx, validInput())
	require.NoError(t, err)

	_, err = f.svc.MarkAsDelivered(ctx, first.ID)
	require.NoError(t, err)

	byOrder, err := f.svc.ListOrderShipments(ctx, "o1")
	require.NoError(t, err)
	assert.Len(t, byOrder, 2)

	byUser, err := f.svc.ListUserShipments(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	stats, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalShipments)
	assert.Equal(t, 1, stats.PendingShipments)
	assert.Equal(t, 1, stats.DeliveredShipments)
	assert.GreaterOrEqual(t, stats.AverageDeliveryDays, 0.0)
}
