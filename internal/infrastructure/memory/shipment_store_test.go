package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/ilmi2809/tubeseai/internal/domain/shipment"
	"github.com/ilmi2809/tubeseai/internal/infrastructure/memory"
)

func seedShipment(id, orderID, tracking string) *domain.Shipment {
	return domain.New(id, orderID, "u1", "UPS", tracking, 7.71,
		time.Now().UTC().Add(72*time.Hour), domain.Address{ZipCode: "54321"})
}

func TestShipmentStoreTrackingIndex(t *testing.T) {
	ctx := context.Background()
	store := memory.NewShipmentStore()

	require.NoError(t, store.Insert(ctx, seedShipment("s1", "o1", "1Z12345678ABCDEF")))

	t.Run("duplicate tracking number rejected", func(t *testing.T) {
		err := store.Insert(ctx, seedShipment("s2", "o2", "1Z12345678ABCDEF"))
		assert.ErrorIs(t, err, domain.ErrDuplicateTracking)
	})

	t.Run("lookup by tracking number", func(t *testing.T) {
		sh, err := store.GetByTracking(ctx, "1Z12345678ABCDEF")
		require.NoError(t, err)
		assert.Equal(t, "s1", sh.ID)

		_, err = store.GetByTracking(ctx, "1Z00000000AAAAAA")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestShipmentStoreStats(t *testing.T) {
	ctx := context.Background()
	store := memory.NewShipmentStore()

	require.NoError(t, store.Insert(ctx, seedShipment("s1", "o1", "1Z00000000AAAAA1")))
	require.NoError(t, store.Insert(ctx, seedShipment("s2", "o2", "1Z00000000AAAAA2")))

	delivered, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	delivered.Status = domain.StatusDelivered
	delivered.ActualDelivery = delivered.CreatedAt.Add(48 * time.Hour)
	require.NoError(t, store.Update(ctx, delivered))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalShipments)
	assert.Equal(t, 1, stats.PendingShipments)
	assert.Equal(t, 1, stats.DeliveredShipments)
	assert.InDelta(t, 2.0, stats.AverageDeliveryDays, 0.01)
}
