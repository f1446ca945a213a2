package shipment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackingNumber(t *testing.T) {
	testCases := []struct {
		carrier string
		prefix  string
	}{
		{"FEDEX", "FX"},
		{"UPS", "1Z"},
		{"DHL", "DH"},
		{"USPS", "US"},
		{"PIGEON", "XX"},
	}

	for _, tc := range testCases {
		t.Run(tc.carrier, func(t *testing.T) {
			tn := NewTrackingNumber(tc.carrier)
			require.Len(t, tn, 16)
			assert.Equal(t, tc.prefix, tn[:2])

			// 8 digits of epoch millis after the prefix.
			for _, r := range tn[2:10] {
				assert.Contains(t, "0123456789", string(r))
			}
			for _, r := range tn[10:] {
				assert.Contains(t, base36Upper, string(r))
			}
		})
	}
}

func TestTrackingHistoryAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("delivered shipment has the full trail", func(t *testing.T) {
		events := trackingHistoryAt("1Z12345678ABCDEF", 3, now)
		require.Len(t, events, 4)

		assert.Equal(t, StatusDelivered, events[0].Status)
		assert.Equal(t, now, events[0].Timestamp)
		assert.Equal(t, "Package delivered at Destination", events[0].Description)

		assert.Equal(t, StatusPickedUp, events[3].Status)
		assert.Equal(t, now.Add(-3*24*time.Hour), events[3].Timestamp)
		assert.Equal(t, "Package picked up at Origin Facility", events[3].Description)

		for i := 1; i < len(events); i++ {
			assert.True(t, events[i].Timestamp.Before(events[i-1].Timestamp))
		}
	})

	t.Run("freshly picked up shipment has one event", func(t *testing.T) {
		events := trackingHistoryAt("FX12345678ABCDEF", 0, now)
		require.Len(t, events, 1)
		assert.Equal(t, StatusPickedUp, events[0].Status)
		assert.Equal(t, now, events[0].Timestamp)
	})
}

func TestTrackingHistory(t *testing.T) {
	events := TrackingHistory("US12345678ABCDEF")
	require.NotEmpty(t, events)
	require.LessOrEqual(t, len(events), 4)
	for _, e := range events {
		assert.Equal(t, "US12345678ABCDEF", e.TrackingNumber)
	}
}
