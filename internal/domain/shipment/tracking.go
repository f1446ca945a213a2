package shipment

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

var carrierPrefixes = map[string]string{
	"FEDEX": "FX",
	"UPS":   "1Z",
	"DHL":   "DH",
	"USPS":  "US",
}

const trackingRandomLen = 6

// NewTrackingNumber builds a carrier-prefixed tracking number:
// prefix + last 8 digits of the current epoch millis + 6 random
// upper-case base-36 characters. Unknown carriers get the "XX" prefix.
func NewTrackingNumber(carrier string) string {
	prefix, ok := carrierPrefixes[carrier]
	if !ok {
		prefix = "XX"
	}

	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}

	var b strings.Builder
	for i := 0; i < trackingRandomLen; i++ {
		b.WriteByte(base36Upper[rand.Intn(len(base36Upper))])
	}

	return prefix + millis + b.String()
}

const base36Upper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// TrackingEvent is one step of a shipment's journey, most recent first when
// returned from TrackingHistory.
type TrackingEvent struct {
	TrackingNumber string
	Status         Status
	Location       string
	Timestamp      time.Time
	Description    string
}

var (
	trackingStatuses  = []Status{StatusPickedUp, StatusInTransit, StatusOutForDelivery, StatusDelivered}
	trackingLocations = []string{"Origin Facility", "Sorting Facility", "Local Facility", "Destination"}
)

// TrackingHistory synthesizes a plausible event trail for a tracking number.
// There is no persisted history; the current position is chosen at random,
// with one day between steps. Stand-in for a real carrier integration.
func TrackingHistory(trackingNumber string) []TrackingEvent {
	current := rand.Intn(len(trackingStatuses))
	return trackingHistoryAt(trackingNumber, current, time.Now().UTC())
}

func trackingHistoryAt(trackingNumber string, current int, now time.Time) []TrackingEvent {
	events := make([]TrackingEvent, 0, current+1)
	for i := current; i >= 0; i-- {
		status := trackingStatuses[i]
		location := trackingLocations[i]
		events = append(events, TrackingEvent{
			TrackingNumber: trackingNumber,
			Status:         status,
			Location:       location,
			Timestamp:      now.Add(-time.Duration(current-i) * 24 * time.Hour),
			Description:    statusDescription(status, location),
		})
	}
	return events
}

func statusDescription(status Status, location string) string {
	switch status {
	case StatusPickedUp:
		return fmt.Sprintf("Package picked up at %s", location)
	case StatusInTransit:
		return fmt.Sprintf("Package in transit at %s", location)
	case StatusOutForDelivery:
		return fmt.Sprintf("Package out for delivery from %s", location)
	case StatusDelivered:
		return fmt.Sprintf("Package delivered at %s", location)
	default:
		return fmt.Sprintf("Package status: %s", status)
	}
}
