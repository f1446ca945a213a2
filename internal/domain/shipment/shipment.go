package shipment

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound          = errors.New("shipment: not found")
	ErrDuplicateTracking = errors.New("shipment: tracking number already exists")
	ErrUnknownStatus     = errors.New("shipment: unknown status")
)

type Status string

const (
	StatusPending        Status = "PENDING"
	StatusPickedUp       Status = "PICKED_UP"
	StatusInTransit      Status = "IN_TRANSIT"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusFailedDelivery Status = "FAILED_DELIVERY"
	StatusReturned       Status = "RETURNED"
)

func ParseStatus(v string) (Status, error) {
	switch Status(v) {
	case StatusPending, StatusPickedUp, StatusInTransit, StatusOutForDelivery,
		StatusDelivered, StatusFailedDelivery, StatusReturned:
		return Status(v), nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownStatus, v)
}

// Address mirrors the order's shipping address at shipment time.
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

type Shipment struct {
	ID                string
	OrderID           string
	UserID            string
	Carrier           string
	TrackingNumber    string
	Status            Status
	Cost              float64
	EstimatedDelivery time.Time
	ActualDelivery    time.Time
	Location          string
	ShippingAddress   Address
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func New(id, orderID, userID, carrier, trackingNumber string, cost float64, estimatedDelivery time.Time, addr Address) *Shipment {
	now := time.Now().UTC()
	return &Shipment{
		ID:                id,
		OrderID:           orderID,
		UserID:            userID,
		Carrier:           carrier,
		TrackingNumber:    trackingNumber,
		Status:            StatusPending,
		Cost:              cost,
		EstimatedDelivery: estimatedDelivery,
		ShippingAddress:   addr,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (s *Shipment) Clone() *Shipment {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}
