package order

import (
	"errors"
	"fmt"
)

// ErrUnknownStatus marks a status value outside the known set.
var ErrUnknownStatus = errors.New("order: unknown status")

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// statusTransitions encodes the intended order lifecycle. Status updates are
// not strictly gated on it (legacy callers overwrite freely); callers consult
// it to flag unexpected jumps.
var statusTransitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func ParseStatus(v string) (Status, error) {
	switch Status(v) {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(v), nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownStatus, v)
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

func ParsePaymentStatus(v string) (PaymentStatus, error) {
	switch PaymentStatus(v) {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return PaymentStatus(v), nil
	}
	return "", fmt.Errorf("%w: payment status %q", ErrUnknownStatus, v)
}
