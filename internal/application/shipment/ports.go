package shipment

import (
	"context"
	"errors"
)

var (
	ErrOrderNotFound      = errors.New("shipment: order not found")
	ErrOrderNotShippable  = errors.New("shipment: order must be confirmed before shipping")
	ErrUnsupportedCarrier = errors.New("shipment: invalid shipping carrier")
)

// Order is the slice of the order service's record the orchestrator needs.
type Order struct {
	ID          string
	UserID      string
	Status      string
	TotalAmount float64
}

// OrderClient reads orders from and propagates status transitions to the
// remote order service.
type OrderClient interface {
	GetOrder(ctx context.Context, id string) (*Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error
}

// Enqueuer accepts a propagation task for retry after a failed first attempt.
type Enqueuer interface {
	Enqueue(ctx context.Context, task string, fn func(context.Context) error) error
}

type IDGenerator interface {
	NewID() string
}
