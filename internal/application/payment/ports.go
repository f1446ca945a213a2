package payment

import (
	"context"
	"errors"
)

var (
	ErrOrderNotFound     = errors.New("payment: order not found")
	ErrUnsupportedMethod = errors.New("payment: unsupported payment method")
)

// Order is the slice of the order service's record the orchestrator needs.
type Order struct {
	ID          string
	UserID      string
	TotalAmount float64
	Status      string
}

// OrderClient reads orders from and propagates payment-status transitions to
// the remote order service.
type OrderClient interface {
	GetOrder(ctx context.Context, id string) (*Order, error)
	UpdatePaymentStatus(ctx context.Context, id, status string) error
}

// Enqueuer accepts a propagation task for retry after a failed first attempt.
type Enqueuer interface {
	Enqueue(ctx context.Context, task string, fn func(context.Context) error) error
}

type IDGenerator interface {
	NewID() string
}
