package order

import "context"

// Stats aggregates the numbers shown on the storefront dashboard.
type Stats struct {
	TotalOrders     int
	PendingOrders   int
	CompletedOrders int
	TotalRevenue    float64
}

type Repository interface {
	// Insert persists the order together with its items as one atomic unit.
	Insert(ctx context.Context, o *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	List(ctx context.Context, limit, offset int) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) (*Order, error)
	Stats(ctx context.Context) (Stats, error)
}
