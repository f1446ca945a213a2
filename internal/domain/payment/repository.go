package payment

import "context"

type Stats struct {
	TotalPayments      int
	TotalAmount        float64
	SuccessfulPayments int
	FailedPayments     int
	PendingPayments    int
}

type Repository interface {
	Insert(ctx context.Context, p *Payment) error
	Get(ctx context.Context, id string) (*Payment, error)
	ListByOrder(ctx context.Context, orderID string) ([]*Payment, error)
	ListByUser(ctx context.Context, userID string) ([]*Payment, error)
	Update(ctx context.Context, p *Payment) error
	Stats(ctx context.Context) (Stats, error)
}
