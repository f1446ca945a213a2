package order

import (
	"context"
	"errors"
)

var (
	ErrUserNotFound      = errors.New("order: user not found")
	ErrProductNotFound   = errors.New("order: product not found")
	ErrInsufficientStock = errors.New("order: insufficient stock")
)

// User is the slice of the user service's record the orchestrator needs.
type User struct {
	ID    string
	Name  string
	Email string
}

// Product is the slice of the product service's record the orchestrator
// needs: current price for the line-item snapshot and stock for validation.
type Product struct {
	ID    string
	Name  string
	Price float64
	Stock int
}

// UserDirectory looks up users on the remote user service.
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (*User, error)
}

// ProductCatalog reads products and requests stock decrements on the remote
// product service.
type ProductCatalog interface {
	GetProduct(ctx context.Context, id string) (*Product, error)
	DeductStock(ctx context.Context, productID string, quantity int) error
}

// Enqueuer accepts a propagation task for retry after a failed first attempt.
type Enqueuer interface {
	Enqueue(ctx context.Context, task string, fn func(context.Context) error) error
}

// IDGenerator mints entity identifiers.
type IDGenerator interface {
	NewID() string
}
