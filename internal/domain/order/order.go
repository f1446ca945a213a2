package order

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("order: not found")
	ErrNoItems         = errors.New("order: at least one item is required")
	ErrInvalidQuantity = errors.New("order: quantity must be greater than zero")
)

// Address is the shipping destination captured on the order.
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// Item is a single order line. Price is snapshotted at order time and is
// never re-read from the product catalog afterwards.
type Item struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	Price     float64
	Subtotal  float64
}

func NewItem(id, orderID, productID string, quantity int, price float64) (Item, error) {
	if quantity <= 0 {
		return Item{}, ErrInvalidQuantity
	}
	return Item{
		ID:        id,
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		Price:     price,
		Subtotal:  price * float64(quantity),
	}, nil
}

type Order struct {
	ID              string
	UserID          string
	Items           []Item
	TotalAmount     float64
	Status          Status
	PaymentStatus   PaymentStatus
	ShippingAddress Address
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// New builds a PENDING order from already priced items. TotalAmount is the
// sum of item subtotals and is never recomputed after construction.
func New(id, userID string, items []Item, addr Address) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	var total float64
	for _, it := range items {
		total += it.Subtotal
	}

	now := time.Now().UTC()
	return &Order{
		ID:              id,
		UserID:          userID,
		Items:           items,
		TotalAmount:     total,
		Status:          StatusPending,
		PaymentStatus:   PaymentStatusPending,
		ShippingAddress: addr,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]Item(nil), o.Items...)
	return &clone
}
