package rpc

import (
	"context"

	apporder "github.com/ilmi2809/tubeseai/internal/application/order"
	apppayment "github.com/ilmi2809/tubeseai/internal/application/payment"
	appshipment "github.com/ilmi2809/tubeseai/internal/application/shipment"
)

// UserDirectory implements the order orchestrator's user port over the
// remote user service.
type UserDirectory struct {
	client *Client
}

func NewUserDirectory(client *Client) *UserDirectory {
	return &UserDirectory{client: client}
}

type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (d *UserDirectory) GetUser(ctx context.Context, id string) (*apporder.User, error) {
	var payload userPayload
	err := d.client.Call(ctx, "getUser", map[string]any{"id": id}, &payload)
	if HasCode(err, CodeNotFound) {
		return nil, apporder.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &apporder.User{ID: payload.ID, Name: payload.Name, Email: payload.Email}, nil
}

// ProductCatalog implements the order orchestrator's product port over the
// remote product service.
type ProductCatalog struct {
	client *Client
}

func NewProductCatalog(client *Client) *ProductCatalog {
	return &ProductCatalog{client: client}
}

type productPayload struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

func (c *ProductCatalog) GetProduct(ctx context.Context, id string) (*apporder.Product, error) {
	var payload productPayload
	err := c.client.Call(ctx, "getProduct", map[string]any{"id": id}, &payload)
	if HasCode(err, CodeNotFound) {
		return nil, apporder.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &apporder.Product{ID: payload.ID, Name: payload.Name, Price: payload.Price, Stock: payload.Stock}, nil
}

func (c *ProductCatalog) DeductStock(ctx context.Context, productID string, quantity int) error {
	return c.client.Call(ctx, "deductStock", map[string]any{
		"id":       productID,
		"quantity": quantity,
	}, nil)
}

// orderPayload is the wire shape both downstream services read orders
// through.
type orderPayload struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
}

// PaymentOrderClient implements the payment orchestrator's order port over
// the remote order service.
type PaymentOrderClient struct {
	client *Client
}

func NewPaymentOrderClient(client *Client) *PaymentOrderClient {
	return &PaymentOrderClient{client: client}
}

func (c *PaymentOrderClient) GetOrder(ctx context.Context, id string) (*apppayment.Order, error) {
	var payload orderPayload
	err := c.client.Call(ctx, "getOrder", map[string]any{"id": id}, &payload)
	if HasCode(err, CodeNotFound) {
		return nil, apppayment.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &apppayment.Order{
		ID:          payload.ID,
		UserID:      payload.UserID,
		TotalAmount: payload.TotalAmount,
		Status:      payload.Status,
	}, nil
}

func (c *PaymentOrderClient) UpdatePaymentStatus(ctx context.Context, id, status string) error {
	return c.client.Call(ctx, "updatePaymentStatus", map[string]any{
		"id":     id,
		"status": status,
	}, nil)
}

// ShipmentOrderClient implements the shipment orchestrator's order port over
// the remote order service.
type ShipmentOrderClient struct {
	client *Client
}

func NewShipmentOrderClient(client *Client) *ShipmentOrderClient {
	return &ShipmentOrderClient{client: client}
}

func (c *ShipmentOrderClient) GetOrder(ctx context.Context, id string) (*appshipment.Order, error) {
	var payload orderPayload
	err := c.client.Call(ctx, "getOrder", map[string]any{"id": id}, &payload)
	if HasCode(err, CodeNotFound) {
		return nil, appshipment.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &appshipment.Order{
		ID:          payload.ID,
		UserID:      payload.UserID,
		Status:      payload.Status,
		TotalAmount: payload.TotalAmount,
	}, nil
}

func (c *ShipmentOrderClient) UpdateOrderStatus(ctx context.Context, id, status string) error {
	return c.client.Call(ctx, "updateOrderStatus", map[string]any{
		"id":     id,
		"status": status,
	}, nil)
}
