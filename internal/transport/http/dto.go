package transporthttp

import (
	"time"

	domainorder "github.com/ilmi2809/tubeseai/internal/domain/order"
	domainpayment "github.com/ilmi2809/tubeseai/internal/domain/payment"
	domainshipment "github.com/ilmi2809/tubeseai/internal/domain/shipment"
)

type addressDTO struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code" validate:"required"`
	Country string `json:"country"`
}

type dimensionsDTO struct {
	Length float64 `json:"length" validate:"gte=0"`
	Width  float64 `json:"width" validate:"gte=0"`
	Height float64 `json:"height" validate:"gte=0"`
}

type orderItemView struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
}

type orderView struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Items           []orderItemView `json:"items"`
	TotalAmount     float64         `json:"total_amount"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"payment_status"`
	ShippingAddress addressDTO      `json:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func newOrderView(o *domainorder.Order) orderView {
	items := make([]orderItemView, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemView{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  it.Subtotal,
		})
	}
	return orderView{
		ID:            o.ID,
		UserID:        o.UserID,
		Items:         items,
		TotalAmount:   o.TotalAmount,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		ShippingAddress: addressDTO{
			Street:  o.ShippingAddress.Street,
			City:    o.ShippingAddress.City,
			State:   o.ShippingAddress.State,
			ZipCode: o.ShippingAddress.ZipCode,
			Country: o.ShippingAddress.Country,
		},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func newOrderViews(orders []*domainorder.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}
	return views
}

type paymentView struct {
	ID              string    `json:"id"`
	OrderID         string    `json:"order_id"`
	UserID          string    `json:"user_id"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	Method          string    `json:"method"`
	Status          string    `json:"status"`
	TransactionID   string    `json:"transaction_id,omitempty"`
	GatewayResponse string    `json:"gateway_response,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func newPaymentView(p *domainpayment.Payment) paymentView {
	return paymentView{
		ID:              p.ID,
		OrderID:         p.OrderID,
		UserID:          p.UserID,
		Amount:          p.Amount,
		Currency:        p.Currency,
		Method:          string(p.Method),
		Status:          string(p.Status),
		TransactionID:   p.TransactionID,
		GatewayResponse: p.GatewayResponse,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func newPaymentViews(payments []*domainpayment.Payment) []paymentView {
	views := make([]paymentView, 0, len(payments))
	for _, p := range payments {
		views = append(views, newPaymentView(p))
	}
	return views
}

// paymentResultView is the reply shape for payment mutations. Business
// declines travel here with success=false, not in the errors list.
type paymentResultView struct {
	Success bool         `json:"success"`
	Payment *paymentView `json:"payment,omitempty"`
	Message string       `json:"message"`
}

type shipmentView struct {
	ID                string     `json:"id"`
	OrderID           string     `json:"order_id"`
	UserID            string     `json:"user_id"`
	Carrier           string     `json:"carrier"`
	TrackingNumber    string     `json:"tracking_number"`
	Status            string     `json:"status"`
	Cost              float64    `json:"cost"`
	EstimatedDelivery time.Time  `json:"estimated_delivery"`
	ActualDelivery    *time.Time `json:"actual_delivery,omitempty"`
	Location          string     `json:"location,omitempty"`
	ShippingAddress   addressDTO `json:"shipping_address"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func newShipmentView(s *domainshipment.Shipment) shipmentView {
	view := shipmentView{
		ID:                s.ID,
		OrderID:           s.OrderID,
		UserID:            s.UserID,
		Carrier:           s.Carrier,
		TrackingNumber:    s.TrackingNumber,
		Status:            string(s.Status),
		Cost:              s.Cost,
		EstimatedDelivery: s.EstimatedDelivery,
		Location:          s.Location,
		ShippingAddress: addressDTO{
			Street:  s.ShippingAddress.Street,
			City:    s.ShippingAddress.City,
			State:   s.ShippingAddress.State,
			ZipCode: s.ShippingAddress.ZipCode,
			Country: s.ShippingAddress.Country,
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if !s.ActualDelivery.IsZero() {
		delivered := s.ActualDelivery
		view.ActualDelivery = &delivered
	}
	return view
}

func newShipmentViews(shipments []*domainshipment.Shipment) []shipmentView {
	views := make([]shipmentView, 0, len(shipments))
	for _, s := range shipments {
		views = append(views, newShipmentView(s))
	}
	return views
}

type quoteView struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Carrier       string  `json:"carrier"`
	Cost          float64 `json:"cost"`
	EstimatedDays int     `json:"estimated_days"`
	Description   string  `json:"description"`
}

func newQuoteViews(quotes []domainshipment.Quote) []quoteView {
	views := make([]quoteView, 0, len(quotes))
	for _, q := range quotes {
		views = append(views, quoteView{
			ID:            q.ID,
			Name:          q.Name,
			Carrier:       q.Carrier,
			Cost:          q.Cost,
			EstimatedDays: q.EstimatedDays,
			Description:   q.Description,
		})
	}
	return views
}

type trackingEventView struct {
	TrackingNumber string    `json:"tracking_number"`
	Status         string    `json:"status"`
	Location       string    `json:"location"`
	Timestamp      time.Time `json:"timestamp"`
	Description    string    `json:"description"`
}

func newTrackingEventViews(events []domainshipment.TrackingEvent) []trackingEventView {
	views := make([]trackingEventView, 0, len(events))
	for _, e := range events {
		views = append(views, trackingEventView{
			TrackingNumber: e.TrackingNumber,
			Status:         string(e.Status),
			Location:       e.Location,
			Timestamp:      e.Timestamp,
			Description:    e.Description,
		})
	}
	return views
}
