package transporthttp

import (
	"encoding/json"
	"net/http"

	apporder "github.com/ilmi2809/tubeseai/internal/application/order"
	domainorder "github.com/ilmi2809/tubeseai/internal/domain/order"
	"github.com/ilmi2809/tubeseai/internal/pkg/metrics"
)

// OrderHandler serves the order service's operation surface.
type OrderHandler struct {
	*Dispatcher
	svc *apporder.Service
}

func NewOrderHandler(svc *apporder.Service, m *metrics.RPC) *OrderHandler {
	h := &OrderHandler{Dispatcher: NewDispatcher(m), svc: svc}
	h.register("createOrder", h.createOrder)
	h.register("getOrder", h.getOrder)
	h.register("getUserOrders", h.getUserOrders)
	h.register("getAllOrders", h.getAllOrders)
	h.register("getOrderStats", h.getOrderStats)
	h.register("updateOrderStatus", h.updateOrderStatus)
	h.register("updatePaymentStatus", h.updatePaymentStatus)
	h.register("cancelOrder", h.cancelOrder)
	return h
}

type createOrderInput struct {
	UserID string `json:"user_id" validate:"required"`
	Items  []struct {
		ProductID string `json:"product_id" validate:"required"`
		Quantity  int    `json:"quantity" validate:"gt=0"`
	} `json:"items" validate:"required,min=1,dive"`
	ShippingAddress addressDTO `json:"shipping_address" validate:"required"`
}

func (h *OrderHandler) createOrder(r *http.Request, variables json.RawMessage) (any, error) {
	var in createOrderInput
	if err := h.decodeVariables(variables, &in); err != nil {
		return nil, err
	}

	items := make([]apporder.ItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, apporder.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	order, err := h.svc.CreateOrder(r.Context(), apporder.CreateOrderInput{
		UserID: in.UserID,
		Items:  items,
		ShippingAddress: domainorder.Address{
			Street:  in.ShippingAddress.Street,
			City:    in.ShippingAddress.City,
			State:   in.ShippingAddress.State,
			ZipCode: in.ShippingAddress.ZipCode,
			Country: in.ShippingAddress.Country,
		},
	})
	if err != nil {
		return nil, err
	}
	return newOrderView(order), nil
}

type orderIDInput struct {
	ID string `json:"id" validate:"required"`
}

func (h *OrderHandler) getOrder(r *http.Request, variables json.RawMessage) (any, error) {
	var in orderIDInput
	if err := h.decodeVariables(variables, &in); err != nil {
		return nil, err
	}
	order, err := h.svc.GetOrder(r.Context(), in.ID)
	if err != nil {
		return nil, err
	}
	return newOrderView(order), nil
}

type userIDInput struct {
	UserID string `json:"user_id" validate:"required"`
}

func (h *OrderHandler) getUserOrders(r *http.Request, variables json.RawMessage) (any, error) {
	var in userIDInput
	if err := h.decodeVariables(variables, &in); err != nil {
		return nil, err
	}
	orders, err := h.svc.ListUserOrders(r.Context(), in.UserID)
	if err != nil {
		return nil, err
	}
	return newOrderViews(orders), nil
}

type listOrdersInput struct {
	Limit  int `json:"limit" validate:"gte=0"`
	Offset int `json:"offset" validate:"gte=0"`
}

func (h *OrderHandler) getAllOrders(r *http.Request, variables json.RawMessage) (any, error) {
	var in listOrdersInput
	if err := h.decodeVariables(variables, &in); err != nil {
		return nil, err
	}
	orders, err := h.svc.ListOrders(r.Context(), in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	return newOrderViews(orders), nil
}

type orderStatsView struct {
	TotalOrders     int     `json:"total_orders"`
	PendingOrders   int     `json:"pending_orders"`
	CompletedOrders int     `json:"completed_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
}

func (h *OrderHandler) getOrderStats(r *http.Request, variables json.RawMessage) (any, error) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		return nil, err
	}
	return orderStatsView{
		TotalOrders:     stats.TotalOrders,
		PendingOrders:   stats.PendingOrders,
		CompletedOrders: stats.CompletedOrders,
		TotalRevenue:    stats.TotalRevenue,
	}, nil
}

type updateOrderStatusInput struct {
	ID     string `json:"id" validate:"required"`
	Status string `json:"status" validate:"required"`
}

func (h *OrderHandler) updateOrderStatus(r *http.Request, variables json.RawMessage) (any, error) {
	var in updateOrderStatusInput
	if err := h.decodeVariables(variables, &in); err != nil {
		return nil, err
	}
	order, err := h.svc.UpdateOrderStatus(r.Context(), in.ID, in.Status)
	if err != nil {
		return nil, err
	}
	return newOrderView(order), nil
}

func (h *OrderHandler) updatePaymentStatus(r *http.Request, variables json.RawMessage) (any, error) {
	var in updateOrderStatusInput
	if err := h.decodeVariables(variables, &in); err != nil {
		return nil, err
	}
	order, err := h.svc.UpdatePaymentStatus(r.Context(), in.ID, in.Status)
	if err != nil {
		return nil, err
	}
	return newOrderView(order), nil
}

func (h *OrderHandler) cancelOrder(r *http.Request, variables json.RawMessage) (any, error) {
	var in orderIDInput
	if err := h.decodeVariables(variables, &in); err != nil {
		return nil, err
	}
	order, err := h.svc.CancelOrder(r.Context(), in.ID)
	if err != nil {
		return nil, err
	}
	return newOrderView(order), nil
}
