package transporthttp

import (
	"encoding/json"
	"net/http"

	appshipment "github.com/ilmi2809/tubeseai/internal/application/shipment"
	domainshipment "github.com/ilmi2809/tubeseai/internal/domain/shipment"
	"github.com/ilmi2809/tubeseai/internal/pkg/metrics"
)

// ShipmentHandler serves the shipping service's operation surface.
type ShipmentHandler struct {
	*Dispatcher
	svc *appshipment.Service
}

func NewShipmentHandler(svc *appshipment.Service, m *metrics.RPC) *ShipmentHandler {
	h := &ShipmentHandler{Dispatcher: NewDispatcher(m), svc: svc}
	h.register("createShipment", h.createShipment)
	h.register("calculateShipping", h.calculateShipping)
	h.register("trackShipment", h.trackShipment)
	h.register("updateShipmentStatus", h.updateShipmentStatus)
	h.register("markAsDelivered", h.markAsDelivered)
	h.register("getShipment", h.getShipment)
	h.register("getOrderShipments", h.getOrderShipments)
	h.register("getUserShipments", h.getUserShipments)
	h.register("getShippingStats", h.getShippingStats)
	return h
}

type createShipmentInput struct {
	OrderID         string        `json:"order_id" validate:"required"`
	UserID          string        `json:"user_id" validate:"required"`
	Carrier         string        `json:"carrier" validate:"required"`
	ShippingAddress addressDTO    `json:"shipping_address" validate:"required"`
	Weight          float64       `json:"weight" validate:"gt=0"`
	Dimensions      dimensionsDTO `json:"dimensions"`
}

func (h *ShipmentHandler) createShipment(r *http.Request, variables json.RawMessage) (any, error) {
	var in createShipmentInput
	if err := h.decodeVariables(variables, &in); err != nil {
		return nil, err
	}

	shipment, err := h.svc.CreateShipment(r.Context(), appshipment.CreateShipmentInput{
		OrderID: in.OrderID,
		UserID:  in.UserID,
		Carrier: in.Carrier,
		ShippingAddress: domainshipment.Address{
			Street:  in.ShippingAddress.Street,
			City:    in.ShippingAddress.City,
			State:   in.ShippingAddress.State,
			ZipCode: in.ShippingAddress.ZipCode,
			Country: in.ShippingAddress.Country,
		},
		Weight: in.Weight,
		Dimensions: domainshipment.Dimensions{
			Length: in.Dimensions.Length,
			Width:  in.Dimensions.Width,
			Height: in.Dimensions.Height,
		},
	})
	if err != nil {
		return nil, err
	}
	return newShipmentView(shipment), nil
}

type calculateShippingInput struct {
	FromZip    string        `json:"from_zip"`
	ToZip      string        `json:"to_zip" validate:"required"`
	Weight     float64       `json:"weight" validate:"gt=0"`
	Dimensions dimensionsDTO `json:"dimensions"`
}

func (h *ShipmentHandler) calculateShipping(r *http.Request, variables json.RawMessage) (any, error) {
	var in calculateShippingInput
	if err := h.decodeVariables(variables, &in); err != nil {
		return nil, err
	}
	quotes := h.svc.CalculateShipping(r.Context(), in.FromZip, in.ToZip, in.Weight, domainshipment.Dimensions{
		Length: in.Dimensions.Length,
		Width:  in.Dimensions.Width,
		Height: in.Dimensions.Height,
	})
	return newQuoteViews(quotes), nil
}

type trackShipmentInput struct {
	TrackingNumber string `json:"tracking_number" validate:"required"`
}

func (h *ShipmentHandler) trackShipment(r *http.Request, variables json.RawMessage) (any, error) {
	var in trackShipmentInput
	if err := h.decodeVariables(variables, &in); err != nil {
		return nil, err
	}
	events := h.svc.TrackShipment(r.Context(), in.TrackingNumber)
	return newTrackingEventViews(events), nil
}

type updateShipmentStatusInput struct {
	ID       string `json:"id" validate:"required"`
	Status   string `json:"status" validate:"required"`
	Location string `json:"location"`
}

func (h *ShipmentHandler) updateShipmentStatus(r *http.Request, variables json.RawMessage) (any, error) {
	var in updateShipmentStatusInput
	if err := h.decodeVariables(variables, &in); err != nil {
		return nil, err
	}
	shipment, err := h.svc.UpdateShipmentStatus(r.Context(), in.ID, in.Status, in.Location)
	if err != nil {
		return nil, err
	}
	return newShipmentView(shipment), nil
}

type shipmentIDInput struct {
	ID string `json:"id" validate:"required"`
}

func (h *ShipmentHandler) markAsDelivered(r *http.Request, variables json.RawMessage) (any, error) {
	var in shipmentIDInput
	if err := h.decodeVariables(variables, &in); err != nil {
		return nil, err
	}
	shipment, err := h.svc.MarkAsDelivered(r.Context(), in.ID)
	if err != nil {
		return nil, err
	}
	return newShipmentView(shipment), nil
}

func (h *ShipmentHandler) getShipment(r *http.Request, variables json.RawMessage) (any, error) {
	var in shipmentIDInput
	if err := h.decodeVariables(variables, &in); err != nil {
		return nil, err
	}
	shipment, err := h.svc.GetShipment(r.Context(), in.ID)
	if err != nil {
		return nil, err
	}
	return newShipmentView(shipment), nil
}

type shipmentOrderIDInput struct {
	OrderID string `json:"order_id" validate:"required"`
}

func (h *ShipmentHandler) getOrderShipments(r *http.Request, variables json.RawMessage) (any, error) {
	var in shipmentOrderIDInput
	if err := h.decodeVariables(variables, &in); err != nil {
		return nil, err
	}
	shipments, err := h.svc.ListOrderShipments(r.Context(), in.OrderID)
	if err != nil {
		return nil, err
	}
	return newShipmentViews(shipments), nil
}

func (h *ShipmentHandler) getUserShipments(r *http.Request, variables json.RawMessage) (any, error) {
	var in userIDInput
	if err := h.decodeVariables(variables, &in); err != nil {
		return nil, err
	}
	shipments, err := h.svc.ListUserShipments(r.Context(), in.UserID)
	if err != nil {
		return nil, err
	}
	return newShipmentViews(shipments), nil
}

type shippingStatsView struct {
	TotalShipments      int     `json:"total_shipments"`
	PendingShipments    int     `json:"pending_shipments"`
	InTransitShipments  int     `json:"in_transit_shipments"`
	DeliveredShipments  int     `json:"delivered_shipments"`
	AverageDeliveryDays float64 `json:"average_delivery_days"`
}

func (h *ShipmentHandler) getShippingStats(r *http.Request, variables json.RawMessage) (any, error) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		return nil, err
	}
	return shippingStatsView{
		TotalShipments:      stats.TotalShipments,
		PendingShipments:    stats.PendingShipments,
		InTransitShipments:  stats.InTransitShipments,
		DeliveredShipments:  stats.DeliveredShipments,
		AverageDeliveryDays: stats.AverageDeliveryDays,
	}, nil
}
