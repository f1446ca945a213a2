package shipment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	domain "github.com/ilmi2809/tubeseai/internal/domain/shipment"
	"github.com/ilmi2809/tubeseai/internal/pkg/logging"
)

var tracer = otel.Tracer("shipping-service")

// DefaultWarehouseZip is the fixed origin used for every quote.
const DefaultWarehouseZip = "12345"

// Service drives shipment creation, tracking, and delivery confirmation.
type Service struct {
	repo         domain.Repository
	orders       OrderClient
	ids          IDGenerator
	queue        Enqueuer
	warehouseZip string
}

func NewService(repo domain.Repository, orders OrderClient, ids IDGenerator, queue Enqueuer, warehouseZip string) *Service {
	if warehouseZip == "" {
		warehouseZip = DefaultWarehouseZip
	}
	return &Service{
		repo:         repo,
		orders:       orders,
		ids:          ids,
		queue:        queue,
		warehouseZip: warehouseZip,
	}
}

type CreateShipmentInput struct {
	OrderID         string
	UserID          string
	Carrier         string
	ShippingAddress domain.Address
	Weight          float64
	Dimensions      domain.Dimensions
}

// CreateShipment verifies the order is shippable, prices the parcel, mints a
// tracking number, persists the shipment, and propagates order status
// SHIPPED. Propagation failures leave the shipment in place.
func (s *Service) CreateShipment(ctx context.Context, input CreateShipmentInput) (_ *domain.Shipment, err error) {
	ctx, span := tracer.Start(ctx, "CreateShipment",
		trace.WithAttributes(
			attribute.String("shipment.order_id", input.OrderID),
			attribute.String("shipment.carrier", input.Carrier),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	logger := logging.FromContext(ctx).With(zap.String("component", "shipping_service"))
	logger.Info("create_shipment_start",
		zap.String("order_id", input.OrderID),
		zap.String("carrier", input.Carrier),
	)

	order, err := s.orders.GetOrder(ctx, input.OrderID)
	if errors.Is(err, ErrOrderNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch order: %w", err)
	}

	if order.Status != "CONFIRMED" && order.Status != "PROCESSING" {
		return nil, fmt.Errorf("%w: order status is %s", ErrOrderNotShippable, order.Status)
	}

	quotes := domain.QuoteOptions(s.warehouseZip, input.ShippingAddress.ZipCode, input.Weight, input.Dimensions)
	var selected *domain.Quote
	for i := range quotes {
		if quotes[i].Carrier == input.Carrier {
			selected = &quotes[i]
			break
		}
	}
	if selected == nil {
		return nil, ErrUnsupportedCarrier
	}

	trackingNumber := domain.NewTrackingNumber(input.Carrier)
	estimated := time.Now().UTC().Add(time.Duration(selected.EstimatedDays) * 24 * time.Hour)
	entity := domain.New(
		s.ids.NewID(), input.OrderID, input.UserID, input.Carrier,
		trackingNumber, selected.Cost, estimated, input.ShippingAddress,
	)

	if err := s.repo.Insert(ctx, entity); err != nil {
		logger.Error("shipment_insert_failed", zap.String("order_id", input.OrderID), zap.Error(err))
		return nil, fmt.Errorf("persist shipment: %w", err)
	}

	span.SetAttributes(attribute.String("shipment.tracking_number", trackingNumber))
	s.propagateOrderStatus(ctx, logger, input.OrderID, "SHIPPED")

	logger.Info("create_shipment_success",
		zap.String("shipment_id", entity.ID),
		zap.String("tracking_number", trackingNumber),
		zap.Float64("cost", entity.Cost),
	)
	return entity, nil
}

// CalculateShipping prices a parcel for every supported carrier service.
func (s *Service) CalculateShipping(ctx context.Context, fromZip, toZip string, weight float64, dims domain.Dimensions) []domain.Quote {
	_ = ctx
	if fromZip == "" {
		fromZip = s.warehouseZip
	}
	return domain.QuoteOptions(fromZip, toZip, weight, dims)
}

// UpdateShipmentStatus overwrites the shipment status and location. The
// DELIVERED branch also stamps the actual delivery time and propagates order
// status DELIVERED, tolerating propagation failure.
func (s *Service) UpdateShipmentStatus(ctx context.Context, id string, status string, location string) (*domain.Shipment, error) {
	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx).With(zap.String("component", "shipping_service"))

	entity, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	entity.Status = next
	if location != "" {
		entity.Location = location
	}
	if next == domain.StatusDelivered {
		entity.ActualDelivery = time.Now().UTC()
	}
	entity.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("persist shipment status: %w", err)
	}

	if next == domain.StatusDelivered {
		s.propagateOrderStatus(ctx, logger, entity.OrderID, "DELIVERED")
	}

	logger.Info("shipment_status_updated",
		zap.String("shipment_id", entity.ID),
		zap.String("status", string(next)),
	)
	return entity, nil
}

// MarkAsDelivered is the convenience entry point for the DELIVERED branch.
func (s *Service) MarkAsDelivered(ctx context.Context, id string) (*domain.Shipment, error) {
	return s.UpdateShipmentStatus(ctx, id, string(domain.StatusDelivered), "")
}

// TrackShipment synthesizes the tracking trail for a tracking number.
func (s *Service) TrackShipment(ctx context.Context, trackingNumber string) []domain.TrackingEvent {
	_ = ctx
	return domain.TrackingHistory(trackingNumber)
}

func (s *Service) GetShipment(ctx context.Context, id string) (*domain.Shipment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListOrderShipments(ctx context.Context, orderID string) ([]*domain.Shipment, error) {
	return s.repo.ListByOrder(ctx, orderID)
}

func (s *Service) ListUserShipments(ctx context.Context, userID string) ([]*domain.Shipment, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	return s.repo.Stats(ctx)
}

// propagateOrderStatus informs the order service of the transition caused by
// this shipment. The local write always stands; failures go to the retry
// queue.
func (s *Service) propagateOrderStatus(ctx context.Context, logger *zap.Logger, orderID, status string) {
	err := s.orders.UpdateOrderStatus(ctx, orderID, status)
	if err == nil {
		return
	}
	logger.Warn("order_status_propagation_failed",
		zap.String("order_id", orderID),
		zap.String("status", status),
		zap.Error(err),
	)

	if s.queue == nil {
		return
	}
	if enqueueErr := s.queue.Enqueue(ctx, "order.updateOrderStatus", func(ctx context.Context) error {
		return s.orders.UpdateOrderStatus(ctx, orderID, status)
	}); enqueueErr != nil {
		logger.Error("order_status_propagation_enqueue_failed",
			zap.String("order_id", orderID),
			zap.Error(enqueueErr),
		)
	}
}
