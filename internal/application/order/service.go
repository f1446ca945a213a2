package order

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	domain "github.com/ilmi2809/tubeseai/internal/domain/order"
	"github.com/ilmi2809/tubeseai/internal/pkg/logging"
)

var tracer = otel.Tracer("order-service")

const (
	maxListLimit     = 1000
	defaultListLimit = 50
)

// Service drives order creation and status changes. It holds no state of its
// own; the order store is the only thing it owns, everything else is a
// remote collaborator behind a port.
type Service struct {
	repo    domain.Repository
	users   UserDirectory
	catalog ProductCatalog
	ids     IDGenerator
	queue   Enqueuer
}

func NewService(repo domain.Repository, users UserDirectory, catalog ProductCatalog, ids IDGenerator, queue Enqueuer) *Service {
	return &Service{
		repo:    repo,
		users:   users,
		catalog: catalog,
		ids:     ids,
		queue:   queue,
	}
}

type ItemInput struct {
	ProductID string
	Quantity  int
}

type CreateOrderInput struct {
	UserID          string
	Items           []ItemInput
	ShippingAddress domain.Address
}

// CreateOrder validates the user and every line item against the remote
// stores, persists the order atomically, then requests a stock decrement per
// item. Decrement failures do not roll the order back: the local write is
// committed state and the product service is brought up to date by retry.
func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (_ *domain.Order, err error) {
	ctx, span := tracer.Start(ctx, "CreateOrder")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	logger := logging.FromContext(ctx).With(zap.String("component", "order_service"))
	logger.Info("create_order_start",
		zap.String("user_id", input.UserID),
		zap.Int("items", len(input.Items)),
	)

	if len(input.Items) == 0 {
		return nil, domain.ErrNoItems
	}

	user, err := s.users.GetUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("validate user: %w", err)
	}

	orderID := s.ids.NewID()
	items := make([]domain.Item, 0, len(input.Items))
	for _, in := range input.Items {
		product, err := s.catalog.GetProduct(ctx, in.ProductID)
		if err != nil {
			return nil, fmt.Errorf("validate product %s: %w", in.ProductID, err)
		}
		if product.Stock < in.Quantity {
			return nil, fmt.Errorf("product %s: %w", product.Name, ErrInsufficientStock)
		}
		item, err := domain.NewItem(s.ids.NewID(), orderID, in.ProductID, in.Quantity, product.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	entity, err := domain.New(orderID, user.ID, items, input.ShippingAddress)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, entity); err != nil {
		logger.Error("order_insert_failed", zap.String("order_id", orderID), zap.Error(err))
		return nil, fmt.Errorf("persist order: %w", err)
	}

	span.SetAttributes(
		attribute.String("order.id", entity.ID),
		attribute.Float64("order.total_amount", entity.TotalAmount),
	)

	for _, item := range entity.Items {
		s.propagateStockDecrement(ctx, logger, entity.ID, item.ProductID, item.Quantity)
	}

	logger.Info("create_order_success",
		zap.String("order_id", entity.ID),
		zap.Float64("total_amount", entity.TotalAmount),
	)
	return entity, nil
}

// propagateStockDecrement is fire-and-forget relative to the order write.
// A failed decrement leaves the order in place and the catalog temporarily
// overstated; the task is queued for retry instead of being dropped.
func (s *Service) propagateStockDecrement(ctx context.Context, logger *zap.Logger, orderID, productID string, quantity int) {
	deductErr := s.catalog.DeductStock(ctx, productID, quantity)
	if deductErr == nil {
		return
	}
	logger.Warn("stock_propagation_failed",
		zap.String("order_id", orderID),
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Error(deductErr),
	)

	if s.queue == nil {
		return
	}
	err := s.queue.Enqueue(ctx, "product.deductStock", func(ctx context.Context) error {
		return s.catalog.DeductStock(ctx, productID, quantity)
	})
	if err != nil {
		logger.Error("stock_propagation_enqueue_failed",
			zap.String("order_id", orderID),
			zap.String("product_id", productID),
			zap.Error(err),
		)
	}
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListUserOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListOrders clamps pagination the way legacy clients expect: limit within
// [1, 1000], offset non-negative.
func (s *Service) ListOrders(ctx context.Context, limit, offset int) ([]*domain.Order, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	return s.repo.Stats(ctx)
}

// UpdateOrderStatus overwrites the order status. Transitions outside the
// lifecycle table are allowed for compatibility with legacy callers but are
// logged so they can be audited.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status string) (*domain.Order, error) {
	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		logging.FromContext(ctx).Warn("order_status_transition_unchecked",
			zap.String("order_id", id),
			zap.String("from", string(current.Status)),
			zap.String("to", string(next)),
		)
	}

	return s.repo.UpdateStatus(ctx, id, next)
}

func (s *Service) UpdatePaymentStatus(ctx context.Context, id string, status string) (*domain.Order, error) {
	next, err := domain.ParsePaymentStatus(status)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdatePaymentStatus(ctx, id, next)
}

func (s *Service) CancelOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.UpdateOrderStatus(ctx, id, string(domain.StatusCancelled))
}
