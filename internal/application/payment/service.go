package payment

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

	domain "github.com/ilmi2809/tubeseai/internal/domain/payment"
	"github.com/ilmi2809/tubeseai/internal/pkg/logging"
)

var tracer = otel.Tracer("payment-service")

// Result is the envelope every two-phase payment mutation answers with.
// Business-level failures (mismatch, declines, bad state) come back as
// Success=false; only store and transport failures surface as errors.
type Result struct {
	Success bool
	Payment *domain.Payment
	Message string
}

// Service drives payment processing against the local payment store, the
// remote order store and the external gateway capabilities.
type Service struct {
	repo   domain.Repository
	orders OrderClient
	card   domain.Gateway
	paypal domain.Gateway
	ids    IDGenerator
	queue  Enqueuer
}

func NewService(repo domain.Repository, orders OrderClient, card, paypal domain.Gateway, ids IDGenerator, queue Enqueuer) *Service {
	return &Service{
		repo:   repo,
		orders: orders,
		card:   card,
		paypal: paypal,
		ids:    ids,
		queue:  queue,
	}
}

type ProcessPaymentInput struct {
	OrderID     string
	UserID      string
	Amount      float64
	Currency    string
	Method      domain.Method
	CardToken   string
	PayPalToken string
}

// ProcessPayment verifies the amount against the order total, records the
// payment as PROCESSING, charges the gateway selected by the method, and on
// success propagates paymentStatus=PAID back to the order service. No
// payment row exists before the amount check passes.
func (s *Service) ProcessPayment(ctx context.Context, input ProcessPaymentInput) (_ *Result, err error) {
	ctx, span := tracer.Start(ctx, "ProcessPayment",
		trace.WithAttributes(
			attribute.String("payment.order_id", input.OrderID),
			attribute.String("payment.method", string(input.Method)),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	logger := logging.FromContext(ctx).With(zap.String("component", "payment_service"))
	logger.Info("process_payment_start",
		zap.String("order_id", input.OrderID),
		zap.Float64("amount", input.Amount),
		zap.String("method", string(input.Method)),
	)

	order, err := s.orders.GetOrder(ctx, input.OrderID)
	if errors.Is(err, ErrOrderNotFound) {
		return &Result{Success: false, Message: "Order not found"}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch order: %w", err)
	}

	if order.TotalAmount != input.Amount {
		logger.Warn("payment_amount_mismatch",
			zap.String("order_id", order.ID),
			zap.Float64("requested", input.Amount),
			zap.Float64("order_total", order.TotalAmount),
		)
		return &Result{Success: false, Message: "Payment amount does not match order total"}, nil
	}

	entity, err := domain.New(s.ids.NewID(), input.OrderID, input.UserID, input.Amount, input.Currency, input.Method)
	if err != nil {
		return nil, err
	}
	if err := entity.BeginProcessing(); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, entity); err != nil {
		logger.Error("payment_insert_failed", zap.String("order_id", input.OrderID), zap.Error(err))
		return nil, fmt.Errorf("persist payment: %w", err)
	}

	charge, chargeErr := s.charge(ctx, input)
	if chargeErr != nil {
		if failErr := entity.Fail(chargeErr.Error()); failErr != nil {
			return nil, failErr
		}
		if updateErr := s.repo.Update(ctx, entity); updateErr != nil {
			return nil, fmt.Errorf("record failed payment: %w", updateErr)
		}
		logger.Warn("payment_gateway_error", zap.String("payment_id", entity.ID), zap.Error(chargeErr))
		return &Result{
			Success: false,
			Payment: entity,
			Message: fmt.Sprintf("Payment processing failed: %s", chargeErr.Error()),
		}, nil
	}

	if !charge.Success {
		if failErr := entity.Fail(charge.Message); failErr != nil {
			return nil, failErr
		}
		if updateErr := s.repo.Update(ctx, entity); updateErr != nil {
			return nil, fmt.Errorf("record failed payment: %w", updateErr)
		}
		logger.Info("payment_declined",
			zap.String("payment_id", entity.ID),
			zap.String("reason", charge.Message),
		)
		return &Result{Success: false, Payment: entity, Message: charge.Message}, nil
	}

	if err := entity.Complete(charge.TransactionID, charge.Message); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("record completed payment: %w", err)
	}

	span.SetAttributes(attribute.String("payment.id", entity.ID))
	s.propagatePaymentStatus(ctx, logger, entity.OrderID, "PAID")

	logger.Info("payment_success",
		zap.String("payment_id", entity.ID),
		zap.String("transaction_id", entity.TransactionID),
	)
	return &Result{Success: true, Payment: entity, Message: charge.Message}, nil
}

// charge routes to the gateway capability selected by the method. Cash on
// delivery needs no gateway and always succeeds with a local reference.
func (s *Service) charge(ctx context.Context, input ProcessPaymentInput) (domain.ChargeResult, error) {
	req := domain.ChargeRequest{
		OrderID:  input.OrderID,
		Amount:   input.Amount,
		Currency: input.Currency,
	}

	switch input.Method {
	case domain.MethodCreditCard, domain.MethodDebitCard:
		req.Token = input.CardToken
		return s.card.Charge(ctx, req)
	case domain.MethodPayPal:
		req.Token = input.PayPalToken
		return s.paypal.Charge(ctx, req)
	case domain.MethodCashOnDelivery:
		return domain.ChargeResult{
			Success:       true,
			TransactionID: fmt.Sprintf("COD_%d", time.Now().UnixMilli()),
			Message:       "Cash on delivery payment accepted",
		}, nil
	default:
		return domain.ChargeResult{}, ErrUnsupportedMethod
	}
}

// propagatePaymentStatus informs the order service of the new payment
// status. The local payment row keeps its state whether or not this lands;
// failures are queued for retry.
func (s *Service) propagatePaymentStatus(ctx context.Context, logger *zap.Logger, orderID, status string) {
	err := s.orders.UpdatePaymentStatus(ctx, orderID, status)
	if err == nil {
		return
	}
	logger.Warn("payment_status_propagation_failed",
		zap.String("order_id", orderID),
		zap.String("status", status),
		zap.Error(err),
	)

	if s.queue == nil {
		return
	}
	if enqueueErr := s.queue.Enqueue(ctx, "order.updatePaymentStatus", func(ctx context.Context) error {
		return s.orders.UpdatePaymentStatus(ctx, orderID, status)
	}); enqueueErr != nil {
		logger.Error("payment_status_propagation_enqueue_failed",
			zap.String("order_id", orderID),
			zap.Error(enqueueErr),
		)
	}
}

// RefundPayment moves a COMPLETED payment to REFUNDED and propagates the
// refund to the order service.
func (s *Service) RefundPayment(ctx context.Context, id, reason string) (*Result, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "payment_service"))

	entity, err := s.repo.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return &Result{Success: false, Message: "Payment not found"}, nil
	}
	if err != nil {
		return nil, err
	}

	if entity.Status != domain.StatusCompleted {
		return &Result{Success: false, Message: "Only completed payments can be refunded"}, nil
	}

	if reason == "" {
		reason = "Refund processed"
	}
	if err := entity.Refund(reason); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("record refund: %w", err)
	}

	s.propagatePaymentStatus(ctx, logger, entity.OrderID, "REFUNDED")

	logger.Info("payment_refunded", zap.String("payment_id", entity.ID))
	return &Result{Success: true, Payment: entity, Message: "Payment refunded successfully"}, nil
}

// CancelPayment cancels a payment that has not reached a terminal state.
func (s *Service) CancelPayment(ctx context.Context, id string) (*Result, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "payment_service"))

	entity, err := s.repo.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return &Result{Success: false, Message: "Payment not found"}, nil
	}
	if err != nil {
		return nil, err
	}

	if entity.Status != domain.StatusPending && entity.Status != domain.StatusProcessing {
		return &Result{Success: false, Message: "Only pending or processing payments can be cancelled"}, nil
	}

	if err := entity.Cancel("Payment cancelled by user"); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("record cancellation: %w", err)
	}

	logger.Info("payment_cancelled", zap.String("payment_id", entity.ID))
	return &Result{Success: true, Payment: entity, Message: "Payment cancelled successfully"}, nil
}

func (s *Service) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListOrderPayments(ctx context.Context, orderID string) ([]*domain.Payment, error) {
	return s.repo.ListByOrder(ctx, orderID)
}

func (s *Service) ListUserPayments(ctx context.Context, userID string) ([]*domain.Payment, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	return s.repo.Stats(ctx)
}
