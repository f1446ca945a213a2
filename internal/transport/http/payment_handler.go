package transporthttp

import (
	"encoding/json"
	"net/http"

	apppayment "github.com/ilmi2809/tubeseai/internal/application/payment"
	domainpayment "github.com/ilmi2809/tubeseai/internal/domain/payment"
	"github.com/ilmi2809/tubeseai/internal/pkg/metrics"
)

// PaymentHandler serves the payment service's operation surface.
type PaymentHandler struct {
	*Dispatcher
	svc *apppayment.Service
}

func NewPaymentHandler(svc *apppayment.Service, m *metrics.RPC) *PaymentHandler {
	h := &PaymentHandler{Dispatcher: NewDispatcher(m), svc: svc}
	h.register("processPayment", h.processPayment)
	h.register("refundPayment", h.refundPayment)
	h.register("cancelPayment", h.cancelPayment)
	h.register("getPayment", h.getPayment)
	h.register("getOrderPayments", h.getOrderPayments)
	h.register("getUserPayments", h.getUserPayments)
	h.register("getPaymentStats", h.getPaymentStats)
	return h
}

type processPaymentInput struct {
	OrderID     string  `json:"order_id" validate:"required"`
	UserID      string  `json:"user_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Currency    string  `json:"currency"`
	Method      string  `json:"method" validate:"required"`
	CardToken   string  `json:"card_token"`
	PayPalToken string  `json:"paypal_token"`
}

func (h *PaymentHandler) processPayment(r *http.Request, variables json.RawMessage) (any, error) {
	var in processPaymentInput
	if err := h.decodeVariables(variables, &in); err != nil {
		return nil, err
	}
	if in.Currency == "" {
		in.Currency = "USD"
	}

	// The method string passes through unparsed so an unsupported value
	// still produces a FAILED payment record rather than a validation error.
	result, err := h.svc.ProcessPayment(r.Context(), apppayment.ProcessPaymentInput{
		OrderID:     in.OrderID,
		UserID:      in.UserID,
		Amount:      in.Amount,
		Currency:    in.Currency,
		Method:      domainpayment.Method(in.Method),
		CardToken:   in.CardToken,
		PayPalToken: in.PayPalToken,
	})
	if err != nil {
		return nil, err
	}
	return newResultView(result), nil
}

type paymentIDInput struct {
	ID string `json:"id" validate:"required"`
}

type refundPaymentInput struct {
	ID     string `json:"id" validate:"required"`
	Reason string `json:"reason"`
}

func (h *PaymentHandler) refundPayment(r *http.Request, variables json.RawMessage) (any, error) {
	var in refundPaymentInput
	if err := h.decodeVariables(variables, &in); err != nil {
		return nil, err
	}
	result, err := h.svc.RefundPayment(r.Context(), in.ID, in.Reason)
	if err != nil {
		return nil, err
	}
	return newResultView(result), nil
}

func (h *PaymentHandler) cancelPayment(r *http.Request, variables json.RawMessage) (any, error) {
	var in paymentIDInput
	if err := h.decodeVariables(variables, &in); err != nil {
		return nil, err
	}
	result, err := h.svc.CancelPayment(r.Context(), in.ID)
	if err != nil {
		return nil, err
	}
	return newResultView(result), nil
}

func (h *PaymentHandler) getPayment(r *http.Request, variables json.RawMessage) (any, error) {
	var in paymentIDInput
	if err := h.decodeVariables(variables, &in); err != nil {
		return nil, err
	}
	payment, err := h.svc.GetPayment(r.Context(), in.ID)
	if err != nil {
		return nil, err
	}
	return newPaymentView(payment), nil
}

type paymentOrderIDInput struct {
	OrderID string `json:"order_id" validate:"required"`
}

func (h *PaymentHandler) getOrderPayments(r *http.Request, variables json.RawMessage) (any, error) {
	var in paymentOrderIDInput
	if err := h.decodeVariables(variables, &in); err != nil {
		return nil, err
	}
	payments, err := h.svc.ListOrderPayments(r.Context(), in.OrderID)
	if err != nil {
		return nil, err
	}
	return newPaymentViews(payments), nil
}

func (h *PaymentHandler) getUserPayments(r *http.Request, variables json.RawMessage) (any, error) {
	var in userIDInput
	if err := h.decodeVariables(variables, &in); err != nil {
		return nil, err
	}
	payments, err := h.svc.ListUserPayments(r.Context(), in.UserID)
	if err != nil {
		return nil, err
	}
	return newPaymentViews(payments), nil
}

type paymentStatsView struct {
	TotalPayments      int     `json:"total_payments"`
	TotalAmount        float64 `json:"total_amount"`
	SuccessfulPayments int     `json:"successful_payments"`
	FailedPayments     int     `json:"failed_payments"`
	PendingPayments    int     `json:"pending_payments"`
}

func (h *PaymentHandler) getPaymentStats(r *http.Request, variables json.RawMessage) (any, error) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		return nil, err
	}
	return paymentStatsView{
		TotalPayments:      stats.TotalPayments,
		TotalAmount:        stats.TotalAmount,
		SuccessfulPayments: stats.SuccessfulPayments,
		FailedPayments:     stats.FailedPayments,
		PendingPayments:    stats.PendingPayments,
	}, nil
}

func newResultView(result *apppayment.Result) paymentResultView {
	view := paymentResultView{Success: result.Success, Message: result.Message}
	if result.Payment != nil {
		payment := newPaymentView(result.Payment)
		view.Payment = &payment
	}
	return view
}
