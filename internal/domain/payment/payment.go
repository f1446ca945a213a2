package payment

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound          = errors.New("payment: not found")
	ErrInvalidAmount     = errors.New("payment: amount must be greater than zero")
	ErrInvalidTransition = errors.New("payment: invalid status transition")
)

type Method string

const (
	MethodCreditCard     Method = "CREDIT_CARD"
	MethodDebitCard      Method = "DEBIT_CARD"
	MethodPayPal         Method = "PAYPAL"
	MethodBankTransfer   Method = "BANK_TRANSFER"
	MethodCashOnDelivery Method = "CASH_ON_DELIVERY"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
	StatusRefunded   Status = "REFUNDED"
	StatusCancelled  Status = "CANCELLED"
)

var statusTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusFailed, StatusCancelled},
	StatusCompleted:  {StatusRefunded},
	StatusFailed:     {},
	StatusRefunded:   {},
	StatusCancelled:  {},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Payment struct {
	ID              string
	OrderID         string
	UserID          string
	Amount          float64
	Currency        string
	Method          Method
	Status          Status
	TransactionID   string
	GatewayResponse string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func New(id, orderID, userID string, amount float64, currency string, method Method) (*Payment, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	now := time.Now().UTC()
	return &Payment{
		ID:        id,
		OrderID:   orderID,
		UserID:    userID,
		Amount:    amount,
		Currency:  currency,
		Method:    method,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (p *Payment) BeginProcessing() error {
	return p.transition(StatusProcessing, "", "")
}

func (p *Payment) Complete(transactionID, note string) error {
	return p.transition(StatusCompleted, transactionID, note)
}

func (p *Payment) Fail(note string) error {
	return p.transition(StatusFailed, "", note)
}

func (p *Payment) Refund(note string) error {
	return p.transition(StatusRefunded, p.TransactionID, note)
}

func (p *Payment) Cancel(note string) error {
	return p.transition(StatusCancelled, p.TransactionID, note)
}

func (p *Payment) transition(next Status, transactionID, note string) error {
	if !p.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, next)
	}
	p.Status = next
	p.TransactionID = transactionID
	if note != "" {
		p.GatewayResponse = note
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (p *Payment) Clone() *Payment {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
