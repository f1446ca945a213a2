package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/ilmi2809/tubeseai/internal/domain/payment"
)

type PaymentStore struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment
}

func NewPaymentStore() *PaymentStore {
	return &PaymentStore{
		payments: make(map[string]*domain.Payment),
	}
}

func (s *PaymentStore) Insert(ctx context.Context, p *domain.Payment) error {
	_ = ctx
	if p == nil || p.ID == "" {
		return fmt.Errorf("payment store: id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.payments[p.ID]; exists {
		return fmt.Errorf("payment store: duplicate id %s", p.ID)
	}
	s.payments[p.ID] = p.Clone()
	return nil
}

func (s *PaymentStore) Get(ctx context.Context, id string) (*domain.Payment, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p.Clone(), nil
}

func (s *PaymentStore) ListByOrder(ctx context.Context, orderID string) ([]*domain.Payment, error) {
	return s.list(ctx, func(p *domain.Payment) bool { return p.OrderID == orderID })
}

func (s *PaymentStore) ListByUser(ctx context.Context, userID string) ([]*domain.Payment, error) {
	return s.list(ctx, func(p *domain.Payment) bool { return p.UserID == userID })
}

func (s *PaymentStore) list(ctx context.Context, match func(*domain.Payment) bool) ([]*domain.Payment, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Payment
	for _, p := range s.payments {
		if match(p) {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (s *PaymentStore) Update(ctx context.Context, p *domain.Payment) error {
	_ = ctx
	if p == nil || p.ID == "" {
		return fmt.Errorf("payment store: id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.payments[p.ID]; !exists {
		return domain.ErrNotFound
	}
	s.payments[p.ID] = p.Clone()
	return nil
}

func (s *PaymentStore) Stats(ctx context.Context) (domain.Stats, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats domain.Stats
	for _, p := range s.payments {
		stats.TotalPayments++
		stats.TotalAmount += p.Amount
		switch p.Status {
		case domain.StatusCompleted:
			stats.SuccessfulPayments++
		case domain.StatusFailed:
			stats.FailedPayments++
		case domain.StatusPending:
			stats.PendingPayments++
		}
	}
	return stats, nil
}
