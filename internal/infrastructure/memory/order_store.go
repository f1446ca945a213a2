// Package memory provides the in-process entity stores backing each
// service. Every store owns exactly one entity type and guards it with a
// mutex; values are cloned on the way in and out so callers never share
// state with the store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	domain "github.com/ilmi2809/tubeseai/internal/domain/order"
)

type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: make(map[string]*domain.Order),
	}
}

// Insert persists the order with its items as one atomic unit: either the
// whole aggregate lands or nothing does.
func (s *OrderStore) Insert(ctx context.Context, o *domain.Order) error {
	_ = ctx
	if o == nil || o.ID == "" {
		return fmt.Errorf("order store: id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[o.ID]; exists {
		return fmt.Errorf("order store: duplicate id %s", o.ID)
	}
	s.orders[o.ID] = o.Clone()
	return nil
}

func (s *OrderStore) Get(ctx context.Context, id string) (*domain.Order, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o.Clone(), nil
}

func (s *OrderStore) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o.Clone())
		}
	}
	sortByCreatedDesc(out)
	return out, nil
}

func (s *OrderStore) List(ctx context.Context, limit, offset int) ([]*domain.Order, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		all = append(all, o.Clone())
	}
	sortByCreatedDesc(all)

	if offset >= len(all) {
		return []*domain.Order{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = nowUTC()
	return o.Clone(), nil
}

func (s *OrderStore) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Order, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o.PaymentStatus = status
	o.UpdatedAt = nowUTC()
	return o.Clone(), nil
}

func (s *OrderStore) Stats(ctx context.Context) (domain.Stats, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats domain.Stats
	for _, o := range s.orders {
		stats.TotalOrders++
		switch o.Status {
		case domain.StatusPending:
			stats.PendingOrders++
		case domain.StatusDelivered:
			stats.CompletedOrders++
		}
		if o.PaymentStatus == domain.PaymentStatusPaid {
			stats.TotalRevenue += o.TotalAmount
		}
	}
	return stats, nil
}

func sortByCreatedDesc(orders []*domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
