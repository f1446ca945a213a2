package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/ilmi2809/tubeseai/internal/domain/shipment"
)

type ShipmentStore struct {
	mu        sync.RWMutex
	shipments map[string]*domain.Shipment
	tracking  map[string]string
}

func NewShipmentStore() *ShipmentStore {
	return &ShipmentStore{
		shipments: make(map[string]*domain.Shipment),
		tracking:  make(map[string]string),
	}
}

func (s *ShipmentStore) Insert(ctx context.Context, sh *domain.Shipment) error {
	_ = ctx
	if sh == nil || sh.ID == "" {
		return fmt.Errorf("shipment store: id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.shipments[sh.ID]; exists {
		return fmt.Errorf("shipment store: duplicate id %s", sh.ID)
	}
	if _, exists := s.tracking[sh.TrackingNumber]; exists {
		return domain.ErrDuplicateTracking
	}
	s.shipments[sh.ID] = sh.Clone()
	s.tracking[sh.TrackingNumber] = sh.ID
	return nil
}

func (s *ShipmentStore) Get(ctx context.Context, id string) (*domain.Shipment, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	sh, ok := s.shipments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sh.Clone(), nil
}

func (s *ShipmentStore) GetByTracking(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.tracking[trackingNumber]
	if !ok {
		return nil, domain.ErrNotFound
	}
	sh, ok := s.shipments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sh.Clone(), nil
}

func (s *ShipmentStore) ListByOrder(ctx context.Context, orderID string) ([]*domain.Shipment, error) {
	return s.list(ctx, func(sh *domain.Shipment) bool { return sh.OrderID == orderID })
}

func (s *ShipmentStore) ListByUser(ctx context.Context, userID string) ([]*domain.Shipment, error) {
	return s.list(ctx, func(sh *domain.Shipment) bool { return sh.UserID == userID })
}

func (s *ShipmentStore) list(ctx context.Context, match func(*domain.Shipment) bool) ([]*domain.Shipment, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Shipment
	for _, sh := range s.shipments {
		if match(sh) {
			out = append(out, sh.Clone())
		}
	}
	return out, nil
}

func (s *ShipmentStore) Update(ctx context.Context, sh *domain.Shipment) error {
	_ = ctx
	if sh == nil || sh.ID == "" {
		return fmt.Errorf("shipment store: id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.shipments[sh.ID]; !exists {
		return domain.ErrNotFound
	}
	s.shipments[sh.ID] = sh.Clone()
	return nil
}

func (s *ShipmentStore) Stats(ctx context.Context) (domain.Stats, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats domain.Stats
	var deliveredDays float64
	var deliveredWithTimes int
	for _, sh := range s.shipments {
		stats.TotalShipments++
		switch sh.Status {
		case domain.StatusPending:
			stats.PendingShipments++
		case domain.StatusInTransit:
			stats.InTransitShipments++
		case domain.StatusDelivered:
			stats.DeliveredShipments++
			if !sh.ActualDelivery.IsZero() {
				deliveredDays += sh.ActualDelivery.Sub(sh.CreatedAt).Hours() / 24
				deliveredWithTimes++
			}
		}
	}
	if deliveredWithTimes > 0 {
		stats.AverageDeliveryDays = deliveredDays / float64(deliveredWithTimes)
	}
	return stats, nil
}
