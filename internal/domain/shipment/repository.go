package shipment

import "context"

type Stats struct {
	TotalShipments      int
	PendingShipments    int
	InTransitShipments  int
	DeliveredShipments  int
	AverageDeliveryDays float64
}

type Repository interface {
	Insert(ctx context.Context, s *Shipment) error
	Get(ctx context.Context, id string) (*Shipment, error)
	GetByTracking(ctx context.Context, trackingNumber string) (*Shipment, error)
	ListByOrder(ctx context.Context, orderID string) ([]*Shipment, error)
	ListByUser(ctx context.Context, userID string) ([]*Shipment, error)
	Update(ctx context.Context, s *Shipment) error
	Stats(ctx context.Context) (Stats, error)
}
