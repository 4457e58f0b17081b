package ports

import (
	"context"
	"warehouse-allocation-service/internal/domain"
)

// Contract for appending shipment audit records.
// Callers treat it as fire-and-forget; retries belong to the implementation.
type ShipmentLogger interface {
	LogShipment(ctx context.Context, event domain.ShipmentEvent) error
}

// Optional extension of ShipmentLogger that can read records back.
type ShipmentLogReader interface {
	// Return up to limit records, newest first.
	RecentShipments(ctx context.Context, limit int) ([]domain.ShipmentEvent, error)
}

// WarehouseStore is the full persistence collaborator of the warehouse.
type WarehouseStore interface {
	BinRepository
	ShipmentLogger
}
