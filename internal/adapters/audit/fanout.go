package audit

import (
	"context"
	"log/slog"
	"warehouse-allocation-service/internal/domain"
	"warehouse-allocation-service/internal/ports"
)

// Fanout writes every event to a primary logger and best-effort mirrors.
// Only a primary failure is returned; mirror failures are logged.
type Fanout struct {
	Primary ports.ShipmentLogger
	Mirrors []ports.ShipmentLogger
}

func NewFanout(primary ports.ShipmentLogger, mirrors ...ports.ShipmentLogger) *Fanout {
	return &Fanout{Primary: primary, Mirrors: mirrors}
}

func (f *Fanout) LogShipment(ctx context.Context, event domain.ShipmentEvent) error {
	if err := f.Primary.LogShipment(ctx, event); err != nil {
		return err
	}

	for _, m := range f.Mirrors {
		if err := m.LogShipment(ctx, event); err != nil {
			slog.WarnContext(ctx, "shipment mirror failed", "tracking_id", event.TrackingID, "err", err)
		}
	}
	return nil
}

// RecentShipments reads from the primary when it supports reads.
func (f *Fanout) RecentShipments(ctx context.Context, limit int) ([]domain.ShipmentEvent, error) {
	if r, ok := f.Primary.(ports.ShipmentLogReader); ok {
		return r.RecentShipments(ctx, limit)
	}
	for _, m := range f.Mirrors {
		if r, ok := m.(ports.ShipmentLogReader); ok {
			return r.RecentShipments(ctx, limit)
		}
	}
	return []domain.ShipmentEvent{}, nil
}
