package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"warehouse-allocation-service/internal/domain"
	"warehouse-allocation-service/internal/platform/obs"
)

// PostgresWarehouseStore is a Postgres-backed warehouse store.
// It expects a *sql.DB opened with the pgx stdlib driver.
type PostgresWarehouseStore struct {
	DB *sql.DB
}

func NewPostgresWarehouseStore(db *sql.DB) *PostgresWarehouseStore {
	return &PostgresWarehouseStore{DB: db}
}

// Return all configured bins.
func (s *PostgresWarehouseStore) LoadBins(ctx context.Context) (_ []*domain.StorageBin, err error) {
	defer obs.Time(ctx, "postgres.LoadBins")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres warehouse store: db is nil")
	}

	q := `
	SELECT bin_id, capacity, location_code
    FROM bins
    ORDER BY bin_id;
	`

	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load bins: query bins table: %w", err)
	}
	defer rows.Close()

	bins := make([]*domain.StorageBin, 0, 16)
	for rows.Next() {
		var id, capacity int
		var loc string
		if err := rows.Scan(&id, &capacity, &loc); err != nil {
			return nil, fmt.Errorf("load bins: scan rows: %w", err)
		}
		bins = append(bins, domain.NewStorageBin(id, capacity, loc))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load bins: row iteration: %w", err)
	}

	return bins, nil
}

// Append a shipment audit record.
func (s *PostgresWarehouseStore) LogShipment(ctx context.Context, event domain.ShipmentEvent) (err error) {
	defer obs.Time(ctx, "postgres.LogShipment")(&err)

	if s.DB == nil {
		return errors.New("postgres warehouse store: db is nil")
	}

	q := `
	INSERT INTO shipment_logs (tracking_id, bin_id, status, recorded_at)
    VALUES ($1, $2, $3, $4);
	`
	if _, err := s.DB.ExecContext(ctx, q, event.TrackingID, event.BinID, string(event.Status), event.RecordedAt.UTC()); err != nil {
		return fmt.Errorf("log shipment tracking_id=%q: %w", event.TrackingID, err)
	}

	return nil
}

// Return up to limit audit records, newest first.
func (s *PostgresWarehouseStore) RecentShipments(ctx context.Context, limit int) (_ []domain.ShipmentEvent, err error) {
	defer obs.Time(ctx, "postgres.RecentShipments")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres warehouse store: db is nil")
	}
	if limit <= 0 {
		return []domain.ShipmentEvent{}, nil
	}

	q := `
	SELECT tracking_id, bin_id, status, recorded_at
    FROM shipment_logs
    ORDER BY id DESC
    LIMIT $1;
	`

	rows, err := s.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("recent shipments: query shipment_logs table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ShipmentEvent, 0, limit)
	for rows.Next() {
		var ev domain.ShipmentEvent
		var status string
		if err := rows.Scan(&ev.TrackingID, &ev.BinID, &status, &ev.RecordedAt); err != nil {
			return nil, fmt.Errorf("recent shipments: scan rows: %w", err)
		}
		ev.Status = domain.ShipmentStatus(status)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent shipments: row iteration: %w", err)
	}

	return out, nil
}
