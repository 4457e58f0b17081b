package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"warehouse-allocation-service/internal/domain"
	"warehouse-allocation-service/internal/platform/obs"
)

// SQLite-backed implementation of the warehouse store ports.
type SqliteWarehouseStore struct{ DB *sql.DB }

func NewSqliteWarehouseStore(db *sql.DB) *SqliteWarehouseStore {
	return &SqliteWarehouseStore{DB: db}
}

// Return all configured bins.
func (s *SqliteWarehouseStore) LoadBins(ctx context.Context) (_ []*domain.StorageBin, err error) {
	defer obs.Time(ctx, "sqlite.LoadBins")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite warehouse store: DB is nil")
	}

	query := `
	SELECT
		bin_id,
		capacity,
		location_code
	FROM bins
	ORDER BY bin_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load bins: query bins table: %w", err)
	}
	defer rows.Close()

	bins := make([]*domain.StorageBin, 0, 16)
	for rows.Next() {
		var id, capacity int
		var loc string
		if err := rows.Scan(&id, &capacity, &loc); err != nil {
			return nil, fmt.Errorf("load bins: scan row: %w", err)
		}
		bins = append(bins, domain.NewStorageBin(id, capacity, loc))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load bins: row iteration: %w", err)
	}

	return bins, nil
}

// Append a shipment audit record.
func (s *SqliteWarehouseStore) LogShipment(ctx context.Context, event domain.ShipmentEvent) (err error) {
	defer obs.Time(ctx, "sqlite.LogShipment")(&err)

	if s.DB == nil {
		return errors.New("sqlite warehouse store: DB is nil")
	}

	query := `
	INSERT INTO shipment_logs (
		tracking_id,
		bin_id,
		status,
		recorded_at
	)
	VALUES (?, ?, ?, ?);
	`
	recordedAt := event.RecordedAt.UTC().Format(time.RFC3339Nano)
	if _, err := s.DB.ExecContext(ctx, query, event.TrackingID, event.BinID, string(event.Status), recordedAt); err != nil {
		return fmt.Errorf("log shipment tracking_id=%q: %w", event.TrackingID, err)
	}

	return nil
}

// Return up to limit audit records, newest first.
func (s *SqliteWarehouseStore) RecentShipments(ctx context.Context, limit int) (_ []domain.ShipmentEvent, err error) {
	defer obs.Time(ctx, "sqlite.RecentShipments")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite warehouse store: DB is nil")
	}
	if limit <= 0 {
		return []domain.ShipmentEvent{}, nil
	}

	query := `
	SELECT
		tracking_id,
		bin_id,
		status,
		recorded_at
	FROM shipment_logs
	ORDER BY id DESC
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent shipments: query shipment_logs table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ShipmentEvent, 0, limit)
	for rows.Next() {
		var ev domain.ShipmentEvent
		var status, recordedAt string
		if err := rows.Scan(&ev.TrackingID, &ev.BinID, &status, &recordedAt); err != nil {
			return nil, fmt.Errorf("recent shipments: scan row: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("recent shipments: parse recorded_at %q: %w", recordedAt, err)
		}
		ev.Status = domain.ShipmentStatus(status)
		ev.RecordedAt = ts
		out = append(out, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent shipments: row iteration: %w", err)
	}

	return out, nil
}
