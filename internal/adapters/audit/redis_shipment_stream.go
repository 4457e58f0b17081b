package audit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
	"warehouse-allocation-service/internal/domain"
	"warehouse-allocation-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

const DefaultStreamKey = "warehouse:shipments"

// RedisShipmentStream appends shipment events to a capped Redis stream so
// other processes can follow storage and loading activity.
type RedisShipmentStream struct {
	client *redis.Client
	key    string
	maxLen int64
}

func NewRedisShipmentStream(client *redis.Client, key string, maxLen int64) (*RedisShipmentStream, error) {
	if client == nil {
		return nil, errors.New("redis shipment stream: client is nil")
	}
	if key == "" {
		key = DefaultStreamKey
	}
	return &RedisShipmentStream{client: client, key: key, maxLen: maxLen}, nil
}

// NewRedisClient builds a client from a redis:// URL and checks connectivity.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis client: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis client: ping: %w", err)
	}
	return client, nil
}

func (r *RedisShipmentStream) LogShipment(ctx context.Context, event domain.ShipmentEvent) (err error) {
	defer obs.Time(ctx, "redis.LogShipment")(&err)

	args := &redis.XAddArgs{
		Stream: r.key,
		Values: map[string]any{
			"tracking_id": event.TrackingID,
			"bin_id":      strconv.Itoa(event.BinID),
			"status":      string(event.Status),
			"recorded_at": event.RecordedAt.UTC().Format(time.RFC3339Nano),
		},
	}
	if r.maxLen > 0 {
		// MAXLEN ~ N: redis trims whole macro nodes, so the stream may briefly exceed N.
		args.MaxLen = r.maxLen
		args.Approx = true
	}

	if err := r.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("redis log shipment tracking_id=%q: %w", event.TrackingID, err)
	}
	return nil
}

// Return up to limit events from the stream, newest first.
func (r *RedisShipmentStream) RecentShipments(ctx context.Context, limit int) (_ []domain.ShipmentEvent, err error) {
	defer obs.Time(ctx, "redis.RecentShipments")(&err)

	if limit <= 0 {
		return []domain.ShipmentEvent{}, nil
	}

	msgs, err := r.client.XRevRangeN(ctx, r.key, "+", "-", int64(limit)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis recent shipments: %w", err)
	}

	out := make([]domain.ShipmentEvent, 0, len(msgs))
	for _, m := range msgs {
		ev, err := decodeEvent(m.Values)
		if err != nil {
			return nil, fmt.Errorf("redis recent shipments: message %s: %w", m.ID, err)
		}
		out = append(out, ev)
	}
	return out, nil
}

func decodeEvent(values map[string]any) (domain.ShipmentEvent, error) {
	str := func(key string) (string, error) {
		v, ok := values[key].(string)
		if !ok {
			return "", fmt.Errorf("missing field %q", key)
		}
		return v, nil
	}

	id, err := str("tracking_id")
	if err != nil {
		return domain.ShipmentEvent{}, err
	}
	rawBin, err := str("bin_id")
	if err != nil {
		return domain.ShipmentEvent{}, err
	}
	binID, err := strconv.Atoi(rawBin)
	if err != nil {
		return domain.ShipmentEvent{}, fmt.Errorf("parse bin_id %q: %w", rawBin, err)
	}
	status, err := str("status")
	if err != nil {
		return domain.ShipmentEvent{}, err
	}
	rawTS, err := str("recorded_at")
	if err != nil {
		return domain.ShipmentEvent{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, rawTS)
	if err != nil {
		return domain.ShipmentEvent{}, fmt.Errorf("parse recorded_at %q: %w", rawTS, err)
	}

	return domain.ShipmentEvent{
		TrackingID: id,
		BinID:      binID,
		Status:     domain.ShipmentStatus(status),
		RecordedAt: ts,
	}, nil
}
