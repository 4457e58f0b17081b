package memory

import (
	"context"
	"errors"
	"sync"
	"warehouse-allocation-service/internal/domain"
)

var ErrInjected = errors.New("memory store: injected failure")

type BinSpec struct {
	BinID    int
	Capacity int
	Location string
}

// Store is an in-process warehouse store. It backs STORE=memory and tests.
type Store struct {
	mu     sync.Mutex
	bins   []BinSpec
	events []domain.ShipmentEvent

	// LoadErr, when set, is returned by LoadBins.
	LoadErr error
	// FailLogAfter makes LogShipment fail once this many events were stored.
	// Negative disables it.
	FailLogAfter int
}

func NewStore(bins []BinSpec) *Store {
	return &Store{bins: append([]BinSpec(nil), bins...), FailLogAfter: -1}
}

func (s *Store) LoadBins(ctx context.Context) ([]*domain.StorageBin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.LoadErr != nil {
		return nil, s.LoadErr
	}

	out := make([]*domain.StorageBin, 0, len(s.bins))
	for _, b := range s.bins {
		out = append(out, domain.NewStorageBin(b.BinID, b.Capacity, b.Location))
	}
	return out, nil
}

func (s *Store) LogShipment(ctx context.Context, event domain.ShipmentEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailLogAfter >= 0 && len(s.events) >= s.FailLogAfter {
		return ErrInjected
	}
	s.events = append(s.events, event)
	return nil
}

func (s *Store) RecentShipments(ctx context.Context, limit int) ([]domain.ShipmentEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		return []domain.ShipmentEvent{}, nil
	}
	out := make([]domain.ShipmentEvent, 0, min(limit, len(s.events)))
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.events[i])
	}
	return out, nil
}

// Events returns every stored event in append order.
func (s *Store) Events() []domain.ShipmentEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]domain.ShipmentEvent(nil), s.events...)
}

func (s *Store) SetBins(bins []BinSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bins = append([]BinSpec(nil), bins...)
}
