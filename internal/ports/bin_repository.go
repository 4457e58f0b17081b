package ports

import (
	"context"
	"warehouse-allocation-service/internal/domain"
)

// Port: a boundary for retrieving the bin configuration from a data source.
type BinRepository interface {
	// Retrieve every configured bin with zero load. Order is not guaranteed.
	LoadBins(ctx context.Context) ([]*domain.StorageBin, error)
}
