package services

import (
	"slices"
	"warehouse-allocation-service/internal/domain"
)

// SortBins orders the inventory by capacity ascending, breaking ties by bin id.
// FindBestFit depends on this order; it must be re-established after every reload.
func SortBins(bins []*domain.StorageBin) {
	slices.SortStableFunc(bins, func(a, b *domain.StorageBin) int {
		if a.Capacity < b.Capacity {
			return -1
		}
		if a.Capacity > b.Capacity {
			return 1
		}
		if a.BinID < b.BinID {
			return -1
		}
		if a.BinID > b.BinID {
			return 1
		}
		return 0
	})
}

// FindBestFit returns the smallest-capacity bin that can hold size units.
//
// bins must be sorted by SortBins. The search is a leftmost binary search on
// capacity, so among equal capacities the lowest bin id wins. Current load is
// not considered here; the caller re-validates free space when occupying.
func FindBestFit(bins []*domain.StorageBin, size int) *domain.StorageBin {
	low, high := 0, len(bins)-1
	best := -1

	for low <= high {
		mid := low + (high-low)/2
		if bins[mid].Capacity >= size {
			// Candidate; keep looking left for a tighter fit.
			best = mid
			high = mid - 1
		} else {
			low = mid + 1
		}
	}

	if best == -1 {
		return nil
	}
	return bins[best]
}
