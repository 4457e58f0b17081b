package services

import (
	"math/rand"
	"testing"
	"warehouse-allocation-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioBins() []*domain.StorageBin {
	return []*domain.StorageBin{
		domain.NewStorageBin(5, 100, "C1"),
		domain.NewStorageBin(3, 15, "B1"),
		domain.NewStorageBin(1, 5, "A1"),
		domain.NewStorageBin(4, 50, "B2"),
		domain.NewStorageBin(2, 10, "A2"),
	}
}

func TestFindBestFit(t *testing.T) {
	bins := scenarioBins()
	SortBins(bins)

	tests := []struct {
		name   string
		size   int
		wantID int
	}{
		{name: "size 12 goes to capacity 15", size: 12, wantID: 3},
		{name: "size 4 goes to capacity 5", size: 4, wantID: 1},
		{name: "exact capacity", size: 10, wantID: 2},
		{name: "size 55 goes to capacity 100", size: 55, wantID: 5},
		{name: "largest bin exactly", size: 100, wantID: 5},
		{name: "too large", size: 200, wantID: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FindBestFit(bins, tc.size)
			if tc.wantID == 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.wantID, got.BinID)
		})
	}
}

func TestFindBestFitEmptyInventory(t *testing.T) {
	assert.Nil(t, FindBestFit(nil, 1))
	assert.Nil(t, FindBestFit([]*domain.StorageBin{}, 1))
}

func TestFindBestFitIgnoresCurrentLoad(t *testing.T) {
	bins := scenarioBins()
	SortBins(bins)
	require.NoError(t, bins[2].Occupy(15)) // capacity 15 bin, now full

	got := FindBestFit(bins, 12)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.BinID)
}

func TestFindBestFitTieBreaksOnLowestBinID(t *testing.T) {
	bins := []*domain.StorageBin{
		domain.NewStorageBin(9, 20, "Z9"),
		domain.NewStorageBin(4, 20, "Z4"),
		domain.NewStorageBin(7, 20, "Z7"),
		domain.NewStorageBin(1, 10, "A1"),
		domain.NewStorageBin(2, 30, "A2"),
	}
	SortBins(bins)

	got := FindBestFit(bins, 11)
	require.NotNil(t, got)
	assert.Equal(t, 4, got.BinID)

	again := FindBestFit(bins, 11)
	assert.Same(t, got, again)
}

func TestFindBestFitIsMinimal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		n := rng.Intn(12)
		bins := make([]*domain.StorageBin, 0, n)
		for i := 0; i < n; i++ {
			bins = append(bins, domain.NewStorageBin(i+1, 1+rng.Intn(50), "L"))
		}
		SortBins(bins)
		size := 1 + rng.Intn(60)

		var want *domain.StorageBin
		for _, b := range bins {
			if b.Capacity < size {
				continue
			}
			if want == nil || b.Capacity < want.Capacity || (b.Capacity == want.Capacity && b.BinID < want.BinID) {
				want = b
			}
		}

		got := FindBestFit(bins, size)
		if want == nil {
			assert.Nil(t, got, "round %d size %d", round, size)
			continue
		}
		require.NotNil(t, got, "round %d size %d", round, size)
		assert.Equal(t, want.BinID, got.BinID, "round %d size %d", round, size)
	}
}
