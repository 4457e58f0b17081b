package services

import (
	"context"
	"math/rand"
	"testing"
	"warehouse-allocation-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sized(sizes ...int) []domain.Package {
	out := make([]domain.Package, 0, len(sizes))
	for i, s := range sizes {
		out = append(out, domain.Package{TrackingID: string(rune('A' + i)), Size: s, Destination: "D"})
	}
	return out
}

func ids(pkgs []domain.Package) []string {
	out := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, p.TrackingID)
	}
	return out
}

func TestPlanTruckLoad(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		sizes    []int
		want     []string
	}{
		{name: "skips the package that overflows", capacity: 100, sizes: []int{30, 40, 20, 50}, want: []string{"A", "B", "C"}},
		{name: "everything fits", capacity: 100, sizes: []int{10, 20, 30}, want: []string{"A", "B", "C"}},
		{name: "exact fill", capacity: 60, sizes: []int{10, 20, 30}, want: []string{"A", "B", "C"}},
		{name: "prefers earlier packages", capacity: 50, sizes: []int{40, 30, 10}, want: []string{"A", "C"}},
		{name: "single oversize package", capacity: 100, sizes: []int{200}, want: []string{}},
		{name: "no candidates", capacity: 100, sizes: nil, want: []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := PlanTruckLoad(context.Background(), tc.capacity, sized(tc.sizes...))
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, ids(got))
			assert.LessOrEqual(t, TotalSize(got), tc.capacity)
		})
	}
}

func TestPlanTruckLoadRejectsNonPositiveCapacity(t *testing.T) {
	_, err := PlanTruckLoad(context.Background(), 0, sized(1))
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestPlanTruckLoadHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sizes := make([]int, 2*plannerCtxCheckInterval)
	for i := range sizes {
		sizes[i] = 1
	}
	_, err := PlanTruckLoad(ctx, 1, sized(sizes...))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlanTruckLoadDoesNotMutateInput(t *testing.T) {
	in := sized(30, 40, 20, 50)
	before := append([]domain.Package(nil), in...)

	_, err := PlanTruckLoad(context.Background(), 100, in)
	require.NoError(t, err)
	assert.Equal(t, before, in)
}

func TestPlanTruckLoadFeasibility(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 300; round++ {
		n := 1 + rng.Intn(10)
		sizes := make([]int, n)
		smallest := 0
		for i := range sizes {
			sizes[i] = 1 + rng.Intn(40)
			if smallest == 0 || sizes[i] < smallest {
				smallest = sizes[i]
			}
		}
		capacity := 1 + rng.Intn(120)
		pkgs := sized(sizes...)

		got, err := PlanTruckLoad(context.Background(), capacity, pkgs)
		require.NoError(t, err)
		assert.LessOrEqual(t, TotalSize(got), capacity, "round %d", round)

		if smallest <= capacity {
			assert.NotEmpty(t, got, "round %d: some package fits, plan must be non-empty", round)
		} else {
			assert.Empty(t, got, "round %d", round)
		}

		// Result is an order-preserving subsequence of the input.
		j := 0
		for _, p := range got {
			for j < len(pkgs) && pkgs[j] != p {
				j++
			}
			require.Less(t, j, len(pkgs), "round %d: result is not a subsequence", round)
			j++
		}
	}
}
