package services

import (
	"context"
	"errors"
	"fmt"
	"warehouse-allocation-service/internal/domain"
)

var ErrInvalidCapacity = errors.New("truck capacity must be positive")

// How many search nodes are visited between context checks.
const plannerCtxCheckInterval = 1024

// PlanTruckLoad selects packages for a truck using depth-first backtracking.
//
// At each index the package is included first when it still fits, and excluded
// only if the include branch yields nothing. The first complete path wins; this
// is a first-feasible search, not a maximum-fill knapsack. The result keeps the
// input order.
//
// An empty, non-nil slice means the search completed and no package fits.
// An error means no search was attempted (invalid capacity) or it was cancelled.
func PlanTruckLoad(ctx context.Context, capacity int, packages []domain.Package) ([]domain.Package, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("plan truck load: %w (got %d)", ErrInvalidCapacity, capacity)
	}

	var (
		visited int
		ctxErr  error
	)
	path := make([]domain.Package, 0, len(packages))

	var backtrack func(i int, load int) []domain.Package
	backtrack = func(i int, load int) []domain.Package {
		visited++
		if visited%plannerCtxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				ctxErr = err
			}
		}
		if ctxErr != nil {
			return nil
		}

		if i == len(packages) {
			// path is mutated in place during the search.
			out := make([]domain.Package, len(path))
			copy(out, path)
			return out
		}

		pkg := packages[i]
		if load+pkg.Size <= capacity {
			path = append(path, pkg)
			if res := backtrack(i+1, load+pkg.Size); len(res) > 0 {
				return res
			}
			path = path[:len(path)-1]
		}

		return backtrack(i+1, load)
	}

	res := backtrack(0, 0)
	if ctxErr != nil {
		return nil, fmt.Errorf("plan truck load: %w", ctxErr)
	}
	if res == nil {
		return []domain.Package{}, nil
	}
	return res, nil
}

// TotalSize sums the sizes of pkgs.
func TotalSize(pkgs []domain.Package) int {
	total := 0
	for _, p := range pkgs {
		total += p.Size
	}
	return total
}
