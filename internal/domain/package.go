package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPackage = errors.New("invalid package")

// Represents a single parcel moving through the warehouse.
// A Package is identified by its tracking id and never changes after creation;
// it is owned by whichever structure currently holds it (conveyor, bin, truck).
type Package struct {
	TrackingID  string
	Size        int
	Destination string
}

// NewPackage validates and builds a Package.
func NewPackage(trackingID string, size int, destination string) (Package, error) {
	id := strings.TrimSpace(trackingID)
	if id == "" {
		return Package{}, fmt.Errorf("new package: %w: tracking id must be non-empty", ErrInvalidPackage)
	}
	if size <= 0 {
		return Package{}, fmt.Errorf("new package %q: %w: size must be positive, got %d", id, ErrInvalidPackage, size)
	}

	return Package{
		TrackingID:  id,
		Size:        size,
		Destination: strings.TrimSpace(destination),
	}, nil
}
