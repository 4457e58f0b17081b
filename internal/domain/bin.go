package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCapacityExceeded = errors.New("bin capacity exceeded")
	ErrFreeExceedsLoad  = errors.New("cannot free more space than occupied")
)

// StorageUnit is anything that can hold a quantity of space.
type StorageUnit interface {
	Occupy(amount int) error
	Free(amount int) error
}

// A fixed-capacity storage location on the warehouse floor.
// Capacity never changes after creation; CurrentLoad is mutated only through
// Occupy and Free and always stays within [0, Capacity].
type StorageBin struct {
	BinID       int
	Capacity    int
	CurrentLoad int
	Location    string
}

var _ StorageUnit = (*StorageBin)(nil)

func NewStorageBin(id int, capacity int, location string) *StorageBin {
	return &StorageBin{
		BinID:    id,
		Capacity: capacity,
		Location: location,
	}
}

// Occupy reserves amount units of space in the bin.
func (b *StorageBin) Occupy(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("occupy bin %d: amount must be positive, got %d", b.BinID, amount)
	}
	if b.CurrentLoad+amount > b.Capacity {
		return fmt.Errorf(
			"occupy bin %d: %w (load=%d amount=%d capacity=%d)",
			b.BinID, ErrCapacityExceeded, b.CurrentLoad, amount, b.Capacity,
		)
	}
	b.CurrentLoad += amount
	return nil
}

// Free releases amount units of previously occupied space.
func (b *StorageBin) Free(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("free bin %d: amount must be positive, got %d", b.BinID, amount)
	}
	if b.CurrentLoad-amount < 0 {
		return fmt.Errorf("free bin %d: %w (load=%d amount=%d)", b.BinID, ErrFreeExceedsLoad, b.CurrentLoad, amount)
	}
	b.CurrentLoad -= amount
	return nil
}

// Remaining space in the bin.
func (b *StorageBin) Available() int { return b.Capacity - b.CurrentLoad }
