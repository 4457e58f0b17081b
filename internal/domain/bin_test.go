package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageBinOccupy(t *testing.T) {
	bin := NewStorageBin(1, 10, "A1")

	require.NoError(t, bin.Occupy(6))
	assert.Equal(t, 6, bin.CurrentLoad)
	assert.Equal(t, 4, bin.Available())

	err := bin.Occupy(5)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 6, bin.CurrentLoad, "failed occupy must not mutate load")

	require.NoError(t, bin.Occupy(4))
	assert.Equal(t, bin.Capacity, bin.CurrentLoad)
}

func TestStorageBinFree(t *testing.T) {
	bin := NewStorageBin(2, 10, "A2")
	require.NoError(t, bin.Occupy(7))

	require.NoError(t, bin.Free(3))
	assert.Equal(t, 4, bin.CurrentLoad)

	err := bin.Free(5)
	assert.ErrorIs(t, err, ErrFreeExceedsLoad)
	assert.Equal(t, 4, bin.CurrentLoad)
}

func TestStorageBinRejectsNonPositiveAmounts(t *testing.T) {
	var unit StorageUnit = NewStorageBin(3, 10, "B1")

	assert.Error(t, unit.Occupy(0))
	assert.Error(t, unit.Occupy(-1))
	assert.Error(t, unit.Free(0))
}

func TestNewPackage(t *testing.T) {
	p, err := NewPackage("  PKG001 ", 12, " New York ")
	require.NoError(t, err)
	assert.Equal(t, Package{TrackingID: "PKG001", Size: 12, Destination: "New York"}, p)

	_, err = NewPackage(" ", 12, "NYC")
	assert.ErrorIs(t, err, ErrInvalidPackage)

	_, err = NewPackage("PKG002", 0, "NYC")
	assert.ErrorIs(t, err, ErrInvalidPackage)
}

func TestConveyorFIFO(t *testing.T) {
	c := NewConveyor()
	assert.True(t, c.IsEmpty())

	c.Add(pkg("P1", 1))
	c.Add(pkg("P2", 2))
	c.Add(pkg("P1", 3))

	head, ok := c.Peek()
	require.True(t, ok)
	assert.Equal(t, "P1", head.TrackingID)
	assert.Equal(t, 3, c.Len())

	var got []int
	for {
		p, ok := c.Next()
		if !ok {
			break
		}
		got = append(got, p.Size)
	}
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.True(t, c.IsEmpty())
}
