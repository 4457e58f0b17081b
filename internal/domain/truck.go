package domain

// Truck is the loading ledger of a single outbound truck.
// Packages are kept in commit order; rollback always unloads from the tail.
type Truck struct {
	Packages []Package
}

func NewTruck() *Truck {
	return &Truck{Packages: []Package{}}
}

// Load a single package onto the truck.
// Capacity is not checked here; the load planner has already verified it.
func (t *Truck) Load(pkg Package) {
	t.Packages = append(t.Packages, pkg)
}

// Rollback unloads up to count packages, most recently loaded first.
// It returns the unloaded packages in unload order and how many pops found
// the truck already empty.
func (t *Truck) Rollback(count int) (removed []Package, missing int) {
	removed = make([]Package, 0, max(count, 0))
	for i := 0; i < count; i++ {
		n := len(t.Packages)
		if n == 0 {
			missing++
			continue
		}
		removed = append(removed, t.Packages[n-1])
		t.Packages = t.Packages[:n-1]
	}
	return removed, missing
}

// Top returns the most recently loaded package.
func (t *Truck) Top() (Package, bool) {
	if len(t.Packages) == 0 {
		return Package{}, false
	}
	return t.Packages[len(t.Packages)-1], true
}

func (t *Truck) Len() int { return len(t.Packages) }
