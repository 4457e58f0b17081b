package domain

// Conveyor is the FIFO holding area for packages awaiting a bin.
// Tracking ids are not deduplicated on arrival.
type Conveyor struct {
	queue []Package
}

func NewConveyor() *Conveyor {
	return &Conveyor{queue: []Package{}}
}

func (c *Conveyor) Add(pkg Package) {
	c.queue = append(c.queue, pkg)
}

// Next removes and returns the package at the head of the belt.
func (c *Conveyor) Next() (Package, bool) {
	if c.IsEmpty() {
		return Package{}, false
	}
	pkg := c.queue[0]
	c.queue[0] = Package{}
	c.queue = c.queue[1:]
	return pkg, true
}

// Peek returns the head of the belt without removing it.
func (c *Conveyor) Peek() (Package, bool) {
	if c.IsEmpty() {
		return Package{}, false
	}
	return c.queue[0], true
}

func (c *Conveyor) IsEmpty() bool { return len(c.queue) == 0 }

func (c *Conveyor) Len() int { return len(c.queue) }

// Snapshot copies the queued packages in arrival order.
func (c *Conveyor) Snapshot() []Package {
	out := make([]Package, len(c.queue))
	copy(out, c.queue)
	return out
}
