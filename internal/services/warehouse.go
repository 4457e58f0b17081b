package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"warehouse-allocation-service/internal/domain"
	"warehouse-allocation-service/internal/ports"
)

var (
	ErrQueueEmpty      = errors.New("no packages on conveyor")
	ErrNoSuitableBin   = errors.New("no suitable bin found")
	ErrInfeasibleLoad  = errors.New("no valid combination found")
	ErrBinNotFound     = errors.New("bin not found")
	ErrLogsNotReadable = errors.New("shipment log is not readable")
)

// NoSuitableBinError reports a package that no bin can hold by capacity.
// The package has already been consumed from the conveyor.
type NoSuitableBinError struct {
	TrackingID string
	Size       int
}

func (e *NoSuitableBinError) Error() string {
	return fmt.Sprintf("%s for package %q (size=%d)", ErrNoSuitableBin, e.TrackingID, e.Size)
}

func (e *NoSuitableBinError) Is(target error) bool { return target == ErrNoSuitableBin }

// LoadCommitError reports a truck load that failed part way and was rolled back.
type LoadCommitError struct {
	RolledBack int
	Err        error
}

func (e *LoadCommitError) Error() string {
	return fmt.Sprintf("load truck: commit failed, rolled back %d package(s): %v", e.RolledBack, e.Err)
}

func (e *LoadCommitError) Unwrap() error { return e.Err }

// Outcome of a successful storage assignment.
type StorageAssignment struct {
	TrackingID  string
	PackageSize int
	BinID       int
	BinCapacity int
	BinLocation string
}

// Outcome of a successful truck load.
type LoadResult struct {
	Loaded    []domain.Package
	TotalSize int
}

type FitOutcome string

const (
	FitAll     FitOutcome = "all"
	FitPartial FitOutcome = "partial"
	FitNone    FitOutcome = "none"
)

// FitReport describes whether a set of packages fits a truck, without loading it.
type FitReport struct {
	Outcome FitOutcome
	Subset  []domain.Package
}

// Warehouse is the allocation controller. One instance is built at process
// start and shared by every request handler.
//
// The bin inventory, the conveyor and the truck each sit behind their own
// mutex. Best-fit lookup and occupy run under the same inventory lock so two
// assignments cannot race on one bin.
type Warehouse struct {
	repo   ports.BinRepository
	audit  ports.ShipmentLogger
	logger *slog.Logger
	now    func() time.Time

	invMu sync.Mutex
	bins  []*domain.StorageBin

	queueMu  sync.Mutex
	conveyor *domain.Conveyor

	truckMu sync.Mutex
	truck   *domain.Truck
}

func NewWarehouse(repo ports.BinRepository, audit ports.ShipmentLogger, logger *slog.Logger) *Warehouse {
	if logger == nil {
		logger = slog.Default()
	}
	return &Warehouse{
		repo:     repo,
		audit:    audit,
		logger:   logger,
		now:      time.Now,
		conveyor: domain.NewConveyor(),
		truck:    domain.NewTruck(),
	}
}

// LoadInventory replaces the in-memory inventory with the repository's bins.
func (w *Warehouse) LoadInventory(ctx context.Context) error {
	bins, err := w.repo.LoadBins(ctx)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	SortBins(bins)

	w.invMu.Lock()
	w.bins = bins
	w.invMu.Unlock()

	w.logger.Info("inventory loaded", "bins", len(bins))
	return nil
}

// ProcessArrival puts a package on the conveyor.
func (w *Warehouse) ProcessArrival(pkg domain.Package) {
	w.queueMu.Lock()
	w.conveyor.Add(pkg)
	w.queueMu.Unlock()

	w.logger.Info("package arrived", "tracking_id", pkg.TrackingID, "size", pkg.Size)
}

// AssignStorage moves the package at the head of the conveyor into the
// tightest bin by capacity.
//
// The package is consumed even when no bin accepts it. Failures are
// ErrQueueEmpty, *NoSuitableBinError, or a wrapped domain.ErrCapacityExceeded
// when the matched bin lacks free space.
func (w *Warehouse) AssignStorage(ctx context.Context) (*StorageAssignment, error) {
	w.queueMu.Lock()
	pkg, ok := w.conveyor.Next()
	w.queueMu.Unlock()
	if !ok {
		return nil, ErrQueueEmpty
	}

	w.invMu.Lock()
	bin := FindBestFit(w.bins, pkg.Size)
	if bin == nil {
		w.invMu.Unlock()
		w.logger.Warn("no suitable bin", "tracking_id", pkg.TrackingID, "size", pkg.Size)
		return nil, &NoSuitableBinError{TrackingID: pkg.TrackingID, Size: pkg.Size}
	}

	// Capacity matched, but the bin may already be partly full.
	if err := bin.Occupy(pkg.Size); err != nil {
		w.invMu.Unlock()
		w.logger.Warn("storage commit rejected", "tracking_id", pkg.TrackingID, "bin_id", bin.BinID, "err", err)
		return nil, fmt.Errorf("assign storage: package %q: %w", pkg.TrackingID, err)
	}
	res := &StorageAssignment{
		TrackingID:  pkg.TrackingID,
		PackageSize: pkg.Size,
		BinID:       bin.BinID,
		BinCapacity: bin.Capacity,
		BinLocation: bin.Location,
	}
	w.invMu.Unlock()

	w.logger.Info("package stored", "tracking_id", pkg.TrackingID, "bin_id", res.BinID, "bin_capacity", res.BinCapacity)
	w.record(ctx, pkg.TrackingID, res.BinID, domain.StatusStored)

	return res, nil
}

// ReleaseStorage frees amount units in the given bin.
func (w *Warehouse) ReleaseStorage(binID int, amount int) (domain.StorageBin, error) {
	w.invMu.Lock()
	defer w.invMu.Unlock()

	for _, b := range w.bins {
		if b.BinID != binID {
			continue
		}
		if err := b.Free(amount); err != nil {
			return domain.StorageBin{}, fmt.Errorf("release storage: %w", err)
		}
		return *b, nil
	}
	return domain.StorageBin{}, fmt.Errorf("release storage: bin %d: %w", binID, ErrBinNotFound)
}

// LoadPackage pushes a single package onto the truck and records it.
// Audit failures are logged and do not undo the load.
func (w *Warehouse) LoadPackage(ctx context.Context, pkg domain.Package) {
	w.truckMu.Lock()
	w.truck.Load(pkg)
	w.truckMu.Unlock()

	w.logger.Info("package loaded", "tracking_id", pkg.TrackingID)
	w.record(ctx, pkg.TrackingID, domain.NotApplicableBinID, domain.StatusLoaded)
}

// RollbackLoad unloads up to count packages from the truck, newest first.
func (w *Warehouse) RollbackLoad(count int) []domain.Package {
	w.truckMu.Lock()
	defer w.truckMu.Unlock()

	return w.rollbackLocked(count)
}

func (w *Warehouse) rollbackLocked(count int) []domain.Package {
	removed, missing := w.truck.Rollback(count)
	for _, p := range removed {
		w.logger.Info("rolled back", "tracking_id", p.TrackingID)
	}
	for i := 0; i < missing; i++ {
		w.logger.Warn("truck is empty, nothing to rollback")
	}
	return removed
}

// LoadTruck plans a load for capacity and commits it to the truck.
//
// Each package is pushed and then audited. If an audit append fails, exactly
// the packages pushed by this call are rolled back and a *LoadCommitError is
// returned. An empty plan is reported as ErrInfeasibleLoad without touching
// the truck.
//
// Rollback does not retract audit records. LOADED entries already written for
// the batch stay in the shipment log, so after a failed load the log can list
// packages that are no longer on the truck.
func (w *Warehouse) LoadTruck(ctx context.Context, capacity int, packages []domain.Package) (*LoadResult, error) {
	w.logger.Info("attempting truck load", "capacity", capacity, "candidates", len(packages))

	plan, err := PlanTruckLoad(ctx, capacity, packages)
	if err != nil {
		return nil, fmt.Errorf("load truck: %w", err)
	}
	if len(plan) == 0 {
		w.logger.Warn("no valid combination to load", "capacity", capacity)
		return nil, ErrInfeasibleLoad
	}

	w.truckMu.Lock()
	defer w.truckMu.Unlock()

	pushed := 0
	for _, pkg := range plan {
		w.truck.Load(pkg)
		pushed++

		if err := w.audit.LogShipment(ctx, w.event(pkg.TrackingID, domain.NotApplicableBinID, domain.StatusLoaded)); err != nil {
			w.logger.Error("truck load failed, rolling back", "tracking_id", pkg.TrackingID, "pushed", pushed, "err", err)
			w.rollbackLocked(pushed)
			return nil, &LoadCommitError{RolledBack: pushed, Err: err}
		}
	}

	w.logger.Info("truck loaded", "count", len(plan), "total_size", TotalSize(plan))
	return &LoadResult{Loaded: plan, TotalSize: TotalSize(plan)}, nil
}

// CheckFit runs the load planner without committing anything.
func (w *Warehouse) CheckFit(ctx context.Context, capacity int, packages []domain.Package) (*FitReport, error) {
	plan, err := PlanTruckLoad(ctx, capacity, packages)
	if err != nil {
		return nil, fmt.Errorf("check fit: %w", err)
	}

	switch {
	case len(plan) == 0:
		return &FitReport{Outcome: FitNone, Subset: plan}, nil
	case len(plan) == len(packages):
		return &FitReport{Outcome: FitAll, Subset: plan}, nil
	default:
		return &FitReport{Outcome: FitPartial, Subset: plan}, nil
	}
}

// Bins returns a copy of the inventory in index order.
func (w *Warehouse) Bins() []domain.StorageBin {
	w.invMu.Lock()
	defer w.invMu.Unlock()

	out := make([]domain.StorageBin, 0, len(w.bins))
	for _, b := range w.bins {
		out = append(out, *b)
	}
	return out
}

// Queue returns the conveyor contents in arrival order.
func (w *Warehouse) Queue() []domain.Package {
	w.queueMu.Lock()
	defer w.queueMu.Unlock()

	return w.conveyor.Snapshot()
}

// TruckContents returns the truck ledger in load order.
func (w *Warehouse) TruckContents() []domain.Package {
	w.truckMu.Lock()
	defer w.truckMu.Unlock()

	out := make([]domain.Package, len(w.truck.Packages))
	copy(out, w.truck.Packages)
	return out
}

// LastLoaded returns the package on top of the truck, the next one a rollback
// would unload.
func (w *Warehouse) LastLoaded() (domain.Package, bool) {
	w.truckMu.Lock()
	defer w.truckMu.Unlock()

	return w.truck.Top()
}

// NextArrival returns the package the next assignment will take.
func (w *Warehouse) NextArrival() (domain.Package, bool) {
	w.queueMu.Lock()
	defer w.queueMu.Unlock()

	return w.conveyor.Peek()
}

// RecentShipments reads back audit records when the logger supports it.
func (w *Warehouse) RecentShipments(ctx context.Context, limit int) ([]domain.ShipmentEvent, error) {
	reader, ok := w.audit.(ports.ShipmentLogReader)
	if !ok {
		return nil, ErrLogsNotReadable
	}

	events, err := reader.RecentShipments(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent shipments: %w", err)
	}
	return events, nil
}

func (w *Warehouse) event(trackingID string, binID int, status domain.ShipmentStatus) domain.ShipmentEvent {
	return domain.ShipmentEvent{
		TrackingID: trackingID,
		BinID:      binID,
		Status:     status,
		RecordedAt: w.now().UTC(),
	}
}

// record appends an audit event; failures are logged only.
func (w *Warehouse) record(ctx context.Context, trackingID string, binID int, status domain.ShipmentStatus) {
	if err := w.audit.LogShipment(ctx, w.event(trackingID, binID, status)); err != nil {
		w.logger.Error("shipment audit failed", "tracking_id", trackingID, "status", status, "err", err)
	}
}
