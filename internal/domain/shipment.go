package domain

import "time"

type ShipmentStatus string

const (
	StatusStored ShipmentStatus = "STORED"
	StatusLoaded ShipmentStatus = "LOADED"
)

// NotApplicableBinID marks audit records that do not refer to a bin (truck loads).
const NotApplicableBinID = -1

// Audit record of a package reaching a bin or a truck.
type ShipmentEvent struct {
	TrackingID string
	BinID      int
	Status     ShipmentStatus
	RecordedAt time.Time
}
