package dto

import "time"

type TruckLoadRequest struct {
	Capacity int              `json:"capacity"`
	Packages []PackageRequest `json:"packages"`
}

type TruckStatusResponse struct {
	Stack []PackageResponse `json:"stack"`
	Top   *PackageResponse  `json:"top"`
}

type TruckLoadResponse struct {
	LoadedPackages []PackageResponse `json:"loaded_packages"`
	Count          int               `json:"count"`
	TotalSize      int               `json:"total_size"`
}

type RollbackResponse struct {
	Unloaded []PackageResponse `json:"unloaded"`
}

type CanFitResponse struct {
	Status  string   `json:"status"`
	Fits    bool     `json:"fits"`
	Message string   `json:"message"`
	Subset  []string `json:"subset,omitempty"`
}

type ShipmentLogResponse struct {
	TrackingID string    `json:"tracking_id"`
	BinID      int       `json:"bin_id"`
	Status     string    `json:"status"`
	RecordedAt time.Time `json:"recorded_at"`
}

type ListLogsResponse struct {
	Logs []ShipmentLogResponse `json:"logs"`
}
