package dto

type PackageRequest struct {
	TrackingID  string `json:"tracking_id"`
	Size        int    `json:"size"`
	Destination string `json:"destination"`
}

type PackageResponse struct {
	TrackingID  string `json:"tracking_id"`
	Size        int    `json:"size"`
	Destination string `json:"destination"`
}

type QueueResponse struct {
	Queue []PackageResponse `json:"queue"`
	Next  *PackageResponse  `json:"next"`
}

type StorageAssignmentResponse struct {
	PackageID   string `json:"package_id"`
	BinID       int    `json:"bin_id"`
	BinCapacity int    `json:"bin_capacity"`
	BinLocation string `json:"bin_location"`
}

type StorageFailureResponse struct {
	Reason      string `json:"reason"`
	PackageSize int    `json:"package_size,omitempty"`
}
