package dto

type BinResponse struct {
	BinID       int    `json:"bin_id"`
	Capacity    int    `json:"capacity"`
	CurrentLoad int    `json:"current_load"`
	Available   int    `json:"available"`
	Location    string `json:"location"`
}

type StatusResponse struct {
	Bins []BinResponse `json:"bins"`
}

type ReleaseRequest struct {
	Amount int `json:"amount"`
}
