package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"warehouse-allocation-service/internal/api/dto"
	"warehouse-allocation-service/internal/domain"
	"warehouse-allocation-service/internal/services"
)

// BinHandler exposes inventory status and bin maintenance endpoints.
type BinHandler struct {
	Warehouse *services.Warehouse
}

func toBinResponse(b domain.StorageBin) dto.BinResponse {
	return dto.BinResponse{
		BinID:       b.BinID,
		Capacity:    b.Capacity,
		CurrentLoad: b.CurrentLoad,
		Available:   b.Available(),
		Location:    b.Location,
	}
}

func (h *BinHandler) Status(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	bins := h.Warehouse.Bins()
	res := dto.StatusResponse{Bins: make([]dto.BinResponse, 0, len(bins))}
	for _, b := range bins {
		res.Bins = append(res.Bins, toBinResponse(b))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Release frees space in a bin: POST /bins/{id}/release {"amount": n}.
func (h *BinHandler) Release(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	binID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || binID <= 0 {
		writeError(w, r, http.StatusBadRequest, "bin id must be a positive integer")
		return
	}

	var req dto.ReleaseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Amount <= 0 {
		writeError(w, r, http.StatusBadRequest, "amount must be positive")
		return
	}

	bin, err := h.Warehouse.ReleaseStorage(binID, req.Amount)
	switch {
	case errors.Is(err, services.ErrBinNotFound):
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("bin %d not found", binID))
		return
	case errors.Is(err, domain.ErrFreeExceedsLoad):
		writeError(w, r, http.StatusConflict, "Cannot free more space than occupied")
		return
	case err != nil:
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeSuccess(w, r, fmt.Sprintf("Released %d units from Bin %d", req.Amount, binID), toBinResponse(bin))
}
