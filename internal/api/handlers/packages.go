package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"warehouse-allocation-service/internal/api/dto"
	"warehouse-allocation-service/internal/domain"
	"warehouse-allocation-service/internal/services"
)

// PackageHandler exposes the conveyor and storage assignment endpoints.
type PackageHandler struct {
	Warehouse *services.Warehouse
}

func (h *PackageHandler) Queue(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	res := dto.QueueResponse{Queue: toPackageResponses(h.Warehouse.Queue())}
	if next, ok := h.Warehouse.NextArrival(); ok {
		res.Next = toPackageResponse(next)
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *PackageHandler) Add(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.PackageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pkg, err := toPackage(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.Warehouse.ProcessArrival(pkg)
	writeSuccess(w, r, "Package added to queue", nil)
}

// Process assigns the package at the head of the conveyor to a bin.
func (h *PackageHandler) Process(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	res, err := h.Warehouse.AssignStorage(r.Context())
	if err != nil {
		var noFit *services.NoSuitableBinError
		switch {
		case errors.Is(err, services.ErrQueueEmpty):
			writeError(w, r, http.StatusNotFound, "Queue is empty")
		case errors.As(err, &noFit):
			writeFailure(w, r, http.StatusConflict, "Storage assignment failed", dto.StorageFailureResponse{
				Reason:      "No suitable bin found",
				PackageSize: noFit.Size,
			})
		case errors.Is(err, domain.ErrCapacityExceeded):
			writeFailure(w, r, http.StatusConflict, "Storage assignment failed", dto.StorageFailureResponse{
				Reason: "Bin capacity exceeded",
			})
		default:
			slog.ErrorContext(r.Context(), "assign storage failed", "err", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeSuccess(w, r, fmt.Sprintf("Package %s stored in Bin %d", res.TrackingID, res.BinID), dto.StorageAssignmentResponse{
		PackageID:   res.TrackingID,
		BinID:       res.BinID,
		BinCapacity: res.BinCapacity,
		BinLocation: res.BinLocation,
	})
}
