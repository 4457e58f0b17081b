package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"warehouse-allocation-service/internal/api/dto"
	"warehouse-allocation-service/internal/domain"
	"warehouse-allocation-service/internal/services"
)

const maxTruckCandidates = 64

type TruckHandler struct {
	Warehouse *services.Warehouse
}

func (h *TruckHandler) Status(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	res := dto.TruckStatusResponse{Stack: toPackageResponses(h.Warehouse.TruckContents())}
	if top, ok := h.Warehouse.LastLoaded(); ok {
		res.Top = toPackageResponse(top)
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Load pushes a single package onto the truck.
func (h *TruckHandler) Load(w http.ResponseWriter, r *http.Request) {
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

	h.Warehouse.LoadPackage(r.Context(), pkg)
	writeSuccess(w, r, fmt.Sprintf("Loaded %s", pkg.TrackingID), nil)
}

// Rollback unloads the last N packages: POST /truck/rollback?count=N.
func (h *TruckHandler) Rollback(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	count := 1
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "count must be a positive integer")
			return
		}
		count = n
	}

	removed := h.Warehouse.RollbackLoad(count)
	writeSuccess(w, r, fmt.Sprintf("Rolled back %d items", len(removed)), dto.RollbackResponse{
		Unloaded: toPackageResponses(removed),
	})
}

// LoadBatch plans and commits a truck load from candidate packages.
func (h *TruckHandler) LoadBatch(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	capacity, pkgs, ok := h.decodeLoadRequest(w, r)
	if !ok {
		return
	}

	res, err := h.Warehouse.LoadTruck(r.Context(), capacity, pkgs)
	if err != nil {
		var commitErr *services.LoadCommitError
		switch {
		case errors.Is(err, services.ErrInfeasibleLoad):
			writeError(w, r, http.StatusConflict, "No valid combination found")
		case errors.As(err, &commitErr):
			slog.ErrorContext(r.Context(), "truck load rolled back", "rolled_back", commitErr.RolledBack, "err", commitErr.Err)
			writeError(w, r, http.StatusInternalServerError, fmt.Sprintf("Loading failed, rolled back %d package(s)", commitErr.RolledBack))
		default:
			slog.ErrorContext(r.Context(), "load truck failed", "err", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeSuccess(w, r, "Truck loaded", dto.TruckLoadResponse{
		LoadedPackages: toPackageResponses(res.Loaded),
		Count:          len(res.Loaded),
		TotalSize:      res.TotalSize,
	})
}

// CanFit reports whether the candidates fit without loading anything.
func (h *TruckHandler) CanFit(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	capacity, pkgs, ok := h.decodeLoadRequest(w, r)
	if !ok {
		return
	}

	rep, err := h.Warehouse.CheckFit(r.Context(), capacity, pkgs)
	if err != nil {
		slog.ErrorContext(r.Context(), "check fit failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	var res dto.CanFitResponse
	switch rep.Outcome {
	case services.FitAll:
		res = dto.CanFitResponse{Status: "success", Fits: true, Message: "All packages fit!"}
	case services.FitPartial:
		subset := make([]string, 0, len(rep.Subset))
		for _, p := range rep.Subset {
			subset = append(subset, p.TrackingID)
		}
		res = dto.CanFitResponse{Status: "warning", Fits: true, Message: "Partial fit possible", Subset: subset}
	default:
		res = dto.CanFitResponse{Status: "error", Fits: false, Message: "No combination fits"}
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *TruckHandler) decodeLoadRequest(w http.ResponseWriter, r *http.Request) (int, []domain.Package, bool) {
	var req dto.TruckLoadRequest
	if !decodeJSON(w, r, &req) {
		return 0, nil, false
	}

	if req.Capacity < 1 {
		writeError(w, r, http.StatusBadRequest, "capacity must be positive")
		return 0, nil, false
	}
	if len(req.Packages) > maxTruckCandidates {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("at most %d packages per request", maxTruckCandidates))
		return 0, nil, false
	}

	pkgs, err := toPackages(req.Packages)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return 0, nil, false
	}
	return req.Capacity, pkgs, true
}
