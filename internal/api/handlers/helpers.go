package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"warehouse-allocation-service/internal/api/dto"
	"warehouse-allocation-service/internal/domain"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "encode failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, dto.Envelope{Status: "error", Message: msg})
}

func writeFailure(w http.ResponseWriter, r *http.Request, status int, msg string, details any) {
	writeJSON(w, r, status, dto.Envelope{Status: "error", Message: msg, Details: details})
}

func writeSuccess(w http.ResponseWriter, r *http.Request, msg string, details any) {
	writeJSON(w, r, http.StatusOK, dto.Envelope{Status: "success", Message: msg, Details: details})
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// decodeJSON reads exactly one JSON object into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

func toPackage(req dto.PackageRequest) (domain.Package, error) {
	return domain.NewPackage(req.TrackingID, req.Size, req.Destination)
}

func toPackages(reqs []dto.PackageRequest) ([]domain.Package, error) {
	out := make([]domain.Package, 0, len(reqs))
	for _, p := range reqs {
		pkg, err := toPackage(p)
		if err != nil {
			return nil, err
		}
		out = append(out, pkg)
	}
	return out, nil
}

func toPackageResponse(p domain.Package) *dto.PackageResponse {
	return &dto.PackageResponse{
		TrackingID:  p.TrackingID,
		Size:        p.Size,
		Destination: p.Destination,
	}
}

func toPackageResponses(pkgs []domain.Package) []dto.PackageResponse {
	out := make([]dto.PackageResponse, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, *toPackageResponse(p))
	}
	return out
}
