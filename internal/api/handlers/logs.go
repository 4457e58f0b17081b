package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"warehouse-allocation-service/internal/api/dto"
	"warehouse-allocation-service/internal/services"
)

const recentLogLimit = 50

type LogHandler struct {
	Warehouse *services.Warehouse
}

// List returns the most recent shipment audit records, newest first.
func (h *LogHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	events, err := h.Warehouse.RecentShipments(r.Context(), recentLogLimit)
	if errors.Is(err, services.ErrLogsNotReadable) {
		writeError(w, r, http.StatusNotImplemented, "shipment logs are not readable with this store")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "list shipment logs failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListLogsResponse{Logs: make([]dto.ShipmentLogResponse, 0, len(events))}
	for _, ev := range events {
		res.Logs = append(res.Logs, dto.ShipmentLogResponse{
			TrackingID: ev.TrackingID,
			BinID:      ev.BinID,
			Status:     string(ev.Status),
			RecordedAt: ev.RecordedAt,
		})
	}
	writeJSON(w, r, http.StatusOK, res)
}
