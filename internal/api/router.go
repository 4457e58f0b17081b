package api

import (
	"net/http"
	"warehouse-allocation-service/internal/api/handlers"
	"warehouse-allocation-service/internal/services"
)

// NewRouter wires HTTP handlers with the warehouse controller and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(warehouse *services.Warehouse) http.Handler {
	mux := http.NewServeMux()

	binHandler := &handlers.BinHandler{Warehouse: warehouse}
	pkgHandler := &handlers.PackageHandler{Warehouse: warehouse}
	truckHandler := &handlers.TruckHandler{Warehouse: warehouse}
	logHandler := &handlers.LogHandler{Warehouse: warehouse}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/status", binHandler.Status)
	mux.HandleFunc("/bins/{id}/release", binHandler.Release)

	mux.HandleFunc("/package/queue", pkgHandler.Queue)
	mux.HandleFunc("/package/add", pkgHandler.Add)
	mux.HandleFunc("/package/process", pkgHandler.Process)

	mux.HandleFunc("/truck/status", truckHandler.Status)
	mux.HandleFunc("/truck/load", truckHandler.Load)
	mux.HandleFunc("/truck/load-batch", truckHandler.LoadBatch)
	mux.HandleFunc("/truck/rollback", truckHandler.Rollback)
	mux.HandleFunc("/truck/can-fit", truckHandler.CanFit)

	mux.HandleFunc("/logs", logHandler.List)

	return requestIDMiddleware(loggingMiddleware(mux))
}
