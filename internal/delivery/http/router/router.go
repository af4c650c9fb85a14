package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/parcel-service/internal/delivery/http/handler"
	"github.com/user/parcel-service/internal/delivery/http/middleware"
)

func New(h *handler.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", h.HandleHealthCheck)
	mux.HandleFunc("GET /api/parcel/{ain}", h.HandleGetParcel)
	mux.HandleFunc("GET /api/zoning/{ain}", h.HandleGetZoning)
	mux.HandleFunc("GET /api/combo/{ain}", h.HandleGetCombined)
	mux.HandleFunc("POST /api/combo/batch", h.HandleBatchCombined)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Apply middlewares
	var chainedHandler http.Handler = mux
	chainedHandler = middleware.Metrics(chainedHandler)
	chainedHandler = middleware.Logging(chainedHandler)

	return chainedHandler
}
