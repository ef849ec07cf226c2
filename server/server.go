// Package server exposes card generation over HTTP.
//
// Routes:
//
//	GET  /healthz   liveness probe
//	GET  /metrics   Prometheus exposition
//	GET  /template  empty roster workbook
//	POST /cards     roster upload, responds with student-cards.pdf
//	POST /preview   roster upload, responds with the HTML preview
//	POST /stats     roster upload, responds with JSON counts
//
// Upload routes take a multipart form with the file in the "roster" field
// and optional "q" (search) and "dept" (department) filters.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New builds an HTTP server with the defaults used by the CLI.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// NewRouter mounts h and the operational endpoints. gatherer backs
// /metrics; nil uses the default registry.
func NewRouter(h *Handler, gatherer prometheus.Gatherer, logger *slog.Logger) chi.Router {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if logger == nil {
		logger = h.logger
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	h.Register(r)
	return r
}
