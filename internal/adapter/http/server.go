package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/winds-aloft-etl/internal/domain"
	"github.com/couchcryptid/winds-aloft-etl/internal/forecast"
	"github.com/couchcryptid/winds-aloft-etl/internal/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ForecastProvider answers station queries against a freshly fetched table.
type ForecastProvider interface {
	StationCodes(ctx context.Context) ([]string, error)
	Forecast(ctx context.Context, code string) (domain.StationForecast, error)
}

// Server exposes health, readiness, metrics, and the forecast query API.
type Server struct {
	httpServer *http.Server
	forecasts  ForecastProvider
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and the
// /api/v1 station routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, forecasts ForecastProvider, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		forecasts: forecasts,
		metrics:   metrics,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/v1/stations", s.handleStations)
	mux.HandleFunc("GET /api/v1/stations/{code}/winds", s.handleWinds)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type stationsResponse struct {
	Stations []string `json:"stations"`
	Count    int      `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

const (
	routeStations = "stations"
	routeWinds    = "winds"
)

func (s *Server) handleStations(w http.ResponseWriter, r *http.Request) {
	codes, err := s.forecasts.StationCodes(r.Context())
	if err != nil {
		s.writeError(w, r, routeStations, err)
		return
	}
	s.writeJSON(w, routeStations, http.StatusOK, stationsResponse{Stations: codes, Count: len(codes)})
}

func (s *Server) handleWinds(w http.ResponseWriter, r *http.Request) {
	fc, err := s.forecasts.Forecast(r.Context(), r.PathValue("code"))
	if err != nil {
		s.writeError(w, r, routeWinds, err)
		return
	}

	if r.URL.Query().Get("format") == "structured" {
		s.writeJSON(w, routeWinds, http.StatusOK, fc.Structured())
		return
	}
	s.writeJSON(w, routeWinds, http.StatusOK, fc)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, route string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnknownStation):
		status = http.StatusNotFound
	case errors.Is(err, forecast.ErrSourceUnavailable):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("api request failed", "path", r.URL.Path, "status", status, "error", err)
	}
	s.writeJSON(w, route, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, route string, status int, v any) {
	s.metrics.APIRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
