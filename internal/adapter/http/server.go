package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/rainharvest/internal/domain"
	"github.com/couchcryptid/rainharvest/internal/simulation"
)

// Server exposes the simulation API plus health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	simulator  simulation.Simulator
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the following routes:
//
//	GET  /healthz          liveness
//	GET  /readyz           readiness (delegates to the simulator)
//	GET  /metrics          Prometheus exposition
//	POST /api/v1/simulate  full generate-convert-size pipeline
//	POST /estimate         one-shot collection estimate (separate formula)
func NewServer(addr string, sim simulation.Simulator, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		simulator: sim,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /api/v1/simulate", s.handleSimulate)
	mux.HandleFunc("POST /estimate", s.handleEstimate)

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

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.simulator.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleSimulate runs the full pipeline for a JSON Params body.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var params simulation.Params
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "bad_request",
			"message": "request body must be a JSON simulation request",
		})
		return
	}

	result, err := s.simulator.Run(r.Context(), params)
	if err != nil {
		var invalid *domain.InvalidParameterError
		if errors.As(err, &invalid) {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":   "invalid_parameter",
				"field":   invalid.Field,
				"message": invalid.Error(),
			})
			return
		}
		s.logger.Error("simulation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleEstimate serves the one-shot form calculation:
// collected_water = roof_area × rainfall / 1000. This is deliberately not
// the engine's per-day conversion; the two formulas stay separate entry
// points. Accepts form-encoded or JSON bodies.
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	roofArea, rainfall, err := parseEstimateRequest(r)
	if err != nil {
		var invalid *domain.InvalidParameterError
		if errors.As(err, &invalid) {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":   "invalid_parameter",
				"field":   invalid.Field,
				"message": invalid.Error(),
			})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "bad_request",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{
		"collected_water": domain.EstimateCollection(roofArea, rainfall),
	})
}

func parseEstimateRequest(r *http.Request) (roofArea, rainfall float64, err error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return 0, 0, errors.New("request body must be valid JSON")
		}
		return parseEstimateFields(fieldString(body, "roof_area"), fieldString(body, "rainfall"))
	}

	if err := r.ParseForm(); err != nil {
		return 0, 0, errors.New("request body must be form-encoded")
	}
	return parseEstimateFields(r.PostFormValue("roof_area"), r.PostFormValue("rainfall"))
}

func parseEstimateFields(roofAreaStr, rainfallStr string) (float64, float64, error) {
	roofArea, err := domain.ParseFloat("roof_area", roofAreaStr, 0)
	if err != nil {
		return 0, 0, err
	}
	rainfall, err := domain.ParseFloat("rainfall", rainfallStr, 0)
	if err != nil {
		return 0, 0, err
	}
	return roofArea, rainfall, nil
}

// fieldString renders a JSON field as text so both numeric and string
// encodings of the two form values are accepted.
func fieldString(body map[string]any, key string) string {
	switch v := body[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
