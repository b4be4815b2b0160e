// Package api provides the HTTP REST API server for Jyotish.
//
// It exposes endpoints for natal chart computation, divisional charts,
// dasha queries, and panchanga lookups.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/seenimoa/jyotish/internal/ashtakavarga"
	"github.com/seenimoa/jyotish/internal/config"
	"github.com/seenimoa/jyotish/internal/dasha"
	"github.com/seenimoa/jyotish/internal/ephemeris"
	"github.com/seenimoa/jyotish/internal/kundali"
	"github.com/seenimoa/jyotish/internal/panchanga"
	"github.com/seenimoa/jyotish/internal/shadbala"
	"github.com/seenimoa/jyotish/internal/varga"
	"github.com/seenimoa/jyotish/pkg/models"
	"github.com/seenimoa/jyotish/pkg/utils"
)

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	cfg      *config.Config
	provider ephemeris.Provider
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, provider ephemeris.Provider) *Server {
	s := &Server{cfg: cfg, provider: provider}
	s.router = s.buildRouter()
	return s
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server and blocks until shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/chart", s.handleChart)
		r.Post("/varga", s.handleVarga)
		r.Post("/dasha", s.handleDasha)
		r.Get("/panchanga", s.handlePanchanga)
	})

	return r
}

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}

// statusFor maps engine sentinel errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, kundali.ErrInvalidBirth):
		return http.StatusBadRequest
	case errors.Is(err, varga.ErrUnsupportedDivision):
		return http.StatusBadRequest
	case errors.Is(err, dasha.ErrPeriodNotFound):
		return http.StatusNotFound
	case errors.Is(err, ephemeris.ErrUnavailable), errors.Is(err, ephemeris.ErrNotRegistered):
		return http.StatusBadGateway
	case errors.Is(err, panchanga.ErrNotConverged):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// birthRequest is the common request body carrying birth details.
type birthRequest struct {
	Instant   string  `json:"instant"`  // RFC3339, zone-aware
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (b birthRequest) details() (kundali.BirthDetails, error) {
	t, err := time.Parse(time.RFC3339, b.Instant)
	if err != nil {
		return kundali.BirthDetails{}, fmt.Errorf("parse instant %q: %w", b.Instant, kundali.ErrInvalidBirth)
	}
	return kundali.BirthDetails{Instant: t, Latitude: b.Latitude, Longitude: b.Longitude}, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]string{
			"status":   "ok",
			"provider": s.provider.Name(),
			"time":     time.Now().In(utils.IST).Format(time.RFC3339),
		},
	})
}

// handleChart computes the full artifact set for a birth.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	var req birthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	birth, err := req.details()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	art, err := kundali.Compute(r.Context(), s.provider, birth, kundali.Options{
		Divisions:    s.cfg.Varga.Divisions,
		HorizonYears: s.cfg.Dasha.HorizonYears,
		Shadbala:     shadbala.Options{IncludeNodes: s.cfg.Calibration.ShadbalaIncludeNodes},
		Ashtakavarga: ashtakavarga.Options{IncludeNodes: s.cfg.Calibration.AshtakavargaIncludeNodes},
	})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: art})
}

// handleVarga computes one divisional chart for a birth.
func (s *Server) handleVarga(w http.ResponseWriter, r *http.Request) {
	var req struct {
		birthRequest
		Divisor int `json:"divisor"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	birth, err := req.details()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	chart, err := kundali.BuildChart(r.Context(), s.provider, birth)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	div, err := varga.ComputeChart(chart.Ascendant, chart.Positions, req.Divisor)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: div})
}

// handleDasha builds the period tree and resolves the chain at an optional
// query instant.
func (s *Server) handleDasha(w http.ResponseWriter, r *http.Request) {
	var req struct {
		birthRequest
		At string `json:"at,omitempty"` // RFC3339 query instant; defaults to now
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	birth, err := req.details()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	chart, err := kundali.BuildChart(r.Context(), s.provider, birth)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	moon, ok := chart.Positions[models.Moon]
	if !ok {
		writeError(w, http.StatusBadGateway, "provider returned no Moon position")
		return
	}
	tree, err := dasha.Build(moon.Longitude, chart.Birth, s.cfg.Dasha.HorizonYears)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	at := time.Now()
	if req.At != "" {
		at, err = time.Parse(time.RFC3339, req.At)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("parse at %q: %v", req.At, err))
			return
		}
	}
	chain, err := tree.Query(at)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: map[string]interface{}{
		"mahadashas": tree.Mahadashas(),
		"active":     chain,
	}})
}

// handlePanchanga derives the element set for ?at=RFC3339&lat=&lon=.
func (s *Server) handlePanchanga(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	at, err := time.Parse(time.RFC3339, q.Get("at"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("parse at %q: %v", q.Get("at"), err))
		return
	}
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lat is required")
		return
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lon is required")
		return
	}

	engine := panchanga.New(s.provider, s.cfg.Panchanga.ToleranceSeconds, s.cfg.Panchanga.MaxIterations)
	p, err := engine.Compute(r.Context(), at, lat, lon)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: p})
}
