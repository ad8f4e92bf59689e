// Package server exposes budget forecasts over a local HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/mwolters/budgetcast/internal/forecast"
	"github.com/mwolters/budgetcast/internal/model"
	"github.com/mwolters/budgetcast/internal/sims"
)

// SnapshotSource supplies fully materialized budget data. The production
// implementation reads the local snapshot store and falls back to the YNAB
// API; tests stub it.
type SnapshotSource interface {
	Snapshot(ctx context.Context, budgetID string, refresh bool) (*model.Snapshot, error)
}

// Config controls the server runtime behavior.
type Config struct {
	Addr        string
	DefaultDays int
	SimsDir     string
}

// Service is the HTTP API runtime.
type Service struct {
	cfg    Config
	source SnapshotSource
	log    zerolog.Logger
}

// New returns a service with config defaults applied.
func New(cfg Config, source SnapshotSource, logger zerolog.Logger) *Service {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8484"
	}
	if cfg.DefaultDays < 1 {
		cfg.DefaultDays = 300
	}
	return &Service{cfg: cfg, source: source, log: logger}
}

// Router builds the route table. Exposed separately so tests can drive the
// handlers without a listening socket.
func (s *Service) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/budgets/{budget_id}/forecast", s.handleForecast).Methods(http.MethodGet)
	r.HandleFunc("/v1/budgets/{budget_id}/forecast/compare", s.handleCompare).Methods(http.MethodGet)
	return r
}

// Run serves the API until ctx is canceled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.Info().Str("addr", s.cfg.Addr).Msg("forecast API listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// forecastResponse is one projected series for a budget.
type forecastResponse struct {
	BudgetID    string            `json:"budget_id"`
	DaysAhead   int               `json:"days_ahead"`
	Simulation  string            `json:"simulation,omitempty"`
	FetchedAt   time.Time         `json:"fetched_at"`
	GeneratedAt time.Time         `json:"generated_at"`
	Days        []model.LedgerDay `json:"days"`
}

func (s *Service) handleForecast(w http.ResponseWriter, r *http.Request) {
	budgetID, days, ok := s.requestParams(w, r)
	if !ok {
		return
	}

	var events []model.Simulation
	simName := r.URL.Query().Get("sim")
	if simName != "" {
		sets, err := sims.Load(s.cfg.SimsDir)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, "loading simulations: "+err.Error())
			return
		}
		set, found := sims.Find(sets, simName)
		if !found {
			s.writeError(w, http.StatusNotFound, "unknown simulation: "+simName)
			return
		}
		events = set.Events
	}

	snap, ok := s.loadSnapshot(w, r, budgetID)
	if !ok {
		return
	}

	result := forecast.Project(forecast.Input{
		Accounts:    snap.Accounts,
		Categories:  snap.Categories,
		Scheduled:   snap.Scheduled,
		Simulations: events,
		DaysAhead:   days,
	})

	s.writeJSON(w, http.StatusOK, forecastResponse{
		BudgetID:    budgetID,
		DaysAhead:   days,
		Simulation:  simName,
		FetchedAt:   snap.FetchedAt,
		GeneratedAt: time.Now().UTC(),
		Days:        result,
	})
}

// compareResponse is the baseline plus one series per simulation set.
type compareResponse struct {
	BudgetID    string          `json:"budget_id"`
	DaysAhead   int             `json:"days_ahead"`
	FetchedAt   time.Time       `json:"fetched_at"`
	GeneratedAt time.Time       `json:"generated_at"`
	Series      []compareSeries `json:"series"`
}

type compareSeries struct {
	Name string            `json:"name"`
	Days []model.LedgerDay `json:"days"`
}

func (s *Service) handleCompare(w http.ResponseWriter, r *http.Request) {
	budgetID, days, ok := s.requestParams(w, r)
	if !ok {
		return
	}
	snap, ok := s.loadSnapshot(w, r, budgetID)
	if !ok {
		return
	}

	sets, err := sims.Load(s.cfg.SimsDir)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "loading simulations: "+err.Error())
		return
	}

	project := func(events []model.Simulation) []model.LedgerDay {
		return forecast.Project(forecast.Input{
			Accounts:    snap.Accounts,
			Categories:  snap.Categories,
			Scheduled:   snap.Scheduled,
			Simulations: events,
			DaysAhead:   days,
		})
	}

	series := make([]compareSeries, 0, len(sets)+1)
	series = append(series, compareSeries{Name: "Actual Balance", Days: project(nil)})
	for _, set := range sets {
		series = append(series, compareSeries{Name: set.Name, Days: project(set.Events)})
	}

	s.writeJSON(w, http.StatusOK, compareResponse{
		BudgetID:    budgetID,
		DaysAhead:   days,
		FetchedAt:   snap.FetchedAt,
		GeneratedAt: time.Now().UTC(),
		Series:      series,
	})
}

// requestParams validates the budget id and days query parameter.
func (s *Service) requestParams(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	budgetID := mux.Vars(r)["budget_id"]
	if _, err := uuid.Parse(budgetID); err != nil {
		s.writeError(w, http.StatusBadRequest, "budget_id must be a UUID")
		return "", 0, false
	}

	days := s.cfg.DefaultDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.writeError(w, http.StatusBadRequest, "days must be a non-negative integer")
			return "", 0, false
		}
		days = parsed
	}
	return budgetID, days, true
}

// loadSnapshot fetches budget data, translating collaborator failures into
// a 502: the engine never runs on missing or partial data.
func (s *Service) loadSnapshot(w http.ResponseWriter, r *http.Request, budgetID string) (*model.Snapshot, bool) {
	refresh := r.URL.Query().Get("refresh") == "true"
	snap, err := s.source.Snapshot(r.Context(), budgetID, refresh)
	if err != nil {
		s.log.Error().Err(err).Str("budget_id", budgetID).Msg("snapshot fetch failed")
		s.writeError(w, http.StatusBadGateway, "fetching budget data: "+err.Error())
		return nil, false
	}
	return snap, true
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encoding response")
	}
}

func (s *Service) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
