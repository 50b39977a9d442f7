// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/vgsales/internal/adapters/render"
	"github.com/okian/vgsales/internal/domain/filter"
	"github.com/okian/vgsales/internal/domain/model"
	"github.com/okian/vgsales/internal/domain/types"
	"github.com/okian/vgsales/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// State returns the current filter state.
	State() filter.State
	// Apply folds a change into the state and returns the new bundle.
	Apply(ctx context.Context, c filter.Change) (filter.State, types.Bundle, error)
	// Compute derives the bundle for an explicit snapshot without touching state.
	Compute(ctx context.Context, st filter.State) (types.Bundle, error)
	// Chart returns the chart data of one granularity for a region.
	Chart(ctx context.Context, e model.Entity, region model.Region) (types.Chart, error)
	// Options lists the selectable filter values.
	Options() types.Options
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	stateHandler   *StateHandler
	bundleHandler  *BundleHandler
	chartHandler   *ChartHandler
	optionsHandler *OptionsHandler
}

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	chart  render.Options
	logger logger.Logger
}

// WithChartOptions sets the size of rendered chart documents.
func WithChartOptions(o render.Options) ServerOption {
	return func(c *serverConfig) {
		if o.Width > 0 && o.Height > 0 {
			c.chart = o
		}
	}
}

// WithLogger sets the logger used by handlers.
func WithLogger(l logger.Logger) ServerOption {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	cfg := serverConfig{chart: render.DefaultOptions(), logger: logger.Discard()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		stateHandler:   NewStateHandler(deps, cfg.logger),
		bundleHandler:  NewBundleHandler(deps, cfg.logger),
		chartHandler:   NewChartHandler(deps, cfg.chart, cfg.logger),
		optionsHandler: NewOptionsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/state", MetricsMiddleware(s.stateHandler.HandleState, "state"))
	mux.HandleFunc("/api/bundle", MetricsMiddleware(s.bundleHandler.HandleGetBundle, "bundle"))
	mux.HandleFunc("/api/charts/", MetricsMiddleware(s.chartHandler.HandleGetChart, "charts"))
	mux.HandleFunc("/api/options", MetricsMiddleware(s.optionsHandler.HandleGetOptions, "options"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
