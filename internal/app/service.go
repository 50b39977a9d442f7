// Package service provides the reactive update controller: it owns the single
// filter state cell and turns every snapshot into a complete output bundle.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/vgsales/internal/adapters/repository"
	"github.com/okian/vgsales/internal/domain/aggregation"
	"github.com/okian/vgsales/internal/domain/filter"
	"github.com/okian/vgsales/internal/domain/model"
	"github.com/okian/vgsales/internal/domain/ranking"
	"github.com/okian/vgsales/internal/domain/types"
	"github.com/okian/vgsales/pkg/logger"
	"github.com/okian/vgsales/pkg/metrics"
)

const defaultDatasetPath = "data/vgsales.csv"

// Service implements the API dependencies for the sales explorer.
type Service struct {
	// mu guards the loaded data and lifecycle flags.
	mu sync.RWMutex

	// stateMu serialises changes of the state cell, so recomputations
	// triggered by Apply never interleave.
	stateMu sync.Mutex
	state   filter.State

	store   *repository.Store
	dataset *repository.Dataset
	views   *aggregation.Views

	datasetPath string
	labelCount  int
	started     bool
	startedAt   time.Time

	computed atomic.Uint64
	applied  atomic.Uint64

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		state:       filter.Default(),
		datasetPath: defaultDatasetPath,
		labelCount:  ranking.LabelCount,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the dataset (unless one was supplied) and builds the grouped
// views. A DataLoadError is returned unchanged so callers can treat it as fatal.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting sales explorer...")

	if s.store == nil {
		s.store = repository.NewStore(repository.WithLogger(s.logger))
	}
	if s.dataset == nil {
		s.dataset = s.store.Dataset()
	}
	if s.dataset == nil {
		d, err := s.store.LoadFile(ctx, s.datasetPath)
		if err != nil {
			s.logger.Error(ctx, "dataset load failed", logger.String("path", s.datasetPath), logger.Error(err))
			return fmt.Errorf("start: %w", err)
		}
		s.dataset = d
	}

	start := time.Now()
	s.views = aggregation.Build(s.dataset)
	for _, e := range model.Entities {
		metrics.UpdateViewEntries(e.String(), s.views.Get(e).Len())
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "sales explorer started",
		logger.String("dataset", s.dataset.Source()),
		logger.Int("records", s.dataset.Len()),
		logger.Int("titleEntries", s.views.Title.Len()),
		logger.Int("platformEntries", s.views.Platform.Len()),
		logger.Int("publisherEntries", s.views.Publisher.Len()),
		logger.Float64("aggregationMs", float64(time.Since(start).Microseconds())/1000),
	)

	return nil
}

// Stop marks the service as stopped. The loaded data is kept.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "sales explorer stopped")
}

// data returns the immutable dataset and views, or ErrNotStarted.
func (s *Service) data() (*repository.Dataset, *aggregation.Views, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.dataset, s.views, nil
}

// State returns the current filter state.
func (s *Service) State() filter.State {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state
}

// Options lists the selectable filter values with their labels.
func (s *Service) Options() types.Options {
	opts := types.Options{ResultCounts: append([]int(nil), filter.ResultCounts...)}
	for _, r := range model.Regions {
		opts.Regions = append(opts.Regions, types.Option{Label: r.Label(), Value: r.Column()})
	}
	for _, t := range filter.Tabs {
		opts.Tabs = append(opts.Tabs, types.Option{Label: t.Label(), Value: t.Wire()})
	}
	return opts
}

// GetStats returns service statistics for monitoring.
// The state cell is read before mu is taken; Apply holds stateMu while it
// acquires mu, so the two locks are always taken in that order.
func (s *Service) GetStats() map[string]interface{} {
	st := s.State()

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"datasetPath":    s.datasetPath,
		"labelCount":     s.labelCount,
		"state":          st.Wire(),
		"recomputations": s.computed.Load(),
		"stateChanges":   s.applied.Load(),
	}

	if s.started {
		stats["records"] = s.dataset.Len()
		stats["rows"] = s.dataset.Rows()
		stats["genres"] = len(s.dataset.Genres())
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
		views := make(map[string]int, len(model.Entities))
		for _, e := range model.Entities {
			views[e.String()] = s.views.Get(e).Len()
		}
		stats["viewEntries"] = views
	}

	return stats
}
