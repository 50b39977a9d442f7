package service

import (
	"context"
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

// Compute derives the complete bundle for a filter snapshot. It reads only
// immutable data, so it is safe for concurrent use and equal snapshots always
// give equal bundles.
func (s *Service) Compute(ctx context.Context, st filter.State) (types.Bundle, error) {
	d, views, err := s.data()
	if err != nil {
		return types.Bundle{}, err
	}

	start := time.Now()
	b := s.compute(d, views, st)
	elapsed := float64(time.Since(start).Microseconds()) / 1000

	s.computed.Add(1)
	metrics.RecordRecomputation(st.Tab.String())
	metrics.RecordRecomputeLatency(elapsed)
	s.logger.Debug(ctx, "bundle computed",
		logger.String("region", st.Region.Column()),
		logger.Int("resultCount", st.ResultCount),
		logger.String("tab", st.Tab.Wire()),
		logger.Float64("latencyMs", elapsed),
	)
	return b, nil
}

// Apply folds a change into the state cell and recomputes from the resulting
// snapshot. Calls are serialised; an empty change still recomputes.
func (s *Service) Apply(ctx context.Context, c filter.Change) (filter.State, types.Bundle, error) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	d, views, err := s.data()
	if err != nil {
		return filter.State{}, types.Bundle{}, err
	}

	prev := s.state
	next := prev.Apply(c)
	recordChanges(prev, next)
	s.state = next
	s.applied.Add(1)

	start := time.Now()
	b := s.compute(d, views, next)
	elapsed := float64(time.Since(start).Microseconds()) / 1000

	s.computed.Add(1)
	metrics.RecordRecomputation(next.Tab.String())
	metrics.RecordRecomputeLatency(elapsed)
	s.logger.Info(ctx, "filter state changed",
		logger.String("region", next.Region.Column()),
		logger.Int("resultCount", next.ResultCount),
		logger.String("tab", next.Tab.Wire()),
		logger.Float64("latencyMs", elapsed),
	)
	return next, b, nil
}

// Chart builds the chart data for one granularity in the given region,
// independent of the active tab. The year cutoff and label count follow the
// current state.
func (s *Service) Chart(ctx context.Context, e model.Entity, region model.Region) (types.Chart, error) {
	d, views, err := s.data()
	if err != nil {
		return types.Chart{}, err
	}
	view := views.Get(e)
	if view == nil {
		return types.Chart{}, ErrUnknownEntity
	}

	st := s.State()
	st.Region = region
	q := ranking.QueryFor(st)

	metrics.RecordChartRender(e.String())
	s.logger.Debug(ctx, "chart requested", logger.String("entity", e.String()), logger.String("region", region.Column()))
	return s.chart(d, view, q), nil
}

func recordChanges(prev, next filter.State) {
	if prev.Region != next.Region {
		metrics.RecordStateChange("region")
	}
	if prev.ResultCount != next.ResultCount {
		metrics.RecordStateChange("result_count")
	}
	if prev.Tab != next.Tab {
		metrics.RecordStateChange("tab")
	}
}

// compute is the pure (snapshot -> bundle) function. Only the top performers
// tab runs any query; the other tabs are placeholders.
func (s *Service) compute(d *repository.Dataset, views *aggregation.Views, st filter.State) types.Bundle {
	b := types.Bundle{State: st.Wire()}
	if st.Tab != filter.TabTopPerformers {
		b.Placeholder = &types.Placeholder{Title: st.Tab.Label()}
		return b
	}

	q := ranking.QueryFor(st)
	tp := &types.TopPerformers{
		TableRows:   tableRows(ranking.TableRows(d, q)),
		Title:       s.chart(d, views.Title, q),
		Platform:    s.chart(d, views.Platform, q),
		Publisher:   s.chart(d, views.Publisher, q),
		GenreOrders: make(map[string][]string, len(model.Entities)),
	}
	for _, c := range []types.Chart{tp.Title, tp.Platform, tp.Publisher} {
		tp.GenreOrders[c.Entity] = c.GenreOrder
	}
	b.TopPerformers = tp
	return b
}

// chart ranks a view for q. The title chart orders genres by the title view;
// the platform and publisher charts by the raw record slice.
func (s *Service) chart(d *repository.Dataset, view *aggregation.View, q ranking.Query) types.Chart {
	e := view.Entity()
	all := q.WithLimit(0)

	res := ranking.Rank(view, q)
	if res.Empty() {
		metrics.RecordEmptyResult(e.String())
	}
	labels := ranking.Labels(view, q, s.labelCount)
	points := ranking.Points(view, all)

	var genres []string
	if e == model.EntityTitle {
		genres = ranking.GenreOrder(view, all)
	} else {
		genres = ranking.RecordGenreOrder(d, all)
	}

	return types.Chart{
		Entity:     e.String(),
		Title:      chartTitle(e),
		Region:     q.Region.Column(),
		Ranking:    rankedEntities(res),
		Labels:     rankedEntities(labels),
		Points:     chartPoints(points),
		Highlights: chartPoints(points[:min(len(points), s.labelCount)]),
		GenreOrder: genres,
	}
}

func chartTitle(e model.Entity) string {
	switch e {
	case model.EntityTitle:
		return "By Game Title"
	case model.EntityPlatform:
		return "By Platform"
	case model.EntityPublisher:
		return "By Publisher"
	default:
		return ""
	}
}
