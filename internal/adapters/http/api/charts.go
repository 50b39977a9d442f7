package api

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/okian/vgsales/internal/adapters/render"
	"github.com/okian/vgsales/internal/domain/filter"
	"github.com/okian/vgsales/internal/domain/model"
	"github.com/okian/vgsales/internal/domain/types"
	"github.com/okian/vgsales/pkg/logger"
)

const chartsPrefix = "/api/charts/"

// ChartDependencies defines the operations behind /api/charts.
type ChartDependencies interface {
	State() filter.State
	Chart(ctx context.Context, e model.Entity, region model.Region) (types.Chart, error)
}

// ChartHandler serves chart documents per granularity.
type ChartHandler struct {
	deps   ChartDependencies
	opts   render.Options
	logger logger.Logger
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(deps ChartDependencies, opts render.Options, log logger.Logger) *ChartHandler {
	return &ChartHandler{deps: deps, opts: opts, logger: log}
}

type chartQuery struct {
	Entity string `query:"entity" validate:"required,oneof=title platform publisher"`
	Region string `query:"region" validate:"required,oneof=NA_Sales EU_Sales JP_Sales Other_Sales"`
	Format string `query:"format" validate:"omitempty,oneof=html json"`
}

// HandleGetChart handles GET /api/charts/{title|platform|publisher}?region=.
// The default response is a standalone HTML document; format=json returns the
// chart data instead.
func (h *ChartHandler) HandleGetChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chart"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q := chartQuery{
		Entity: strings.Trim(strings.TrimPrefix(r.URL.Path, chartsPrefix), "/"),
		Region: r.URL.Query().Get("region"),
		Format: r.URL.Query().Get("format"),
	}
	if q.Region == "" {
		q.Region = h.deps.State().Region.Column()
	}
	if err := validate(q); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	entity, _ := model.ParseEntity(q.Entity)
	chart, err := h.deps.Chart(r.Context(), entity, model.ParseRegion(q.Region))
	if err != nil {
		h.logger.Error(r.Context(), "chart failed", logger.String("entity", q.Entity), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	if q.Format == "json" {
		writeJSON(w, http.StatusOK, chart)
		return
	}

	var buf bytes.Buffer
	if err := render.Document(&buf, chart, h.opts); err != nil {
		writeError(w, http.StatusInternalServerError, "render_error", WrapKind(op, ErrRender, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
