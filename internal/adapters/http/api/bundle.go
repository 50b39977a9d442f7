package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/vgsales/internal/domain/filter"
	"github.com/okian/vgsales/internal/domain/model"
	"github.com/okian/vgsales/internal/domain/types"
	"github.com/okian/vgsales/pkg/logger"
)

// BundleDependencies defines the operations behind /api/bundle.
type BundleDependencies interface {
	State() filter.State
	Compute(ctx context.Context, st filter.State) (types.Bundle, error)
}

// BundleHandler computes a bundle for an explicit snapshot.
type BundleHandler struct {
	deps   BundleDependencies
	logger logger.Logger
}

// NewBundleHandler creates a new bundle handler.
func NewBundleHandler(deps BundleDependencies, log logger.Logger) *BundleHandler {
	return &BundleHandler{deps: deps, logger: log}
}

// bundleQuery mirrors the query string of GET /api/bundle. Missing
// parameters are taken from the current state.
type bundleQuery struct {
	Region string `query:"region" validate:"required,oneof=NA_Sales EU_Sales JP_Sales Other_Sales"`
	Count  int    `query:"count" validate:"required,oneof=5 10 15 20"`
	Tab    string `query:"tab" validate:"required,oneof=tab-1 tab-2 tab-3"`
}

// HandleGetBundle handles GET /api/bundle?region=&count=&tab= requests.
func (h *BundleHandler) HandleGetBundle(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_bundle"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	current := h.deps.State()
	q := bundleQuery{
		Region: current.Region.Column(),
		Count:  current.ResultCount,
		Tab:    current.Tab.Wire(),
	}
	values := r.URL.Query()
	if v := values.Get("region"); v != "" {
		q.Region = v
	}
	if v := values.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		q.Count = n
	}
	if v := values.Get("tab"); v != "" {
		q.Tab = v
	}
	if err := validate(q); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	st := current
	st.Region = model.ParseRegion(q.Region)
	st.ResultCount = q.Count
	st.Tab, _ = filter.ParseTab(q.Tab)

	bundle, err := h.deps.Compute(r.Context(), st)
	if err != nil {
		h.logger.Error(r.Context(), "compute bundle failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}
