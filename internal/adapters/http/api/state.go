package api

import (
	"context"
	"net/http"

	"github.com/okian/vgsales/internal/domain/filter"
	"github.com/okian/vgsales/internal/domain/model"
	"github.com/okian/vgsales/internal/domain/types"
	"github.com/okian/vgsales/pkg/logger"
)

// StateDependencies defines the operations behind /api/state.
type StateDependencies interface {
	State() filter.State
	Apply(ctx context.Context, c filter.Change) (filter.State, types.Bundle, error)
}

// StateHandler reads and changes the shared filter state.
type StateHandler struct {
	deps   StateDependencies
	logger logger.Logger
}

// NewStateHandler creates a new state handler.
func NewStateHandler(deps StateDependencies, log logger.Logger) *StateHandler {
	return &StateHandler{deps: deps, logger: log}
}

// stateChangeRequest mirrors the OpenAPI schema for POST /api/state. Omitted
// fields keep their current value.
type stateChangeRequest struct {
	Region      *string `json:"region" validate:"omitnil,oneof=NA_Sales EU_Sales JP_Sales Other_Sales"`
	ResultCount *int    `json:"result_count" validate:"omitnil,oneof=5 10 15 20"`
	Tab         *string `json:"tab" validate:"omitnil,oneof=tab-1 tab-2 tab-3"`
}

func (req stateChangeRequest) change() filter.Change {
	var c filter.Change
	if req.Region != nil {
		r := model.ParseRegion(*req.Region)
		c.Region = &r
	}
	if req.ResultCount != nil {
		n := *req.ResultCount
		c.ResultCount = &n
	}
	if req.Tab != nil {
		if t, ok := filter.ParseTab(*req.Tab); ok {
			c.Tab = &t
		}
	}
	return c
}

type stateResponse struct {
	State  types.State   `json:"state"`
	Bundle *types.Bundle `json:"bundle,omitempty"`
}

// HandleState handles GET and POST /api/state requests.
func (h *StateHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, stateResponse{State: h.deps.State().Wire()})
	case http.MethodPost:
		h.handleApply(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}

func (h *StateHandler) handleApply(w http.ResponseWriter, r *http.Request) {
	const op = "api.apply_state"
	var req stateChangeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	st, bundle, err := h.deps.Apply(r.Context(), req.change())
	if err != nil {
		h.logger.Error(r.Context(), "apply state failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{State: st.Wire(), Bundle: &bundle})
}
