package api

import (
	"net/http"

	"github.com/okian/vgsales/internal/domain/types"
)

// OptionsProvider lists the selectable filter values.
type OptionsProvider interface {
	Options() types.Options
}

// OptionsHandler serves the control options.
type OptionsHandler struct {
	deps OptionsProvider
}

// NewOptionsHandler creates a new options handler.
func NewOptionsHandler(deps OptionsProvider) *OptionsHandler {
	return &OptionsHandler{deps: deps}
}

// HandleGetOptions handles GET /api/options requests.
func (h *OptionsHandler) HandleGetOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Options())
}
