package api

import (
	"context"
	"net/http"

	"github.com/okian/xpdash/internal/adapters/http/svg"
	service "github.com/okian/xpdash/internal/app"
	"github.com/okian/xpdash/internal/domain/model"
	"github.com/okian/xpdash/pkg/logger"
)

// DashboardDependencies defines the interface for dashboard reads.
type DashboardDependencies interface {
	Dashboard(ctx context.Context, token string) (service.Result, error)
}

// DashboardHandler handles dashboard requests.
type DashboardHandler struct {
	deps   DashboardDependencies
	logger logger.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps DashboardDependencies, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{deps: deps, logger: log}
}

// chartsSVG is the only accepted value of the charts query parameter.
const chartsSVG = "svg"

// dashboardResponse is the dashboard plus, on request, every chart drawn
// from the same fetch keyed by chart name.
type dashboardResponse struct {
	model.Dashboard
	Charts map[string]string `json:"charts,omitempty"`
}

// HandleDashboard handles GET /dashboard requests.
// With ?charts=svg the response also carries every chart as SVG markup.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.dashboard"
	withCharts := false
	switch r.URL.Query().Get("charts") {
	case "":
	case chartsSVG:
		withCharts = true
	default:
		writeError(w, http.StatusBadRequest, codeBadRequest, newKind(op, ErrBadRequest))
		return
	}
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, newKind(op, ErrUnauthorized))
		return
	}
	res, err := h.deps.Dashboard(r.Context(), token)
	if err != nil {
		fail(r.Context(), h.logger, w, err)
		return
	}
	if !withCharts {
		writeJSON(w, http.StatusOK, res.Dashboard)
		return
	}

	out := dashboardResponse{Dashboard: res.Dashboard, Charts: make(map[string]string, len(res.Charts))}
	for _, c := range res.Charts {
		out.Charts[c.Name] = string(svg.Render(c))
	}
	w.Header().Set("Cache-Control", "private, no-store")
	writeJSON(w, http.StatusOK, out)
}
