package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/xpdash/internal/adapters/http/svg"
	"github.com/okian/xpdash/internal/domain/chart"
	"github.com/okian/xpdash/pkg/logger"
)

// ChartDependencies defines the interface for chart reads.
type ChartDependencies interface {
	Chart(ctx context.Context, token, name string) (chart.Chart, error)
}

// ChartHandler handles chart requests.
type ChartHandler struct {
	deps   ChartDependencies
	logger logger.Logger
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(deps ChartDependencies, log logger.Logger) *ChartHandler {
	return &ChartHandler{deps: deps, logger: log}
}

// HandleChart handles GET /charts/{name}.svg requests.
func (h *ChartHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.chart"
	name, ok := strings.CutSuffix(r.PathValue("file"), ".svg")
	if !ok || !chart.Known(name) {
		writeError(w, http.StatusNotFound, codeNotFound, newKind(op, ErrNotFound))
		return
	}
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, newKind(op, ErrUnauthorized))
		return
	}

	c, err := h.deps.Chart(r.Context(), token, name)
	if err != nil {
		fail(r.Context(), h.logger, w, err)
		return
	}
	w.Header().Set("Content-Type", svg.ContentType)
	w.Header().Set("Cache-Control", "private, no-store")
	w.WriteHeader(http.StatusOK)
	if err := svg.Write(w, c); err != nil {
		h.logger.Warn(r.Context(), "chart write failed", logger.String("chart", name), logger.Error(err))
	}
}
