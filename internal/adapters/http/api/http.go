// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/xpdash/internal/adapters/auth"
	service "github.com/okian/xpdash/internal/app"
	"github.com/okian/xpdash/internal/domain/chart"
	"github.com/okian/xpdash/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Login(ctx context.Context, login, password string) (string, error)
	Dashboard(ctx context.Context, token string) (service.Result, error)
	Chart(ctx context.Context, token, name string) (chart.Chart, error)
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler    *HealthHandler
	loginHandler     *LoginHandler
	dashboardHandler *DashboardHandler
	chartHandler     *ChartHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, log logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		healthHandler:    NewHealthHandler(),
		loginHandler:     NewLoginHandler(deps, log),
		dashboardHandler: NewDashboardHandler(deps, log),
		chartHandler:     NewChartHandler(deps, log),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("POST /login", MetricsMiddleware(RequestID(s.loginHandler.HandleLogin), "login"))
	mux.HandleFunc("GET /dashboard", MetricsMiddleware(RequestID(s.dashboardHandler.HandleDashboard), "dashboard"))
	mux.HandleFunc("GET /charts/{file}", MetricsMiddleware(RequestID(s.chartHandler.HandleChart), "charts"))
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

// Error codes returned in errorResponse.Code.
const (
	codeBadRequest         = "bad_request"
	codeInvalidCredentials = "invalid_credentials"
	codeSessionExpired     = "session_expired"
	codeUnauthorized       = "unauthorized"
	codeNotFound           = "not_found"
	codeUpstream           = "upstream_error"
	codeInternal           = "internal_error"
)

// statusFor maps service and adapter errors to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, auth.ErrMissingCredentials):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, codeInvalidCredentials
	case errors.Is(err, service.ErrSessionExpired):
		return http.StatusUnauthorized, codeSessionExpired
	case errors.Is(err, ErrUnauthorized), errors.Is(err, service.ErrMissingToken), errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, codeUnauthorized
	case errors.Is(err, ErrNotFound), errors.Is(err, service.ErrUnknownChart):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, service.ErrUnavailable), errors.Is(err, auth.ErrNetwork),
		errors.Is(err, auth.ErrHTTPStatus), errors.Is(err, auth.ErrNoToken),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusBadGateway, codeUpstream
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

// fail writes err with its mapped status. Server-side failures are logged.
func fail(ctx context.Context, log logger.Logger, w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error(ctx, "request failed", logger.String("code", code), logger.Error(err))
	}
	writeError(w, status, code, err)
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}
