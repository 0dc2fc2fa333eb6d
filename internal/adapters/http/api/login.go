package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/xpdash/internal/adapters/auth"
	"github.com/okian/xpdash/pkg/logger"
)

const maxLoginBody = 64 << 10

// LoginDependencies defines the interface for sign-in.
type LoginDependencies interface {
	Login(ctx context.Context, login, password string) (string, error)
}

// LoginHandler handles sign-in requests.
type LoginHandler struct {
	deps   LoginDependencies
	logger logger.Logger
}

// NewLoginHandler creates a new login handler.
func NewLoginHandler(deps LoginDependencies, log logger.Logger) *LoginHandler {
	return &LoginHandler{deps: deps, logger: log}
}

// loginRequest mirrors the OpenAPI schema for POST /login.
// Login accepts a username or an email.
type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (l loginRequest) validate() error {
	switch {
	case strings.TrimSpace(l.Login) == "":
		return errors.New("missing login")
	case l.Password == "":
		return errors.New("missing password")
	}
	return nil
}

type loginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// HandleLogin handles POST /login requests.
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	const op = "api.login"
	var req loginRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxLoginBody))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, wrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, wrapKind(op, ErrBadRequest, err))
		return
	}

	token, err := h.deps.Login(r.Context(), strings.TrimSpace(req.Login), req.Password)
	if err != nil {
		fail(r.Context(), h.logger, w, err)
		return
	}

	resp := loginResponse{Token: token}
	if exp, ok, err := auth.ExpiresAt(token); err == nil && ok {
		resp.ExpiresAt = &exp
	}
	writeJSON(w, http.StatusOK, resp)
}
