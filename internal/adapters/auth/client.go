// Package auth signs users in against the platform and inspects the tokens it issues.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/xpdash/internal/adapters/graphql"
	"github.com/okian/xpdash/pkg/logger"
	"github.com/okian/xpdash/pkg/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	maxBody        = 1 << 20
	maxErrorText   = 200
)

// Client exchanges credentials for a token.
type Client struct {
	url    string
	http   *http.Client
	logger logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New constructs a Client posting to the sign-in url.
func New(url string, opts ...Option) *Client {
	c := &Client{
		url:    url,
		http:   &http.Client{Timeout: defaultTimeout},
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SignIn posts login:password as Basic credentials and returns the issued token.
// login may be a username or an email.
func (c *Client) SignIn(ctx context.Context, login, password string) (string, error) {
	if strings.TrimSpace(login) == "" || password == "" {
		return "", ErrMissingCredentials
	}

	token, err := c.signIn(ctx, login, password)
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
		c.logger.Warn(ctx, "sign-in failed", logger.String("login", login), logger.Error(err))
	}
	metrics.RecordLoginAttempt(outcome)
	return token, err
}

func (c *Client) signIn(ctx context.Context, login, password string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", ErrNetwork, err)
	}
	req.SetBasicAuth(login, password)
	req.Header.Set("Content-Type", "application/json")
	id, ok := graphql.RequestIDFromContext(ctx)
	if !ok {
		id = uuid.NewString()
	}
	req.Header.Set(graphql.RequestIDHeader, id)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden ||
		resp.StatusCode == http.StatusBadRequest:
		return "", fmt.Errorf("%w: %s", ErrInvalidCredentials, errorText(body))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", fmt.Errorf("%w: status %d", ErrHTTPStatus, resp.StatusCode)
	}

	token := ExtractToken(resp.Header, body)
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// ExtractToken finds the token in a sign-in response. Sources in order:
// an Authorization bearer header, an X-Token header, a JSON object field
// (token, access_token, jwt), a JSON string, the trimmed text body.
func ExtractToken(h http.Header, body []byte) string {
	if v, ok := bearer(h.Get("Authorization")); ok {
		return v
	}
	if v := strings.TrimSpace(h.Get("X-Token")); v != "" {
		return v
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	switch trimmed[0] {
	case '{':
		var obj struct {
			Token       string `json:"token"`
			AccessToken string `json:"access_token"`
			JWT         string `json:"jwt"`
		}
		if err := json.Unmarshal(trimmed, &obj); err == nil {
			for _, v := range []string{obj.Token, obj.AccessToken, obj.JWT} {
				if v = strings.TrimSpace(v); v != "" {
					return v
				}
			}
			return ""
		}
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return strings.TrimSpace(s)
		}
	}
	return string(trimmed)
}

func errorText(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "invalid credentials"
	}
	var obj struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(s), &obj); err == nil && obj.Error != "" {
		s = obj.Error
	}
	if r := []rune(s); len(r) > maxErrorText {
		s = string(r[:maxErrorText])
	}
	return s
}

// bearer returns the credentials of a "Bearer <token>" value. The scheme is
// matched case-insensitively; any other scheme yields false.
func bearer(v string) (string, bool) {
	const prefix = "bearer "
	v = strings.TrimSpace(v)
	if len(v) <= len(prefix) || !strings.EqualFold(v[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(v[len(prefix):])
	return token, token != ""
}
