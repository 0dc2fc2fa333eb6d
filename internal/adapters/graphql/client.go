// Package graphql is the fetch boundary to the platform data API.
//
// The Client posts GraphQL documents with a bearer token and maps transport,
// status and GraphQL-level failures onto the sentinel errors in errors.go.
// Typed query methods decode responses into domain records.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/xpdash/pkg/logger"
	"github.com/okian/xpdash/pkg/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	defaultMaxBody = 8 << 20

	// RequestIDHeader correlates an upstream call with the request that caused it.
	RequestIDHeader = "X-Request-ID"

	codeInvalidJWT     = "invalid-jwt"
	codeInvalidHeaders = "invalid-headers"
)

// Client talks to a GraphQL endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	logger   logger.Logger
	maxBody  int64
}

// New constructs a Client for endpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: defaultTimeout},
		logger:   logger.Nop(),
		maxBody:  defaultMaxBody,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

type gqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type requestIDKey struct{}

// ContextWithRequestID attaches a request id that Do forwards upstream.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id attached by ContextWithRequestID.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// Do posts query with vars and decodes the data object into out.
// out may be nil when the caller only cares about success.
func (c *Client) Do(ctx context.Context, token, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(request{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("%w: encode request: %w", ErrMalformedResponse, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %w", ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	id, ok := RequestIDFromContext(ctx)
	if !ok {
		id = uuid.NewString()
	}
	req.Header.Set(RequestIDHeader, id)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrNetwork, err)
	}
	metrics.RecordUpstreamBytes(len(raw))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %w: status %d", ErrHTTPStatus, ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: status %d", ErrHTTPStatus, resp.StatusCode)
	}

	var envelope response
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if len(envelope.Errors) > 0 {
		return classify(envelope.Errors)
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return fmt.Errorf("%w: missing data", ErrMalformedResponse)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}

// query runs a named query and records its outcome.
func (c *Client) query(ctx context.Context, name, token, doc string, vars map[string]any, out any) error {
	start := time.Now()
	err := c.Do(ctx, token, doc, vars, out)
	elapsed := time.Since(start)

	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
	case errors.Is(err, ErrSessionExpired):
		outcome = metrics.OutcomeExpired
	default:
		outcome = metrics.OutcomeFailure
		metrics.RecordErrorByComponent("graphql", name)
	}
	metrics.RecordUpstreamQuery(name, outcome, float64(elapsed.Milliseconds()))

	c.logger.Debug(ctx, "upstream query",
		logger.String("query", name),
		logger.String("outcome", outcome),
		logger.Duration("elapsed", elapsed),
	)
	return err
}

// classify maps GraphQL errors onto sentinel errors. The first error wins.
func classify(errs []gqlError) error {
	first := errs[0]
	msg := first.Message
	lower := strings.ToLower(msg)

	if strings.Contains(lower, "jwtexpired") || strings.Contains(lower, "jwt_expired") ||
		(first.Extensions.Code == codeInvalidJWT && strings.Contains(lower, "expired")) {
		return fmt.Errorf("%w: %s", ErrSessionExpired, msg)
	}
	if first.Extensions.Code == codeInvalidJWT || first.Extensions.Code == codeInvalidHeaders {
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	}
	if msg == "" {
		msg = "query failed"
	}
	return fmt.Errorf("%w: %s", ErrQuery, msg)
}
