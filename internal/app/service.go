// Package service provides the dashboard service behind the HTTP API and the CLI.
//
// It signs users in, fans the data API queries out concurrently, and runs the
// analytics engine over the fetched records. Only the user query is required;
// every other query falls back to an empty result and is reported as a warning.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/xpdash/internal/adapters/auth"
	"github.com/okian/xpdash/internal/adapters/graphql"
	"github.com/okian/xpdash/internal/domain/chart"
	"github.com/okian/xpdash/internal/domain/model"
	"github.com/okian/xpdash/pkg/logger"
	"github.com/okian/xpdash/pkg/metrics"
)

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	SignIn(ctx context.Context, login, password string) (string, error)
}

// Fetcher reads raw records from the data API.
type Fetcher interface {
	User(ctx context.Context, token string) (model.User, error)
	ProjectTransactions(ctx context.Context, token string) ([]model.TransactionRecord, error)
	XPTransactions(ctx context.Context, token, pathSuffix string) ([]model.TransactionRecord, error)
	AuditTransactions(ctx context.Context, token, pathSuffix string) ([]model.TransactionRecord, error)
	SkillTransactions(ctx context.Context, token string) ([]model.TransactionRecord, error)
	PiscineProgress(ctx context.Context, token string, paths []string) ([]model.ProgressRecord, error)
	TechnologyRecords(ctx context.Context, token string) (graphql.TechnologyData, error)
}

// Result is a composed dashboard and its charts.
type Result struct {
	Dashboard model.Dashboard
	Charts    chart.Set
}

// Service composes dashboards for signed-in users. It holds no per-user state.
type Service struct {
	auth         Authenticator
	data         Fetcher
	settings     Settings
	piscinePaths []string
	now          func() time.Time
	logger       logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		settings:     DefaultSettings(),
		piscinePaths: []string{"piscine-js", "piscine-go"},
		now:          time.Now,
		logger:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Settings returns the composition settings in use.
func (s *Service) Settings() Settings { return s.settings }

// Login signs the user in and returns the token.
func (s *Service) Login(ctx context.Context, login, password string) (string, error) {
	if s.auth == nil {
		return "", ErrNotConfigured
	}
	token, err := s.auth.SignIn(ctx, login, password)
	if err != nil {
		return "", err
	}
	s.logger.Info(ctx, "user signed in", logger.String("login", login))
	return token, nil
}

// Dashboard fetches every record for token and composes the dashboard.
func (s *Service) Dashboard(ctx context.Context, token string) (Result, error) {
	start := time.Now()
	snap, err := s.Fetch(ctx, token)
	if err != nil {
		metrics.RecordDashboardBuild(metrics.OutcomeFailure, msSince(start))
		return Result{}, err
	}

	d, charts := Build(snap, s.settings)

	outcome := metrics.OutcomeSuccess
	if len(snap.Warnings) > 0 {
		outcome = metrics.OutcomeFallback
	}
	metrics.RecordDashboardBuild(outcome, msSince(start))
	s.logger.Debug(ctx, "dashboard composed",
		logger.String("login", d.User.Login),
		logger.Int("projects", len(d.Projects)),
		logger.Int("warnings", len(d.Warnings)),
		logger.Duration("elapsed", time.Since(start)),
	)
	return Result{Dashboard: d, Charts: charts}, nil
}

// Chart composes the dashboard and returns the chart called name.
func (s *Service) Chart(ctx context.Context, token, name string) (chart.Chart, error) {
	if !chart.Known(name) {
		return chart.Chart{}, fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
	res, err := s.Dashboard(ctx, token)
	if err != nil {
		return chart.Chart{}, err
	}
	c, _ := res.Charts.Get(name)
	metrics.RecordChartRender(name)
	return c, nil
}

// Fetch runs every data API query concurrently.
// An expired session from any query fails the whole fetch.
func (s *Service) Fetch(ctx context.Context, token string) (Snapshot, error) {
	if s.data == nil {
		return Snapshot{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return Snapshot{}, ErrMissingToken
	}
	if auth.IsExpired(token, s.now()) {
		metrics.RecordSessionExpired()
		return Snapshot{}, ErrSessionExpired
	}

	var (
		snap Snapshot
		mu   sync.Mutex
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		u, err := s.data.User(gctx, token)
		if err != nil {
			return err
		}
		snap.User = u
		return nil
	})

	optional := func(name string, run func(context.Context) error) {
		g.Go(func() error {
			err := run(gctx)
			if err == nil {
				return nil
			}
			if errors.Is(err, graphql.ErrSessionExpired) {
				return err
			}
			if gctx.Err() != nil {
				// another query already failed the fetch
				return nil
			}
			s.logger.Warn(gctx, "optional query failed, using default",
				logger.String("query", name),
				logger.Error(err),
			)
			metrics.RecordQueryFallback(name)
			mu.Lock()
			snap.Warnings = append(snap.Warnings, name)
			mu.Unlock()
			return nil
		})
	}

	suffix := s.settings.PathSuffix
	optional(graphql.QueryProjects, func(ctx context.Context) (err error) {
		snap.Projects, err = s.data.ProjectTransactions(ctx, token)
		return err
	})
	optional(graphql.QueryXP, func(ctx context.Context) (err error) {
		snap.XP, err = s.data.XPTransactions(ctx, token, suffix)
		return err
	})
	optional(graphql.QueryAudit, func(ctx context.Context) (err error) {
		snap.Audits, err = s.data.AuditTransactions(ctx, token, suffix)
		return err
	})
	optional(graphql.QuerySkills, func(ctx context.Context) (err error) {
		snap.Skills, err = s.data.SkillTransactions(ctx, token)
		return err
	})
	optional(graphql.QueryPiscine, func(ctx context.Context) (err error) {
		snap.Piscine, err = s.data.PiscineProgress(ctx, token, s.piscinePaths)
		return err
	})
	optional(graphql.QueryTechnologies, func(ctx context.Context) (err error) {
		snap.Technology, err = s.data.TechnologyRecords(ctx, token)
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, s.mapError(ctx, err)
	}
	sort.Strings(snap.Warnings)
	return snap, nil
}

// mapError translates a required-query failure into a service error.
func (s *Service) mapError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, graphql.ErrSessionExpired):
		metrics.RecordSessionExpired()
		s.logger.Info(ctx, "session expired")
		return fmt.Errorf("%w: %w", ErrSessionExpired, err)
	case errors.Is(err, graphql.ErrUnauthorized), errors.Is(err, graphql.ErrUserNotFound):
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		s.logger.Error(ctx, "required query failed", logger.Error(err))
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
