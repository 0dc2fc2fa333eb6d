package service

import (
	"github.com/okian/xpdash/internal/adapters/auth"
	"github.com/okian/xpdash/internal/adapters/graphql"
	"github.com/okian/xpdash/internal/config"
	"github.com/okian/xpdash/pkg/logger"
)

// NewFromConfig builds a Service talking to the platform configured in cfg.
func NewFromConfig(cfg *config.Config, log logger.Logger) (*Service, error) {
	if log == nil {
		log = logger.Nop()
	}
	settings, err := SettingsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return New(
		WithAuthenticator(auth.New(cfg.SignInURL(),
			auth.WithTimeout(cfg.HTTPTimeout),
			auth.WithLogger(log.Named("auth")),
		)),
		WithFetcher(graphql.New(cfg.GraphQLURL(),
			graphql.WithTimeout(cfg.HTTPTimeout),
			graphql.WithLogger(log.Named("graphql")),
		)),
		WithSettings(settings),
		WithPiscinePaths(cfg.PiscinePaths),
		WithLogger(log.Named("service")),
	), nil
}
