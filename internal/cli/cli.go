// Package cli implements the xpdash command line: sign in, print a summary of
// the dashboard, and render every chart to SVG files.
package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	service "github.com/okian/xpdash/internal/app"
	"github.com/okian/xpdash/internal/config"
	"github.com/okian/xpdash/pkg/logger"
)

// EnvToken is read when --token is not given.
const EnvToken = config.EnvPrefix + "TOKEN"

// Backend is the part of the dashboard service the commands use.
type Backend interface {
	Login(ctx context.Context, login, password string) (string, error)
	Dashboard(ctx context.Context, token string) (service.Result, error)
}

// BackendFactory builds a Backend from the loaded configuration.
type BackendFactory func(cfg *config.Config, log logger.Logger) (Backend, error)

// DefaultBackend talks to the platform configured in cfg.
func DefaultBackend(cfg *config.Config, log logger.Logger) (Backend, error) {
	svc, err := service.NewFromConfig(cfg, log)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

type app struct {
	factory  BackendFactory
	backend  Backend
	logLevel string
}

// NewRootCommand returns the xpdash command tree.
func NewRootCommand(factory BackendFactory) *cobra.Command {
	if factory == nil {
		factory = DefaultBackend
	}
	a := &app{factory: factory}

	root := &cobra.Command{
		Use:           "xpdash",
		Short:         "Profile dashboard for the school platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(a.loginCmd())
	root.AddCommand(a.summaryCmd())
	root.AddCommand(a.renderCmd())
	return root
}

// Execute runs the command tree with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand(DefaultBackend).ExecuteContext(ctx)
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	log, err := logger.New(
		logger.WithWriter(cmd.ErrOrStderr()),
		logger.WithFormat(cfg.LogFormat),
		logger.WithLevel(a.logLevel),
	)
	if err != nil {
		return err
	}
	a.backend, err = a.factory(cfg, log)
	return err
}

// token returns flag, falling back to EnvToken.
func token(flag string) (string, error) {
	if t := strings.TrimSpace(flag); t != "" {
		return t, nil
	}
	if t := strings.TrimSpace(os.Getenv(EnvToken)); t != "" {
		return t, nil
	}
	return "", ErrMissingToken
}
