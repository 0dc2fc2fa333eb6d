package service

import (
	"time"

	"github.com/okian/xpdash/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithAuthenticator sets the sign-in client.
func WithAuthenticator(a Authenticator) Option {
	return func(s *Service) {
		if a != nil {
			s.auth = a
		}
	}
}

// WithFetcher sets the data API client.
func WithFetcher(f Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.data = f
		}
	}
}

// WithSettings sets the dashboard composition settings.
func WithSettings(settings Settings) Option {
	return func(s *Service) {
		s.settings = settings.withDefaults()
	}
}

// WithPiscinePaths sets the path fragments of piscine progress records.
func WithPiscinePaths(paths []string) Option {
	return func(s *Service) {
		s.piscinePaths = append([]string(nil), paths...)
	}
}

// WithClock sets the time source used for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
