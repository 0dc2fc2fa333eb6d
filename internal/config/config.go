// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers defaults, an optional YAML file and XPDASH_ environment variables.
// - External errors must be wrapped via this package's sentinel errors.
package config

import (
	"fmt"
	"strings"
	"time"
)

// XP format names accepted by XPFormat.
const (
	XPFormatKB    = "kb"
	XPFormatPlain = "plain"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// APIBaseURL is the platform root, e.g. "https://platform.zone01.gr".
	APIBaseURL string `koanf:"api_base_url"`

	// SignInPath and GraphQLPath are resolved against APIBaseURL.
	SignInPath  string `koanf:"signin_path"`
	GraphQLPath string `koanf:"graphql_path"`

	// HTTPTimeout bounds each upstream call.
	HTTPTimeout time.Duration `koanf:"http_timeout"`

	// XPFormat selects how XP amounts are displayed: kb or plain.
	XPFormat string `koanf:"xp_format"`

	// XPPathSuffix restricts XP and audit totals to events whose path ends with it.
	// Empty disables the filter.
	XPPathSuffix string `koanf:"xp_path_suffix"`

	// PiscinePaths are path fragments identifying piscine progress records.
	PiscinePaths []string `koanf:"piscine_paths"`

	// Display limits applied after full aggregation.
	TopProjects     int `koanf:"top_projects"`
	TopSkills       int `koanf:"top_skills"`
	TopExercises    int `koanf:"top_exercises"`
	TopTechnologies int `koanf:"top_technologies"`
	LatestProjects  int `koanf:"latest_projects"`

	// LabelMaxChars truncates chart labels.
	LabelMaxChars int `koanf:"label_max_chars"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		APIBaseURL:      "https://platform.zone01.gr",
		SignInPath:      "/api/auth/signin",
		GraphQLPath:     "/api/graphql-engine/v1/graphql",
		HTTPTimeout:     10 * time.Second,
		XPFormat:        XPFormatKB,
		XPPathSuffix:    "/div-01",
		PiscinePaths:    []string{"piscine-js", "piscine-go"},
		TopProjects:     10,
		TopSkills:       5,
		TopExercises:    15,
		TopTechnologies: 5,
		LatestProjects:  5,
		LabelMaxChars:   25,
	}
}

// SignInURL returns the absolute sign-in endpoint.
func (c *Config) SignInURL() string { return joinURL(c.APIBaseURL, c.SignInPath) }

// GraphQLURL returns the absolute GraphQL endpoint.
func (c *Config) GraphQLURL() string { return joinURL(c.APIBaseURL, c.GraphQLPath) }

// Validate checks the configuration. Failures wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("%w: api_base_url must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(strings.TrimSpace(c.XPFormat)) {
	case XPFormatKB, XPFormatPlain:
	default:
		return fmt.Errorf("%w: xp_format must be %q or %q, got %q", ErrInvalidConfig, XPFormatKB, XPFormatPlain, c.XPFormat)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("%w: http_timeout must not be negative", ErrInvalidConfig)
	}
	for name, v := range map[string]int{
		"top_projects":     c.TopProjects,
		"top_skills":       c.TopSkills,
		"top_exercises":    c.TopExercises,
		"top_technologies": c.TopTechnologies,
		"latest_projects":  c.LatestProjects,
		"label_max_chars":  c.LabelMaxChars,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, name)
		}
	}
	return nil
}

func joinURL(base, path string) string {
	if path == "" {
		return strings.TrimRight(base, "/")
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
