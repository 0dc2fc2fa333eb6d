package config_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/okian/xpdash/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			// Clear any existing environment variables
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.XPFormat, convey.ShouldEqual, config.XPFormatKB)
				convey.So(cfg.XPPathSuffix, convey.ShouldEqual, "/div-01")
				convey.So(cfg.HTTPTimeout, convey.ShouldEqual, 10*time.Second)
				convey.So(cfg.PiscinePaths, convey.ShouldResemble, []string{"piscine-js", "piscine-go"})
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("XPDASH_ADDR", ":8080")
			_ = os.Setenv("XPDASH_API_BASE_URL", "http://localhost:4000")
			_ = os.Setenv("XPDASH_XP_FORMAT", "plain")
			_ = os.Setenv("XPDASH_HTTP_TIMEOUT", "3s")
			_ = os.Setenv("XPDASH_TOP_PROJECTS", "7")
			_ = os.Setenv("XPDASH_PISCINE_PATHS", "piscine-rust,piscine-ai")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.XPFormat, convey.ShouldEqual, "plain")
				convey.So(cfg.HTTPTimeout, convey.ShouldEqual, 3*time.Second)
				convey.So(cfg.TopProjects, convey.ShouldEqual, 7)
				convey.So(cfg.PiscinePaths, convey.ShouldResemble, []string{"piscine-rust", "piscine-ai"})
				convey.So(cfg.GraphQLURL(), convey.ShouldEqual, "http://localhost:4000/api/graphql-engine/v1/graphql")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
xp_path_suffix: ""
top_skills: 3
label_max_chars: 12
piscine_paths:
  - piscine-go
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			// Set the config file path
			_ = os.Setenv("XPDASH_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.XPPathSuffix, convey.ShouldEqual, "")
				convey.So(cfg.TopSkills, convey.ShouldEqual, 3)
				convey.So(cfg.LabelMaxChars, convey.ShouldEqual, 12)
				convey.So(cfg.PiscinePaths, convey.ShouldResemble, []string{"piscine-go"})
				convey.So(cfg.TopProjects, convey.ShouldEqual, 10) // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
top_exercises: 20
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("XPDASH_CONFIG", tmpFile)
			_ = os.Setenv("XPDASH_ADDR", ":8080") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")     // Overridden by env
				convey.So(cfg.TopExercises, convey.ShouldEqual, 20) // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("XPDASH_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("XPDASH_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("XPDASH_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown xp format", func() {
			_ = os.Setenv("XPDASH_XP_FORMAT", "mb")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("XPDASH_TOP_PROJECTS", "invalid")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with negative limits", func() {
			_ = os.Setenv("XPDASH_TOP_SKILLS", "-1")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should be rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "top_skills")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the CLI token variable is set", func() {
			_ = os.Setenv("XPDASH_TOKEN", "abc")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it is ignored by the loader", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
			})
		})
	})
}

// Helper functions.
func clearConfigEnvVars() {
	envVars := []string{
		"XPDASH_CONFIG",
		"XPDASH_TOKEN",
		"XPDASH_ADDR",
		"XPDASH_API_BASE_URL",
		"XPDASH_XP_FORMAT",
		"XPDASH_HTTP_TIMEOUT",
		"XPDASH_TOP_PROJECTS",
		"XPDASH_TOP_SKILLS",
		"XPDASH_PISCINE_PATHS",
	}

	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "xpdash-config-*.yaml")
	if err != nil {
		panic(err)
	}
	defer func() { _ = tmpFile.Close() }()

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
