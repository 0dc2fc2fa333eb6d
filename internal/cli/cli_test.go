package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/okian/xpdash/internal/app"
	"github.com/okian/xpdash/internal/config"
	"github.com/okian/xpdash/internal/domain/chart"
	"github.com/okian/xpdash/internal/domain/model"
	"github.com/okian/xpdash/pkg/logger"
)

type fakeBackend struct {
	token    string
	loginErr error
	result   service.Result
	dashErr  error
	gotUser  string
	gotToken string
}

func (f *fakeBackend) Login(_ context.Context, login, _ string) (string, error) {
	f.gotUser = login
	return f.token, f.loginErr
}

func (f *fakeBackend) Dashboard(_ context.Context, tok string) (service.Result, error) {
	f.gotToken = tok
	return f.result, f.dashErr
}

func run(b *fakeBackend, args ...string) (string, error) {
	cmd := NewRootCommand(func(*config.Config, logger.Logger) (Backend, error) { return b, nil })
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func sampleResult() service.Result {
	return service.Result{
		Dashboard: model.Dashboard{
			User: model.User{Login: "alice", FirstName: "Alice", LastName: "Doe"},
			XP:   model.XPTotal{Amount: 12345, Formatted: "12.3 kB"},
			Audit: model.AuditSummary{
				AuditAggregate: model.AuditAggregate{Up: 2000, Down: 1000, Ratio: "2.00"},
				UpFormatted:    "2.0 kB",
				DownFormatted:  "1.0 kB",
			},
			TopProjects: []model.ProjectEntry{
				{Aggregate: model.Aggregate{Key: "7", Label: "go-reloaded", Value: 12345}, Formatted: "12.3 kB"},
			},
			Skills:   []model.Aggregate{{Key: "skill_go", Label: "go", Value: 60}},
			PassFail: model.PassFail{Passed: 1, Failed: 1, Total: 2, PassPercentage: "50.0"},
			Warnings: []string{"technologies"},
		},
		Charts: chart.Set{
			{Name: chart.NamePassFail, Width: 10, Height: 10},
			{Name: chart.NameAuditGauge, Width: 10, Height: 10},
		},
	}
}

func TestLoginCommand(t *testing.T) {
	Convey("Given the login command", t, func() {
		b := &fakeBackend{token: "tok-123"}

		Convey("When credentials are given", func() {
			out, err := run(b, "login", "--user", "alice", "--password", "pw")

			Convey("Then the token is printed", func() {
				So(err, ShouldBeNil)
				So(out, ShouldEqual, "tok-123\n")
				So(b.gotUser, ShouldEqual, "alice")
			})
		})

		Convey("When the password is missing", func() {
			_, err := run(b, "login", "-u", "alice")

			Convey("Then it fails without calling the platform", func() {
				So(errors.Is(err, ErrMissingCredentials), ShouldBeTrue)
				So(b.gotUser, ShouldBeEmpty)
			})
		})

		Convey("When the platform rejects the credentials", func() {
			b.loginErr = errors.New("invalid credentials")
			_, err := run(b, "login", "-u", "alice", "-p", "bad")

			Convey("Then the error is returned", func() {
				So(err, ShouldEqual, b.loginErr)
			})
		})
	})
}

func TestSummaryCommand(t *testing.T) {
	Convey("Given the summary command", t, func() {
		b := &fakeBackend{result: sampleResult()}
		t.Setenv(EnvToken, "")

		Convey("When a token flag is given", func() {
			out, err := run(b, "summary", "--token", "tok")

			Convey("Then the summary lists the headline figures", func() {
				So(err, ShouldBeNil)
				So(b.gotToken, ShouldEqual, "tok")
				So(out, ShouldContainSubstring, "Alice Doe (alice)")
				So(out, ShouldContainSubstring, "12.3 kB")
				So(out, ShouldContainSubstring, "2.00")
				So(out, ShouldContainSubstring, "50.0%")
				So(out, ShouldContainSubstring, "go-reloaded")
				So(out, ShouldContainSubstring, "60")
				So(out, ShouldContainSubstring, "technologies")
			})
		})

		Convey("When only the environment holds the token", func() {
			t.Setenv(EnvToken, "env-tok")
			_, err := run(b, "summary")

			Convey("Then the environment token is used", func() {
				So(err, ShouldBeNil)
				So(b.gotToken, ShouldEqual, "env-tok")
			})
		})

		Convey("When no token is available", func() {
			_, err := run(b, "summary")

			Convey("Then it fails", func() {
				So(errors.Is(err, ErrMissingToken), ShouldBeTrue)
			})
		})

		Convey("When JSON output is requested", func() {
			out, err := run(b, "summary", "-t", "tok", "--json")

			Convey("Then the dashboard is printed as JSON", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, `"login": "alice"`)
				So(out, ShouldContainSubstring, `"latest_projects"`)
			})
		})
	})
}

func TestRenderCommand(t *testing.T) {
	Convey("Given the render command", t, func() {
		b := &fakeBackend{result: sampleResult()}
		dir := filepath.Join(t.TempDir(), "charts")

		Convey("When rendering into a new directory", func() {
			out, err := run(b, "render", "-t", "tok", "--out", dir)

			Convey("Then every chart is written as SVG", func() {
				So(err, ShouldBeNil)
				for _, name := range []string{chart.NamePassFail, chart.NameAuditGauge} {
					data, readErr := os.ReadFile(filepath.Join(dir, name+".svg"))
					So(readErr, ShouldBeNil)
					So(string(data), ShouldStartWith, "<svg")
				}
				So(strings.Count(out, ".svg"), ShouldEqual, 2)
			})
		})

		Convey("When the dashboard fails", func() {
			b.dashErr = service.ErrSessionExpired
			_, err := run(b, "render", "-t", "tok", "--out", dir)

			Convey("Then nothing is written", func() {
				So(errors.Is(err, service.ErrSessionExpired), ShouldBeTrue)
				_, statErr := os.Stat(dir)
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})
	})
}

func TestInvalidLogLevel(t *testing.T) {
	Convey("Given an unknown log level", t, func() {
		_, err := run(&fakeBackend{}, "--log-level", "loud", "login", "-u", "a", "-p", "b")

		Convey("Then the command fails before running", func() {
			So(err, ShouldNotBeNil)
		})
	})
}
