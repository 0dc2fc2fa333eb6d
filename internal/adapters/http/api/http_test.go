package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/xpdash/internal/adapters/auth"
	"github.com/okian/xpdash/internal/adapters/graphql"
	"github.com/okian/xpdash/internal/adapters/http/api"
	service "github.com/okian/xpdash/internal/app"
	"github.com/okian/xpdash/internal/domain/chart"
	"github.com/okian/xpdash/internal/domain/model"
)

// mockDeps implements api.Dependencies.
type mockDeps struct {
	token     string
	loginErr  error
	result    service.Result
	dashErr   error
	chart     chart.Chart
	chartErr  error
	gotLogin  string
	gotToken  string
	gotChart  string
	requestID string
	dashCalls int
	chartHits int
}

func (m *mockDeps) Login(_ context.Context, login, _ string) (string, error) {
	m.gotLogin = login
	return m.token, m.loginErr
}

func (m *mockDeps) Dashboard(ctx context.Context, token string) (service.Result, error) {
	m.gotToken = token
	m.dashCalls++
	m.requestID, _ = graphql.RequestIDFromContext(ctx)
	return m.result, m.dashErr
}

func (m *mockDeps) Chart(_ context.Context, token, name string) (chart.Chart, error) {
	m.gotToken = token
	m.gotChart = name
	m.chartHits++
	return m.chart, m.chartErr
}

func newMux(deps api.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, nil).Register(context.Background(), mux)
	return mux
}

func serve(mux *http.ServeMux, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) (code, message string) {
	var resp struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
	return resp.Code, resp.Message
}

func bearer(tok string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + tok}
}

func TestLogin(t *testing.T) {
	Convey("Given the API server", t, func() {
		deps := &mockDeps{token: "tok"}
		mux := newMux(deps)

		Convey("When the credentials are valid", func() {
			w := serve(mux, http.MethodPost, "/login", `{"login":" alice ","password":"pw"}`, nil)

			Convey("Then the token is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
				var resp struct {
					Token string `json:"token"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Token, ShouldEqual, "tok")
				So(deps.gotLogin, ShouldEqual, "alice")
			})

			Convey("And a request id is attached", func() {
				So(w.Header().Get(graphql.RequestIDHeader), ShouldNotBeEmpty)
			})
		})

		Convey("When the body is not JSON", func() {
			w := serve(mux, http.MethodPost, "/login", `login=alice`, nil)

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				code, _ := decodeError(w)
				So(code, ShouldEqual, "bad_request")
			})
		})

		Convey("When the password is missing", func() {
			w := serve(mux, http.MethodPost, "/login", `{"login":"alice"}`, nil)

			Convey("Then it is a bad request naming the field", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				_, msg := decodeError(w)
				So(msg, ShouldContainSubstring, "missing password")
			})
		})

		Convey("When the platform rejects the credentials", func() {
			deps.loginErr = fmt.Errorf("%w: User does not exist or password incorrect", auth.ErrInvalidCredentials)
			w := serve(mux, http.MethodPost, "/login", `{"login":"alice","password":"bad"}`, nil)

			Convey("Then the response is 401 invalid_credentials", func() {
				So(w.Code, ShouldEqual, http.StatusUnauthorized)
				code, msg := decodeError(w)
				So(code, ShouldEqual, "invalid_credentials")
				So(msg, ShouldContainSubstring, "password incorrect")
			})
		})

		Convey("When the platform is unreachable", func() {
			deps.loginErr = fmt.Errorf("%w: connection refused", auth.ErrNetwork)
			w := serve(mux, http.MethodPost, "/login", `{"login":"alice","password":"pw"}`, nil)

			Convey("Then the response is 502", func() {
				So(w.Code, ShouldEqual, http.StatusBadGateway)
				code, _ := decodeError(w)
				So(code, ShouldEqual, "upstream_error")
			})
		})

		Convey("When GET is used", func() {
			w := serve(mux, http.MethodGet, "/login", "", nil)

			Convey("Then the method is not allowed", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

func TestDashboard(t *testing.T) {
	Convey("Given the API server", t, func() {
		deps := &mockDeps{result: service.Result{
			Dashboard: model.Dashboard{
				User:        model.User{Login: "alice", FirstName: "Alice", LastName: "Doe"},
				DisplayName: "Alice Doe",
				XP:          model.XPTotal{Amount: 12345, Formatted: "12.3 kB"},
				Skills:      []model.Aggregate{},
				Warnings:    []string{"skills"},
			},
			Charts: chart.Set{
				{Name: chart.NameAuditGauge, Width: 100, Height: 100},
				{Name: chart.NamePassFail, Width: 100, Height: 100, Elements: []chart.Element{
					chart.Circle{CX: 50, CY: 50, R: 40, Style: chart.Style{Fill: "#4caf50"}},
				}},
			},
		}}
		mux := newMux(deps)

		Convey("When no bearer token is sent", func() {
			w := serve(mux, http.MethodGet, "/dashboard", "", nil)

			Convey("Then it is unauthorized", func() {
				So(w.Code, ShouldEqual, http.StatusUnauthorized)
				code, _ := decodeError(w)
				So(code, ShouldEqual, "unauthorized")
			})
		})

		Convey("When a bearer token is sent", func() {
			w := serve(mux, http.MethodGet, "/dashboard", "", map[string]string{
				"Authorization":         "bearer tok",
				graphql.RequestIDHeader: "req-1",
			})

			Convey("Then the dashboard is returned as JSON", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var d model.Dashboard
				So(json.Unmarshal(w.Body.Bytes(), &d), ShouldBeNil)
				So(d.User.Login, ShouldEqual, "alice")
				So(d.XP.Formatted, ShouldEqual, "12.3 kB")
				So(d.Warnings, ShouldResemble, []string{"skills"})
				So(deps.gotToken, ShouldEqual, "tok")
			})

			Convey("And charts are left out", func() {
				So(w.Body.String(), ShouldNotContainSubstring, `"charts"`)
			})

			Convey("And the caller request id is propagated", func() {
				So(w.Header().Get(graphql.RequestIDHeader), ShouldEqual, "req-1")
				So(deps.requestID, ShouldEqual, "req-1")
			})
		})

		Convey("When the charts are requested alongside", func() {
			w := serve(mux, http.MethodGet, "/dashboard?charts=svg", "", bearer("tok"))

			Convey("Then every chart is drawn from a single dashboard call", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					DisplayName string            `json:"display_name"`
					Charts      map[string]string `json:"charts"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.DisplayName, ShouldEqual, "Alice Doe")
				So(resp.Charts, ShouldHaveLength, 2)
				So(resp.Charts[chart.NamePassFail], ShouldStartWith, "<svg")
				So(resp.Charts[chart.NamePassFail], ShouldContainSubstring, "<circle")
				So(resp.Charts[chart.NameAuditGauge], ShouldStartWith, "<svg")
				So(deps.dashCalls, ShouldEqual, 1)
				So(deps.chartHits, ShouldEqual, 0)
			})
		})

		Convey("When an unsupported chart format is requested", func() {
			w := serve(mux, http.MethodGet, "/dashboard?charts=png", "", bearer("tok"))

			Convey("Then it is a bad request and nothing is fetched", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(deps.dashCalls, ShouldEqual, 0)
			})
		})

		Convey("When the session has expired", func() {
			deps.dashErr = service.ErrSessionExpired
			w := serve(mux, http.MethodGet, "/dashboard", "", bearer("tok"))

			Convey("Then the response is 401 session_expired", func() {
				So(w.Code, ShouldEqual, http.StatusUnauthorized)
				code, _ := decodeError(w)
				So(code, ShouldEqual, "session_expired")
			})
		})

		Convey("When the data API is unavailable", func() {
			deps.dashErr = fmt.Errorf("%w: user query", service.ErrUnavailable)
			w := serve(mux, http.MethodGet, "/dashboard", "", bearer("tok"))

			Convey("Then the response is 502", func() {
				So(w.Code, ShouldEqual, http.StatusBadGateway)
			})
		})

		Convey("When the service fails unexpectedly", func() {
			deps.dashErr = errors.New("boom")
			w := serve(mux, http.MethodGet, "/dashboard", "", bearer("tok"))

			Convey("Then the response is 500", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				code, _ := decodeError(w)
				So(code, ShouldEqual, "internal_error")
			})
		})
	})
}

func TestCharts(t *testing.T) {
	Convey("Given the API server", t, func() {
		deps := &mockDeps{chart: chart.Chart{
			Name:   chart.NamePassFail,
			Width:  100,
			Height: 100,
			Elements: []chart.Element{
				chart.Circle{CX: 50, CY: 50, R: 40, Style: chart.Style{Fill: "#4caf50"}},
			},
		}}
		mux := newMux(deps)

		Convey("When a known chart is requested", func() {
			w := serve(mux, http.MethodGet, "/charts/pass-fail.svg", "", bearer("tok"))

			Convey("Then SVG markup is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "image/svg+xml")
				So(w.Body.String(), ShouldStartWith, "<svg")
				So(w.Body.String(), ShouldContainSubstring, "<circle")
				So(deps.gotChart, ShouldEqual, chart.NamePassFail)
			})
		})

		Convey("When the chart name is unknown", func() {
			w := serve(mux, http.MethodGet, "/charts/radar.svg", "", bearer("tok"))

			Convey("Then it is not found and the service is not called", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(deps.gotChart, ShouldBeEmpty)
			})
		})

		Convey("When the extension is missing", func() {
			w := serve(mux, http.MethodGet, "/charts/pass-fail", "", bearer("tok"))

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When no token is sent", func() {
			w := serve(mux, http.MethodGet, "/charts/pass-fail.svg", "", nil)

			Convey("Then it is unauthorized", func() {
				So(w.Code, ShouldEqual, http.StatusUnauthorized)
			})
		})
	})
}

func TestHealth(t *testing.T) {
	Convey("Given the API server", t, func() {
		mux := newMux(&mockDeps{})

		Convey("When JSON is requested", func() {
			w := serve(mux, http.MethodGet, "/healthz", "", map[string]string{"Accept": "application/json"})

			Convey("Then the status document is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"status":"ok"`)
			})
		})

		Convey("When no Accept header is sent", func() {
			w := serve(mux, http.MethodGet, "/healthz", "", nil)

			Convey("Then the metrics exposition is served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/plain")
			})
		})
	})
}
