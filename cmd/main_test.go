package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/okian/vgsales/internal/adapters/http/api"
	app "github.com/okian/vgsales/internal/app"
	"github.com/okian/vgsales/internal/config"
	"github.com/okian/vgsales/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.InitWriter(&strings.Builder{})
}

func testConfig() *config.Config {
	cfg := config.New()
	cfg.DatasetPath = "../data/vgsales.csv"
	cfg.CORSAllowedOrigins = "http://example.test"
	return cfg
}

func TestMainConfiguration(t *testing.T) {
	convey.Convey("Given environment overrides", t, func() {
		_ = os.Setenv("VGSALES_ADDR", ":9090")
		_ = os.Setenv("VGSALES_DEFAULT_RESULT_COUNT", "10")
		defer func() {
			_ = os.Unsetenv("VGSALES_ADDR")
			_ = os.Unsetenv("VGSALES_DEFAULT_RESULT_COUNT")
		}()

		convey.Convey("Then configuration should be loadable", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
			convey.So(cfg.InitialState().ResultCount, convey.ShouldEqual, 10)
		})
	})

	convey.Convey("Given an invalid address", t, func() {
		_ = os.Setenv("VGSALES_ADDR", " ")
		defer func() { _ = os.Unsetenv("VGSALES_ADDR") }()

		convey.Convey("Then configuration loading should fail", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})
	})
}

func TestMainWiring(t *testing.T) {
	convey.Convey("Given a started service behind the full handler", t, func() {
		ctx := context.Background()
		cfg := testConfig()
		cfg.DefaultRegion = "EU_Sales"

		svc := newService(cfg)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		h := newHandler(ctx, cfg, svc)

		convey.Convey("The initial state follows the configuration", func() {
			convey.So(svc.State().Region.Column(), convey.ShouldEqual, "EU_Sales")
		})

		convey.Convey("Every route is mounted", func() {
			for _, path := range []string{"/", "/healthz", "/stats", "/api/state", "/api/options", "/api/bundle", "/api/charts/title", "/api-docs", "/openapi.yaml"} {
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("Responses carry a request id", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/state", http.NoBody))
			convey.So(w.Header().Get(api.RequestIDHeader), convey.ShouldNotBeEmpty)
		})

		convey.Convey("CORS preflight is answered for allowed origins", func() {
			req := httptest.NewRequest(http.MethodOptions, "/api/state", http.NoBody)
			req.Header.Set("Origin", "http://example.test")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			convey.So(w.Header().Get("Access-Control-Allow-Origin"), convey.ShouldEqual, "http://example.test")
		})

		convey.Convey("Disallowed origins get no CORS headers", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/state", http.NoBody)
			req.Header.Set("Origin", "http://other.test")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			convey.So(w.Header().Get("Access-Control-Allow-Origin"), convey.ShouldBeEmpty)
		})

		convey.Convey("Service metrics update without panicking", func() {
			convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
		})
	})
}

func TestMainMetricsUpdaters(t *testing.T) {
	convey.Convey("Given cancelled contexts", t, func() {
		convey.Convey("The system metrics updater returns", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
		})

		convey.Convey("The service metrics updater returns", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			convey.So(func() { startServiceMetricsUpdater(ctx, app.New()) }, convey.ShouldNotPanic)
		})

		convey.Convey("System metrics update directly", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})
	})
}
