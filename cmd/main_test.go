package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	app "github.com/okian/squads/internal/app"
	"github.com/okian/squads/internal/config"
	"github.com/okian/squads/internal/domain/taxonomy"
	"github.com/okian/squads/pkg/logger"
)

func TestConfigFromEnv(t *testing.T) {
	convey.Convey("Given environment overrides", t, func() {
		_ = os.Setenv("SQUADS_ADDR", ":8080")
		_ = os.Setenv("SQUADS_DEFAULT_SQUAD_SIZE", "3")
		_ = os.Setenv("SQUADS_FORMATION_SEED", "42")
		defer func() {
			_ = os.Unsetenv("SQUADS_ADDR")
			_ = os.Unsetenv("SQUADS_DEFAULT_SQUAD_SIZE")
			_ = os.Unsetenv("SQUADS_FORMATION_SEED")
		}()

		convey.Convey("Then configuration should pick them up", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.DefaultSquadSize, convey.ShouldEqual, 3)
			convey.So(cfg.FormationSeed, convey.ShouldEqual, int64(42))
		})
	})

	convey.Convey("Given an invalid squad size", t, func() {
		_ = os.Setenv("SQUADS_DEFAULT_SQUAD_SIZE", "0")
		defer func() { _ = os.Unsetenv("SQUADS_DEFAULT_SQUAD_SIZE") }()

		convey.Convey("Then configuration loading should fail", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})
	})
}

func TestWiring(t *testing.T) {
	convey.Convey("Given a service built from default configuration", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)
		svc := newService(cfg, taxonomy.Default(), logger.NewNop())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		mux := newMux(ctx, cfg, svc, logger.NewNop())

		get := func(path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
			return w
		}

		convey.Convey("Then every route group should be reachable", func() {
			convey.So(get("/").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api-docs").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/healthz").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/squads").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/participants").Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("And the service should use the configured default size", func() {
			convey.So(svc.GetStats()["defaultSquadSize"], convey.ShouldEqual, cfg.DefaultSquadSize)
		})

		convey.Convey("And forming with nobody present should conflict", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/squads/form", strings.NewReader(`{"formationType":"similar"}`))
			mux.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusConflict)
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("Then a single update should not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("Then the updater should return once the context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			done := make(chan struct{})
			go func() {
				startSystemMetricsUpdater(ctx, 10*time.Millisecond)
				close(done)
			}()

			select {
			case <-done:
				convey.So(true, convey.ShouldBeTrue)
			case <-time.After(time.Second):
				convey.So("updater still running", convey.ShouldBeEmpty)
			}
		})
	})
}

func TestNewServiceOptions(t *testing.T) {
	convey.Convey("Given configuration values", t, func() {
		cfg := config.New(context.Background())
		cfg.MaxParticipants = 10
		cfg.DefaultSquadSize = 5
		svc := newService(cfg, taxonomy.Default(), logger.NewNop())

		convey.Convey("Then the unstarted service should report them", func() {
			stats := svc.GetStats()
			convey.So(stats["started"], convey.ShouldBeFalse)
			convey.So(stats["maxParticipants"], convey.ShouldEqual, 10)
			convey.So(stats["defaultSquadSize"], convey.ShouldEqual, 5)
		})

		convey.Convey("Then the service type should be the app service", func() {
			var _ *app.Service = svc
			convey.So(svc, convey.ShouldNotBeNil)
		})
	})
}
