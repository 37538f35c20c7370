package drill

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/squads/internal/adapters/http/api"
	service "github.com/okian/squads/internal/app"
	"github.com/okian/squads/internal/domain/taxonomy"
	"github.com/okian/squads/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestServer() (*httptest.Server, func()) {
	svc := service.New(service.WithLogger(logger.NewNop()), service.WithSeed(3))
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	srv := httptest.NewServer(mux)
	return srv, func() {
		srv.Close()
		svc.Stop()
	}
}

func testConfig(baseURL string) *Config {
	return &Config{
		BaseURL:       baseURL,
		Participants:  40,
		PresentRatio:  0.75,
		BlankRatio:    0.1,
		SquadSize:     4,
		FormationType: "diverse",
		Workers:       4,
		Timeout:       5 * time.Second,
		Seed:          11,
	}
}

func TestRun(t *testing.T) {
	Convey("Given a running squads service", t, func() {
		srv, stop := newTestServer()
		Reset(stop)
		ctx := context.Background()

		Convey("When running a diverse drill", func() {
			cfg := testConfig(srv.URL)
			cfg.OutputFile = filepath.Join(t.TempDir(), "out", "squads.json")
			stats, err := Run(ctx, cfg, nil)

			Convey("Then every present participant should be placed", func() {
				So(err, ShouldBeNil)
				So(stats.Registered, ShouldEqual, 40)
				So(stats.Failed, ShouldEqual, 0)
				So(stats.Squads, ShouldBeGreaterThan, 0)
				So(stats.Squads, ShouldBeGreaterThanOrEqualTo, (stats.Present+3)/4)
			})

			Convey("And the squads should be written to the output file", func() {
				data, err := os.ReadFile(cfg.OutputFile)
				So(err, ShouldBeNil)
				var res FormResponse
				So(json.Unmarshal(data, &res), ShouldBeNil)
				So(len(res.Squads), ShouldEqual, stats.Squads)
			})
		})

		Convey("When running a similar drill twice with a reset", func() {
			cfg := testConfig(srv.URL)
			cfg.FormationType = "similar"
			cfg.Reset = true
			_, err := Run(ctx, cfg, nil)
			So(err, ShouldBeNil)

			cfg.Seed = 12
			_, err = Run(ctx, cfg, nil)
			So(err, ShouldBeNil)
		})

		Convey("When nobody is present", func() {
			cfg := testConfig(srv.URL)
			cfg.PresentRatio = 0
			_, err := Run(ctx, cfg, nil)

			Convey("Then formation should be rejected", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "409")
			})
		})
	})

	Convey("Given no service", t, func() {
		cfg := testConfig("http://127.0.0.1:1")
		cfg.Timeout = 200 * time.Millisecond
		_, err := Run(context.Background(), cfg, nil)
		So(err, ShouldNotBeNil)
	})
}

func TestGenerateParticipants(t *testing.T) {
	Convey("Given a generation config", t, func() {
		ctx := context.Background()
		cfg := testConfig("")

		Convey("When generating twice with the same seed", func() {
			a, err := generateParticipants(ctx, cfg, taxonomy.Default(), &Stats{})
			So(err, ShouldBeNil)
			b, err := generateParticipants(ctx, cfg, taxonomy.Default(), &Stats{})
			So(err, ShouldBeNil)

			Convey("Then statuses and skills should match", func() {
				So(len(a), ShouldEqual, 40)
				for i := range a {
					So(a[i].Status, ShouldEqual, b[i].Status)
					So(a[i].Skills == nil, ShouldEqual, b[i].Skills == nil)
					if a[i].Skills != nil {
						So(*a[i].Skills, ShouldEqual, *b[i].Skills)
					}
				}
			})
		})

		Convey("When the count is not positive", func() {
			cfg.Participants = 0
			_, err := generateParticipants(ctx, cfg, taxonomy.Default(), &Stats{})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestVerifyFormation(t *testing.T) {
	Convey("Given generated participants", t, func() {
		ctx := context.Background()
		participants := []Participant{
			{ID: "a", Status: statusPresent},
			{ID: "b", Status: statusPresent},
			{ID: "c", Status: statusAbsent},
		}

		Convey("When the squads are a valid partition", func() {
			squads := []Squad{{Name: "Squad 1", Members: []string{"a", "x"}}, {Name: "Squad 2", Members: []string{"b"}}}
			So(verifyFormation(ctx, participants, squads, 2), ShouldBeNil)
		})

		Convey("When a present participant is missing", func() {
			err := verifyFormation(ctx, participants, []Squad{{Name: "Squad 1", Members: []string{"a"}}}, 2)
			So(errors.Is(err, ErrMissingMember), ShouldBeTrue)
		})

		Convey("When a participant appears twice", func() {
			squads := []Squad{{Name: "Squad 1", Members: []string{"a", "b"}}, {Name: "Squad 2", Members: []string{"a"}}}
			So(errors.Is(verifyFormation(ctx, participants, squads, 2), ErrDuplicateMember), ShouldBeTrue)
		})

		Convey("When an absent participant is placed", func() {
			squads := []Squad{{Name: "Squad 1", Members: []string{"a", "b", "c"}}}
			err := verifyFormation(ctx, participants, squads, 0)
			So(errors.Is(err, ErrUnexpectedMember), ShouldBeTrue)
			So(errors.Is(err, ErrOversizedSquad), ShouldBeFalse)
		})

		Convey("When a squad is oversized or empty", func() {
			squads := []Squad{{Name: "Squad 1", Members: []string{"a", "b"}}, {Name: "Squad 2"}}
			err := verifyFormation(ctx, participants, squads, 1)
			So(errors.Is(err, ErrOversizedSquad), ShouldBeTrue)
			So(errors.Is(err, ErrEmptySquad), ShouldBeTrue)
		})
	})
}
