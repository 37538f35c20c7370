package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/okian/squads/internal/adapters/http/api"
	service "github.com/okian/squads/internal/app"
	"github.com/okian/squads/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceRoundTrip(t *testing.T) {
	Convey("Given an API backed by a started service", t, func() {
		svc := service.New(
			service.WithDefaultSquadSize(2),
			service.WithSeed(7),
			service.WithLogger(logger.NewNop()),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		Reset(svc.Stop)

		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(context.Background(), mux)

		for _, body := range []string{
			`{"id":"a","name":"A","skills":"react, javascript","status":"present"}`,
			`{"id":"b","name":"B","skills":"figma","status":"present"}`,
			`{"id":"c","name":"C","skills":"python, sql","status":"present"}`,
			`{"id":"d","name":"D","skills":"docker","status":"absent"}`,
		} {
			rec, _ := do(mux, http.MethodPost, "/participants", body)
			So(rec.Code, ShouldEqual, http.StatusCreated)
		}

		Convey("When forming squads with the default size", func() {
			rec, body := do(mux, http.MethodPost, "/squads/form", `{"formationType":"diverse"}`)

			Convey("Then only present participants should be placed", func() {
				So(rec.Code, ShouldEqual, http.StatusCreated)
				members := 0
				for _, s := range body["squads"].([]any) {
					members += len(s.(map[string]any)["members"].([]any))
				}
				So(members, ShouldEqual, 3)
			})

			Convey("And forming again should find nobody eligible", func() {
				rec, body := do(mux, http.MethodPost, "/squads/form", `{"formationType":"similar"}`)
				So(rec.Code, ShouldEqual, http.StatusConflict)
				So(body["code"], ShouldEqual, "no_eligible_participants")
			})

			Convey("And a reset should free everyone", func() {
				rec, body := do(mux, http.MethodDelete, "/squads", "")
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(body["removed"], ShouldBeGreaterThan, float64(0))

				rec, _ = do(mux, http.MethodPost, "/squads/form", `{"squadSize":3,"formationType":"similar"}`)
				So(rec.Code, ShouldEqual, http.StatusCreated)
			})
		})

		Convey("When the requested squad size dwarfs the pool", func() {
			for _, ft := range []string{"similar", "diverse"} {
				rec, body := do(mux, http.MethodPost, "/squads/form", `{"squadSize":68719476736,"formationType":"`+ft+`"}`)

				So(rec.Code, ShouldEqual, http.StatusCreated)
				So(body["fallback"], ShouldEqual, false)
				squads := body["squads"].([]any)
				So(squads, ShouldHaveLength, 1)
				So(squads[0].(map[string]any)["members"], ShouldHaveLength, 3)
				So(body["coverage"], ShouldHaveLength, 1)

				rec, _ = do(mux, http.MethodDelete, "/squads", "")
				So(rec.Code, ShouldEqual, http.StatusOK)
			}
		})
	})
}
