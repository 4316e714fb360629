package feed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hooplens/eloedge/internal/adapters/feed"
	"github.com/hooplens/eloedge/internal/domain/model"
	"github.com/hooplens/eloedge/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const (
	celticsID = model.TeamID(1610612738)
	lakersID  = model.TeamID(1610612747)
)

const leagueBody = `{
  "injuries": [
    {
      "displayName": "Boston Celtics",
      "injuries": [
        {"status": "Out", "date": "2026-01-10T15:00:00Z",
         "athlete": {"id": 4065648, "displayName": "Jayson Tatum"},
         "details": {"type": "Achilles"}},
        {"status": "Questionable",
         "athlete": {"id": 3917376, "displayName": "Jaylen Brown"},
         "details": {"type": "Knee"}},
        {"status": "Out",
         "athlete": {"id": 99, "displayName": "  "},
         "details": {"type": "Illness"}}
      ]
    },
    {
      "displayName": "Los Angeles Lakers",
      "injuries": [
        {"status": "Day-To-Day",
         "athlete": {"id": 1966, "displayName": "LeBron James"},
         "details": {"type": "Ankle"}}
      ]
    },
    {
      "displayName": "Moon Base Rockets",
      "injuries": []
    }
  ]
}`

func TestClient_FetchLeague(t *testing.T) {
	convey.Convey("Given an upstream feed serving a league payload", t, func() {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(leagueBody))
		}))
		defer srv.Close()

		client := feed.New(feed.WithBaseURL(srv.URL))

		convey.Convey("When fetching the league report", func() {
			reports, err := client.FetchLeague(context.Background())

			convey.Convey("Then mappable teams should come back normalized", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(gotPath, convey.ShouldEqual, "/injuries")
				convey.So(reports, convey.ShouldHaveLength, 2)
				convey.So(reports, convey.ShouldContainKey, celticsID)
				convey.So(reports, convey.ShouldContainKey, lakersID)
			})

			convey.Convey("Then statuses should map to weights", func() {
				celtics := reports[celticsID]
				convey.So(celtics.Records, convey.ShouldHaveLength, 2)
				convey.So(celtics.Records[0].PlayerName, convey.ShouldEqual, "Jayson Tatum")
				convey.So(celtics.Records[0].Status, convey.ShouldEqual, model.StatusOut)
				convey.So(celtics.Records[0].Weight, convey.ShouldEqual, 1.0)
				convey.So(celtics.Records[1].Status, convey.ShouldEqual, model.StatusQuestionable)
				convey.So(celtics.Records[1].Weight, convey.ShouldEqual, 0.5)

				lakers := reports[lakersID]
				convey.So(lakers.Records, convey.ShouldHaveLength, 1)
				convey.So(lakers.Records[0].Status, convey.ShouldEqual, model.StatusDayToDay)
				convey.So(lakers.Records[0].Weight, convey.ShouldEqual, 0.25)
			})

			convey.Convey("Then timestamps and metadata should carry through", func() {
				rec := reports[celticsID].Records[0]
				convey.So(rec.ObservedAt.Equal(time.Date(2026, 1, 10, 15, 0, 0, 0, time.UTC)), convey.ShouldBeTrue)
				convey.So(rec.BodyPart, convey.ShouldEqual, "Achilles")
				convey.So(rec.PlayerID, convey.ShouldEqual, "4065648")
				convey.So(reports[celticsID].Source, convey.ShouldStartWith, "espn:")
			})
		})
	})
}

func TestClient_FetchLeagueFailures(t *testing.T) {
	convey.Convey("Given misbehaving upstreams", t, func() {
		convey.Convey("When the server returns a non-200 status", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			}))
			defer srv.Close()

			_, err := feed.New(feed.WithBaseURL(srv.URL)).FetchLeague(context.Background())
			convey.So(err, convey.ShouldWrap, feed.ErrFetch)
		})

		convey.Convey("When the body is not JSON", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>gateway error</html>"))
			}))
			defer srv.Close()

			_, err := feed.New(feed.WithBaseURL(srv.URL)).FetchLeague(context.Background())
			convey.So(err, convey.ShouldWrap, feed.ErrDecode)
		})

		convey.Convey("When the context deadline passes", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
			}))
			defer srv.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()

			_, err := feed.New(feed.WithBaseURL(srv.URL)).FetchLeague(ctx)
			convey.So(err, convey.ShouldWrap, feed.ErrFetch)
		})
	})
}

func TestClient_StatusWeightOverrides(t *testing.T) {
	convey.Convey("Given a client with custom status weights", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"injuries":[{"displayName":"Boston Celtics","injuries":[
				{"status":"questionable","athlete":{"id":1,"displayName":"Jaylen Brown"},"details":{"type":"Knee"}}]}]}`))
		}))
		defer srv.Close()

		client := feed.New(
			feed.WithBaseURL(srv.URL),
			feed.WithStatusWeights(map[string]float64{"questionable": 0.6}),
		)

		convey.Convey("When fetching", func() {
			reports, err := client.FetchLeague(context.Background())

			convey.Convey("Then the override should apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(reports[celticsID].Records[0].Weight, convey.ShouldEqual, 0.6)
			})
		})
	})
}

func TestTeamMapper(t *testing.T) {
	convey.Convey("Given the league team mapper", t, func() {
		m := feed.NewTeamMapper()

		convey.Convey("Then full names, nicknames, and cities should resolve", func() {
			id, ok := m.TeamID("Boston Celtics")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(id, convey.ShouldEqual, celticsID)

			id, ok = m.TeamID("celtics")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(id, convey.ShouldEqual, celticsID)

			id, ok = m.TeamID("LA Lakers")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(id, convey.ShouldEqual, lakersID)
		})

		convey.Convey("Then unknown names should not resolve", func() {
			_, ok := m.TeamID("Moon Base Rockets")
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("Then IDs should map back to canonical names", func() {
			name, ok := m.TeamName(celticsID)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(name, convey.ShouldEqual, "Boston Celtics")

			_, ok = m.TeamName(model.TeamID(42))
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}
