package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hooplens/eloedge/internal/adapters/cache"
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
	celtics = model.TeamID(1610612738)
	lakers  = model.TeamID(1610612747)
)

// fakeClock is a settable time source for driving entries through states.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func reportAt(id model.TeamID, at time.Time) model.TeamInjuryReport {
	return model.TeamInjuryReport{
		TeamID:    id,
		Records:   []model.InjuryRecord{{PlayerName: "Jayson Tatum", Status: model.StatusOut, Weight: 1.0, TeamID: id}},
		FetchedAt: at,
	}
}

func leagueLoader(reports map[model.TeamID]model.TeamInjuryReport, calls *atomic.Int32, err error) cache.Loader {
	return func(ctx context.Context) (map[model.TeamID]model.TeamInjuryReport, error) {
		calls.Add(1)
		if err != nil {
			return nil, err
		}
		return reports, nil
	}
}

func TestCache_States(t *testing.T) {
	convey.Convey("Given a cache with a one hour TTL and four hour ceiling", t, func() {
		clock := newFakeClock()
		c := cache.New(
			cache.WithTTL(time.Hour),
			cache.WithHardCeiling(4*time.Hour),
			cache.WithClock(clock.Now),
		)

		convey.Convey("When nothing was ever stored", func() {
			_, state := c.Get(celtics)
			convey.So(state, convey.ShouldEqual, cache.StateMiss)
		})

		convey.Convey("When a report was just stored", func() {
			c.Put(context.Background(), reportAt(celtics, clock.Now()))

			got, state := c.Get(celtics)
			convey.So(state, convey.ShouldEqual, cache.StateFresh)
			convey.So(got.Records, convey.ShouldHaveLength, 1)

			convey.Convey("And the TTL elapses", func() {
				clock.Advance(2 * time.Hour)

				got, state := c.Get(celtics)
				convey.So(state, convey.ShouldEqual, cache.StateStale)
				convey.So(got.Records, convey.ShouldHaveLength, 1)
			})

			convey.Convey("And the hard ceiling elapses", func() {
				clock.Advance(5 * time.Hour)

				_, state := c.Get(celtics)
				convey.So(state, convey.ShouldEqual, cache.StateMiss)
				convey.So(c.Len(), convey.ShouldEqual, 1)
			})
		})
	})
}

func TestCache_GetOrRefresh(t *testing.T) {
	convey.Convey("Given a cache backed by a league loader", t, func() {
		ctx := context.Background()
		clock := newFakeClock()
		c := cache.New(
			cache.WithTTL(time.Hour),
			cache.WithHardCeiling(4*time.Hour),
			cache.WithClock(clock.Now),
		)

		convey.Convey("When the cache misses and the loader succeeds", func() {
			var calls atomic.Int32
			loader := leagueLoader(map[model.TeamID]model.TeamInjuryReport{
				celtics: reportAt(celtics, clock.Now()),
				lakers:  reportAt(lakers, clock.Now()),
			}, &calls, nil)

			got, state, err := c.GetOrRefresh(ctx, celtics, loader)

			convey.Convey("Then the requested report should be fresh", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(state, convey.ShouldEqual, cache.StateFresh)
				convey.So(got.TeamID, convey.ShouldEqual, celtics)
				convey.So(calls.Load(), convey.ShouldEqual, 1)
			})

			convey.Convey("Then the league fetch should fill every team key", func() {
				_, lakersState := c.Get(lakers)
				convey.So(lakersState, convey.ShouldEqual, cache.StateFresh)
			})

			convey.Convey("Then a fresh hit should not invoke the loader again", func() {
				_, state, err := c.GetOrRefresh(ctx, celtics, loader)
				convey.So(err, convey.ShouldBeNil)
				convey.So(state, convey.ShouldEqual, cache.StateFresh)
				convey.So(calls.Load(), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When the requested team is absent from the feed", func() {
			var calls atomic.Int32
			loader := leagueLoader(map[model.TeamID]model.TeamInjuryReport{
				lakers: reportAt(lakers, clock.Now()),
			}, &calls, nil)

			got, state, err := c.GetOrRefresh(ctx, celtics, loader)

			convey.Convey("Then it should get an empty fresh report, not a refetch loop", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(state, convey.ShouldEqual, cache.StateFresh)
				convey.So(got.Records, convey.ShouldBeEmpty)
				convey.So(calls.Load(), convey.ShouldEqual, 1)

				_, _, err = c.GetOrRefresh(ctx, celtics, loader)
				convey.So(err, convey.ShouldBeNil)
				convey.So(calls.Load(), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When the loader fails on a cold cache", func() {
			var calls atomic.Int32
			loader := leagueLoader(nil, &calls, errors.New("upstream down"))

			_, state, err := c.GetOrRefresh(ctx, celtics, loader)

			convey.Convey("Then the miss should surface with the error", func() {
				convey.So(err, convey.ShouldWrap, cache.ErrRefresh)
				convey.So(state, convey.ShouldEqual, cache.StateMiss)
			})
		})

		convey.Convey("When the loader fails but a stale entry exists", func() {
			c.Put(ctx, reportAt(celtics, clock.Now()))
			clock.Advance(2 * time.Hour)

			var calls atomic.Int32
			loader := leagueLoader(nil, &calls, errors.New("upstream down"))

			got, state, err := c.GetOrRefresh(ctx, celtics, loader)

			convey.Convey("Then the stale report should be served alongside the error", func() {
				convey.So(err, convey.ShouldWrap, cache.ErrRefresh)
				convey.So(state, convey.ShouldEqual, cache.StateStale)
				convey.So(got.Records, convey.ShouldHaveLength, 1)
			})
		})

		convey.Convey("When the loader fails past the hard ceiling", func() {
			c.Put(ctx, reportAt(celtics, clock.Now()))
			clock.Advance(5 * time.Hour)

			var calls atomic.Int32
			loader := leagueLoader(nil, &calls, errors.New("upstream down"))

			_, state, err := c.GetOrRefresh(ctx, celtics, loader)

			convey.Convey("Then the entry should no longer be served", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(state, convey.ShouldEqual, cache.StateMiss)
			})
		})
	})
}

func TestCache_SingleFlight(t *testing.T) {
	convey.Convey("Given many concurrent lookups against a cold cache", t, func() {
		ctx := context.Background()
		clock := newFakeClock()
		c := cache.New(cache.WithTTL(time.Hour), cache.WithClock(clock.Now))

		var calls atomic.Int32
		var startedOnce sync.Once
		started := make(chan struct{})
		release := make(chan struct{})
		loader := func(context.Context) (map[model.TeamID]model.TeamInjuryReport, error) {
			calls.Add(1)
			startedOnce.Do(func() { close(started) })
			<-release
			return map[model.TeamID]model.TeamInjuryReport{
				celtics: reportAt(celtics, clock.Now()),
			}, nil
		}

		convey.Convey("When lookups arrive while one refresh is in flight", func() {
			const goroutines = 8
			var wg sync.WaitGroup
			errs := make([]error, goroutines)

			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _, errs[0] = c.GetOrRefresh(ctx, celtics, loader)
			}()
			<-started

			// The flight is now blocked on release; these all join it.
			wg.Add(goroutines - 1)
			for i := 1; i < goroutines; i++ {
				go func(idx int) {
					defer wg.Done()
					_, _, errs[idx] = c.GetOrRefresh(ctx, celtics, loader)
				}(i)
			}
			time.Sleep(50 * time.Millisecond)

			close(release)
			wg.Wait()

			convey.Convey("Then the loader should run exactly once", func() {
				convey.So(calls.Load(), convey.ShouldEqual, 1)
				for _, err := range errs {
					convey.So(err, convey.ShouldBeNil)
				}
			})
		})
	})
}

// memorySnapshots is an in-memory SnapshotStore for cache tests.
type memorySnapshots struct {
	mu      sync.Mutex
	saved   map[model.TeamID]model.TeamInjuryReport
	loadErr error
	saveErr error
}

func newMemorySnapshots() *memorySnapshots {
	return &memorySnapshots{saved: make(map[model.TeamID]model.TeamInjuryReport)}
}

func (m *memorySnapshots) Save(_ context.Context, report model.TeamInjuryReport, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved[report.TeamID] = report
	return nil
}

func (m *memorySnapshots) LoadAll(context.Context) ([]model.TeamInjuryReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]model.TeamInjuryReport, 0, len(m.saved))
	for _, report := range m.saved {
		out = append(out, report)
	}
	return out, nil
}

func TestCache_Snapshots(t *testing.T) {
	convey.Convey("Given a cache with a snapshot store", t, func() {
		ctx := context.Background()
		clock := newFakeClock()
		store := newMemorySnapshots()
		c := cache.New(
			cache.WithTTL(time.Hour),
			cache.WithHardCeiling(4*time.Hour),
			cache.WithClock(clock.Now),
			cache.WithSnapshotStore(store),
		)

		convey.Convey("When reports are stored", func() {
			c.Put(ctx, reportAt(celtics, clock.Now()))
			c.Put(ctx, reportAt(lakers, clock.Now().Add(-5*time.Hour)))

			convey.Convey("Then every put should persist", func() {
				convey.So(store.saved, convey.ShouldHaveLength, 2)
			})

			convey.Convey("And a cold cache warm starts from them", func() {
				warm := cache.New(
					cache.WithTTL(time.Hour),
					cache.WithHardCeiling(4*time.Hour),
					cache.WithClock(clock.Now),
					cache.WithSnapshotStore(store),
				)
				loaded, err := warm.LoadSnapshots(ctx)

				convey.Convey("Then only entries inside the ceiling should load", func() {
					convey.So(err, convey.ShouldBeNil)
					convey.So(loaded, convey.ShouldEqual, 1)

					_, state := warm.Get(celtics)
					convey.So(state, convey.ShouldEqual, cache.StateFresh)
					_, state = warm.Get(lakers)
					convey.So(state, convey.ShouldEqual, cache.StateMiss)
				})
			})
		})

		convey.Convey("When persistence fails", func() {
			store.saveErr = errors.New("disk full")

			convey.Convey("Then Put should still serve the cache", func() {
				convey.So(func() { c.Put(ctx, reportAt(celtics, clock.Now())) }, convey.ShouldNotPanic)
				_, state := c.Get(celtics)
				convey.So(state, convey.ShouldEqual, cache.StateFresh)
			})
		})

		convey.Convey("When loading snapshots fails", func() {
			store.loadErr = errors.New("corrupt db")
			_, err := c.LoadSnapshots(ctx)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestCache_Stats(t *testing.T) {
	convey.Convey("Given a cache with mixed-age entries", t, func() {
		ctx := context.Background()
		clock := newFakeClock()
		c := cache.New(
			cache.WithTTL(time.Hour),
			cache.WithHardCeiling(4*time.Hour),
			cache.WithClock(clock.Now),
		)
		c.Put(ctx, reportAt(celtics, clock.Now()))
		c.Put(ctx, reportAt(lakers, clock.Now().Add(-2*time.Hour)))

		convey.Convey("Then stats should bucket entries by state", func() {
			stats := c.Stats()
			convey.So(stats["total_entries"], convey.ShouldEqual, 2)
			convey.So(stats["fresh_entries"], convey.ShouldEqual, 1)
			convey.So(stats["stale_entries"], convey.ShouldEqual, 1)
			convey.So(stats["ttl_seconds"], convey.ShouldEqual, 3600.0)
		})
	})
}
