package analytics

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/kafka"
)

type fakePublisher struct {
	mu     sync.Mutex
	events []kafka.Event
}

func (f *fakePublisher) Publish(ctx context.Context, events ...kafka.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, events...)
	return nil
}

func TestCollectorPublishesTrackedEvents(t *testing.T) {
	pub := &fakePublisher{}
	c := NewCollector(pub, 10)
	c.Start(context.Background())
	c.Track(QueryEvent{Operation: OpSearch, Query: "data", TotalHits: 2})
	c.Track(QueryEvent{Operation: OpMatch, Query: "python"})
	c.Close()

	if len(pub.events) != 2 {
		t.Fatalf("published %d events, want 2", len(pub.events))
	}
	if pub.events[0].Key != "search" || pub.events[1].Key != "match" {
		t.Errorf("keys = %q, %q", pub.events[0].Key, pub.events[1].Key)
	}
}

func TestCollectorDropsWhenFull(t *testing.T) {
	c := NewCollector(&fakePublisher{}, 1)
	c.Track(QueryEvent{Operation: OpSearch})
	c.Track(QueryEvent{Operation: OpSearch})
	if len(c.eventCh) != 1 {
		t.Errorf("buffer holds %d events, want 1", len(c.eventCh))
	}
}

func TestAggregatorStats(t *testing.T) {
	agg := NewAggregator()
	agg.Track(QueryEvent{Operation: OpSearch, Query: "data", TotalHits: 2, LatencyMicros: 10})
	agg.Track(QueryEvent{Operation: OpSearch, Query: "data", TotalHits: 2, LatencyMicros: 30, CacheHit: true})
	agg.Track(QueryEvent{Operation: OpMatch, Query: "cobol", TotalHits: 0, LatencyMicros: 20})

	s := agg.Stats()
	if s.TotalQueries != 3 || s.ByOperation[OpSearch] != 2 || s.ByOperation[OpMatch] != 1 {
		t.Errorf("counts = %+v", s)
	}
	if s.CacheHits != 1 || s.CacheMisses != 2 {
		t.Errorf("cache hits/misses = %d/%d", s.CacheHits, s.CacheMisses)
	}
	if s.ZeroResultCount != 1 || len(s.ZeroResultQueries) != 1 || s.ZeroResultQueries[0].Query != "cobol" {
		t.Errorf("zero results = %d %+v", s.ZeroResultCount, s.ZeroResultQueries)
	}
	if s.TopQueries[0].Query != "data" || s.TopQueries[0].Count != 2 {
		t.Errorf("top query = %+v", s.TopQueries[0])
	}
	if s.AvgLatencyMicros != 20 || s.P50LatencyMicros != 20 {
		t.Errorf("latency avg=%v p50=%d", s.AvgLatencyMicros, s.P50LatencyMicros)
	}
}

func TestAggregatorBoundsDistinctQueries(t *testing.T) {
	agg := NewAggregator()
	agg.maxQueries = 3
	for _, q := range []string{"data", "data", "data", "python", "python", "sql", "go", "rust"} {
		agg.Track(QueryEvent{Operation: OpSearch, Query: q, TotalHits: 1})
	}
	for i := range 50 {
		agg.Track(QueryEvent{Operation: OpMatch, Query: "missing-" + strconv.Itoa(i)})
	}

	if len(agg.queryCounts) != 3 || len(agg.zeroQueries) != 3 {
		t.Fatalf("tracked %d queries and %d zero-result queries, want 3 each", len(agg.queryCounts), len(agg.zeroQueries))
	}
	s := agg.StatsFor(DefaultTop, OpSearch)
	if s.TotalQueries != 58 || s.ZeroResultCount != 50 {
		t.Errorf("totals = %d/%d, want 58/50", s.TotalQueries, s.ZeroResultCount)
	}
	want := []QueryCount{{OpSearch, "data", 3}, {OpSearch, "python", 2}}
	if len(s.TopQueries) != len(want) {
		t.Fatalf("top queries = %+v", s.TopQueries)
	}
	for i, w := range want {
		if s.TopQueries[i] != w {
			t.Errorf("top[%d] = %+v, want %+v", i, s.TopQueries[i], w)
		}
	}
}

func TestHandleEvent(t *testing.T) {
	agg := NewAggregator()
	handle := HandleEvent(agg)
	value, _ := json.Marshal(QueryEvent{Operation: OpFilter, Query: "Remote", TotalHits: 3, Timestamp: time.Now()})

	if err := handle(context.Background(), []byte("filter"), value); err != nil {
		t.Fatal(err)
	}
	if err := handle(context.Background(), []byte("filter"), []byte("not json")); err != nil {
		t.Fatalf("bad message should be skipped, got %v", err)
	}
	if got := agg.Stats().ByOperation[OpFilter]; got != 1 {
		t.Errorf("filter count = %d, want 1", got)
	}
}

func TestStatsHandler(t *testing.T) {
	agg := NewAggregator()
	agg.Track(QueryEvent{Operation: OpSearch, Query: "web", TotalHits: 1})

	rec := httptest.NewRecorder()
	NewHandler(agg).Stats(rec, httptest.NewRequest("GET", "/api/v1/analytics", nil))
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["total_queries"] != float64(1) {
		t.Errorf("total_queries = %v", body["total_queries"])
	}
}

func TestStatsHandlerParameters(t *testing.T) {
	agg := NewAggregator()
	agg.Track(QueryEvent{Operation: OpSearch, Query: "data", TotalHits: 2})
	agg.Track(QueryEvent{Operation: OpSearch, Query: "web", TotalHits: 1})
	agg.Track(QueryEvent{Operation: OpMatch, Query: "python", TotalHits: 5})
	h := NewHandler(agg)

	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest("GET", "/api/v1/analytics?top=1&operation=match", nil))
	var stats AggregatedStats
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalQueries != 3 {
		t.Errorf("total = %d, want 3", stats.TotalQueries)
	}
	if len(stats.TopQueries) != 1 || stats.TopQueries[0].Query != "python" {
		t.Errorf("top = %+v", stats.TopQueries)
	}

	for _, target := range []string{"/api/v1/analytics?top=0", "/api/v1/analytics?top=x", "/api/v1/analytics?operation=delete"} {
		rec := httptest.NewRecorder()
		h.Stats(rec, httptest.NewRequest("GET", target, nil))
		if rec.Code != 400 {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func TestCollectorTrackAfterClose(t *testing.T) {
	pub := &fakePublisher{}
	c := NewCollector(pub, 10)
	c.Start(context.Background())
	c.Track(QueryEvent{Operation: OpSearch, Query: "data"})
	c.Close()

	c.Track(QueryEvent{Operation: OpSearch, Query: "late"})
	c.Close()

	if len(pub.events) != 1 {
		t.Errorf("published %d events, want 1", len(pub.events))
	}
}

func TestCollectorConcurrentTrackAndClose(t *testing.T) {
	c := NewCollector(&fakePublisher{}, 100)
	c.Start(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				c.Track(QueryEvent{Operation: OpMatch, Query: "python"})
			}
		}()
	}
	c.Close()
	wg.Wait()
}
