package analytics

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/kafka"
)

// maxLatencySamples bounds the latency window used for percentiles.
const maxLatencySamples = 10000

// maxTrackedQueries bounds the distinct queries counted per table.
const maxTrackedQueries = 10000

type AggregatedStats struct {
	TotalQueries      int64               `json:"total_queries"`
	ByOperation       map[Operation]int64 `json:"by_operation"`
	CacheHits         int64               `json:"cache_hits"`
	CacheMisses       int64               `json:"cache_misses"`
	ZeroResultCount   int64               `json:"zero_result_count"`
	AvgLatencyMicros  float64             `json:"avg_latency_us"`
	P50LatencyMicros  int64               `json:"p50_latency_us"`
	P95LatencyMicros  int64               `json:"p95_latency_us"`
	P99LatencyMicros  int64               `json:"p99_latency_us"`
	TopQueries        []QueryCount        `json:"top_queries"`
	ZeroResultQueries []QueryCount        `json:"zero_result_queries"`
	QueriesPerMinute  float64             `json:"queries_per_minute"`
}

type QueryCount struct {
	Operation Operation `json:"operation"`
	Query     string    `json:"query"`
	Count     int64     `json:"count"`
}

type queryKey struct {
	op    Operation
	query string
}

type Aggregator struct {
	mu          sync.Mutex
	total       int64
	byOp        map[Operation]int64
	cacheHits   int64
	cacheMisses int64
	zeroResults int64
	latencies   []int64
	next        int
	queryCounts map[queryKey]int64
	zeroQueries map[queryKey]int64
	maxQueries  int
	startTime   time.Time
	logger      *slog.Logger
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		byOp:        make(map[Operation]int64),
		latencies:   make([]int64, 0, 1024),
		queryCounts: make(map[queryKey]int64),
		zeroQueries: make(map[queryKey]int64),
		maxQueries:  maxTrackedQueries,
		startTime:   time.Now(),
		logger:      slog.Default().With("component", "analytics-aggregator"),
	}
}

// Track records event. It lets the aggregator stand in for a Collector when
// Kafka is not configured.
func (a *Aggregator) Track(event QueryEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.total++
	a.byOp[event.Operation]++
	if event.CacheHit {
		a.cacheHits++
	} else {
		a.cacheMisses++
	}
	key := queryKey{op: event.Operation, query: event.Query}
	bump(a.queryCounts, key, a.maxQueries)
	if event.TotalHits == 0 {
		a.zeroResults++
		bump(a.zeroQueries, key, a.maxQueries)
	}
	if len(a.latencies) < maxLatencySamples {
		a.latencies = append(a.latencies, event.LatencyMicros)
	} else {
		a.latencies[a.next] = event.LatencyMicros
		a.next = (a.next + 1) % maxLatencySamples
	}
}

// bump increments key. A new key arriving at limit evicts the least counted
// key, ties broken by operation and query.
func bump(counts map[queryKey]int64, key queryKey, limit int) {
	if _, ok := counts[key]; !ok && len(counts) >= limit {
		var victim queryKey
		var lowest int64 = -1
		for k, n := range counts {
			if lowest < 0 || n < lowest || (n == lowest && keyLess(k, victim)) {
				victim, lowest = k, n
			}
		}
		delete(counts, victim)
	}
	counts[key]++
}

func keyLess(a, b queryKey) bool {
	if a.op != b.op {
		return a.op < b.op
	}
	return a.query < b.query
}

// HandleEvent decodes Kafka messages into the aggregator. Undecodable
// messages are logged and skipped so they are still committed.
func HandleEvent(agg *Aggregator) kafka.MessageHandler {
	return func(ctx context.Context, key []byte, value []byte) error {
		event, err := kafka.DecodeJSON[QueryEvent](value)
		if err != nil {
			agg.logger.Error("failed to decode analytics event", "key", string(key), "error", err)
			return nil
		}
		agg.Track(event)
		return nil
	}
}

// DefaultTop is how many top and zero-result queries Stats reports.
const DefaultTop = 10

func (a *Aggregator) Stats() AggregatedStats {
	return a.StatsFor(DefaultTop, "")
}

// StatsFor reports the top queries limited to top entries and, when op is
// non-empty, to that operation. Totals always cover every operation.
func (a *Aggregator) StatsFor(top int, op Operation) AggregatedStats {
	a.mu.Lock()
	defer a.mu.Unlock()

	stats := AggregatedStats{
		TotalQueries:    a.total,
		ByOperation:     make(map[Operation]int64, len(a.byOp)),
		CacheHits:       a.cacheHits,
		CacheMisses:     a.cacheMisses,
		ZeroResultCount: a.zeroResults,
	}
	for op, n := range a.byOp {
		stats.ByOperation[op] = n
	}
	if len(a.latencies) > 0 {
		sorted := make([]int64, len(a.latencies))
		copy(sorted, a.latencies)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		var sum int64
		for _, l := range sorted {
			sum += l
		}
		stats.AvgLatencyMicros = float64(sum) / float64(len(sorted))
		stats.P50LatencyMicros = percentile(sorted, 50)
		stats.P95LatencyMicros = percentile(sorted, 95)
		stats.P99LatencyMicros = percentile(sorted, 99)
	}
	stats.TopQueries = topN(a.queryCounts, top, op)
	stats.ZeroResultQueries = topN(a.zeroQueries, top, op)
	if elapsed := time.Since(a.startTime).Minutes(); elapsed > 0 {
		stats.QueriesPerMinute = float64(stats.TotalQueries) / elapsed
	}
	return stats
}

func percentile(sorted []int64, pct int) int64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (pct * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// topN orders by count descending, then operation and query for stable
// output.
func topN(counts map[queryKey]int64, n int, op Operation) []QueryCount {
	result := make([]QueryCount, 0, len(counts))
	for k, count := range counts {
		if op != "" && k.op != op {
			continue
		}
		result = append(result, QueryCount{Operation: k.op, Query: k.query, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		if result[i].Operation != result[j].Operation {
			return result[i].Operation < result[j].Operation
		}
		return result[i].Query < result[j].Query
	})
	if len(result) > n {
		result = result[:n]
	}
	return result
}
