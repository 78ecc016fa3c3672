// Package analytics records job queries. Events either go straight into an
// in-process Aggregator or through Kafka, where a consumer feeds the
// Aggregator of every replica.
package analytics

import "time"

type Operation string

const (
	OpSearch  Operation = "search"
	OpFilter  Operation = "filter"
	OpMatch   Operation = "match"
	OpSuggest Operation = "suggest"
)

// QueryEvent describes one completed query.
type QueryEvent struct {
	Operation     Operation `json:"operation"`
	Query         string    `json:"query"`
	TotalHits     int       `json:"total_hits"`
	LatencyMicros int64     `json:"latency_us"`
	CacheHit      bool      `json:"cache_hit"`
	Timestamp     time.Time `json:"timestamp"`
	RequestID     string    `json:"request_id,omitempty"`
}

// Tracker accepts query events without blocking the caller.
type Tracker interface {
	Track(event QueryEvent)
}
