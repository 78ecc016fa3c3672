// Package handler exposes the job query engine over HTTP as JSON endpoints
// and server-rendered HTML pages.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Adithya-Monish-Kumar-K/jobsearch/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/internal/catalog"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/internal/query"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/internal/searcher/cache"
	apperrors "github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/middleware"
)

const maxQueryLength = 256

// Result is the body of every job listing response.
type Result struct {
	Query string              `json:"query"`
	Total int                 `json:"total"`
	Jobs  []catalog.JobRecord `json:"jobs"`
}

type Handler struct {
	engine  *query.Engine
	cache   *cache.QueryCache[Result]
	tracker analytics.Tracker
	metrics *metrics.Metrics
	pages   *pageRenderer
	logger  *slog.Logger
}

// New builds a Handler. queryCache, tracker and m may be nil.
func New(engine *query.Engine, queryCache *cache.QueryCache[Result], tracker analytics.Tracker, m *metrics.Metrics) *Handler {
	return &Handler{
		engine:  engine,
		cache:   queryCache,
		tracker: tracker,
		metrics: m,
		pages:   newPageRenderer(),
		logger:  logger.WithComponent("job-handler"),
	}
}

type route struct {
	method string
	path   string
	fn     func(*Handler, http.ResponseWriter, *http.Request)
}

var routes = []route{
	{http.MethodGet, "/", (*Handler).IndexPage},
	{http.MethodGet, "/jobs", (*Handler).SearchPage},
	{http.MethodGet, "/jobs/filter", (*Handler).FilterPage},
	{http.MethodGet, "/jobs/match", (*Handler).MatchPage},

	{http.MethodGet, "/api/v1/jobs/search", (*Handler).Search},
	{http.MethodGet, "/api/v1/jobs/filter", (*Handler).Filter},
	{http.MethodGet, "/api/v1/jobs/match", (*Handler).Match},
	{http.MethodGet, "/api/v1/jobs/suggest", (*Handler).Suggest},
	{http.MethodGet, "/api/v1/jobs/locations", (*Handler).Locations},

	{http.MethodGet, "/api/v1/cache/stats", (*Handler).CacheStats},
	{http.MethodPost, "/api/v1/cache/invalidate", (*Handler).CacheInvalidate},
}

// Register mounts every route on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	for _, rt := range routes {
		pattern := rt.method + " " + rt.path
		if rt.path == "/" {
			pattern += "{$}"
		}
		fn := rt.fn
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) { fn(h, w, r) })
	}
}

// Paths lists the paths Register mounts.
func Paths() []string {
	out := make([]string, len(routes))
	for i, rt := range routes {
		out[i] = rt.path
	}
	return out
}

// request is one parsed job query, independent of the response format.
type request struct {
	op       analytics.Operation
	display  string
	cacheKey string
	run      func() []catalog.JobRecord
}

func searchRequest(e *query.Engine, prefix string) (request, error) {
	if len(prefix) > maxQueryLength {
		return request{}, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest, "query must be at most %d characters", maxQueryLength)
	}
	key := ""
	if strings.TrimSpace(prefix) != "" {
		key = strings.ToLower(prefix)
	}
	return request{
		op:       analytics.OpSearch,
		display:  prefix,
		cacheKey: "search|" + key,
		run:      func() []catalog.JobRecord { return e.SearchByTitle(prefix) },
	}, nil
}

func filterRequest(e *query.Engine, rawLocation, rawSalary string) (request, error) {
	if len(rawLocation) > maxQueryLength || len(rawSalary) > maxQueryLength {
		return request{}, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest, "filter values must be at most %d characters", maxQueryLength)
	}
	c := query.Criteria{
		Location:  query.ParseLocation(rawLocation),
		MinSalary: query.ParseMinSalary(rawSalary),
	}
	loc, minSalary := "*", "*"
	if c.Location != nil {
		loc = strconv.Quote(*c.Location)
	}
	if c.MinSalary != nil {
		minSalary = strconv.Itoa(*c.MinSalary)
	}
	return request{
		op:       analytics.OpFilter,
		display:  fmt.Sprintf("location=%s min_salary=%s", loc, minSalary),
		cacheKey: "filter|" + loc + "|" + minSalary,
		run:      func() []catalog.JobRecord { return e.Filter(c) },
	}, nil
}

func matchRequest(e *query.Engine, rawSkills string) (request, error) {
	if len(rawSkills) > 4*maxQueryLength {
		return request{}, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest, "skills must be at most %d characters", 4*maxQueryLength)
	}
	skills := query.ParseSkills(rawSkills)
	canonical := append([]string(nil), skills...)
	sort.Strings(canonical)
	return request{
		op:       analytics.OpMatch,
		display:  strings.Join(skills, ","),
		cacheKey: "match|" + strings.Join(canonical, ","),
		run:      func() []catalog.JobRecord { return e.MatchBySkills(skills) },
	}, nil
}

// execute answers req from the cache when possible and records the query.
func (h *Handler) execute(ctx context.Context, req request) (Result, error) {
	start := time.Now()
	compute := func() (Result, error) {
		jobs := req.run()
		return Result{Query: req.display, Total: len(jobs), Jobs: jobs}, nil
	}

	var (
		result   Result
		cacheHit bool
		err      error
	)
	if h.cache != nil {
		result, cacheHit, err = h.cache.GetOrCompute(ctx, req.cacheKey, compute)
	} else {
		result, err = compute()
	}
	if err != nil {
		return Result{}, fmt.Errorf("%s query: %w", req.op, err)
	}
	// Cache keys are case-folded, so echo this request's own spelling.
	result.Query = req.display

	h.observe(ctx, req.op, req.display, result.Total, cacheHit, time.Since(start))
	return result, nil
}

func (h *Handler) observe(ctx context.Context, op analytics.Operation, display string, total int, cacheHit bool, elapsed time.Duration) {
	logger.FromContext(ctx).Info("query completed",
		"operation", op,
		"query", display,
		"total_hits", total,
		"cache_hit", cacheHit,
		"latency_us", elapsed.Microseconds(),
	)
	if h.metrics != nil {
		h.metrics.ObserveQuery(string(op), total, elapsed.Seconds())
	}
	if h.tracker != nil {
		h.tracker.Track(analytics.QueryEvent{
			Operation:     op,
			Query:         display,
			TotalHits:     total,
			LatencyMicros: elapsed.Microseconds(),
			CacheHit:      cacheHit,
			Timestamp:     time.Now().UTC(),
			RequestID:     middleware.GetRequestID(ctx),
		})
	}
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	req, err := searchRequest(h.engine, r.URL.Query().Get("q"))
	h.serveJSON(w, r, req, err)
}

func (h *Handler) Filter(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req, err := filterRequest(h.engine, q.Get("location"), q.Get("min_salary"))
	h.serveJSON(w, r, req, err)
}

func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	req, err := matchRequest(h.engine, r.URL.Query().Get("skills"))
	h.serveJSON(w, r, req, err)
}

func (h *Handler) serveJSON(w http.ResponseWriter, r *http.Request, req request, err error) {
	if err == nil {
		var result Result
		result, err = h.execute(r.Context(), req)
		if err == nil {
			h.writeJSON(w, http.StatusOK, result)
			return
		}
	}
	h.writeAppError(w, r, err)
}

// Suggest lists the distinct titles starting with q.
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	prefix := r.URL.Query().Get("q")
	if len(prefix) > maxQueryLength {
		h.writeAppError(w, r, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest, "query must be at most %d characters", maxQueryLength))
		return
	}
	suggestions := []string{}
	if strings.TrimSpace(prefix) != "" {
		suggestions = append(suggestions, h.engine.Suggest(prefix)...)
	}
	h.observe(r.Context(), analytics.OpSuggest, prefix, len(suggestions), false, time.Since(start))
	h.writeJSON(w, http.StatusOK, map[string]any{
		"query":       prefix,
		"suggestions": suggestions,
	})
}

func (h *Handler) Locations(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"locations": h.engine.Locations()})
}

func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}

	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": fmt.Sprintf("%.1f%%", hitRate),
		"breaker":  h.cache.BreakerState().String(),
	})
}

func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeAppError(w, r, apperrors.New(apperrors.ErrCacheDisabled, http.StatusServiceUnavailable, "caching is disabled"))
		return
	}

	if err := h.cache.Invalidate(r.Context()); err != nil {
		h.writeAppError(w, r, fmt.Errorf("%w: %v", apperrors.ErrInternal, err))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	if status := apperrors.Write(w, err); status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed", "path", r.URL.Path, "status", status, "error", err)
	}
}
