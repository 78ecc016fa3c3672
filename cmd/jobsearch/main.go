package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adithya-Monish-Kumar-K/jobsearch/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/internal/catalog"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/internal/catalog/source"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/internal/query"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/internal/searcher/handler"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/middleware"
	pkgredis "github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/redis"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting job search service", "port", cfg.Server.Port, "source", cfg.Source.Kind)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, err := source.Load(ctx, cfg)
	if err != nil {
		slog.Error("failed to load job records", "error", err)
		os.Exit(1)
	}
	engine := query.Load(records)
	slog.Info("job index built", "records", engine.Len(), "locations", len(engine.Locations()))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	m.RecordsLoaded.Set(float64(engine.Len()))
	if cfg.Metrics.Enabled {
		metricsDone := metrics.Serve(ctx, cfg.Metrics.Port, reg)
		defer func() { <-metricsDone }()
	}

	checker := health.NewChecker()
	checker.Register("query_engine", func(ctx context.Context) health.ComponentHealth {
		return health.ComponentHealth{Status: health.StatusUp, Message: fmt.Sprintf("%d records indexed", engine.Len())}
	})

	var queryCache *cache.QueryCache[handler.Result]
	if cfg.Redis.Enabled {
		redisClient, err := pkgredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			slog.Warn("redis unavailable, query caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			queryCache = cache.New[handler.Result](redisClient, cache.Options{
				TTL:       cfg.Redis.CacheTTL,
				Namespace: catalog.Fingerprint(records),
				IsMiss:    pkgredis.IsNilError,
				Metrics:   m,
			})
			checker.Register("redis", health.PingCheck(redisClient.Ping, false))
			slog.Info("query cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
		}
	}

	aggregator := analytics.NewAggregator()
	var tracker analytics.Tracker = aggregator
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka)
		defer producer.Close()
		collector := analytics.NewCollector(producer, cfg.Kafka.BufferSize)
		collector.Start(ctx)
		defer collector.Close()
		tracker = collector

		consumerCfg := cfg.Kafka
		consumerCfg.ConsumerGroup = kafka.ReplicaGroup(cfg.Kafka.ConsumerGroup)
		consumer := kafka.NewConsumer(consumerCfg, analytics.HandleEvent(aggregator))
		go func() {
			if err := consumer.Start(ctx); err != nil {
				slog.Error("analytics consumer error", "error", err)
			}
		}()
		slog.Info("analytics pipeline started", "topic", cfg.Kafka.Topic, "brokers", cfg.Kafka.Brokers)
	}

	h := handler.New(engine, queryCache, tracker, m)
	analyticsH := analytics.NewHandler(aggregator)

	mux := http.NewServeMux()
	h.Register(mux)
	mux.HandleFunc("GET /api/v1/analytics", analyticsH.Stats)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	var chain http.Handler = mux
	if d := cfg.Server.HandlerTimeout(); d > 0 {
		chain = middleware.Timeout(d)(chain)
	}
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter := middleware.NewClientLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		chain = middleware.RateLimit(limiter, m.RateLimitedTotal.Inc)(chain)
	}
	if len(cfg.Server.AllowOrigins) > 0 {
		chain = middleware.CORS(cfg.Server.AllowOrigins)(chain)
	}
	chain = middleware.Metrics(m, append(handler.Paths(), "/api/v1/analytics", "/health/live", "/health/ready"))(chain)
	chain = middleware.RequestID(chain)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Closed once in-flight requests have finished, so the deferred cache,
	// collector and producer shutdowns never run under a live handler.
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("job search service listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	<-shutdownDone

	slog.Info("job search service stopped")
}
