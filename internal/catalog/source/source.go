// Package source loads job records at startup from the configured place: the
// built-in seed list, a YAML/JSON file, or a PostgreSQL or SQLite table.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Adithya-Monish-Kumar-K/jobsearch/internal/catalog"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/database"
	apperrors "github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/resilience"
)

// Load reads and validates the records selected by cfg.Source.
func Load(ctx context.Context, cfg *config.Config) ([]catalog.JobRecord, error) {
	logger := slog.Default().With("component", "record-source", "kind", cfg.Source.Kind)

	var (
		records []catalog.JobRecord
		err     error
	)
	switch cfg.Source.Kind {
	case config.SourceSeed:
		records = catalog.Seed()
	case config.SourceFile:
		records, err = ReadFile(cfg.Source.Path)
	case config.SourcePostgres, config.SourceSQLite:
		records, err = loadSQL(ctx, cfg)
	default:
		return nil, apperrors.Newf(apperrors.ErrUnknownSource, http.StatusBadRequest, "source kind %q", cfg.Source.Kind)
	}
	if err != nil {
		return nil, err
	}
	if err := catalog.Validate(records); err != nil {
		return nil, fmt.Errorf("validating records: %w", err)
	}
	logger.Info("records loaded", "count", len(records))
	return records, nil
}

func loadSQL(ctx context.Context, cfg *config.Config) ([]catalog.JobRecord, error) {
	var client *database.Client
	err := resilience.Retry(ctx, "open "+cfg.Source.Kind, resilience.RetryConfig{MaxAttempts: 3}, func(ctx context.Context) error {
		var err error
		if cfg.Source.Kind == config.SourcePostgres {
			client, err = database.OpenPostgres(ctx, cfg.Postgres)
		} else {
			client, err = database.OpenSQLite(ctx, cfg.SQLite)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSourceUnavailable, err)
	}
	defer client.Close()
	return ReadTable(ctx, client, cfg.Source.Table)
}
