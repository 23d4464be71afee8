package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vomadrid/vomadrid/internal/cache"
	"github.com/vomadrid/vomadrid/internal/catalog"
	"github.com/vomadrid/vomadrid/internal/config"
	"github.com/vomadrid/vomadrid/internal/logging"
	"github.com/vomadrid/vomadrid/internal/metrics"
	"github.com/vomadrid/vomadrid/pkg/airtable"
)

// app holds the wired components shared by the commands.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	registry *prometheus.Registry
	catalog  *catalog.Catalog
	redis    *redis.Client
}

// newApp loads configuration and wires the catalog.
func newApp(ctx context.Context) (*app, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg, path, err := config.Resolve(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if logLevel != "" {
		cfg.Server.LogLevel = logLevel
	}

	log, err := logging.New(cfg.Server.LogLevel)
	if err != nil {
		return nil, err
	}
	if path != "" {
		log.Debug("config loaded", zap.String("path", path))
	}
	if !cfg.HasCredentials() {
		log.Warn("airtable credentials not configured, listings will be empty",
			zap.String("base_id_env", config.EnvBaseID),
			zap.String("token_env", config.EnvAPIToken),
		)
	}

	a := &app{cfg: cfg, log: log, registry: prometheus.NewRegistry()}
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(a.registry)

	schema, err := buildSchema(cfg.Fields)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	client := airtable.New(cfg.Airtable.BaseID, cfg.Airtable.APIToken,
		airtable.WithBaseURL(cfg.Airtable.BaseURL),
		airtable.WithHTTPClient(&http.Client{Timeout: cfg.Airtable.Timeout}),
		airtable.WithRateLimit(cfg.Airtable.RateLimit, cfg.Airtable.Burst),
		airtable.WithLogger(log),
	)

	fetcherOpts := []catalog.FetcherOption{
		catalog.WithTTL(cfg.Cache.TTL),
		catalog.WithLogger(log.Named("fetcher")),
		catalog.WithMetrics(m),
	}
	if cfg.Cache.RedisURL != "" {
		rdb, err := cache.DialRedis(ctx, cfg.Cache.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, using in-memory cache", zap.Error(err))
		} else {
			a.redis = rdb
			fetcherOpts = append(fetcherOpts, catalog.WithCaches(
				cache.NewRedis[[]airtable.Record](rdb, "vomadrid:list:", log),
				cache.NewRedis[airtable.Record](rdb, "vomadrid:record:", log),
			))
			log.Info("using redis cache")
		}
	}

	a.catalog = catalog.New(catalog.NewFetcher(client, fetcherOpts...), catalog.Config{
		Tables: catalog.Tables{
			Movies:     cfg.Airtable.Tables.Movies,
			Cinemas:    cfg.Airtable.Tables.Cinemas,
			Screenings: cfg.Airtable.Tables.Screenings,
		},
		Schema:             schema,
		ResolveConcurrency: cfg.Resolve.Concurrency,
	}, log.Named("catalog"))
	return a, nil
}

// Close releases the app's connections and flushes the logger.
func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	_ = a.log.Sync()
}

// buildSchema applies the configured field renames to the default schema.
func buildSchema(f config.FieldsConfig) (catalog.Schema, error) {
	schema := catalog.DefaultSchema()
	for kind, names := range map[string]map[string]string{
		"movies":     f.Movies,
		"cinemas":    f.Cinemas,
		"screenings": f.Screenings,
	} {
		if len(names) == 0 {
			continue
		}
		if err := schema.Override(kind, names); err != nil {
			return catalog.Schema{}, fmt.Errorf("fields: %w", err)
		}
	}
	return schema, nil
}
