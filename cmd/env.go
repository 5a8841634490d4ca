package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/scorecard/internal/analysis"
	"github.com/sells-group/scorecard/internal/cache"
	"github.com/sells-group/scorecard/internal/config"
	"github.com/sells-group/scorecard/internal/registry"
	"github.com/sells-group/scorecard/internal/store"
	"github.com/sells-group/scorecard/pkg/notion"
)

// appEnv holds the initialized backends and the analysis service shared by
// the serve, analyze, history, report and mcp commands.
type appEnv struct {
	Registry *registry.Registry
	Store    store.Store
	Cache    cache.ReportCache
	Service  *analysis.Service
}

// Close releases resources held by the environment.
func (e *appEnv) Close() {
	if e.Cache != nil {
		_ = e.Cache.Close()
	}
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initEnv validates config for mode and wires registry, store, cache and
// service. Callers should defer env.Close().
func initEnv(ctx context.Context, mode string) (*appEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	reg, err := initRegistry(ctx, cfg)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, store.Options{
		Driver:        cfg.Store.Driver,
		DatabaseURL:   cfg.Store.DatabaseURL,
		MongoDatabase: cfg.Store.MongoDatabase,
	})
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}

	rc := initCache(ctx, cfg.Redis)

	svc := analysis.NewService(reg,
		analysis.WithStore(st),
		analysis.WithCache(rc),
		analysis.WithRenderTimeout(cfg.Render.Timeout()),
	)

	return &appEnv{Registry: reg, Store: st, Cache: rc, Service: svc}, nil
}

// initRegistry loads the embedded content and merges the configured source
// over it.
func initRegistry(ctx context.Context, c *config.Config) (*registry.Registry, error) {
	base, err := registry.LoadEmbedded()
	if err != nil {
		return nil, err
	}

	switch c.Registry.Source {
	case config.RegistryFile:
		overlay, err := registry.Load(c.Registry.Path)
		if err != nil {
			return nil, err
		}
		return base.Merge(overlay), nil
	case config.RegistryNotion:
		client := notion.NewClient(c.Notion.Token, c.Notion.RateLimit)
		overlay, err := registry.LoadFromNotion(ctx, client, c.Notion.DimensionDB, c.Notion.UseCaseDB)
		if err != nil {
			return nil, err
		}
		return base.Merge(overlay), nil
	default:
		return base, nil
	}
}

// initCache connects to Redis when an address is configured. A connection
// failure disables caching rather than failing startup.
func initCache(ctx context.Context, rc config.RedisConfig) cache.ReportCache {
	if rc.Addr == "" {
		return cache.Nop{}
	}
	c, err := cache.NewRedis(ctx, cache.RedisOptions{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
		TTL:      rc.TTL(),
	})
	if err != nil {
		zap.L().Warn("report cache disabled", zap.String("addr", rc.Addr), zap.Error(err))
		return cache.Nop{}
	}
	return c
}
