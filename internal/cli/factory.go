package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/autoplan"
	"github.com/aretw0/autoplan/internal/config"
	"github.com/aretw0/autoplan/pkg/adapters/file"
	"github.com/aretw0/autoplan/pkg/adapters/memory"
	"github.com/aretw0/autoplan/pkg/adapters/redis"
	"github.com/aretw0/autoplan/pkg/persistence/middleware"
	"github.com/aretw0/autoplan/pkg/ports"
	"github.com/aretw0/autoplan/pkg/templates"
)

// NewStudio builds a Studio from cfg. Memory goes to redis when configured,
// then to cfg.Memory.Dir, then stays in process. The returned close function
// releases the memory store connection, if any.
func NewStudio(ctx context.Context, cfg config.Config, logger *slog.Logger) (*autoplan.Studio, func() error, error) {
	opts := []autoplan.Option{autoplan.WithLogger(logger)}
	closer := func() error { return nil }

	if src := TemplateSource(cfg.Index); src != nil {
		opts = append(opts, autoplan.WithTemplateSource(src))
	}

	mws, err := MemoryMiddlewares(cfg.Memory)
	if err != nil {
		return nil, nil, err
	}

	var store ports.MemoryStore = memory.NewStore()
	switch {
	case cfg.Redis.Addr != "":
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redis.WithPrefix(cfg.Redis.Prefix))
		if err := rs.Ping(ctx); err != nil {
			rs.Close()
			return nil, nil, fmt.Errorf("error connecting to redis at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Info("Using redis memory store", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
		store = rs
		closer = rs.Close
	case cfg.Memory.Dir != "":
		logger.Info("Using file memory store", "dir", cfg.Memory.Dir)
		store = file.New(cfg.Memory.Dir)
	}
	if len(mws) > 0 {
		logger.Debug("Memory middleware enabled", "count", len(mws))
		store = middleware.Chain(store, mws...)
	}
	opts = append(opts, autoplan.WithMemoryStore(store))

	return autoplan.New(opts...), closer, nil
}

// MemoryMiddlewares builds the PII and encryption layers cfg asks for.
// Masking runs before encryption.
func MemoryMiddlewares(cfg config.MemoryConfig) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(cfg.PIIPatterns) > 0 {
		mws = append(mws, middleware.NewPIIMiddleware(cfg.PIIPatterns))
	}
	if cfg.EncryptionKey == "" {
		return mws, nil
	}

	active, err := decodeKey(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("memory encryption key: %w", err)
	}
	fallback := make([][]byte, 0, len(cfg.FallbackKeys))
	for i, k := range cfg.FallbackKeys {
		key, err := decodeKey(k)
		if err != nil {
			return nil, fmt.Errorf("memory fallback key %d: %w", i, err)
		}
		fallback = append(fallback, key)
	}
	return append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    active,
		FallbackKeys: fallback,
	})), nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("expected 32 bytes, got %d", len(key))
	}
	return key, nil
}

// TemplateSource picks the index source for location: nil when empty, an
// HTTP source for http(s) URLs, a file otherwise.
func TemplateSource(location string) ports.TemplateSource {
	switch {
	case location == "":
		return nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return templates.HTTPSource{URL: location}
	default:
		return templates.FileSource{Path: location}
	}
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}
