package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"log/slog"

	"github.com/spf13/cobra"

	"github.com/canopyhq/canopy"
	"github.com/canopyhq/canopy/internal/logging"
	"github.com/canopyhq/canopy/pkg/adapters/gemini"
	redisAdapter "github.com/canopyhq/canopy/pkg/adapters/redis"
	"github.com/canopyhq/canopy/pkg/catalog"
	"github.com/canopyhq/canopy/pkg/observability"
	"github.com/canopyhq/canopy/pkg/persistence/middleware"
	backend "github.com/redis/go-redis/v9"
)

// Environment variables consumed by the CLI.
const (
	envAddr        = "CANOPY_ADDR"
	envRedisAddr   = "CANOPY_REDIS_ADDR"
	envCatalog     = "CANOPY_CATALOG"
	envGeminiKey   = "GEMINI_API_KEY"
	envPIIPatterns = "CANOPY_PII_PATTERNS"
)

// loadCatalog resolves the catalog from --catalog, CANOPY_CATALOG, or
// the built-in default, in that order.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = os.Getenv(envCatalog)
	}
	if path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return cat, nil
}

// buildEngine assembles the engine from the environment: Redis-backed
// store and locker when CANOPY_REDIS_ADDR is set, PII masking when
// CANOPY_PII_PATTERNS lists question-id patterns, Gemini rendering when
// GEMINI_API_KEY is present, in-memory and verbatim otherwise.
func buildEngine(ctx context.Context, cmd *cobra.Command, logger *slog.Logger, metrics *observability.Metrics) (*canopy.Engine, error) {
	cat, err := loadCatalog(cmd)
	if err != nil {
		return nil, err
	}

	opts := []canopy.Option{
		canopy.WithCatalog(cat),
		canopy.WithLogger(logger),
	}
	if metrics != nil {
		opts = append(opts, canopy.WithMetrics(metrics))
	}

	if redisAddr := os.Getenv(envRedisAddr); redisAddr != "" {
		client := backend.NewClient(&backend.Options{Addr: redisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to reach redis at %s: %w", redisAddr, err)
		}
		opts = append(opts,
			canopy.WithStore(redisAdapter.NewFromClient(client)),
			canopy.WithLocker(redisAdapter.NewLocker(client, "canopy:")),
		)
		logger.Info("using redis persistence", "addr", redisAddr)
	}

	if patterns := os.Getenv(envPIIPatterns); patterns != "" {
		pii, err := middleware.NewPIIMiddleware(strings.Split(patterns, ","))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", envPIIPatterns, err)
		}
		opts = append(opts, canopy.WithStoreMiddleware(pii))
		logger.Info("pii masking enabled", "patterns", patterns)
	}

	if os.Getenv(envGeminiKey) != "" {
		renderer, err := gemini.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini renderer: %w", err)
		}
		opts = append(opts, canopy.WithRenderer(renderer))
		logger.Info("gemini rendering enabled", "model", gemini.DefaultModel)
	}

	return canopy.New(opts...), nil
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("CANOPY_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return logging.New(level)
}
