// Package bootstrap wires up runtime dependencies for the cmd entry points.
package bootstrap

import (
	"fmt"

	"ripple/internal/cache"
	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedProfile string
}

// InitRuntime connects to DB and Redis and optionally runs profile seeding.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedProfile != "" {
		if err := seed.RunProfile(db, opts.SeedProfile); err != nil {
			return nil, nil, fmt.Errorf("failed to seed profile %q: %w", opts.SeedProfile, err)
		}
	}

	return db, r, nil
}
