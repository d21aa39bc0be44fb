package db

import (
	"context"
	"fmt"

	"school-admin-api/internal/config"
)

// Open connects to the backend named by cfg.Database.Driver.
func Open(ctx context.Context, cfg *config.Config) (Database, error) {
	switch cfg.Database.Driver {
	case "mongo":
		return OpenMongo(ctx, cfg.Database.Mongo)
	case "mysql":
		return OpenMySQL(ctx, cfg)
	case "bolt":
		return OpenBolt(cfg.Database.Bolt.Path, cfg.Database.Bolt.Timeout)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
