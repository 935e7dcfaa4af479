// Command migrate creates the menu_items table and exits. The API does the
// same on startup; this is for provisioning a database ahead of a deploy.
package main

import (
	"context"

	"github.com/siva9346/formating-app/internal/config"
	"github.com/siva9346/formating-app/internal/db"
	"github.com/siva9346/formating-app/internal/menu"
	"github.com/siva9346/formating-app/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(ctx, "load config", err)
	}
	logger.Init(cfg.Observability.LogLevel, cfg.Observability.LogFormat)

	if err := cfg.Validate(); err != nil {
		logger.Fatal(ctx, "invalid config", err)
	}

	pgDB, err := db.ConnectPostgres(ctx, db.PoolConfig{
		URL:        cfg.Database.URL,
		SearchPath: cfg.Database.Schema,
		MaxConns:   1,
	})
	if err != nil {
		logger.Fatal(ctx, "connect postgres", err)
	}
	defer pgDB.Close()

	if err := menu.NewPostgresRepository(pgDB).EnsureSchema(ctx); err != nil {
		logger.Fatal(ctx, "ensure schema", err)
	}

	logger.Info(ctx, "menu_items schema ready")
}
