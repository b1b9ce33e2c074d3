package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/Apurer/petcare-api/internal/app/api"
	userpostgres "github.com/Apurer/petcare-api/internal/domains/users/adapters/persistence/postgres"
	platformobservability "github.com/Apurer/petcare-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/petcare-api/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := platformobservability.NewLogger("petcare-session-purger", platformobservability.LogSettingsFromEnv())
	cfg, err := api.LoadBaseConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	db, cleanup := platformpostgres.ConnectOrFallback(ctx, cfg.Postgres.DSN, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("postgres.dsn not set or connection failed; cannot purge sessions")
	}

	store := userpostgres.NewSessionStore(db)
	purged, err := store.PurgeExpired(ctx, time.Now().UTC())
	if err != nil {
		log.Fatalf("failed to purge sessions: %v", err)
	}
	logger.Info("session purge completed", slog.Int64("purged", purged))
}
