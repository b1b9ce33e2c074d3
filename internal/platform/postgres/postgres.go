package postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	pingTimeout        = 5 * time.Second
	slowQueryThreshold = 200 * time.Millisecond
	maxOpenConns       = 20
	maxIdleConns       = 5
	connMaxLifetime    = 30 * time.Minute
)

var errEmptyDSN = errors.New("postgres DSN is empty")

// Config returns the GORM settings shared by the service and integration tests.
// TranslateError surfaces unique violations as gorm.ErrDuplicatedKey, which the
// repositories map to their conflict errors.
func Config() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// configFor adds a slog-backed GORM logger that only reports slow queries and failures.
func configFor(logger *slog.Logger) *gorm.Config {
	cfg := Config()
	cfg.Logger = gormlogger.New(
		slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
	return cfg
}

// Connect opens the petcare database, sizes the pool and pings it.
func Connect(ctx context.Context, dsn string, logger *slog.Logger) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errEmptyDSN
	}
	if logger == nil {
		logger = slog.Default()
	}
	db, err := gorm.Open(postgres.Open(dsn), configFor(logger))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// ConnectOrFallback returns nil and a no-op cleanup when dsn is empty or unreachable,
// so the caller can run on the in-memory repositories instead.
func ConnectOrFallback(ctx context.Context, dsn string, logger *slog.Logger) (*gorm.DB, func()) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := Connect(ctx, dsn, logger)
	switch {
	case errors.Is(err, errEmptyDSN):
		logger.Warn("postgres not configured, using in-memory repositories")
		return nil, func() {}
	case err != nil:
		logger.Warn("postgres unreachable, using in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("postgres connected", slog.Int("max_open_conns", maxOpenConns))
	return db, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
