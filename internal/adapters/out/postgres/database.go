package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"backoffice/internal/adapters/out/postgres/agentrepo"
	"backoffice/internal/adapters/out/postgres/orderrepo"
	"backoffice/internal/adapters/out/postgres/pricingrepo"
	"backoffice/internal/core/domain/model/pricing"

	"github.com/lib/pq"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectOptions controls how Connect reaches the database.
type ConnectOptions struct {
	DSN     string
	Retries int
	Delay   time.Duration
	Logger  *slog.Logger
}

// BuildDSN assembles a key/value connection string from its parts. Values are single-quoted
// and escaped the way pq.ParseURL does it; empty parts are left out so libpq defaults apply.
func BuildDSN(host, port, user, password, dbName, sslMode string) string {
	parts := [][2]string{
		{"host", host},
		{"port", port},
		{"user", user},
		{"password", password},
		{"dbname", dbName},
		{"sslmode", sslMode},
	}

	kvs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p[1] == "" {
			continue
		}
		kvs = append(kvs, p[0]+"="+quoteDSNValue(p[1]))
	}
	return strings.Join(kvs, " ")
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteDSNValue(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}

// DSNFromURL converts a postgres:// URL to the key/value form. Any other input is returned
// unchanged.
func DSNFromURL(raw string) (string, error) {
	if !strings.HasPrefix(raw, "postgres://") && !strings.HasPrefix(raw, "postgresql://") {
		return raw, nil
	}
	dsn, err := pq.ParseURL(raw)
	if err != nil {
		return "", fmt.Errorf("parse database url: %w", err)
	}
	return dsn, nil
}

// Connect opens the pool and pings it, retrying while the server is still starting.
func Connect(ctx context.Context, opts ConnectOptions) (*gorm.DB, error) {
	if opts.Retries < 1 {
		opts.Retries = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "postgres")

	cfg := &gorm.Config{
		Logger: gormlogger.New(
			slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	}

	var lastErr error
	for attempt := 1; attempt <= opts.Retries; attempt++ {
		db, err := gorm.Open(gorm_postgres.Open(opts.DSN), cfg)
		if err == nil {
			err = ping(ctx, db)
			if err == nil {
				return db, nil
			}
			closeDB(db)
		}
		lastErr = err

		logger.WarnContext(ctx, "database not ready", "attempt", attempt, "of", opts.Retries, "error", err)
		if attempt == opts.Retries {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.Delay):
		}
	}

	return nil, fmt.Errorf("connect to database after %d attempts: %w", opts.Retries, lastErr)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Migrate creates or updates the schema and seeds the pricing row with defaults when it is
// missing. An existing pricing row is kept.
func Migrate(ctx context.Context, db *gorm.DB, defaults pricing.Parameters) error {
	err := db.WithContext(ctx).AutoMigrate(
		&agentrepo.AgentDTO{},
		&orderrepo.OrderDTO{},
		&pricingrepo.ParametersDTO{},
	)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	if err = pricingrepo.NewGormParametersRepository(db).Seed(ctx, defaults); err != nil {
		return fmt.Errorf("seed pricing parameters: %w", err)
	}
	return nil
}
