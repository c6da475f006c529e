// Package pgtest starts a throwaway PostgreSQL container for integration suites.
package pgtest

import (
	"context"
	"time"

	"backoffice/internal/adapters/out/postgres/agentrepo"
	"backoffice/internal/adapters/out/postgres/orderrepo"
	"backoffice/internal/adapters/out/postgres/pricingrepo"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Tables lists every table the suites truncate between tests.
const Tables = "agents, orders, pricing_parameters"

// Start runs postgres:15-alpine, connects GORM to it and migrates the schema. The caller owns
// the container and must Terminate it.
func Start(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	err = db.AutoMigrate(&agentrepo.AgentDTO{}, &orderrepo.OrderDTO{}, &pricingrepo.ParametersDTO{})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	return container, db, nil
}
