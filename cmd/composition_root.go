package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "backoffice/internal/adapters/in/http"
	"backoffice/internal/adapters/in/kafka"
	"backoffice/internal/adapters/out/memory"
	"backoffice/internal/adapters/out/metrics"
	"backoffice/internal/adapters/out/postgres"
	"backoffice/internal/adapters/out/postgres/readmodel"
	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/core/ports"
	"backoffice/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// readModel is what the query side needs from a storage driver.
type readModel interface {
	queries.AgentReader
	queries.OrderReader
	queries.ParametersReader
	queries.StatisticsReader
}

type CompositionRoot struct {
	cfg        Config
	logger     *slog.Logger
	registry   *prometheus.Registry
	uowFactory ports.UnitOfWorkFactory
	readModel  readModel

	ledgerMetrics     *metrics.Ledger
	settlementMetrics *metrics.Settlement

	closers []func() error
}

// NewCompositionRoot opens the configured storage and prepares the shared dependencies.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &CompositionRoot{
		cfg:               cfg,
		logger:            logger,
		registry:          registry,
		ledgerMetrics:     metrics.NewLedger(registry),
		settlementMetrics: metrics.NewSettlement(registry),
	}

	switch cfg.StorageDriver {
	case StorageMemory:
		store := memory.NewStore(cfg.PricingDefaults)
		c.uowFactory = store
		c.readModel = store
		logger.Warn("Using in-memory storage, data is lost on exit")

	case StoragePostgres:
		dsn, err := cfg.DSN()
		if err != nil {
			return nil, err
		}
		db, err := postgres.Connect(ctx, postgres.ConnectOptions{
			DSN:     dsn,
			Retries: cfg.DBConnectRetries,
			Delay:   cfg.DBConnectDelay,
			Logger:  logger,
		})
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, sqlDB.Close)

		if err = postgres.Migrate(ctx, db, cfg.PricingDefaults); err != nil {
			_ = c.Close()
			return nil, err
		}
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
		c.readModel = readmodel.New(db)

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	return c, nil
}

// Registry exposes the metrics registry, mainly for tests.
func (c *CompositionRoot) Registry() *prometheus.Registry {
	return c.registry
}

func (c *CompositionRoot) agentUoWFactory() commands.AgentUoWFactory {
	return FuncAgentUoWFactory(func() commands.AgentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) parametersUoWFactory() commands.ParametersUoWFactory {
	return FuncParametersUoWFactory(func() commands.ParametersUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateAdjustBalanceCommandHandler() commands.AdjustBalanceCommandHandler {
	return commands.NewAdjustBalanceCommandHandler(c.agentUoWFactory(), c.logger, c.ledgerMetrics)
}

func (c *CompositionRoot) CreateChangeAgentStatusCommandHandler() commands.ChangeAgentStatusCommandHandler {
	return commands.NewChangeAgentStatusCommandHandler(c.agentUoWFactory())
}

func (c *CompositionRoot) CreateDeleteAgentCommandHandler() commands.DeleteAgentCommandHandler {
	return commands.NewDeleteAgentCommandHandler(c.fullUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateParametersCommandHandler() commands.UpdateParametersCommandHandler {
	return commands.NewUpdateParametersCommandHandler(c.parametersUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateRegisterAgentCommandHandler() commands.RegisterAgentCommandHandler {
	return commands.NewRegisterAgentCommandHandler(c.agentUoWFactory())
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSettleCommissionsCommandHandler() commands.SettleCommissionsCommandHandler {
	return commands.NewSettleCommissionsCommandHandler(c.fullUoWFactory(), services.NewCommissionSettler(), c.logger)
}

func (c *CompositionRoot) CreateGetAllAgentsQueryHandler() queries.GetAllAgentsQueryHandler {
	return queries.NewGetAllAgentsQueryHandler(c.readModel)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.readModel)
}

func (c *CompositionRoot) CreateGetParametersQueryHandler() queries.GetParametersQueryHandler {
	return queries.NewGetParametersQueryHandler(c.readModel)
}

func (c *CompositionRoot) CreateQuoteFareQueryHandler() queries.QuoteFareQueryHandler {
	return queries.NewQuoteFareQueryHandler(c.readModel)
}

func (c *CompositionRoot) CreateGetStatisticsQueryHandler() queries.GetStatisticsQueryHandler {
	return queries.NewGetStatisticsQueryHandler(c.readModel)
}

// NewRouter builds the HTTP entry point with every API handler wired in.
func (c *CompositionRoot) NewRouter() (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		AdjustBalance:    c.CreateAdjustBalanceCommandHandler(),
		ChangeStatus:     c.CreateChangeAgentStatusCommandHandler(),
		DeleteAgent:      c.CreateDeleteAgentCommandHandler(),
		DeleteOrder:      c.CreateDeleteOrderCommandHandler(),
		UpdateParameters: c.CreateUpdateParametersCommandHandler(),
		GetAllAgents:     c.CreateGetAllAgentsQueryHandler(),
		GetAllOrders:     c.CreateGetAllOrdersQueryHandler(),
		GetParameters:    c.CreateGetParametersQueryHandler(),
		QuoteFare:        c.CreateQuoteFareQueryHandler(),
		GetStatistics:    c.CreateGetStatisticsQueryHandler(),
	}, c.logger)

	return httpin.NewRouter(server, httpin.RouterOptions{
		Logger:           c.logger,
		Registry:         c.registry,
		ValidateRequests: c.cfg.HTTPValidateRequests,
	})
}

// NewJobManager returns the manager of the enabled background jobs.
func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	var enabled []jobs.Job
	if c.cfg.SettlementEnabled {
		enabled = append(enabled, jobs.NewCommissionSettlementJob(
			c.CreateSettleCommissionsCommandHandler(),
			c.cfg.SettlementSchedule,
			c.cfg.SettlementBatch,
			c.settlementMetrics,
			c.logger,
		))
	}
	return jobs.NewJobManager(c.logger, enabled...)
}

// NewKafkaConsumer returns nil when Kafka is not configured.
func (c *CompositionRoot) NewKafkaConsumer() (*kafka.Consumer, error) {
	dispatcher := kafka.NewDispatcher(
		c.CreateRegisterAgentCommandHandler(),
		c.CreatePlaceOrderCommandHandler(),
		c.CreateAssignOrderCommandHandler(),
		c.CreateDeliverOrderCommandHandler(),
	)
	return kafka.NewConsumer(c.logger, c.cfg.KafkaBrokers, c.cfg.KafkaConsumerGroup, c.cfg.KafkaEventsTopic, dispatcher.Handle)
}

// Close releases the storage connections.
func (c *CompositionRoot) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}

type FuncAgentUoWFactory func() commands.AgentUoW

func (f FuncAgentUoWFactory) Create() commands.AgentUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncParametersUoWFactory func() commands.ParametersUoW

func (f FuncParametersUoWFactory) Create() commands.ParametersUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
