//go:build integration

package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	postgres_adapter "backoffice/internal/adapters/out/postgres"
	"backoffice/internal/adapters/out/postgres/pgtest"
	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/agent"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/pricing"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type agentUoWFactory struct{ f ports.UnitOfWorkFactory }

func (a agentUoWFactory) Create() commands.AgentUoW { return a.f.Create() }

type fullUoWFactory struct{ f ports.UnitOfWorkFactory }

func (a fullUoWFactory) Create() commands.UoW { return a.f.Create() }

type orderUoWFactory struct{ f ports.UnitOfWorkFactory }

func (a orderUoWFactory) Create() commands.OrderUoW { return a.f.Create() }

// blockedFor is how long a handler must stay parked on a row lock before the holder commits.
const blockedFor = 300 * time.Millisecond

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE " + pgtest.Tables).Error)
	suite.Require().NoError(postgres_adapter.Migrate(context.Background(), suite.db, pricing.DefaultParameters()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx), "commit without begin")
	suite.Require().NoError(uow.Rollback(ctx), "rollback without begin is a no-op")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().NoError(uow.Rollback(ctx), "rollback after commit is a no-op")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllRepositories() {
	ctx := context.Background()
	a := createTestAgent(suite)
	o := createTestOrder(suite)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.AgentRepository().Add(ctx, a))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	params, err := pricing.NewParameters(kernel.MustMoney(900), kernel.MustMoney(50), decimal.RequireFromString("0.2"))
	suite.Require().NoError(err)
	suite.Require().NoError(uow.ParametersRepository().Replace(ctx, params))
	suite.Require().NoError(uow.Rollback(ctx))

	check := suite.factory.Create()
	_, err = check.AgentRepository().Get(ctx, a.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = check.OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	current, err := check.ParametersRepository().Get(ctx)
	suite.Require().NoError(err)
	suite.True(current.Equal(pricing.DefaultParameters()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_TracksWrittenAggregates() {
	ctx := context.Background()
	a := createTestAgent(suite)
	o := createTestOrder(suite)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.AgentRepository().Add(ctx, a))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	gormUoW, ok := uow.(*postgres_adapter.GormUnitOfWork)
	suite.Require().True(ok)
	suite.Equal([]kernel.UUID{a.ID(), o.ID()}, gormUoW.TrackedIDs())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestReplaceParameters_IsAtomic() {
	ctx := context.Background()
	params, err := pricing.NewParameters(kernel.MustMoney(600), kernel.MustMoney(100), decimal.RequireFromString("0.15"))
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParametersRepository().Replace(ctx, params))
	suite.Require().NoError(uow.Commit(ctx))

	var rows int64
	suite.Require().NoError(suite.db.Table("pricing_parameters").Count(&rows).Error)
	suite.Equal(int64(1), rows)

	got, err := suite.factory.Create().ParametersRepository().Get(ctx)
	suite.Require().NoError(err)
	suite.True(params.Equal(got))
}

// Adjustments on one agent hold the row lock in turn, so no update is lost.
func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentAdjustments_NoLostUpdate() {
	ctx := context.Background()
	a := createTestAgent(suite)
	suite.Require().NoError(suite.factory.Create().AgentRepository().Add(ctx, a))

	handler := commands.NewAdjustBalanceCommandHandler(
		agentUoWFactory{suite.factory},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		nil,
	)

	const workers = 20
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			kind := agent.AddDebt
			if i%2 == 1 {
				kind = agent.RecordPayment
			}
			amount := kernel.MustMoney(int64(10 * (i + 1)))
			cmd, err := commands.NewAdjustBalanceCommand(a.ID(), kind, amount)
			suite.NoError(err)
			_, err = handler.Handle(ctx, cmd)
			suite.NoError(err)
		}(i)
	}
	wg.Wait()

	// sum over i of (-1)^(i+1) * 10*(i+1) for i in [0,20) = 10 * 10 = 100
	got, err := suite.factory.Create().AgentRepository().Get(ctx, a.ID())
	suite.Require().NoError(err)
	suite.Equal(int64(100), got.Balance().Amount())
}

// An assignment waits for a concurrent agent deletion and then finds the agent gone, so the
// order is never left pointing at a deleted agent.
func (suite *UnitOfWorkIntegrationTestSuite) TestAssignDuringAgentDeletion_NoOrphan() {
	ctx := context.Background()
	a := createTestAgent(suite)
	suite.Require().NoError(a.Approve())
	o := createTestOrder(suite)
	setup := suite.factory.Create()
	suite.Require().NoError(setup.AgentRepository().Add(ctx, a))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, o))

	deleting := suite.factory.Create()
	suite.Require().NoError(deleting.Begin(ctx))
	defer func() { _ = deleting.Rollback(ctx) }()
	_, err := deleting.AgentRepository().GetForUpdate(ctx, a.ID())
	suite.Require().NoError(err)
	count, err := deleting.OrderRepository().CountByAgent(ctx, a.ID())
	suite.Require().NoError(err)
	suite.Require().Zero(count)

	cmd, err := commands.NewAssignOrderCommand(o.ID(), a.ID())
	suite.Require().NoError(err)
	done := make(chan error, 1)
	go func() {
		done <- commands.NewAssignOrderCommandHandler(fullUoWFactory{suite.factory}).Handle(ctx, cmd)
	}()

	select {
	case err = <-done:
		suite.FailNow("assignment did not wait for the agent lock", "err: %v", err)
	case <-time.After(blockedFor):
	}

	suite.Require().NoError(deleting.AgentRepository().Delete(ctx, a.ID()))
	suite.Require().NoError(deleting.Commit(ctx))

	suite.Require().ErrorIs(<-done, errs.ErrObjectNotFound)
	got, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Nil(got.Agent())
}

// A reassignment racing a delivery waits for the order lock and then sees the Delivered
// status instead of writing Pending back over it.
func (suite *UnitOfWorkIntegrationTestSuite) TestAssignDuringDelivery_KeepsDelivered() {
	ctx := context.Background()
	first := createTestAgent(suite)
	suite.Require().NoError(first.Approve())
	second := createTestAgent(suite)
	suite.Require().NoError(second.Approve())
	o := createTestOrder(suite)
	suite.Require().NoError(o.Assign(first.ID()))
	setup := suite.factory.Create()
	suite.Require().NoError(setup.AgentRepository().Add(ctx, first))
	suite.Require().NoError(setup.AgentRepository().Add(ctx, second))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, o))

	delivering := suite.factory.Create()
	suite.Require().NoError(delivering.Begin(ctx))
	defer func() { _ = delivering.Rollback(ctx) }()
	locked, err := delivering.OrderRepository().GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.Deliver())
	suite.Require().NoError(delivering.OrderRepository().Update(ctx, locked))

	cmd, err := commands.NewAssignOrderCommand(o.ID(), second.ID())
	suite.Require().NoError(err)
	done := make(chan error, 1)
	go func() {
		done <- commands.NewAssignOrderCommandHandler(fullUoWFactory{suite.factory}).Handle(ctx, cmd)
	}()

	select {
	case err = <-done:
		suite.FailNow("assignment did not wait for the order lock", "err: %v", err)
	case <-time.After(blockedFor):
	}

	suite.Require().NoError(delivering.Commit(ctx))

	suite.Require().ErrorIs(<-done, errs.ErrValueIsInvalid)
	got, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, got.Status())
	suite.True(got.IsAssignedTo(first.ID()))
}

// Redelivery waits for the first delivery and becomes a no-op.
func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentDeliveries_Serialized() {
	ctx := context.Background()
	a := createTestAgent(suite)
	o := createTestOrder(suite)
	suite.Require().NoError(o.Assign(a.ID()))
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	cmd, err := commands.NewDeliverOrderCommand(o.ID())
	suite.Require().NoError(err)
	handler := commands.NewDeliverOrderCommandHandler(orderUoWFactory{suite.factory})

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			suite.NoError(handler.Handle(ctx, cmd))
		}()
	}
	wg.Wait()

	got, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, got.Status())
}

func createTestAgent(suite *UnitOfWorkIntegrationTestSuite) *agent.Agent {
	a, err := agent.NewAgent(kernel.NewUUID(), "Moussa Fall", "+221780000000", "velo")
	suite.Require().NoError(err)
	return a
}

func createTestOrder(suite *UnitOfWorkIntegrationTestSuite) *order.Order {
	d, err := kernel.ParseDistance("4")
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), "Medina", "Ouakam", d, kernel.MustMoney(900), kernel.MustMoney(90))
	suite.Require().NoError(err)
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
