//go:build integration

package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"backoffice/internal/adapters/out/postgres/orderrepo"
	"backoffice/internal/adapters/out/postgres/pgtest"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE " + pgtest.Tables).Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(km string) *order.Order {
	d, err := kernel.ParseDistance(km)
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), "Plateau", "Almadies", d, kernel.MustMoney(1750), kernel.MustMoney(175))
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsAllFields() {
	ctx := context.Background()
	o := suite.newOrder("12.5")

	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.ID(), got.ID())
	suite.Equal("Plateau", got.Origin())
	suite.Equal("Almadies", got.Destination())
	suite.Equal("12.5", got.Distance().Km().String())
	suite.Equal(int64(1750), got.Fare().Amount())
	suite.Equal(int64(175), got.Commission().Amount())
	suite.Equal(order.Pending, got.Status())
	suite.Nil(got.Agent())
	suite.False(got.CommissionSettled())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_WritesAgentStatusAndSettlement() {
	ctx := context.Background()
	o := suite.newOrder("3")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	agentID := kernel.NewUUID()
	suite.Require().NoError(o.Assign(agentID))
	suite.Require().NoError(o.Deliver())
	suite.Require().NoError(o.MarkCommissionSettled())
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(got.Agent())
	suite.Equal(agentID, *got.Agent())
	suite.Equal(order.Delivered, got.Status())
	suite.True(got.CommissionSettled())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountByAgent() {
	ctx := context.Background()
	agentID := kernel.NewUUID()

	for range 3 {
		o := suite.newOrder("1")
		suite.Require().NoError(o.Assign(agentID))
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder("1")))

	count, err := suite.repository.CountByAgent(ctx, agentID)
	suite.Require().NoError(err)
	suite.Equal(int64(3), count)

	count, err = suite.repository.CountByAgent(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Zero(count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetDeliveredUnsettled_OldestFirstAndLimited() {
	ctx := context.Background()
	agentID := kernel.NewUUID()

	var delivered []*order.Order
	for range 3 {
		o := suite.newOrder("2")
		suite.Require().NoError(o.Assign(agentID))
		suite.Require().NoError(o.Deliver())
		suite.Require().NoError(suite.repository.Add(ctx, o))
		delivered = append(delivered, o)
		time.Sleep(5 * time.Millisecond)
	}

	settled := suite.newOrder("2")
	suite.Require().NoError(settled.Assign(agentID))
	suite.Require().NoError(settled.Deliver())
	suite.Require().NoError(settled.MarkCommissionSettled())
	suite.Require().NoError(suite.repository.Add(ctx, settled))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder("2")))

	got, err := suite.repository.GetDeliveredUnsettled(ctx, 2)
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal(delivered[0].ID(), got[0].ID())
	suite.Equal(delivered[1].ID(), got[1].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	o := suite.newOrder("1")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(suite.repository.Delete(ctx, o.ID()))
	suite.Require().ErrorIs(suite.repository.Delete(ctx, o.ID()), errs.ErrObjectNotFound)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
