package riderrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/riderrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rider"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// RiderRepositoryIntegrationTestSuite provides integration tests for
// RiderRepository using PostgreSQL containers.
type RiderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *riderrepo.GormRiderRepository
	tracker    *MockAggregateTracker
}

func (suite *RiderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

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
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&riderrepo.RiderDTO{}))
}

func (suite *RiderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE riders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = riderrepo.NewGormRiderRepository(suite.db, suite.tracker)
}

func (suite *RiderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RiderRepositoryIntegrationTestSuite) TestAddAndGet_WithoutLocation() {
	ctx := context.Background()

	original, err := rider.NewRider(kernel.NewUUID(), "Kim")
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.True(retrieved.IsEqual(original))
	suite.Equal("Kim", retrieved.Name())
	suite.False(retrieved.HasLocation())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RiderRepositoryIntegrationTestSuite) TestUpdate_PersistsReportedLocation() {
	ctx := context.Background()

	aggregate, err := rider.NewRider(kernel.NewUUID(), "Kim")
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	seoul, err := kernel.NewGeoPoint(37.5665, 126.9780)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.MoveTo(seoul))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Require().True(retrieved.HasLocation())
	suite.InDelta(37.5665, retrieved.Location().Lat(), 1e-9)
	suite.InDelta(126.9780, retrieved.Location().Lng(), 1e-9)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RiderRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RiderRepositoryIntegrationTestSuite) TestUpdate_NonExistent_ReturnsNotFoundError() {
	ctx := context.Background()

	aggregate, err := rider.NewRider(kernel.NewUUID(), "Kim")
	suite.Require().NoError(err)

	err = suite.repository.Update(ctx, aggregate)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

func TestRiderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RiderRepositoryIntegrationTestSuite))
}
