package catalogrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CatalogIntegrationTestSuite provides integration tests for the catalog
// reader using PostgreSQL containers.
type CatalogIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	catalog   *catalogrepo.GormCatalog
}

func (suite *CatalogIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(
		&catalogrepo.ProductDTO{},
		&catalogrepo.ProductOptionDTO{},
		&catalogrepo.StoreDTO{},
	))
}

func (suite *CatalogIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE products, product_options, stores").Error)
	suite.catalog = catalogrepo.NewGormCatalog(suite.db)
}

func (suite *CatalogIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CatalogIntegrationTestSuite) TestResolvePricing_UsesProductPrice() {
	ctx := context.Background()

	storeID := suite.seedStore("Gangnam Deli", nil, nil)
	productID := suite.seedProduct(storeID, "Bibimbap", 9500)

	line, err := cart.NewLine(productID, nil, 2)
	suite.Require().NoError(err)

	priced, err := suite.catalog.ResolvePricing(ctx, []cart.Line{line})

	suite.Require().NoError(err)
	suite.Require().Len(priced, 1)
	suite.True(priced[0].StoreID.IsEqual(storeID))
	suite.Equal(int64(9500), priced[0].Item.UnitPrice())
	suite.Equal(2, priced[0].Item.Quantity())
	suite.Equal(int64(19000), priced[0].Item.Subtotal())
}

func (suite *CatalogIntegrationTestSuite) TestResolvePricing_OptionPriceOverridesProductPrice() {
	ctx := context.Background()

	storeID := suite.seedStore("Gangnam Deli", nil, nil)
	productID := suite.seedProduct(storeID, "Bibimbap", 9500)
	optionID := suite.seedOption(productID, "Extra beef", 12000)

	line, err := cart.NewLine(productID, &optionID, 1)
	suite.Require().NoError(err)

	priced, err := suite.catalog.ResolvePricing(ctx, []cart.Line{line})

	suite.Require().NoError(err)
	suite.Require().Len(priced, 1)
	suite.Equal(int64(12000), priced[0].Item.UnitPrice())
	suite.Require().NotNil(priced[0].Item.OptionID())
	suite.True(priced[0].Item.OptionID().IsEqual(optionID))
}

func (suite *CatalogIntegrationTestSuite) TestResolvePricing_UnknownProduct_ReturnsNotFoundError() {
	ctx := context.Background()

	line, err := cart.NewLine(kernel.NewUUID(), nil, 1)
	suite.Require().NoError(err)

	priced, err := suite.catalog.ResolvePricing(ctx, []cart.Line{line})

	suite.Nil(priced)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CatalogIntegrationTestSuite) TestResolvePricing_OptionOfDifferentProduct_ReturnsNotFoundError() {
	ctx := context.Background()

	storeID := suite.seedStore("Gangnam Deli", nil, nil)
	productID := suite.seedProduct(storeID, "Bibimbap", 9500)
	otherProductID := suite.seedProduct(storeID, "Kimbap", 4000)
	foreignOptionID := suite.seedOption(otherProductID, "Tuna", 5000)

	line, err := cart.NewLine(productID, &foreignOptionID, 1)
	suite.Require().NoError(err)

	_, err = suite.catalog.ResolvePricing(ctx, []cart.Line{line})

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CatalogIntegrationTestSuite) TestStoreLocations_SkipsStoresWithoutLocation() {
	ctx := context.Background()

	lat, lng := 37.5665, 126.9780
	located := suite.seedStore("Gangnam Deli", &lat, &lng)
	unlocated := suite.seedStore("Ghost Kitchen", nil, nil)

	locations, err := suite.catalog.StoreLocations(ctx, []kernel.UUID{located, unlocated})

	suite.Require().NoError(err)
	suite.Require().Len(locations, 1)
	point, ok := locations[located]
	suite.Require().True(ok)
	suite.InDelta(37.5665, point.Lat(), 1e-9)
	suite.InDelta(126.9780, point.Lng(), 1e-9)
}

func (suite *CatalogIntegrationTestSuite) seedStore(name string, lat, lng *float64) kernel.UUID {
	id := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&catalogrepo.StoreDTO{
		ID:   id.Bytes(),
		Name: name,
		Lat:  lat,
		Lng:  lng,
	}).Error)
	return id
}

func (suite *CatalogIntegrationTestSuite) seedProduct(
	storeID kernel.UUID, name string, price int64,
) kernel.UUID {
	id := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&catalogrepo.ProductDTO{
		ID:      id.Bytes(),
		StoreID: storeID.Bytes(),
		Name:    name,
		Price:   price,
	}).Error)
	return id
}

func (suite *CatalogIntegrationTestSuite) seedOption(
	productID kernel.UUID, name string, price int64,
) kernel.UUID {
	id := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&catalogrepo.ProductOptionDTO{
		ID:        id.Bytes(),
		ProductID: productID.Bytes(),
		Name:      name,
		Price:     price,
	}).Error)
	return id
}

func TestCatalogIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogIntegrationTestSuite))
}
