package service_test

import (
	"context"
	"testing"
	"time"

	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/internal/service"
	"go-inventory-api/internal/testutil"
	"go-inventory-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testImageURL = "/images/default-product.jpg"

type fixture struct {
	db         *gorm.DB
	products   repository.ProductRepository
	categories repository.CategoryRepository
	history    repository.StockHistoryRepository
	users      repository.UserRepository
	events     *testutil.Recorder

	ledger    service.StockLedgerService
	product   service.ProductService
	category  service.CategoryService
	auth      service.AuthService
	dashboard service.DashboardService
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	return newFixtureOn(testutil.NewTestDB(t))
}

func newFixtureOn(db *gorm.DB) *fixture {
	log := zap.NewNop()
	f := &fixture{
		db:         db,
		products:   repository.NewProductRepo(db),
		categories: repository.NewCategoryRepo(db),
		history:    repository.NewStockHistoryRepo(db),
		users:      repository.NewUserRepo(db),
		events:     &testutil.Recorder{},
	}
	f.ledger = service.NewStockLedgerService(db, f.products, f.history, f.events, log)
	f.product = service.NewProductService(db, f.products, f.history, f.events, log, testImageURL)
	f.category = service.NewCategoryService(f.categories, f.products, log)
	f.auth = service.NewAuthService(f.users, jwt.NewManager("test-secret", time.Hour), true, log)
	f.dashboard = service.NewDashboardService(f.products, f.categories, f.history, 10)
	return f
}

func (f *fixture) createProduct(t testing.TB, sku string, quantity int) *model.Product {
	t.Helper()
	p, err := f.product.CreateProduct(context.Background(), &service.CreateProductRequest{
		Name:     "Product " + sku,
		SKU:      sku,
		Category: "Hardware",
		Quantity: quantity,
		Price:    decimal.RequireFromString("2.50"),
	}, nil)
	require.NoError(t, err)
	return p
}

func (f *fixture) record(productID uuid.UUID, amount int, reason string) (*model.StockHistory, error) {
	return f.ledger.RecordStockChange(context.Background(), &service.RecordStockChangeRequest{
		ProductID:    productID.String(),
		ChangeAmount: &amount,
		Reason:       reason,
	}, nil)
}

func (f *fixture) quantity(t testing.TB, id uuid.UUID) int {
	t.Helper()
	p, err := f.products.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.Quantity
}

func (f *fixture) entryCount(t testing.TB, id uuid.UUID) int64 {
	t.Helper()
	n, err := f.history.CountByProduct(context.Background(), id)
	require.NoError(t, err)
	return n
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
