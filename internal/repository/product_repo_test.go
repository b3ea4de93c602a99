package repository_test

import (
	"context"
	"testing"

	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedProduct(t *testing.T, repo repository.ProductRepository, sku, category string, quantity int) *model.Product {
	t.Helper()
	p := &model.Product{Name: sku, SKU: sku, Category: category, Quantity: quantity, Price: decimal.NewFromInt(2)}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestApplyQuantityDelta_Guard(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProductRepo(db)
	p := seedProduct(t, repo, "SKU-1", "Hardware", 5)

	applied, err := repo.ApplyQuantityDelta(db, p.ID, -5, "tester")
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = repo.ApplyQuantityDelta(db, p.ID, -1, "tester")
	require.NoError(t, err)
	assert.False(t, applied)

	applied, err = repo.ApplyQuantityDelta(db, uuid.New(), 1, "tester")
	require.NoError(t, err)
	assert.False(t, applied)

	stored, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Quantity)
	assert.Equal(t, "tester", stored.UpdatedBy)
}

func TestSave_LeavesQuantityAlone(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProductRepo(db)
	p := seedProduct(t, repo, "SKU-1", "Hardware", 5)

	p.Name = "Renamed"
	p.Quantity = 999
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.Save(tx, p)
	}))

	stored, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Name)
	assert.Equal(t, 5, stored.Quantity)
}

func TestCountByCategory_MatchesName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProductRepo(db)
	seedProduct(t, repo, "SKU-1", "Hardware", 1)
	seedProduct(t, repo, "SKU-2", "Hardware", 1)
	seedProduct(t, repo, "SKU-3", "hardware", 1)

	n, err := repo.CountByCategory(context.Background(), &model.Category{Name: "Hardware"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestStockHistory_AppendAndSum(t *testing.T) {
	db := testutil.NewTestDB(t)
	products := repository.NewProductRepo(db)
	history := repository.NewStockHistoryRepo(db)
	p := seedProduct(t, products, "SKU-1", "Hardware", 0)

	for _, amount := range []int{4, -1, 2} {
		require.NoError(t, history.Create(db, &model.StockHistory{ProductID: p.ID, ChangeAmount: amount}))
	}

	sum, err := history.SumByProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, sum)

	recent, err := history.FindRecent(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}
