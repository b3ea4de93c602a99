package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go-inventory-api/internal/apperror"
	"go-inventory-api/internal/events"
	"go-inventory-api/internal/model"
	"go-inventory-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct_DefaultsAndTrim(t *testing.T) {
	f := newFixture(t)

	p, err := f.product.CreateProduct(context.Background(), &service.CreateProductRequest{
		Name:     "  Hammer ",
		SKU:      " HM-01 ",
		Category: "Tools",
		Quantity: 3,
		Price:    decimal.RequireFromString("12.99"),
	}, nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "Hammer", p.Name)
	assert.Equal(t, "HM-01", p.SKU)
	assert.Equal(t, testImageURL, p.ImageURL)
	assert.Equal(t, "system", p.CreatedBy)
	assert.Len(t, f.events.OfType(events.ProductCreated), 1)

	// an initial quantity is not a ledger movement
	assert.EqualValues(t, 0, f.entryCount(t, p.ID))
}

func TestCreateProduct_DuplicateSKUConflicts(t *testing.T) {
	f := newFixture(t)
	first := f.createProduct(t, "DUP-1", 4)

	_, err := f.product.CreateProduct(context.Background(), &service.CreateProductRequest{
		Name: "Other", SKU: "DUP-1", Category: "Hardware", Quantity: 99,
	}, nil)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	stored, err := f.product.GetProduct(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Name, stored.Name)
	assert.Equal(t, 4, stored.Quantity)

	count, err := f.products.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCreateProduct_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		req   service.CreateProductRequest
		field string
	}{
		{"missing name", service.CreateProductRequest{SKU: "A", Category: "C"}, "name"},
		{"blank sku", service.CreateProductRequest{Name: "N", SKU: "   ", Category: "C"}, "sku"},
		{"missing category", service.CreateProductRequest{Name: "N", SKU: "A"}, "category"},
		{"negative quantity", service.CreateProductRequest{Name: "N", SKU: "A", Category: "C", Quantity: -1}, "quantity"},
		{"negative price", service.CreateProductRequest{Name: "N", SKU: "A", Category: "C", Price: decimal.NewFromInt(-1)}, "price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.product.CreateProduct(context.Background(), &req, nil)

			var appErr *apperror.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperror.KindValidation, appErr.Kind)
			require.NotEmpty(t, appErr.Fields)
			assert.Equal(t, tt.field, appErr.Fields[0].Field)
		})
	}
}

func TestUpdateProduct_PartialKeepsOtherFields(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, "SKU-1", 10)

	updated, err := f.product.UpdateProduct(context.Background(), p.ID, &service.UpdateProductRequest{
		Name: strPtr("Renamed"),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "SKU-1", updated.SKU)
	assert.Equal(t, "Hardware", updated.Category)
	assert.Equal(t, 10, updated.Quantity)
	assert.True(t, decimal.RequireFromString("2.50").Equal(updated.Price))
	assert.Equal(t, p.ID, updated.ID)
	assert.EqualValues(t, 0, f.entryCount(t, p.ID))
}

func TestUpdateProduct_QuantityGoesThroughLedger(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, "SKU-1", 10)
	actor := uuid.New()

	updated, err := f.product.UpdateProduct(context.Background(), p.ID, &service.UpdateProductRequest{
		Quantity: intPtr(4),
		Price:    decimalPtr("3.75"),
	}, &actor)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)
	assert.True(t, decimal.RequireFromString("3.75").Equal(updated.Price))

	entries, err := f.ledger.ListForProduct(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, -6, entries[0].ChangeAmount)
	assert.Equal(t, "Manual quantity correction", entries[0].Reason)
	require.NotNil(t, entries[0].UpdatedBy)
	assert.Equal(t, actor, *entries[0].UpdatedBy)

	assert.Len(t, f.events.OfType(events.StockChanged), 1)
	assert.Len(t, f.events.OfType(events.ProductUpdated), 1)
}

func TestUpdateProduct_SameQuantityWritesNoEntry(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, "SKU-1", 10)

	_, err := f.product.UpdateProduct(context.Background(), p.ID, &service.UpdateProductRequest{Quantity: intPtr(10)}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, f.entryCount(t, p.ID))
}

func TestUpdateProduct_Errors(t *testing.T) {
	f := newFixture(t)
	a := f.createProduct(t, "SKU-A", 1)
	f.createProduct(t, "SKU-B", 1)

	_, err := f.product.UpdateProduct(context.Background(), a.ID, &service.UpdateProductRequest{SKU: strPtr("SKU-B")}, nil)
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	_, err = f.product.UpdateProduct(context.Background(), a.ID, &service.UpdateProductRequest{Name: strPtr("  ")}, nil)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = f.product.UpdateProduct(context.Background(), a.ID, &service.UpdateProductRequest{Quantity: intPtr(-1)}, nil)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	tooLong := []struct {
		field string
		req   service.UpdateProductRequest
	}{
		{"name", service.UpdateProductRequest{Name: strPtr(strings.Repeat("n", 256))}},
		{"sku", service.UpdateProductRequest{SKU: strPtr(strings.Repeat("S", 65))}},
		{"category", service.UpdateProductRequest{Category: strPtr(strings.Repeat("c", 256))}},
		{"imageUrl", service.UpdateProductRequest{ImageURL: strPtr("/" + strings.Repeat("i", 512))}},
	}
	for _, tt := range tooLong {
		req := tt.req
		_, err = f.product.UpdateProduct(context.Background(), a.ID, &req, nil)
		var appErr *apperror.Error
		require.True(t, errors.As(err, &appErr), tt.field)
		assert.Equal(t, apperror.KindValidation, appErr.Kind, tt.field)
		require.NotEmpty(t, appErr.Fields, tt.field)
		assert.Equal(t, tt.field, appErr.Fields[0].Field)
	}

	_, err = f.product.UpdateProduct(context.Background(), uuid.New(), &service.UpdateProductRequest{Name: strPtr("x")}, nil)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	stored, err := f.products.FindByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "SKU-A", stored.SKU)
	assert.Equal(t, 1, stored.Quantity)
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, "SKU-1", 1)

	require.NoError(t, f.product.DeleteProduct(context.Background(), p.ID, nil))
	assert.Len(t, f.events.OfType(events.ProductDeleted), 1)

	_, err := f.product.GetProduct(context.Background(), p.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	err = f.product.DeleteProduct(context.Background(), p.ID, nil)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestListProducts_FilterAndSort(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, req := range []service.CreateProductRequest{
		{Name: "Bolt", SKU: "B-1", Category: "Hardware", Quantity: 50, Price: decimal.NewFromInt(1)},
		{Name: "Drill", SKU: "D-1", Category: "Tools", Quantity: 2, Price: decimal.NewFromInt(80)},
		{Name: "Nut", SKU: "N-1", Category: "Hardware", Quantity: 5, Price: decimal.NewFromInt(1), Description: "fits the bolt"},
	} {
		req := req
		_, err := f.product.CreateProduct(ctx, &req, nil)
		require.NoError(t, err)
	}

	names := func(ps []model.Product) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return out
	}

	got, err := f.product.ListProducts(ctx, model.ProductFilter{Search: "BOLT", SortBy: "name"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bolt", "Nut"}, names(got))

	got, err = f.product.ListProducts(ctx, model.ProductFilter{Category: "Hardware", SortBy: "quantity", Descending: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bolt", "Nut"}, names(got))

	got, err = f.product.ListProducts(ctx, model.ProductFilter{LowStockBelow: 10, SortBy: "quantity"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Drill", "Nut"}, names(got))

	_, err = f.product.ListProducts(ctx, model.ProductFilter{SortBy: "password"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
