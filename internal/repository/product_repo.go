package repository

import (
	"context"
	"strings"

	"go-inventory-api/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context, threshold int) (int64, error)
	TotalValuation(ctx context.Context) (decimal.Decimal, error)
	CategoryReferences

	// Transaction-scoped operations take the tx handle explicitly.
	FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	Save(tx *gorm.DB, product *model.Product) error
	ApplyQuantityDelta(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) (bool, error)
}

// CategoryReferences answers how many products point at a category. Products
// reference categories by name today; callers only see this lookup.
type CategoryReferences interface {
	CountByCategory(ctx context.Context, category *model.Category) (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) FindAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{})

	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(description) LIKE ?", like, like, like)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.LowStockBelow > 0 {
		query = query.Where("quantity < ?", filter.LowStockBelow)
	}

	column, ok := model.ProductSortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: filter.Descending})

	products := []model.Product{}
	err := query.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepo) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Where("quantity < ?", threshold).Count(&count).Error
	return count, err
}

func (r *productRepo) TotalValuation(ctx context.Context) (decimal.Decimal, error) {
	var row struct {
		Valuation decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("COALESCE(SUM(quantity * price), 0) AS valuation").
		Scan(&row).Error
	return row.Valuation, err
}

func (r *productRepo) CountByCategory(ctx context.Context, category *model.Category) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Where("category = ?", category.Name).Count(&count).Error
	return count, err
}

// FindForUpdate loads the product and holds its row lock until tx ends.
func (r *productRepo) FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Save writes the descriptive columns. Quantity is left alone: it only moves
// through ApplyQuantityDelta.
func (r *productRepo) Save(tx *gorm.DB, product *model.Product) error {
	return tx.Model(product).
		Select("name", "sku", "category", "price", "description", "image_url", "updated_by", "updated_at").
		Updates(product).Error
}

// ApplyQuantityDelta adds delta to the stored quantity only if the result stays
// non-negative, evaluated by the database against the current row. It reports
// false when the guard rejected the change or the product is gone.
func (r *productRepo) ApplyQuantityDelta(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) (bool, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
