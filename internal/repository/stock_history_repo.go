package repository

import (
	"context"
	"time"

	"go-inventory-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockHistoryRepository exposes the ledger as insert + read only. There is
// deliberately no update or delete.
type StockHistoryRepository interface {
	Create(tx *gorm.DB, entry *model.StockHistory) error
	FindAll(ctx context.Context) ([]model.StockHistory, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]model.StockHistory, error)
	FindRecent(ctx context.Context, limit int) ([]model.StockHistory, error)
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	SumByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	GetStockMovement(ctx context.Context, startDate, endDate time.Time) ([]model.StockMovement, error)
}

type stockHistoryRepo struct {
	db *gorm.DB
}

func NewStockHistoryRepo(db *gorm.DB) StockHistoryRepository {
	return &stockHistoryRepo{db}
}

func (r *stockHistoryRepo) Create(tx *gorm.DB, entry *model.StockHistory) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return tx.Create(entry).Error
}

func (r *stockHistoryRepo) FindAll(ctx context.Context) ([]model.StockHistory, error) {
	return r.find(ctx, r.db.WithContext(ctx))
}

func (r *stockHistoryRepo) FindByProduct(ctx context.Context, productID uuid.UUID) ([]model.StockHistory, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("product_id = ?", productID))
}

func (r *stockHistoryRepo) FindRecent(ctx context.Context, limit int) ([]model.StockHistory, error) {
	return r.find(ctx, r.db.WithContext(ctx).Limit(limit))
}

func (r *stockHistoryRepo) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.StockHistory{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}

func (r *stockHistoryRepo) SumByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var row struct {
		Total int64
	}
	err := r.db.WithContext(ctx).Model(&model.StockHistory{}).
		Select("COALESCE(SUM(change_amount), 0) AS total").
		Where("product_id = ?", productID).
		Scan(&row).Error
	return row.Total, err
}

func (r *stockHistoryRepo) GetStockMovement(ctx context.Context, startDate, endDate time.Time) ([]model.StockMovement, error) {
	results := []model.StockMovement{}

	// Aggregate ledger entries per calendar day
	err := r.db.WithContext(ctx).Model(&model.StockHistory{}).
		Select(`
			CAST(DATE(created_at) AS TEXT) AS date,
			COALESCE(SUM(CASE WHEN change_amount > 0 THEN change_amount ELSE 0 END), 0) AS inbound,
			COALESCE(SUM(CASE WHEN change_amount < 0 THEN -change_amount ELSE 0 END), 0) AS outbound
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("CAST(DATE(created_at) AS TEXT)").
		Order("date ASC").
		Scan(&results).Error

	return results, err
}

// find runs query newest-first and attaches the product reference to each
// entry. Entries whose product was deleted keep a nil reference.
func (r *stockHistoryRepo) find(ctx context.Context, query *gorm.DB) ([]model.StockHistory, error) {
	entries := []model.StockHistory{}
	if err := query.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return entries, nil
	}

	seen := make(map[uuid.UUID]struct{}, len(entries))
	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.ProductID]; !ok {
			seen[e.ProductID] = struct{}{}
			ids = append(ids, e.ProductID)
		}
	}

	var summaries []model.ProductSummary
	if err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("id", "name", "sku").
		Where("id IN ?", ids).
		Find(&summaries).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]model.ProductSummary, len(summaries))
	for _, s := range summaries {
		byID[s.ID] = s
	}
	for i := range entries {
		if s, ok := byID[entries[i].ProductID]; ok {
			summary := s
			entries[i].Product = &summary
		}
	}
	return entries, nil
}
