package service

import (
	"context"
	"time"

	"go-inventory-api/internal/apperror"
	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"

	"github.com/shopspring/decimal"
)

const recentChangesLimit = 5

type DashboardService interface {
	GetStats(ctx context.Context) (*DashboardStats, error)
	GetStockMovement(ctx context.Context, days int) ([]model.StockMovement, error)
}

// DashboardStats untuk overview stats
type DashboardStats struct {
	TotalProducts     int64                `json:"totalProducts"`
	TotalCategories   int64                `json:"totalCategories"`
	LowStockProducts  int64                `json:"lowStockProducts"`
	LowStockThreshold int                  `json:"lowStockThreshold"`
	TotalValuation    decimal.Decimal      `json:"totalValuation"`
	RecentChanges     []model.StockHistory `json:"recentChanges"`
}

type dashboardService struct {
	productRepo       repository.ProductRepository
	categoryRepo      repository.CategoryRepository
	historyRepo       repository.StockHistoryRepository
	lowStockThreshold int
}

func NewDashboardService(pRepo repository.ProductRepository, cRepo repository.CategoryRepository, hRepo repository.StockHistoryRepository, lowStockThreshold int) DashboardService {
	return &dashboardService{
		productRepo:       pRepo,
		categoryRepo:      cRepo,
		historyRepo:       hRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{LowStockThreshold: s.lowStockThreshold}
	var err error

	if stats.TotalProducts, err = s.productRepo.Count(ctx); err != nil {
		return nil, apperror.Unexpected(err)
	}
	if stats.TotalCategories, err = s.categoryRepo.Count(ctx); err != nil {
		return nil, apperror.Unexpected(err)
	}
	if stats.LowStockProducts, err = s.productRepo.CountLowStock(ctx, s.lowStockThreshold); err != nil {
		return nil, apperror.Unexpected(err)
	}
	if stats.TotalValuation, err = s.productRepo.TotalValuation(ctx); err != nil {
		return nil, apperror.Unexpected(err)
	}
	if stats.RecentChanges, err = s.historyRepo.FindRecent(ctx, recentChangesLimit); err != nil {
		return nil, apperror.Unexpected(err)
	}
	return stats, nil
}

func (s *dashboardService) GetStockMovement(ctx context.Context, days int) ([]model.StockMovement, error) {
	if days <= 0 {
		return nil, apperror.Validation("days must be a positive number")
	}
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	movement, err := s.historyRepo.GetStockMovement(ctx, startDate, endDate)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	return movement, nil
}
