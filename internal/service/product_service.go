package service

import (
	"context"
	"errors"
	"strings"

	"go-inventory-api/internal/apperror"
	"go-inventory-api/internal/events"
	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Reason recorded when a product update sets the quantity directly.
const manualCorrectionReason = "Manual quantity correction"

type ProductService interface {
	CreateProduct(ctx context.Context, req *CreateProductRequest, actorID *uuid.UUID) (*model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *UpdateProductRequest, actorID *uuid.UUID) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error
}

type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	SKU         string          `json:"sku" validate:"required,max=64"`
	Category    string          `json:"category" validate:"required,max=255"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl" validate:"max=512"`
}

// UpdateProductRequest lists every field a client may change. Absent fields
// stay untouched; keys outside this struct are ignored by the decoder.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,max=255"`
	SKU         *string          `json:"sku" validate:"omitempty,max=64"`
	Category    *string          `json:"category" validate:"omitempty,max=255"`
	Quantity    *int             `json:"quantity"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"imageUrl" validate:"omitempty,max=512"`
}

func (r *UpdateProductRequest) normalize() error {
	var fields []apperror.FieldError
	required := func(name string, v *string) {
		if v == nil {
			return
		}
		*v = strings.TrimSpace(*v)
		if *v == "" {
			fields = append(fields, apperror.FieldError{Field: name, Message: name + " is required"})
		}
	}
	required("name", r.Name)
	required("sku", r.SKU)
	required("category", r.Category)

	if r.Description != nil {
		*r.Description = strings.TrimSpace(*r.Description)
	}
	if r.Quantity != nil && *r.Quantity < 0 {
		fields = append(fields, apperror.FieldError{Field: "quantity", Message: "quantity must be at least 0"})
	}
	if r.Price != nil && r.Price.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "price", Message: "price must be at least 0"})
	}

	if len(fields) > 0 {
		return apperror.Validation(fields[0].Message, fields...)
	}
	return validate(r)
}

type productService struct {
	db              *gorm.DB
	productRepo     repository.ProductRepository
	historyRepo     repository.StockHistoryRepository
	publisher       events.Publisher
	log             *zap.Logger
	defaultImageURL string
}

func NewProductService(db *gorm.DB, pRepo repository.ProductRepository, hRepo repository.StockHistoryRepository, publisher events.Publisher, log *zap.Logger, defaultImageURL string) ProductService {
	return &productService{
		db:              db,
		productRepo:     pRepo,
		historyRepo:     hRepo,
		publisher:       publisher,
		log:             log,
		defaultImageURL: defaultImageURL,
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *CreateProductRequest, actorID *uuid.UUID) (*model.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.SKU = strings.TrimSpace(req.SKU)
	req.Category = strings.TrimSpace(req.Category)
	req.Description = strings.TrimSpace(req.Description)
	if err := validate(req); err != nil {
		return nil, err
	}

	if err := s.ensureSKUFree(ctx, req.SKU, uuid.Nil); err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:        req.Name,
		SKU:         req.SKU,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if product.ImageURL == "" {
		product.ImageURL = s.defaultImageURL
	}
	product.CreatedBy = actorString(actorID)
	product.UpdatedBy = product.CreatedBy

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Product with this SKU already exists")
		}
		return nil, apperror.Unexpected(err)
	}

	publish(ctx, s.publisher, s.log, productEvent(events.ProductCreated, product, actorID))
	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, msgProductNotFound)
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if filter.SortBy != "" {
		if _, ok := model.ProductSortColumns[filter.SortBy]; !ok {
			return nil, apperror.Validation("Unsupported sort field: " + filter.SortBy)
		}
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *UpdateProductRequest, actorID *uuid.UUID) (*model.Product, error) {
	if err := req.normalize(); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return nil, storeError(err, msgProductNotFound)
	}
	if req.SKU != nil {
		if err := s.ensureSKUFree(ctx, *req.SKU, id); err != nil {
			return nil, err
		}
	}

	var (
		updated *model.Product
		entry   *model.StockHistory
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.productRepo.FindForUpdate(tx, id)
		if err != nil {
			return storeError(err, msgProductNotFound)
		}

		if req.Name != nil {
			existing.Name = *req.Name
		}
		if req.SKU != nil {
			existing.SKU = *req.SKU
		}
		if req.Category != nil {
			existing.Category = *req.Category
		}
		if req.Price != nil {
			existing.Price = *req.Price
		}
		if req.Description != nil {
			existing.Description = *req.Description
		}
		if req.ImageURL != nil {
			existing.ImageURL = *req.ImageURL
		}
		existing.UpdatedBy = actorString(actorID)

		if err := s.productRepo.Save(tx, existing); err != nil {
			return storeError(err, msgProductNotFound)
		}

		// A new quantity is booked as a ledger entry for the difference.
		if req.Quantity != nil && *req.Quantity != existing.Quantity {
			entry, existing, err = applyStockChange(tx, s.productRepo, s.historyRepo, stockChange{
				productID: id,
				amount:    *req.Quantity - existing.Quantity,
				reason:    manualCorrectionReason,
				actorID:   actorID,
			})
			if err != nil {
				return err
			}
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.log, productEvent(events.ProductUpdated, updated, actorID))
	if entry != nil {
		publish(ctx, s.publisher, s.log, stockChangedEvent(entry, updated))
	}
	return updated, nil
}

// DeleteProduct removes the product. Its ledger entries are kept.
func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return storeError(err, msgProductNotFound)
	}

	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return apperror.Unexpected(err)
	}
	if !deleted {
		return apperror.NotFound(msgProductNotFound)
	}

	s.log.Info("product deleted", zap.String("product_id", id.String()), zap.String("sku", product.SKU))
	publish(ctx, s.publisher, s.log, productEvent(events.ProductDeleted, product, actorID))
	return nil
}

func (s *productService) ensureSKUFree(ctx context.Context, sku string, self uuid.UUID) error {
	existing, err := s.productRepo.FindBySKU(ctx, sku)
	switch {
	case err == nil && existing.ID != self:
		return apperror.Conflict("Product with this SKU already exists")
	case err != nil && !isNotFound(err):
		return apperror.Unexpected(err)
	}
	return nil
}

func actorString(actorID *uuid.UUID) string {
	if actorID == nil {
		return "system"
	}
	return actorID.String()
}
