package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-inventory-api/internal/apperror"
	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, req *CreateCategoryRequest, actorID *uuid.UUID) (*model.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *UpdateCategoryRequest, actorID *uuid.UUID) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	references   repository.CategoryReferences
	log          *zap.Logger
}

func NewCategoryService(cRepo repository.CategoryRepository, refs repository.CategoryReferences, log *zap.Logger) CategoryService {
	return &categoryService{
		categoryRepo: cRepo,
		references:   refs,
		log:          log,
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, req *CreateCategoryRequest, actorID *uuid.UUID) (*model.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := validate(req); err != nil {
		return nil, err
	}

	if err := s.ensureNameFree(ctx, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	category := &model.Category{Name: req.Name, Description: req.Description}
	category.CreatedBy = actorString(actorID)
	category.UpdatedBy = category.CreatedBy

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Category already exists")
		}
		return nil, apperror.Unexpected(err)
	}
	return category, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, msgCategoryNotFound)
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	return categories, nil
}

// UpdateCategory does not touch products still carrying the old name.
func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req *UpdateCategoryRequest, actorID *uuid.UUID) (*model.Category, error) {
	if req.Name != nil {
		*req.Name = strings.TrimSpace(*req.Name)
		if *req.Name == "" {
			return nil, apperror.Validation("name is required", apperror.FieldError{Field: "name", Message: "name is required"})
		}
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, msgCategoryNotFound)
	}

	if req.Name != nil {
		if *req.Name != category.Name {
			if err := s.ensureNameFree(ctx, *req.Name, id); err != nil {
				return nil, err
			}
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = strings.TrimSpace(*req.Description)
	}
	category.UpdatedBy = actorString(actorID)

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Category already exists")
		}
		return nil, apperror.Unexpected(err)
	}
	return category, nil
}

// DeleteCategory refuses while any product still references the category.
func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return storeError(err, msgCategoryNotFound)
	}

	count, err := s.references.CountByCategory(ctx, category)
	if err != nil {
		return apperror.Unexpected(err)
	}
	if count > 0 {
		return apperror.Conflict(fmt.Sprintf("Cannot delete category. It is being used by %d products.", count))
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return apperror.Unexpected(err)
	}
	s.log.Info("category deleted", zap.String("category_id", id.String()), zap.String("name", category.Name))
	return nil
}

func (s *categoryService) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.categoryRepo.FindByName(ctx, name)
	switch {
	case err == nil && existing.ID != self:
		return apperror.Conflict("Category already exists")
	case err != nil && !isNotFound(err):
		return apperror.Unexpected(err)
	}
	return nil
}
