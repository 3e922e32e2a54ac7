package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/cdzlabs/pos-api/internal/domain/entity"
	"github.com/cdzlabs/pos-api/internal/domain/repository"
	"github.com/cdzlabs/pos-api/pkg/apperror"
)

// CategoryService handles category operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	storeRepo    repository.StoreRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository, storeRepo repository.StoreRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, storeRepo: storeRepo}
}

// CreateCategory creates a new category in a store
func (s *CategoryService) CreateCategory(ctx context.Context, storeID uuid.UUID, name string) (*entity.Category, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}

	category := &entity.Category{
		StoreID: storeID,
		Name:    name,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories lists all categories in a store
func (s *CategoryService) ListCategories(ctx context.Context, storeID uuid.UUID) ([]entity.Category, error) {
	return s.categoryRepo.ListByStore(ctx, storeID)
}

// UpdateCategory renames a category
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	category.Name = name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory deletes a category
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return s.categoryRepo.Delete(ctx, id)
}
