package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/internal/domain/repository"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
)

// MenuService exposes the read-only catalog
type MenuService struct {
	menuRepo repository.MenuRepository
}

// NewMenuService creates a new menu service
func NewMenuService(menuRepo repository.MenuRepository) *MenuService {
	return &MenuService{menuRepo: menuRepo}
}

// ListCategories returns menu categories with their items
func (s *MenuService) ListCategories(ctx context.Context, activeOnly bool) ([]entity.MenuCategory, error) {
	return s.menuRepo.ListCategories(ctx, activeOnly)
}

// ListItems returns menu items with their modifier groups
func (s *MenuService) ListItems(ctx context.Context, activeOnly, availableOnly bool) ([]entity.MenuItem, error) {
	return s.menuRepo.ListItems(ctx, activeOnly, availableOnly)
}

// GetItem returns a menu item with its modifier groups
func (s *MenuService) GetItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, err := s.menuRepo.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	return item, nil
}
