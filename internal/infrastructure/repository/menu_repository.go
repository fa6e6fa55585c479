package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	domainRepo "github.com/dinetrack/dinetrack-api/internal/domain/repository"
)

type menuRepository struct {
	db *gorm.DB
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *gorm.DB) domainRepo.MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) ListCategories(ctx context.Context, activeOnly bool) ([]entity.MenuCategory, error) {
	var categories []entity.MenuCategory
	query := r.db.WithContext(ctx).Order("display_order ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Preload("Items").Find(&categories).Error
	return categories, err
}

func (r *menuRepository) ListItems(ctx context.Context, activeOnly, availableOnly bool) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	query := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if availableOnly {
		query = query.Where("is_available = ?", true)
	}
	err := query.Preload("ModifierGroups").Preload("ModifierGroups.Modifiers").Find(&items).Error
	return items, err
}

func (r *menuRepository) GetItemByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := r.db.WithContext(ctx).
		Preload("ModifierGroups").
		Preload("ModifierGroups.Modifiers").
		First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *menuRepository) GetItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&items).Error
	return items, err
}

func (r *menuRepository) GetModifiersByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Modifier, error) {
	var modifiers []entity.Modifier
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&modifiers).Error
	return modifiers, err
}

func (r *menuRepository) ListModifierGroupsForItem(ctx context.Context, itemID uuid.UUID) ([]entity.ModifierGroup, error) {
	var groups []entity.ModifierGroup
	err := r.db.WithContext(ctx).
		Where("menu_item_id = ?", itemID).
		Preload("Modifiers").
		Find(&groups).Error
	return groups, err
}
