package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
)

// MenuRepository defines read-only catalog access. The core never writes the
// catalog; administration is an external concern.
type MenuRepository interface {
	ListCategories(ctx context.Context, activeOnly bool) ([]entity.MenuCategory, error)
	ListItems(ctx context.Context, activeOnly, availableOnly bool) ([]entity.MenuItem, error)
	GetItemByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)
	// GetItemsByIDs batch-fetches items in one query
	GetItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.MenuItem, error)
	GetModifiersByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Modifier, error)
	ListModifierGroupsForItem(ctx context.Context, itemID uuid.UUID) ([]entity.ModifierGroup, error)
}
