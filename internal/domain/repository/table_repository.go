package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
)

// TableRepository defines table data access
type TableRepository interface {
	Create(ctx context.Context, table *entity.Table) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Table, error)
	GetByNumber(ctx context.Context, tableNumber string) (*entity.Table, error)
	Update(ctx context.Context, table *entity.Table) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]entity.Table, error)
	// ListWithOccupancy returns all tables with occupancy derived from the
	// active-session join; occupancy is never stored on the table row
	ListWithOccupancy(ctx context.Context) ([]entity.TableWithOccupancy, error)
}
