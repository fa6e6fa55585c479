package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/pkg/pagination"
)

// BusinessDayRepository defines business day data access
type BusinessDayRepository interface {
	Create(ctx context.Context, day *entity.BusinessDay) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.BusinessDay, error)
	// GetOpen returns the single open business day, or nil if none is open
	GetOpen(ctx context.Context) (*entity.BusinessDay, error)
	Update(ctx context.Context, day *entity.BusinessDay) error
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.BusinessDay, int64, error)
}
