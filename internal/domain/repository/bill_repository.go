package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
)

// BillRepository defines bill data access
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*entity.Bill, error)
	// Update persists the full derived set (subtotal through total) in one
	// write so concurrent recomputations cannot interleave partial fields
	Update(ctx context.Context, bill *entity.Bill) error
	ListByBusinessDay(ctx context.Context, businessDayID uuid.UUID) ([]entity.Bill, error)
}
