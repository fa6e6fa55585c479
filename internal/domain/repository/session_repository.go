package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	"github.com/dinetrack/dinetrack-api/pkg/pagination"
)

// SessionFilterParams filters session listings
type SessionFilterParams struct {
	Pagination    *pagination.PaginationParams
	BusinessDayID *uuid.UUID
	Status        *enum.SessionStatus
	OrderType     *enum.OrderType
}

// SessionRepository defines session data access
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	// GetWithDetails preloads table, orders with items and modifiers, and bill
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	// GetActiveByTableID returns the active session on a table, or nil
	GetActiveByTableID(ctx context.Context, tableID uuid.UUID) (*entity.Session, error)
	Update(ctx context.Context, session *entity.Session) error
	List(ctx context.Context, params *SessionFilterParams) ([]entity.Session, int64, error)
}
