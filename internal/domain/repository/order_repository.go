package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	"github.com/dinetrack/dinetrack-api/pkg/pagination"
)

// OrderFilterParams filters order listings
type OrderFilterParams struct {
	Pagination    *pagination.PaginationParams
	SessionID     *uuid.UUID
	BusinessDayID *uuid.UUID
	Status        *enum.OrderStatus
	Source        *enum.OrderSource
	Search        string
}

// OrderRepository defines order data access
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetWithItems preloads items, their menu items, and modifiers
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	// ListBillable returns the session's orders whose status counts toward
	// the bill (printed or paid), items preloaded
	ListBillable(ctx context.Context, sessionID uuid.UUID) ([]entity.Order, error)
}

// OrderItemRepository defines order item data access
type OrderItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.OrderItem) error
	CreateModifierBatch(ctx context.Context, modifiers []entity.OrderItemModifier) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error)
}
