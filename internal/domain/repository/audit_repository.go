package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/pkg/pagination"
)

// AuditFilterParams filters audit log listings
type AuditFilterParams struct {
	Pagination *pagination.PaginationParams
	Action     string
	RecordID   *uuid.UUID
}

// AuditRepository defines append-only audit log access
type AuditRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, params *AuditFilterParams) ([]entity.AuditLog, int64, error)
}
