package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/internal/domain/repository"
	infraRepo "github.com/dinetrack/dinetrack-api/internal/infrastructure/repository"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
)

// TableService handles table management
type TableService struct {
	tableRepo   repository.TableRepository
	sessionRepo repository.SessionRepository
}

// NewTableService creates a new table service
func NewTableService(tableRepo repository.TableRepository, sessionRepo repository.SessionRepository) *TableService {
	return &TableService{
		tableRepo:   tableRepo,
		sessionRepo: sessionRepo,
	}
}

// CreateTableInput represents the create table input
type CreateTableInput struct {
	TableNumber string
	Capacity    int
	QREnabled   bool
}

// CreateTable creates a new table
func (s *TableService) CreateTable(ctx context.Context, input *CreateTableInput) (*entity.Table, error) {
	if input.TableNumber == "" {
		return nil, apperror.NewValidationError("Table number is required")
	}
	if input.Capacity < 1 {
		input.Capacity = 4
	}

	table := &entity.Table{
		TableNumber: input.TableNumber,
		Capacity:    input.Capacity,
		QREnabled:   input.QREnabled,
		IsActive:    true,
	}

	if err := s.tableRepo.Create(ctx, table); err != nil {
		if infraRepo.IsUniqueViolation(err) {
			return nil, apperror.NewConflictError("Table number already exists")
		}
		return nil, err
	}
	return table, nil
}

// UpdateTableInput represents the update table input
type UpdateTableInput struct {
	TableID   uuid.UUID
	Capacity  *int
	QREnabled *bool
	IsActive  *bool
}

// UpdateTable updates table settings
func (s *TableService) UpdateTable(ctx context.Context, input *UpdateTableInput) (*entity.Table, error) {
	table, err := s.tableRepo.GetByID(ctx, input.TableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}

	if input.Capacity != nil {
		if *input.Capacity < 1 {
			return nil, apperror.NewValidationError("Capacity must be at least 1")
		}
		table.Capacity = *input.Capacity
	}
	if input.QREnabled != nil {
		table.QREnabled = *input.QREnabled
	}
	if input.IsActive != nil {
		table.IsActive = *input.IsActive
	}

	if err := s.tableRepo.Update(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// DeleteTable soft-deletes a table. A table with an active session cannot be
// removed.
func (s *TableService) DeleteTable(ctx context.Context, id uuid.UUID) error {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if table == nil {
		return apperror.NewNotFoundError("Table")
	}

	active, err := s.sessionRepo.GetActiveByTableID(ctx, id)
	if err != nil {
		return err
	}
	if active != nil {
		return apperror.NewConflictError("Table has an active session")
	}

	return s.tableRepo.Delete(ctx, id)
}

// ToggleQR flips QR ordering on or off for a table
func (s *TableService) ToggleQR(ctx context.Context, id uuid.UUID) (*entity.Table, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}

	table.QREnabled = !table.QREnabled
	if err := s.tableRepo.Update(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// GetTable returns a table by ID
func (s *TableService) GetTable(ctx context.Context, id uuid.UUID) (*entity.Table, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}
	return table, nil
}

// ListTables returns tables, optionally active only
func (s *TableService) ListTables(ctx context.Context, activeOnly bool) ([]entity.Table, error) {
	return s.tableRepo.List(ctx, activeOnly)
}

// ListWithOccupancy returns all tables with derived occupancy for the floor
// view. Clients poll this endpoint.
func (s *TableService) ListWithOccupancy(ctx context.Context) ([]entity.TableWithOccupancy, error) {
	return s.tableRepo.ListWithOccupancy(ctx)
}
