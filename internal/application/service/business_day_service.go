package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	"github.com/dinetrack/dinetrack-api/internal/domain/repository"
	infraRepo "github.com/dinetrack/dinetrack-api/internal/infrastructure/repository"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
	"github.com/dinetrack/dinetrack-api/pkg/logger"
	"github.com/dinetrack/dinetrack-api/pkg/pagination"
)

// BusinessDayService handles the business day ledger
type BusinessDayService struct {
	dayRepo   repository.BusinessDayRepository
	auditRepo repository.AuditRepository
}

// NewBusinessDayService creates a new business day service
func NewBusinessDayService(dayRepo repository.BusinessDayRepository, auditRepo repository.AuditRepository) *BusinessDayService {
	return &BusinessDayService{
		dayRepo:   dayRepo,
		auditRepo: auditRepo,
	}
}

// OpenDayInput represents the open day input
type OpenDayInput struct {
	OpeningCash int64 // cents
	ActorID     uuid.UUID
}

// OpenDay opens a new business day. At most one day may be open; the partial
// unique index backs the check under concurrency.
func (s *BusinessDayService) OpenDay(ctx context.Context, input *OpenDayInput) (*entity.BusinessDay, error) {
	if input.OpeningCash < 0 {
		return nil, apperror.NewValidationError("Opening cash cannot be negative")
	}

	existing, err := s.dayRepo.GetOpen(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A business day is already open")
	}

	day := &entity.BusinessDay{
		Status:       enum.BusinessDayOpen,
		OpenedAt:     time.Now(),
		OpenedBy:     input.ActorID,
		OpeningCash:  input.OpeningCash,
		ExpectedCash: input.OpeningCash,
	}

	if err := s.dayRepo.Create(ctx, day); err != nil {
		if infraRepo.IsUniqueViolation(err) {
			return nil, apperror.NewConflictError("A business day is already open")
		}
		return nil, err
	}

	s.audit(ctx, entity.AuditDayOpened, day.ID, input.ActorID, map[string]interface{}{
		"opening_cash": float64(day.OpeningCash) / 100,
	})

	return day, nil
}

// CloseDayInput represents the close day input
type CloseDayInput struct {
	DayID       uuid.UUID
	ClosingCash int64 // cents
	ActorID     uuid.UUID
}

// CloseDay closes an open business day. Expected cash equals the opening
// float; the difference is recorded against the counted drawer. Closing is
// terminal.
func (s *BusinessDayService) CloseDay(ctx context.Context, input *CloseDayInput) (*entity.BusinessDay, error) {
	if input.ClosingCash < 0 {
		return nil, apperror.NewValidationError("Closing cash cannot be negative")
	}

	day, err := s.dayRepo.GetByID(ctx, input.DayID)
	if err != nil {
		return nil, err
	}
	if day == nil || !day.IsOpen() {
		return nil, apperror.NewNotFoundError("Open business day")
	}

	now := time.Now()
	day.Status = enum.BusinessDayClosed
	day.ClosedAt = &now
	day.ClosedBy = &input.ActorID
	day.ClosingCash = input.ClosingCash
	day.ExpectedCash = day.OpeningCash
	day.CashDifference = day.ClosingCash - day.ExpectedCash

	if err := s.dayRepo.Update(ctx, day); err != nil {
		return nil, err
	}

	s.audit(ctx, entity.AuditDayClosed, day.ID, input.ActorID, map[string]interface{}{
		"closing_cash":    float64(day.ClosingCash) / 100,
		"expected_cash":   float64(day.ExpectedCash) / 100,
		"cash_difference": float64(day.CashDifference) / 100,
	})

	return day, nil
}

// Current returns the open business day
func (s *BusinessDayService) Current(ctx context.Context) (*entity.BusinessDay, error) {
	day, err := s.dayRepo.GetOpen(ctx)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, apperror.NewNotFoundError("Open business day")
	}
	return day, nil
}

// GetByID returns a business day by ID
func (s *BusinessDayService) GetByID(ctx context.Context, id uuid.UUID) (*entity.BusinessDay, error) {
	day, err := s.dayRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, apperror.NewNotFoundError("Business day")
	}
	return day, nil
}

// List returns business days, newest first
func (s *BusinessDayService) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.BusinessDay, int64, error) {
	return s.dayRepo.List(ctx, params)
}

func (s *BusinessDayService) audit(ctx context.Context, action string, recordID, actorID uuid.UUID, details map[string]interface{}) {
	payload, _ := json.Marshal(details)
	log := &entity.AuditLog{
		Action:   action,
		Entity:   "business_day",
		RecordID: &recordID,
		ActorID:  &actorID,
		Details:  string(payload),
	}
	if err := s.auditRepo.Create(ctx, log); err != nil {
		logger.Error("failed to write audit log", map[string]interface{}{
			"action": action,
			"error":  err.Error(),
		})
	}
}
