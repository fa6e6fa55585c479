package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	"github.com/dinetrack/dinetrack-api/internal/domain/repository"
	infraRepo "github.com/dinetrack/dinetrack-api/internal/infrastructure/repository"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
)

// SessionService handles table and session management
type SessionService struct {
	sessionRepo repository.SessionRepository
	tableRepo   repository.TableRepository
	dayRepo     repository.BusinessDayRepository
}

// NewSessionService creates a new session service
func NewSessionService(
	sessionRepo repository.SessionRepository,
	tableRepo repository.TableRepository,
	dayRepo repository.BusinessDayRepository,
) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		tableRepo:   tableRepo,
		dayRepo:     dayRepo,
	}
}

// OpenDineInInput represents the open dine-in session input
type OpenDineInInput struct {
	TableID    uuid.UUID
	GuestCount int
	ActorID    uuid.UUID
}

// OpenDineIn opens a dine-in session on a table. The partial unique index on
// active sessions per table backs the occupancy check under concurrency.
func (s *SessionService) OpenDineIn(ctx context.Context, input *OpenDineInInput) (*entity.Session, error) {
	day, err := s.requireOpenDay(ctx)
	if err != nil {
		return nil, err
	}

	table, err := s.tableRepo.GetByID(ctx, input.TableID)
	if err != nil {
		return nil, err
	}
	if table == nil || !table.IsActive {
		return nil, apperror.NewNotFoundError("Table")
	}

	active, err := s.sessionRepo.GetActiveByTableID(ctx, input.TableID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, apperror.NewConflictError("Table already has an active session")
	}

	if input.GuestCount < 1 {
		input.GuestCount = 1
	}

	session := &entity.Session{
		BusinessDayID: day.ID,
		TableID:       &input.TableID,
		OrderType:     enum.OrderTypeDineIn,
		Status:        enum.SessionActive,
		GuestCount:    input.GuestCount,
		OpenedAt:      time.Now(),
		CreatedBy:     input.ActorID,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		if infraRepo.IsUniqueViolation(err) {
			return nil, apperror.NewConflictError("Table already has an active session")
		}
		return nil, err
	}
	session.Table = table
	return session, nil
}

// OpenTakeawayInput represents the open takeaway session input
type OpenTakeawayInput struct {
	CustomerName  string
	CustomerPhone string
	ActorID       uuid.UUID
}

// OpenTakeaway opens a takeaway session. Customer details are optional.
func (s *SessionService) OpenTakeaway(ctx context.Context, input *OpenTakeawayInput) (*entity.Session, error) {
	day, err := s.requireOpenDay(ctx)
	if err != nil {
		return nil, err
	}

	session := &entity.Session{
		BusinessDayID: day.ID,
		OrderType:     enum.OrderTypeTakeaway,
		Status:        enum.SessionActive,
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		GuestCount:    1,
		OpenedAt:      time.Now(),
		CreatedBy:     input.ActorID,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// OpenDeliveryInput represents the open delivery session input
type OpenDeliveryInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	DeliveryFee     int64 // cents
	ActorID         uuid.UUID
}

// OpenDelivery opens a delivery session. Name, phone and address are all
// required for dispatch.
func (s *SessionService) OpenDelivery(ctx context.Context, input *OpenDeliveryInput) (*entity.Session, error) {
	var fieldErrors []apperror.FieldError
	if input.CustomerName == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_name", Message: "required for delivery"})
	}
	if input.CustomerPhone == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_phone", Message: "required for delivery"})
	}
	if input.CustomerAddress == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_address", Message: "required for delivery"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewFieldValidationError(fieldErrors)
	}
	if input.DeliveryFee < 0 {
		return nil, apperror.NewValidationError("Delivery fee cannot be negative")
	}

	day, err := s.requireOpenDay(ctx)
	if err != nil {
		return nil, err
	}

	session := &entity.Session{
		BusinessDayID:   day.ID,
		OrderType:       enum.OrderTypeDelivery,
		Status:          enum.SessionActive,
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		DeliveryFee:     input.DeliveryFee,
		GuestCount:      1,
		OpenedAt:        time.Now(),
		CreatedBy:       input.ActorID,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession returns a session with its orders, items and bill
func (s *SessionService) GetSession(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	session, err := s.sessionRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}
	return session, nil
}

// ListSessions returns sessions matching the filters
func (s *SessionService) ListSessions(ctx context.Context, params *repository.SessionFilterParams) ([]entity.Session, int64, error) {
	return s.sessionRepo.List(ctx, params)
}

func (s *SessionService) requireOpenDay(ctx context.Context) (*entity.BusinessDay, error) {
	day, err := s.dayRepo.GetOpen(ctx)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, apperror.NewPreconditionError("No business day is open")
	}
	return day, nil
}
