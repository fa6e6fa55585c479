package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dinetrack/dinetrack-api/internal/config"
	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	"github.com/dinetrack/dinetrack-api/internal/domain/repository"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
	"github.com/dinetrack/dinetrack-api/pkg/logger"
	"github.com/dinetrack/dinetrack-api/pkg/utils"
)

// QROrderService handles untrusted order submissions from customer devices.
// Everything in the request body is hostile input: prices are resolved
// server-side, the table must be looked up by number, and the submission is
// gated by idempotency and rate limiting before any validation that touches
// the catalog.
type QROrderService struct {
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	sessionRepo   repository.SessionRepository
	tableRepo     repository.TableRepository
	menuRepo      repository.MenuRepository
	guardRepo     repository.QRGuardRepository
	auditRepo     repository.AuditRepository
	guardCfg      config.QRGuardConfig
}

// NewQROrderService creates a new QR order service
func NewQROrderService(
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	sessionRepo repository.SessionRepository,
	tableRepo repository.TableRepository,
	menuRepo repository.MenuRepository,
	guardRepo repository.QRGuardRepository,
	auditRepo repository.AuditRepository,
	guardCfg config.QRGuardConfig,
) *QROrderService {
	return &QROrderService{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		sessionRepo:   sessionRepo,
		tableRepo:     tableRepo,
		menuRepo:      menuRepo,
		guardRepo:     guardRepo,
		auditRepo:     auditRepo,
		guardCfg:      guardCfg,
	}
}

// SubmitQROrderInput represents a customer device submission
type SubmitQROrderInput struct {
	TableNumber     string
	ClientRequestID string // optional; enables replay protection
	SourceIP        string
	Notes           string
	Items           []OrderItemInput
}

// SubmitOrder runs the submission pipeline in fixed order: structure,
// idempotency, rate limit, table, session, item pricing, persist, audit.
// The order of the first three matters: a replayed request must be answered
// as a duplicate before it can consume rate budget, and rate limiting must
// fire before any database lookups the client can use as an oracle.
func (s *QROrderService) SubmitOrder(ctx context.Context, input *SubmitQROrderInput) (*entity.Order, error) {
	if input.TableNumber == "" {
		return nil, apperror.NewValidationError("Table number is required")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError("Order must contain at least one item")
	}
	if len(input.Items) > maxOrderItems {
		return nil, apperror.NewValidationError(
			fmt.Sprintf("Maximum %d items per order", maxOrderItems))
	}
	for _, item := range input.Items {
		if item.Quantity < 1 || item.Quantity > maxItemQuantity {
			return nil, apperror.NewValidationError("Item quantity out of range")
		}
	}

	reserved := false
	if input.ClientRequestID != "" {
		ok, err := s.guardRepo.ReserveRequestKey(ctx, input.ClientRequestID, input.TableNumber, s.guardCfg.IdempotencyTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.NewDuplicateError("This order was already submitted")
		}
		reserved = true
	}

	order, err := s.submitGuarded(ctx, input)
	if err != nil && reserved {
		// The submission failed downstream, so the key must not burn the
		// client's one legitimate retry.
		if relErr := s.guardRepo.ReleaseRequestKey(ctx, input.ClientRequestID); relErr != nil {
			logger.Error("failed to release request key", map[string]interface{}{
				"client_request_id": input.ClientRequestID,
				"error":             relErr.Error(),
			})
		}
	}
	return order, err
}

func (s *QROrderService) submitGuarded(ctx context.Context, input *SubmitQROrderInput) (*entity.Order, error) {
	rateKey := input.SourceIP + ":" + input.TableNumber
	window := time.Duration(s.guardCfg.WindowSeconds) * time.Second
	decision, err := s.guardRepo.Allow(ctx, rateKey, window, s.guardCfg.MaxPerWindow, s.guardCfg.MinGap)
	if err != nil {
		return nil, err
	}
	switch decision {
	case repository.RateLimited:
		return nil, apperror.NewRateLimitError("Too many orders from this device, please wait a minute")
	case repository.RateTooSoon:
		return nil, apperror.NewRateLimitError("Please wait a moment before submitting again")
	}

	table, err := s.tableRepo.GetByNumber(ctx, input.TableNumber)
	if err != nil {
		return nil, err
	}
	if table == nil || !table.IsActive {
		return nil, apperror.NewNotFoundError("Table")
	}
	if !table.QREnabled {
		return nil, apperror.NewPreconditionError("QR ordering is disabled for this table")
	}

	session, err := s.sessionRepo.GetActiveByTableID(ctx, table.ID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewPreconditionError("No active session for this table, please ask the staff")
	}

	items, modifiers, err := resolveOrderItems(ctx, s.menuRepo, input.Items)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		SessionID:     session.ID,
		BusinessDayID: session.BusinessDayID,
		OrderNumber:   utils.GenerateOrderNumber("QR"),
		Source:        enum.OrderSourceQR,
		Status:        enum.OrderStatusPending,
		Notes:         input.Notes,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := s.orderItemRepo.CreateBatch(ctx, items); err != nil {
		s.cancelOrder(ctx, order)
		return nil, err
	}
	if len(modifiers) > 0 {
		if err := s.orderItemRepo.CreateModifierBatch(ctx, modifiers); err != nil {
			s.cancelOrder(ctx, order)
			return nil, err
		}
	}

	if input.ClientRequestID != "" {
		if err := s.guardRepo.AttachOrder(ctx, input.ClientRequestID, order.ID); err != nil {
			logger.Error("failed to attach order to request key", map[string]interface{}{
				"order_number": order.OrderNumber,
				"error":        err.Error(),
			})
		}
	}

	s.audit(ctx, order, input)

	logger.Info("qr order submitted", map[string]interface{}{
		"order_number": order.OrderNumber,
		"table_number": input.TableNumber,
	})

	return order, nil
}

// cancelOrder marks a half-written order cancelled so it can never be
// accepted or billed.
func (s *QROrderService) cancelOrder(ctx context.Context, order *entity.Order) {
	if err := s.orderRepo.UpdateStatus(ctx, order.ID, enum.OrderStatusCancelled); err != nil {
		logger.Error("failed to cancel order after item write failure", map[string]interface{}{
			"order_number": order.OrderNumber,
			"error":        err.Error(),
		})
	}
}

func (s *QROrderService) audit(ctx context.Context, order *entity.Order, input *SubmitQROrderInput) {
	payload, _ := json.Marshal(map[string]interface{}{
		"order_number": order.OrderNumber,
		"table_number": input.TableNumber,
		"item_count":   len(input.Items),
	})
	recordID := order.ID
	log := &entity.AuditLog{
		Action:    entity.AuditQROrderSubmitted,
		Entity:    "order",
		RecordID:  &recordID,
		IPAddress: input.SourceIP,
		Details:   string(payload),
	}
	if err := s.auditRepo.Create(ctx, log); err != nil {
		logger.Error("failed to write audit log", map[string]interface{}{
			"action": entity.AuditQROrderSubmitted,
			"error":  err.Error(),
		})
	}
}
