package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	"github.com/dinetrack/dinetrack-api/internal/domain/repository"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
	"github.com/dinetrack/dinetrack-api/pkg/logger"
	"github.com/dinetrack/dinetrack-api/pkg/utils"
)

const (
	maxItemQuantity = 20
	maxOrderItems   = 20
)

// OrderService handles staff order intake and the accept/reject flow
type OrderService struct {
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	sessionRepo   repository.SessionRepository
	menuRepo      repository.MenuRepository
	auditRepo     repository.AuditRepository
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	sessionRepo repository.SessionRepository,
	menuRepo repository.MenuRepository,
	auditRepo repository.AuditRepository,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		sessionRepo:   sessionRepo,
		menuRepo:      menuRepo,
		auditRepo:     auditRepo,
	}
}

// OrderModifierInput represents a selected modifier on an order item
type OrderModifierInput struct {
	ModifierID uuid.UUID
	Quantity   int
}

// OrderItemInput represents one item line in an order submission
type OrderItemInput struct {
	MenuItemID uuid.UUID
	Quantity   int
	Notes      string
	Modifiers  []OrderModifierInput
}

// CreateManualOrderInput represents the staff order creation input
type CreateManualOrderInput struct {
	SessionID uuid.UUID
	ActorID   uuid.UUID
	Notes     string
	Items     []OrderItemInput
}

// CreateManualOrder creates a staff-entered order on an active session.
// Manual orders skip the pending state: the staff member entering them is the
// acceptance.
func (s *OrderService) CreateManualOrder(ctx context.Context, input *CreateManualOrderInput) (*entity.Order, error) {
	session, err := s.sessionRepo.GetByID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}
	if !session.IsActive() {
		return nil, apperror.NewPreconditionError("Session is closed")
	}

	items, modifiers, err := resolveOrderItems(ctx, s.menuRepo, input.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.Order{
		SessionID:     session.ID,
		BusinessDayID: session.BusinessDayID,
		OrderNumber:   utils.GenerateOrderNumber("MN"),
		Source:        enum.OrderSourceManual,
		Status:        enum.OrderStatusAccepted,
		Notes:         input.Notes,
		CreatedBy:     &input.ActorID,
		AcceptedBy:    &input.ActorID,
		AcceptedAt:    &now,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.persistItems(ctx, order, items, modifiers); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// AcceptOrder moves a pending QR order to accepted
func (s *OrderService) AcceptOrder(ctx context.Context, orderID, actorID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if !order.Status.CanTransitionTo(enum.OrderStatusAccepted) {
		return nil, apperror.NewPreconditionError(
			fmt.Sprintf("Order in status %q cannot be accepted", order.Status))
	}

	now := time.Now()
	order.Status = enum.OrderStatusAccepted
	order.AcceptedBy = &actorID
	order.AcceptedAt = &now

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.audit(ctx, entity.AuditOrderAccepted, order, &actorID, nil)
	return order, nil
}

// RejectOrder moves a pending QR order to rejected. Rejected is terminal and
// never bills.
func (s *OrderService) RejectOrder(ctx context.Context, orderID, actorID uuid.UUID, reason string) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if !order.Status.CanTransitionTo(enum.OrderStatusRejected) {
		return nil, apperror.NewPreconditionError(
			fmt.Sprintf("Order in status %q cannot be rejected", order.Status))
	}

	now := time.Now()
	order.Status = enum.OrderStatusRejected
	order.RejectedBy = &actorID
	order.RejectedAt = &now

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.audit(ctx, entity.AuditOrderRejected, order, &actorID, map[string]interface{}{
		"reason": reason,
	})
	return order, nil
}

// GetOrder returns an order with its items
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders returns orders matching the filters. The kitchen queue is this
// listing filtered by status.
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	return s.orderRepo.List(ctx, params)
}

// persistItems writes the order's items and modifiers, cancelling the order
// when a write fails so no half-written order reaches the kitchen.
func (s *OrderService) persistItems(ctx context.Context, order *entity.Order, items []entity.OrderItem, modifiers []entity.OrderItemModifier) error {
	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := s.orderItemRepo.CreateBatch(ctx, items); err != nil {
		s.cancelOrder(ctx, order.ID)
		return err
	}
	if len(modifiers) > 0 {
		if err := s.orderItemRepo.CreateModifierBatch(ctx, modifiers); err != nil {
			s.cancelOrder(ctx, order.ID)
			return err
		}
	}
	return nil
}

func (s *OrderService) cancelOrder(ctx context.Context, orderID uuid.UUID) {
	if err := s.orderRepo.UpdateStatus(ctx, orderID, enum.OrderStatusCancelled); err != nil {
		logger.Error("failed to cancel order after item write failure", map[string]interface{}{
			"order_id": orderID.String(),
			"error":    err.Error(),
		})
	}
}

func (s *OrderService) audit(ctx context.Context, action string, order *entity.Order, actorID *uuid.UUID, extra map[string]interface{}) {
	details := map[string]interface{}{
		"order_number": order.OrderNumber,
	}
	for k, v := range extra {
		details[k] = v
	}
	payload, _ := json.Marshal(details)
	recordID := order.ID
	log := &entity.AuditLog{
		Action:   action,
		Entity:   "order",
		RecordID: &recordID,
		ActorID:  actorID,
		Details:  string(payload),
	}
	if err := s.auditRepo.Create(ctx, log); err != nil {
		logger.Error("failed to write audit log", map[string]interface{}{
			"action": action,
			"error":  err.Error(),
		})
	}
}

// resolveOrderItems validates an item list against the catalog and builds the
// order item rows with prices snapshotted server-side. Client-supplied prices
// are never trusted; the QR path and the staff path share this resolution.
func resolveOrderItems(ctx context.Context, menuRepo repository.MenuRepository, inputs []OrderItemInput) ([]entity.OrderItem, []entity.OrderItemModifier, error) {
	if len(inputs) == 0 {
		return nil, nil, apperror.NewValidationError("Order must contain at least one item")
	}

	itemIDs := make([]uuid.UUID, 0, len(inputs))
	modifierIDs := make([]uuid.UUID, 0)
	for _, in := range inputs {
		if in.Quantity < 1 || in.Quantity > maxItemQuantity {
			return nil, nil, apperror.NewValidationError(
				fmt.Sprintf("Item quantity must be between 1 and %d", maxItemQuantity))
		}
		itemIDs = append(itemIDs, in.MenuItemID)
		for _, m := range in.Modifiers {
			modifierIDs = append(modifierIDs, m.ModifierID)
		}
	}

	menuItems, err := menuRepo.GetItemsByIDs(ctx, itemIDs)
	if err != nil {
		return nil, nil, err
	}
	itemsByID := make(map[uuid.UUID]*entity.MenuItem, len(menuItems))
	for i := range menuItems {
		itemsByID[menuItems[i].ID] = &menuItems[i]
	}

	modifiersByID := make(map[uuid.UUID]*entity.Modifier)
	if len(modifierIDs) > 0 {
		mods, err := menuRepo.GetModifiersByIDs(ctx, modifierIDs)
		if err != nil {
			return nil, nil, err
		}
		for i := range mods {
			modifiersByID[mods[i].ID] = &mods[i]
		}
	}

	var items []entity.OrderItem
	var itemModifiers []entity.OrderItemModifier

	for _, in := range inputs {
		menuItem, ok := itemsByID[in.MenuItemID]
		if !ok || !menuItem.IsActive {
			return nil, nil, apperror.NewValidationError("Menu item not found: " + in.MenuItemID.String())
		}
		if !menuItem.IsAvailable {
			return nil, nil, apperror.NewValidationError("Menu item is not available: " + menuItem.Name)
		}

		if err := validateModifierSelection(ctx, menuRepo, menuItem, in.Modifiers, modifiersByID); err != nil {
			return nil, nil, err
		}

		item := entity.OrderItem{
			ID:         uuid.New(),
			MenuItemID: menuItem.ID,
			Quantity:   in.Quantity,
			UnitPrice:  menuItem.Price,
			Subtotal:   menuItem.Price * int64(in.Quantity),
			Notes:      in.Notes,
		}
		items = append(items, item)

		for _, m := range in.Modifiers {
			modifier := modifiersByID[m.ModifierID]
			qty := m.Quantity
			if qty < 1 {
				qty = 1
			}
			itemModifiers = append(itemModifiers, entity.OrderItemModifier{
				OrderItemID:     item.ID,
				ModifierID:      modifier.ID,
				Quantity:        qty,
				PriceAdjustment: modifier.PriceAdjustment,
			})
		}
	}

	return items, itemModifiers, nil
}

// validateModifierSelection checks that every selected modifier belongs to one
// of the item's groups and that each group's min/max selection holds.
func validateModifierSelection(ctx context.Context, menuRepo repository.MenuRepository, menuItem *entity.MenuItem, selected []OrderModifierInput, modifiersByID map[uuid.UUID]*entity.Modifier) error {
	for _, m := range selected {
		modifier, ok := modifiersByID[m.ModifierID]
		if !ok {
			return apperror.NewValidationError("Modifier not found: " + m.ModifierID.String())
		}
		if !modifier.IsAvailable {
			return apperror.NewValidationError("Modifier is not available: " + modifier.Name)
		}
	}

	groups, err := menuRepo.ListModifierGroupsForItem(ctx, menuItem.ID)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		if len(selected) > 0 {
			return apperror.NewValidationError("Item does not accept modifiers: " + menuItem.Name)
		}
		return nil
	}

	groupByModifier := make(map[uuid.UUID]uuid.UUID)
	for _, g := range groups {
		for _, mod := range g.Modifiers {
			groupByModifier[mod.ID] = g.ID
		}
	}

	countByGroup := make(map[uuid.UUID]int)
	for _, m := range selected {
		groupID, ok := groupByModifier[m.ModifierID]
		if !ok {
			return apperror.NewValidationError(
				"Modifier does not belong to item " + menuItem.Name)
		}
		countByGroup[groupID]++
	}

	for _, g := range groups {
		count := countByGroup[g.ID]
		if g.Required && count < g.MinSelection {
			return apperror.NewValidationError(
				fmt.Sprintf("Modifier group %q requires at least %d selection(s)", g.Name, g.MinSelection))
		}
		if count > g.MaxSelection {
			return apperror.NewValidationError(
				fmt.Sprintf("Modifier group %q allows at most %d selection(s)", g.Name, g.MaxSelection))
		}
	}

	return nil
}
