package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	infraRepo "github.com/dinetrack/dinetrack-api/internal/infrastructure/repository"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
)

func newOrderFixture(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewOrderService(
		infraRepo.NewOrderRepository(db),
		infraRepo.NewOrderItemRepository(db),
		infraRepo.NewSessionRepository(db),
		infraRepo.NewMenuRepository(db),
		infraRepo.NewAuditRepository(db),
	)
	return svc, db
}

func TestCreateManualOrder_CreatedAccepted(t *testing.T) {
	svc, db := newOrderFixture(t)

	day := seedDay(t, db)
	table := seedTable(t, db, "2", true)
	session := seedSession(t, db, day, table, enum.OrderTypeDineIn)
	item := seedMenuItem(t, db, "Grilled Chicken", 1299)
	actorID := uuid.New()

	order, err := svc.CreateManualOrder(context.Background(), &CreateManualOrderInput{
		SessionID: session.ID,
		ActorID:   actorID,
		Items:     []OrderItemInput{{MenuItemID: item.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	// Staff entry is the acceptance: no pending state.
	assert.Equal(t, enum.OrderStatusAccepted, order.Status)
	assert.Equal(t, enum.OrderSourceManual, order.Source)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "MN-"))
	require.NotNil(t, order.CreatedBy)
	assert.Equal(t, actorID, *order.CreatedBy)
	require.NotNil(t, order.AcceptedAt)

	require.Len(t, order.Items, 1)
	assert.EqualValues(t, 1299, order.Items[0].UnitPrice)
	assert.EqualValues(t, 3897, order.Items[0].Subtotal)
}

func TestCreateManualOrder_ClosedSession(t *testing.T) {
	svc, db := newOrderFixture(t)

	day := seedDay(t, db)
	session := seedSession(t, db, day, nil, enum.OrderTypeTakeaway)
	session.Status = enum.SessionClosed
	require.NoError(t, db.Save(session).Error)
	item := seedMenuItem(t, db, "Water", 150)

	_, err := svc.CreateManualOrder(context.Background(), &CreateManualOrderInput{
		SessionID: session.ID,
		ActorID:   uuid.New(),
		Items:     []OrderItemInput{{MenuItemID: item.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindPrecondition))
}

func TestAcceptOrder_PendingOnly(t *testing.T) {
	svc, db := newOrderFixture(t)

	day := seedDay(t, db)
	session := seedSession(t, db, day, nil, enum.OrderTypeTakeaway)
	pending := seedOrder(t, db, session, enum.OrderStatusPending, 400)
	actorID := uuid.New()

	accepted, err := svc.AcceptOrder(context.Background(), pending.ID, actorID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusAccepted, accepted.Status)
	require.NotNil(t, accepted.AcceptedBy)
	assert.Equal(t, actorID, *accepted.AcceptedBy)

	// Accepting twice is an illegal transition.
	_, err = svc.AcceptOrder(context.Background(), pending.ID, actorID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindPrecondition))
}

func TestRejectOrder_TerminalState(t *testing.T) {
	svc, db := newOrderFixture(t)

	day := seedDay(t, db)
	session := seedSession(t, db, day, nil, enum.OrderTypeTakeaway)
	pending := seedOrder(t, db, session, enum.OrderStatusPending, 400)
	actorID := uuid.New()

	rejected, err := svc.RejectOrder(context.Background(), pending.ID, actorID, "out of stock")
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectedAt)

	_, err = svc.AcceptOrder(context.Background(), pending.ID, actorID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindPrecondition))

	// The rejection is on the audit trail with its reason.
	var log entity.AuditLog
	require.NoError(t, db.First(&log, "action = ?", entity.AuditOrderRejected).Error)
	assert.Contains(t, log.Details, "out of stock")
}

func TestResolveOrderItems_ModifierGroupRules(t *testing.T) {
	_, db := newOrderFixture(t)
	ctx := context.Background()
	menuRepo := infraRepo.NewMenuRepository(db)

	item := seedMenuItem(t, db, "Pizza", 2000)
	group := &entity.ModifierGroup{
		MenuItemID:   item.ID,
		Name:         "Size",
		MinSelection: 1,
		MaxSelection: 1,
		Required:     true,
	}
	require.NoError(t, db.Create(group).Error)
	small := &entity.Modifier{GroupID: group.ID, Name: "Small", PriceAdjustment: 0, IsAvailable: true}
	large := &entity.Modifier{GroupID: group.ID, Name: "Large", PriceAdjustment: 300, IsAvailable: true}
	require.NoError(t, db.Create(small).Error)
	require.NoError(t, db.Create(large).Error)

	otherItem := seedMenuItem(t, db, "Salad", 900)
	otherGroup := &entity.ModifierGroup{MenuItemID: otherItem.ID, Name: "Dressing", MaxSelection: 1}
	require.NoError(t, db.Create(otherGroup).Error)
	ranch := &entity.Modifier{GroupID: otherGroup.ID, Name: "Ranch", IsAvailable: true}
	require.NoError(t, db.Create(ranch).Error)

	// Required group not satisfied.
	_, _, err := resolveOrderItems(ctx, menuRepo, []OrderItemInput{
		{MenuItemID: item.ID, Quantity: 1},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	// Over the max selection.
	_, _, err = resolveOrderItems(ctx, menuRepo, []OrderItemInput{
		{MenuItemID: item.ID, Quantity: 1, Modifiers: []OrderModifierInput{
			{ModifierID: small.ID}, {ModifierID: large.ID},
		}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	// Modifier from a different item's group.
	_, _, err = resolveOrderItems(ctx, menuRepo, []OrderItemInput{
		{MenuItemID: item.ID, Quantity: 1, Modifiers: []OrderModifierInput{
			{ModifierID: ranch.ID},
		}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	// Valid selection snapshots the adjustment.
	items, modifiers, err := resolveOrderItems(ctx, menuRepo, []OrderItemInput{
		{MenuItemID: item.ID, Quantity: 2, Modifiers: []OrderModifierInput{
			{ModifierID: large.ID},
		}},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Len(t, modifiers, 1)
	assert.Equal(t, items[0].ID, modifiers[0].OrderItemID)
	assert.EqualValues(t, 300, modifiers[0].PriceAdjustment)
}

func TestResolveOrderItems_UnavailableItem(t *testing.T) {
	_, db := newOrderFixture(t)
	menuRepo := infraRepo.NewMenuRepository(db)

	item := seedMenuItem(t, db, "Special", 5000)
	item.IsAvailable = false
	require.NoError(t, db.Save(item).Error)

	_, _, err := resolveOrderItems(context.Background(), menuRepo, []OrderItemInput{
		{MenuItemID: item.ID, Quantity: 1},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestOrderLineTotal_IncludesModifiers(t *testing.T) {
	line := entity.OrderItem{
		Quantity:  2,
		UnitPrice: 1000,
		Subtotal:  2000,
		Modifiers: []entity.OrderItemModifier{
			{Quantity: 1, PriceAdjustment: 300},
			{Quantity: 2, PriceAdjustment: 50},
		},
	}
	assert.EqualValues(t, 2400, line.LineTotal())
}
