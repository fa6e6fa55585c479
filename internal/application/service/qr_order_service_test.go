package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dinetrack/dinetrack-api/internal/config"
	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	infraRepo "github.com/dinetrack/dinetrack-api/internal/infrastructure/repository"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
)

func newQRFixture(t *testing.T, guardCfg config.QRGuardConfig) (*QROrderService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewQROrderService(
		infraRepo.NewOrderRepository(db),
		infraRepo.NewOrderItemRepository(db),
		infraRepo.NewSessionRepository(db),
		infraRepo.NewTableRepository(db),
		infraRepo.NewMenuRepository(db),
		infraRepo.NewQRGuardRepository(db),
		infraRepo.NewAuditRepository(db),
		guardCfg,
	)
	return svc, db
}

func openGuardCfg() config.QRGuardConfig {
	return config.QRGuardConfig{
		WindowSeconds:  60,
		MaxPerWindow:   100,
		MinGap:         0,
		IdempotencyTTL: 5 * time.Minute,
	}
}

func TestSubmitOrder_HappyPath(t *testing.T) {
	svc, db := newQRFixture(t, openGuardCfg())

	day := seedDay(t, db)
	table := seedTable(t, db, "7", true)
	seedSession(t, db, day, table, enum.OrderTypeDineIn)
	item := seedMenuItem(t, db, "Beef Burger", 1099)

	order, err := svc.SubmitOrder(context.Background(), &SubmitQROrderInput{
		TableNumber:     "7",
		ClientRequestID: "req-1",
		SourceIP:        "10.0.0.1",
		Items: []OrderItemInput{
			{MenuItemID: item.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusPending, order.Status)
	assert.Equal(t, enum.OrderSourceQR, order.Source)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "QR-"))
	assert.Nil(t, order.CreatedBy)

	// Prices come from the catalog, never from the client.
	var lines []entity.OrderItem
	require.NoError(t, db.Find(&lines, "order_id = ?", order.ID).Error)
	require.Len(t, lines, 1)
	assert.EqualValues(t, 1099, lines[0].UnitPrice)
	assert.EqualValues(t, 2198, lines[0].Subtotal)

	// The request key remembers the order it produced.
	var key entity.QrRequestKey
	require.NoError(t, db.First(&key, "client_request_id = ?", "req-1").Error)
	require.NotNil(t, key.OrderID)
	assert.Equal(t, order.ID, *key.OrderID)
}

func TestSubmitOrder_DuplicateClientRequestID(t *testing.T) {
	svc, db := newQRFixture(t, openGuardCfg())

	day := seedDay(t, db)
	table := seedTable(t, db, "7", true)
	seedSession(t, db, day, table, enum.OrderTypeDineIn)
	item := seedMenuItem(t, db, "Juice", 400)

	input := &SubmitQROrderInput{
		TableNumber:     "7",
		ClientRequestID: "req-dup",
		SourceIP:        "10.0.0.1",
		Items:           []OrderItemInput{{MenuItemID: item.ID, Quantity: 1}},
	}

	_, err := svc.SubmitOrder(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.SubmitOrder(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindDuplicate))

	var count int64
	db.Model(&entity.Order{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSubmitOrder_KeyReleasedOnDownstreamFailure(t *testing.T) {
	svc, db := newQRFixture(t, openGuardCfg())

	day := seedDay(t, db)
	table := seedTable(t, db, "7", true)
	seedSession(t, db, day, table, enum.OrderTypeDineIn)
	item := seedMenuItem(t, db, "Soup", 450)
	item.IsAvailable = false
	require.NoError(t, db.Save(item).Error)

	input := &SubmitQROrderInput{
		TableNumber:     "7",
		ClientRequestID: "req-retry",
		SourceIP:        "10.0.0.1",
		Items:           []OrderItemInput{{MenuItemID: item.ID, Quantity: 1}},
	}

	_, err := svc.SubmitOrder(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	// The failed attempt must not burn the key: a corrected retry with the
	// same clientRequestId goes through.
	item.IsAvailable = true
	require.NoError(t, db.Save(item).Error)

	order, err := svc.SubmitOrder(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusPending, order.Status)
}

func TestSubmitOrder_UnknownTable(t *testing.T) {
	svc, db := newQRFixture(t, openGuardCfg())
	item := seedMenuItem(t, db, "Water", 150)

	_, err := svc.SubmitOrder(context.Background(), &SubmitQROrderInput{
		TableNumber: "99",
		SourceIP:    "10.0.0.1",
		Items:       []OrderItemInput{{MenuItemID: item.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestSubmitOrder_QRDisabledTable(t *testing.T) {
	svc, db := newQRFixture(t, openGuardCfg())

	day := seedDay(t, db)
	table := seedTable(t, db, "8", false)
	seedSession(t, db, day, table, enum.OrderTypeDineIn)
	item := seedMenuItem(t, db, "Water", 150)

	_, err := svc.SubmitOrder(context.Background(), &SubmitQROrderInput{
		TableNumber: "8",
		SourceIP:    "10.0.0.1",
		Items:       []OrderItemInput{{MenuItemID: item.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindPrecondition))
}

func TestSubmitOrder_NoActiveSession(t *testing.T) {
	svc, db := newQRFixture(t, openGuardCfg())

	seedTable(t, db, "9", true)
	item := seedMenuItem(t, db, "Water", 150)

	_, err := svc.SubmitOrder(context.Background(), &SubmitQROrderInput{
		TableNumber: "9",
		SourceIP:    "10.0.0.1",
		Items:       []OrderItemInput{{MenuItemID: item.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindPrecondition))
}

func TestSubmitOrder_RateWindowCeiling(t *testing.T) {
	cfg := openGuardCfg()
	cfg.MaxPerWindow = 2
	svc, db := newQRFixture(t, cfg)

	day := seedDay(t, db)
	table := seedTable(t, db, "7", true)
	seedSession(t, db, day, table, enum.OrderTypeDineIn)
	item := seedMenuItem(t, db, "Juice", 400)

	submit := func() error {
		_, err := svc.SubmitOrder(context.Background(), &SubmitQROrderInput{
			TableNumber: "7",
			SourceIP:    "10.0.0.1",
			Items:       []OrderItemInput{{MenuItemID: item.ID, Quantity: 1}},
		})
		return err
	}

	require.NoError(t, submit())
	require.NoError(t, submit())

	err := submit()
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindRateLimit))

	// Another device at the same table has its own budget.
	_, err = svc.SubmitOrder(context.Background(), &SubmitQROrderInput{
		TableNumber: "7",
		SourceIP:    "10.0.0.2",
		Items:       []OrderItemInput{{MenuItemID: item.ID, Quantity: 1}},
	})
	require.NoError(t, err)
}

func TestSubmitOrder_MinGapBetweenSubmissions(t *testing.T) {
	cfg := openGuardCfg()
	cfg.MinGap = 2 * time.Second
	svc, db := newQRFixture(t, cfg)

	day := seedDay(t, db)
	table := seedTable(t, db, "7", true)
	seedSession(t, db, day, table, enum.OrderTypeDineIn)
	item := seedMenuItem(t, db, "Juice", 400)

	input := &SubmitQROrderInput{
		TableNumber: "7",
		SourceIP:    "10.0.0.1",
		Items:       []OrderItemInput{{MenuItemID: item.ID, Quantity: 1}},
	}

	_, err := svc.SubmitOrder(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.SubmitOrder(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindRateLimit))
}

func TestSubmitOrder_StructuralValidation(t *testing.T) {
	svc, _ := newQRFixture(t, openGuardCfg())
	ctx := context.Background()

	_, err := svc.SubmitOrder(ctx, &SubmitQROrderInput{
		TableNumber: "",
		Items:       []OrderItemInput{{Quantity: 1}},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = svc.SubmitOrder(ctx, &SubmitQROrderInput{TableNumber: "7"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = svc.SubmitOrder(ctx, &SubmitQROrderInput{
		TableNumber: "7",
		Items:       []OrderItemInput{{Quantity: 21}},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	tooMany := make([]OrderItemInput, 21)
	for i := range tooMany {
		tooMany[i] = OrderItemInput{MenuItemID: uuid.New(), Quantity: 1}
	}
	_, err = svc.SubmitOrder(ctx, &SubmitQROrderInput{
		TableNumber: "7",
		Items:       tooMany,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Contains(t, err.Error(), "Maximum 20 items")
}
