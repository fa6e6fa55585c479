package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinetrack/dinetrack-api/internal/config"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	infraRepo "github.com/dinetrack/dinetrack-api/internal/infrastructure/repository"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
)

func TestUpsertBill_DineInTax(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(
		infraRepo.NewBillRepository(db),
		infraRepo.NewOrderRepository(db),
		infraRepo.NewSessionRepository(db),
		config.POSConfig{TaxRatePercent: 14, CashierDiscountCeiling: 15, OwnerDiscountCeiling: 30},
	)

	day := seedDay(t, db)
	table := seedTable(t, db, "5", true)
	session := seedSession(t, db, day, table, enum.OrderTypeDineIn)
	seedOrder(t, db, session, enum.OrderStatusPrinted, 1299, 1299)

	bill, err := svc.UpsertBill(context.Background(), &UpsertBillInput{
		SessionID: session.ID,
		ActorID:   uuid.New(),
		ActorRole: enum.RoleCashier,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 2598, bill.Subtotal)
	assert.EqualValues(t, 0, bill.DiscountAmount)
	// 2598 * 14% = 363.72, rounded half-up
	assert.EqualValues(t, 364, bill.TaxAmount)
	assert.EqualValues(t, 14, bill.TaxPercentage)
	assert.EqualValues(t, 0, bill.DeliveryFee)
	assert.EqualValues(t, 2962, bill.Total)
	assert.NotEmpty(t, bill.BillNumber)
}

func TestUpsertBill_OnlyPrintedAndPaidOrdersBill(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(
		infraRepo.NewBillRepository(db),
		infraRepo.NewOrderRepository(db),
		infraRepo.NewSessionRepository(db),
		config.POSConfig{TaxRatePercent: 14},
	)

	day := seedDay(t, db)
	session := seedSession(t, db, day, nil, enum.OrderTypeTakeaway)
	seedOrder(t, db, session, enum.OrderStatusPrinted, 1000)
	seedOrder(t, db, session, enum.OrderStatusPending, 9999)
	seedOrder(t, db, session, enum.OrderStatusAccepted, 9999)
	seedOrder(t, db, session, enum.OrderStatusRejected, 9999)
	seedOrder(t, db, session, enum.OrderStatusCancelled, 9999)

	bill, err := svc.UpsertBill(context.Background(), &UpsertBillInput{
		SessionID: session.ID,
		ActorID:   uuid.New(),
		ActorRole: enum.RoleCashier,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 1000, bill.Subtotal)
	// Takeaway carries no tax and no delivery fee.
	assert.EqualValues(t, 0, bill.TaxAmount)
	assert.EqualValues(t, 1000, bill.Total)
}

func TestUpsertBill_NoBillableOrders(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(
		infraRepo.NewBillRepository(db),
		infraRepo.NewOrderRepository(db),
		infraRepo.NewSessionRepository(db),
		config.POSConfig{},
	)

	day := seedDay(t, db)
	session := seedSession(t, db, day, nil, enum.OrderTypeTakeaway)
	seedOrder(t, db, session, enum.OrderStatusPending, 1000)

	_, err := svc.UpsertBill(context.Background(), &UpsertBillInput{
		SessionID: session.ID,
		ActorID:   uuid.New(),
		ActorRole: enum.RoleCashier,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindPrecondition))
}

func TestUpsertBill_DiscountMutuallyExclusive(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(
		infraRepo.NewBillRepository(db),
		infraRepo.NewOrderRepository(db),
		infraRepo.NewSessionRepository(db),
		config.POSConfig{CashierDiscountCeiling: 15},
	)

	day := seedDay(t, db)
	session := seedSession(t, db, day, nil, enum.OrderTypeTakeaway)
	seedOrder(t, db, session, enum.OrderStatusPrinted, 1000)

	_, err := svc.UpsertBill(context.Background(), &UpsertBillInput{
		SessionID:          session.ID,
		ActorID:            uuid.New(),
		ActorRole:          enum.RoleCashier,
		DiscountAmount:     int64Ptr(100),
		DiscountPercentage: floatPtr(10),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestUpsertBill_PercentageDiscountCeilings(t *testing.T) {
	cases := []struct {
		name        string
		role        enum.StaffRole
		percent     float64
		wantErr     bool
		wantCeiling string
	}{
		{"cashier within ceiling", enum.RoleCashier, 15, false, ""},
		{"cashier over ceiling", enum.RoleCashier, 16, true, "15%"},
		{"owner within ceiling", enum.RoleOwner, 30, false, ""},
		{"owner over ceiling", enum.RoleOwner, 31, true, "30%"},
		{"waiter any percentage", enum.RoleWaiter, 1, true, "0%"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := newTestDB(t)
			svc := NewBillingService(
				infraRepo.NewBillRepository(db),
				infraRepo.NewOrderRepository(db),
				infraRepo.NewSessionRepository(db),
				config.POSConfig{CashierDiscountCeiling: 15, OwnerDiscountCeiling: 30},
			)

			day := seedDay(t, db)
			session := seedSession(t, db, day, nil, enum.OrderTypeTakeaway)
			seedOrder(t, db, session, enum.OrderStatusPrinted, 10000)

			bill, err := svc.UpsertBill(context.Background(), &UpsertBillInput{
				SessionID:          session.ID,
				ActorID:            uuid.New(),
				ActorRole:          tc.role,
				DiscountPercentage: floatPtr(tc.percent),
			})
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, apperror.IsKind(err, apperror.KindAuthorization))
				// The rejection names the limit the caller is held to.
				assert.Contains(t, err.Error(), tc.wantCeiling)
				return
			}
			require.NoError(t, err)
			expected := int64(10000 * tc.percent / 100)
			assert.EqualValues(t, expected, bill.DiscountAmount)
			assert.EqualValues(t, 10000-expected, bill.Total)
		})
	}
}

func TestUpsertBill_AbsoluteDiscountSkipsRoleCeiling(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(
		infraRepo.NewBillRepository(db),
		infraRepo.NewOrderRepository(db),
		infraRepo.NewSessionRepository(db),
		config.POSConfig{CashierDiscountCeiling: 15},
	)

	day := seedDay(t, db)
	session := seedSession(t, db, day, nil, enum.OrderTypeTakeaway)
	seedOrder(t, db, session, enum.OrderStatusPrinted, 10000)

	// A fixed amount well above the cashier's 15% percentage ceiling.
	bill, err := svc.UpsertBill(context.Background(), &UpsertBillInput{
		SessionID:      session.ID,
		ActorID:        uuid.New(),
		ActorRole:      enum.RoleCashier,
		DiscountAmount: int64Ptr(5000),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 5000, bill.DiscountAmount)
	assert.EqualValues(t, 5000, bill.Total)

	// But never more than the subtotal.
	_, err = svc.UpsertBill(context.Background(), &UpsertBillInput{
		SessionID:      session.ID,
		ActorID:        uuid.New(),
		ActorRole:      enum.RoleCashier,
		DiscountAmount: int64Ptr(10001),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestUpsertBill_DeliveryFeeAppliedOnDeliveryOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(
		infraRepo.NewBillRepository(db),
		infraRepo.NewOrderRepository(db),
		infraRepo.NewSessionRepository(db),
		config.POSConfig{TaxRatePercent: 14},
	)

	day := seedDay(t, db)
	session := seedSession(t, db, day, nil, enum.OrderTypeDelivery)
	session.DeliveryFee = 500
	require.NoError(t, db.Save(session).Error)
	seedOrder(t, db, session, enum.OrderStatusPrinted, 2000)

	bill, err := svc.UpsertBill(context.Background(), &UpsertBillInput{
		SessionID: session.ID,
		ActorID:   uuid.New(),
		ActorRole: enum.RoleCashier,
	})
	require.NoError(t, err)

	// Delivery: no dine-in tax, fee added on top.
	assert.EqualValues(t, 0, bill.TaxAmount)
	assert.EqualValues(t, 500, bill.DeliveryFee)
	assert.EqualValues(t, 2500, bill.Total)
}

func TestUpsertBill_RecomputeReusesBillRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(
		infraRepo.NewBillRepository(db),
		infraRepo.NewOrderRepository(db),
		infraRepo.NewSessionRepository(db),
		config.POSConfig{CashierDiscountCeiling: 15},
	)

	day := seedDay(t, db)
	session := seedSession(t, db, day, nil, enum.OrderTypeTakeaway)
	seedOrder(t, db, session, enum.OrderStatusPrinted, 10000)

	first, err := svc.UpsertBill(context.Background(), &UpsertBillInput{
		SessionID: session.ID,
		ActorID:   uuid.New(),
		ActorRole: enum.RoleCashier,
	})
	require.NoError(t, err)

	second, err := svc.UpsertBill(context.Background(), &UpsertBillInput{
		SessionID:          session.ID,
		ActorID:            uuid.New(),
		ActorRole:          enum.RoleCashier,
		DiscountPercentage: floatPtr(10),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.BillNumber, second.BillNumber)
	assert.EqualValues(t, 1000, second.DiscountAmount)
	assert.EqualValues(t, 9000, second.Total)
}

func TestUpsertBill_PaidBillIsImmutable(t *testing.T) {
	db := newTestDB(t)
	billRepo := infraRepo.NewBillRepository(db)
	svc := NewBillingService(
		billRepo,
		infraRepo.NewOrderRepository(db),
		infraRepo.NewSessionRepository(db),
		config.POSConfig{},
	)

	day := seedDay(t, db)
	session := seedSession(t, db, day, nil, enum.OrderTypeTakeaway)
	seedOrder(t, db, session, enum.OrderStatusPrinted, 1000)

	bill, err := svc.UpsertBill(context.Background(), &UpsertBillInput{
		SessionID: session.ID,
		ActorID:   uuid.New(),
		ActorRole: enum.RoleCashier,
	})
	require.NoError(t, err)

	bill.IsPaid = true
	require.NoError(t, billRepo.Update(context.Background(), bill))

	_, err = svc.UpsertBill(context.Background(), &UpsertBillInput{
		SessionID: session.ID,
		ActorID:   uuid.New(),
		ActorRole: enum.RoleCashier,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestUpsertBill_SessionNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(
		infraRepo.NewBillRepository(db),
		infraRepo.NewOrderRepository(db),
		infraRepo.NewSessionRepository(db),
		config.POSConfig{},
	)

	_, err := svc.UpsertBill(context.Background(), &UpsertBillInput{
		SessionID: uuid.New(),
		ActorID:   uuid.New(),
		ActorRole: enum.RoleCashier,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
