package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	infraRepo "github.com/dinetrack/dinetrack-api/internal/infrastructure/repository"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
)

func newReportFixture(t *testing.T) (*ReportService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewReportService(
		infraRepo.NewReportRepository(db),
		infraRepo.NewBusinessDayRepository(db),
	)
	return svc, db
}

func TestReport_AggregatesOneDay(t *testing.T) {
	svc, db := newReportFixture(t)

	day := seedDay(t, db)
	table := seedTable(t, db, "1", true)

	// Settled dine-in session: two orders, paid bill, cash payment.
	dineIn := seedSession(t, db, day, table, enum.OrderTypeDineIn)
	qrOrder := seedOrder(t, db, dineIn, enum.OrderStatusPaid, 2000)
	qrOrder.Source = enum.OrderSourceQR
	require.NoError(t, db.Save(qrOrder).Error)
	seedOrder(t, db, dineIn, enum.OrderStatusPaid, 1000)

	now := time.Now()
	paidBill := &entity.Bill{
		BillNumber:     "B-PAID",
		SessionID:      dineIn.ID,
		BusinessDayID:  day.ID,
		Subtotal:       3000,
		DiscountAmount: 300,
		TaxAmount:      378,
		Total:          3078,
		IsPaid:         true,
		PaidAt:         &now,
		PaidAmount:     3100,
		ChangeAmount:   22,
		CreatedBy:      uuid.New(),
	}
	require.NoError(t, db.Create(paidBill).Error)
	require.NoError(t, db.Create(&entity.Payment{
		BillID:        paidBill.ID,
		BusinessDayID: day.ID,
		Method:        enum.PaymentMethodCash,
		Amount:        3078,
		CreatedBy:     uuid.New(),
	}).Error)

	// Open takeaway session with a computed but unpaid bill.
	takeaway := seedSession(t, db, day, nil, enum.OrderTypeTakeaway)
	seedOrder(t, db, takeaway, enum.OrderStatusPrinted, 1500)
	require.NoError(t, db.Create(&entity.Bill{
		BillNumber:    "B-OPEN",
		SessionID:     takeaway.ID,
		BusinessDayID: day.ID,
		Subtotal:      1500,
		Total:         1500,
		CreatedBy:     uuid.New(),
	}).Error)

	report, err := svc.Report(context.Background(), day.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 3, report.TotalOrders)
	assert.EqualValues(t, 1, report.QROrders)
	assert.EqualValues(t, 2, report.ManualOrders)

	// Gross spans all bills of the day; net only the paid ones.
	assert.InDelta(t, 45.00, report.GrossSales, 0.001)
	assert.InDelta(t, 3.00, report.TotalDiscount, 0.001)
	assert.InDelta(t, 3.78, report.TotalTax, 0.001)
	assert.InDelta(t, 30.78, report.NetSales, 0.001)
	assert.EqualValues(t, 1, report.PaidBills)
	assert.InDelta(t, 30.78, report.AverageOrderValue, 0.001)

	assert.InDelta(t, 30.78, report.PaymentsByMethod["cash"], 0.001)
	assert.EqualValues(t, 1, report.SessionsByType["dine_in"])
	assert.EqualValues(t, 1, report.SessionsByType["takeaway"])
}

func TestReport_EmptyDay(t *testing.T) {
	svc, db := newReportFixture(t)
	day := seedDay(t, db)

	report, err := svc.Report(context.Background(), day.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 0, report.TotalOrders)
	assert.EqualValues(t, 0, report.PaidBills)
	assert.Zero(t, report.GrossSales)
	assert.Zero(t, report.AverageOrderValue)
	assert.Empty(t, report.PaymentsByMethod)
	assert.Empty(t, report.SessionsByType)
}

func TestReport_ScopedToBusinessDay(t *testing.T) {
	svc, db := newReportFixture(t)

	day := seedDay(t, db)
	session := seedSession(t, db, day, nil, enum.OrderTypeTakeaway)
	seedOrder(t, db, session, enum.OrderStatusPrinted, 1000)

	// A closed prior day with its own activity.
	otherDay := &entity.BusinessDay{
		Status:   enum.BusinessDayClosed,
		OpenedAt: time.Now().Add(-24 * time.Hour),
		OpenedBy: uuid.New(),
	}
	require.NoError(t, db.Create(otherDay).Error)
	otherSession := seedSession(t, db, otherDay, nil, enum.OrderTypeDelivery)
	seedOrder(t, db, otherSession, enum.OrderStatusPaid, 9999)

	report, err := svc.Report(context.Background(), day.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 1, report.TotalOrders)
	assert.EqualValues(t, 1, report.SessionsByType["takeaway"])
	assert.NotContains(t, report.SessionsByType, "delivery")
}

func TestReport_UnknownDay(t *testing.T) {
	svc, _ := newReportFixture(t)

	_, err := svc.Report(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
