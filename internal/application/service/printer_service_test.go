package service

import (
	"context"
	"errors"
	"testing"

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

// capturePrinter records everything sent to it
type capturePrinter struct {
	jobs [][]byte
	err  error
}

func (p *capturePrinter) Print(data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, data)
	return nil
}

func (p *capturePrinter) Close() error      { return nil }
func (p *capturePrinter) IsConnected() bool { return p.err == nil }

func newPrinterFixture(t *testing.T, device *capturePrinter) (*PrinterService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewPrinterService(
		device,
		config.PrinterConfig{Type: "usb", Width: 32},
		config.POSConfig{VenueName: "Test Venue"},
		infraRepo.NewOrderRepository(db),
		infraRepo.NewSessionRepository(db),
		infraRepo.NewAuditRepository(db),
	)
	return svc, db
}

func TestPrintOrder_MarksPrintedAfterTicketSent(t *testing.T) {
	device := &capturePrinter{}
	svc, db := newPrinterFixture(t, device)

	day := seedDay(t, db)
	table := seedTable(t, db, "4", true)
	session := seedSession(t, db, day, table, enum.OrderTypeDineIn)
	order := seedOrder(t, db, session, enum.OrderStatusAccepted, 1299)

	printed, err := svc.PrintOrder(context.Background(), order.ID, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusPrinted, printed.Status)
	require.NotNil(t, printed.PrintedAt)
	require.Len(t, device.jobs, 1)

	ticket := string(device.jobs[0])
	assert.Contains(t, ticket, "KITCHEN")
	assert.Contains(t, ticket, order.OrderNumber)
	assert.Contains(t, ticket, "Table 4")
	// Kitchen tickets carry no prices.
	assert.NotContains(t, ticket, "12.99")
}

func TestPrintOrder_FailedPrintKeepsOrderAccepted(t *testing.T) {
	device := &capturePrinter{err: errors.New("paper jam")}
	svc, db := newPrinterFixture(t, device)

	day := seedDay(t, db)
	session := seedSession(t, db, day, nil, enum.OrderTypeTakeaway)
	order := seedOrder(t, db, session, enum.OrderStatusAccepted, 1299)

	_, err := svc.PrintOrder(context.Background(), order.ID, uuid.New())
	require.Error(t, err)

	// An order the kitchen never saw must not become billable.
	var fresh entity.Order
	require.NoError(t, db.First(&fresh, "id = ?", order.ID).Error)
	assert.Equal(t, enum.OrderStatusAccepted, fresh.Status)
	assert.Nil(t, fresh.PrintedAt)
}

func TestPrintOrder_OnlyAcceptedOrders(t *testing.T) {
	device := &capturePrinter{}
	svc, db := newPrinterFixture(t, device)

	day := seedDay(t, db)
	session := seedSession(t, db, day, nil, enum.OrderTypeTakeaway)

	for _, status := range []enum.OrderStatus{
		enum.OrderStatusPending,
		enum.OrderStatusRejected,
		enum.OrderStatusPrinted,
		enum.OrderStatusCancelled,
	} {
		order := seedOrder(t, db, session, status, 500)
		_, err := svc.PrintOrder(context.Background(), order.ID, uuid.New())
		require.Error(t, err, "status %s", status)
		assert.True(t, apperror.IsKind(err, apperror.KindPrecondition))
	}

	assert.Empty(t, device.jobs)
}

func TestFormatReceipt_IncludesTotalsAndChange(t *testing.T) {
	device := &capturePrinter{}
	svc, _ := newPrinterFixture(t, device)

	receipt := &entity.Receipt{
		Header:        svc.ReceiptHeader(),
		BillNumber:    "B-100",
		OrderType:     "dine_in",
		TableNumber:   "4",
		Date:          "2026-08-28 13:45",
		Subtotal:      25.98,
		Tax:           3.64,
		Total:         29.62,
		PaymentMethod: "cash",
		Paid:          30.00,
		Change:        0.38,
		Items: []entity.ReceiptItem{
			{Name: "Grilled Chicken", Quantity: 2, UnitPrice: 12.99, Total: 25.98},
		},
	}

	out := string(svc.FormatReceipt(receipt))
	assert.Contains(t, out, "Test Venue")
	assert.Contains(t, out, "B-100")
	assert.Contains(t, out, "25.98")
	assert.Contains(t, out, "29.62")
	assert.Contains(t, out, "0.38")
	assert.Contains(t, out, "Grilled Chicken")
}
