package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
)

// OrderCounts breaks down a business day's orders by source
type OrderCounts struct {
	Total  int64
	QR     int64
	Manual int64
}

// BillTotals aggregates a business day's bills, in cents. Gross figures span
// every bill of the day; NetSales and PaidBills cover paid bills only.
type BillTotals struct {
	GrossSales    int64 // sum of bill subtotals
	TotalDiscount int64
	TotalTax      int64
	TotalDelivery int64
	NetSales      int64 // sum of paid bill totals
	PaidBills     int64
}

// ReportRepository defines the aggregate queries behind the end-of-day
// report. Sums run in SQL; nothing here mutates state.
type ReportRepository interface {
	CountOrders(ctx context.Context, businessDayID uuid.UUID) (*OrderCounts, error)
	SumBills(ctx context.Context, businessDayID uuid.UUID) (*BillTotals, error)
	// PaymentsByMethod returns settled amounts in cents keyed by method
	PaymentsByMethod(ctx context.Context, businessDayID uuid.UUID) (map[enum.PaymentMethod]int64, error)
	// SessionsByType returns session counts keyed by order type
	SessionsByType(ctx context.Context, businessDayID uuid.UUID) (map[enum.OrderType]int64, error)
}
