package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/dinetrack/dinetrack-api/internal/domain/repository"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
)

// ReportService assembles the end-of-day report from SQL aggregates
type ReportService struct {
	reportRepo repository.ReportRepository
	dayRepo    repository.BusinessDayRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository, dayRepo repository.BusinessDayRepository) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		dayRepo:    dayRepo,
	}
}

// DayReport is the end-of-day aggregation for one business day. Money fields
// are decimals for presentation; all arithmetic happens in cents upstream.
type DayReport struct {
	BusinessDayID     uuid.UUID          `json:"business_day_id"`
	Status            string             `json:"status"`
	TotalOrders       int64              `json:"total_orders"`
	QROrders          int64              `json:"qr_orders"`
	ManualOrders      int64              `json:"manual_orders"`
	GrossSales        float64            `json:"gross_sales"`
	TotalDiscount     float64            `json:"total_discount"`
	TotalTax          float64            `json:"total_tax"`
	TotalDeliveryFees float64            `json:"total_delivery_fees"`
	NetSales          float64            `json:"net_sales"`
	PaidBills         int64              `json:"paid_bills"`
	AverageOrderValue float64            `json:"average_order_value"`
	PaymentsByMethod  map[string]float64 `json:"payments_by_method"`
	SessionsByType    map[string]int64   `json:"sessions_by_type"`
}

// Report builds the aggregation for a business day. It works on open and
// closed days alike, so it doubles as a live dashboard during service.
func (s *ReportService) Report(ctx context.Context, businessDayID uuid.UUID) (*DayReport, error) {
	day, err := s.dayRepo.GetByID(ctx, businessDayID)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, apperror.NewNotFoundError("Business day")
	}

	counts, err := s.reportRepo.CountOrders(ctx, businessDayID)
	if err != nil {
		return nil, err
	}

	totals, err := s.reportRepo.SumBills(ctx, businessDayID)
	if err != nil {
		return nil, err
	}

	byMethod, err := s.reportRepo.PaymentsByMethod(ctx, businessDayID)
	if err != nil {
		return nil, err
	}

	byType, err := s.reportRepo.SessionsByType(ctx, businessDayID)
	if err != nil {
		return nil, err
	}

	report := &DayReport{
		BusinessDayID:     day.ID,
		Status:            day.Status.String(),
		TotalOrders:       counts.Total,
		QROrders:          counts.QR,
		ManualOrders:      counts.Manual,
		GrossSales:        float64(totals.GrossSales) / 100,
		TotalDiscount:     float64(totals.TotalDiscount) / 100,
		TotalTax:          float64(totals.TotalTax) / 100,
		TotalDeliveryFees: float64(totals.TotalDelivery) / 100,
		NetSales:          float64(totals.NetSales) / 100,
		PaidBills:         totals.PaidBills,
		PaymentsByMethod:  make(map[string]float64, len(byMethod)),
		SessionsByType:    make(map[string]int64, len(byType)),
	}

	if totals.PaidBills > 0 {
		report.AverageOrderValue = float64(totals.NetSales) / float64(totals.PaidBills) / 100
	}

	for method, amount := range byMethod {
		report.PaymentsByMethod[method.String()] = float64(amount) / 100
	}
	for orderType, count := range byType {
		report.SessionsByType[orderType.String()] = count
	}

	return report, nil
}
