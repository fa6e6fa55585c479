package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	domainRepo "github.com/dinetrack/dinetrack-api/internal/domain/repository"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CountOrders(ctx context.Context, businessDayID uuid.UUID) (*domainRepo.OrderCounts, error) {
	counts := &domainRepo.OrderCounts{}

	rows := []struct {
		Source enum.OrderSource
		Count  int64
	}{}
	err := r.db.WithContext(ctx).Model(&entity.Order{}).
		Select("source, COUNT(*) AS count").
		Where("business_day_id = ?", businessDayID).
		Group("source").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts.Total += row.Count
		switch row.Source {
		case enum.OrderSourceQR:
			counts.QR = row.Count
		case enum.OrderSourceManual:
			counts.Manual = row.Count
		}
	}
	return counts, nil
}

func (r *reportRepository) SumBills(ctx context.Context, businessDayID uuid.UUID) (*domainRepo.BillTotals, error) {
	totals := &domainRepo.BillTotals{}

	err := r.db.WithContext(ctx).Model(&entity.Bill{}).
		Select(
			"COALESCE(SUM(subtotal), 0) AS gross_sales, "+
				"COALESCE(SUM(discount_amount), 0) AS total_discount, "+
				"COALESCE(SUM(tax_amount), 0) AS total_tax, "+
				"COALESCE(SUM(delivery_fee), 0) AS total_delivery").
		Where("business_day_id = ?", businessDayID).
		Scan(totals).Error
	if err != nil {
		return nil, err
	}

	paid := struct {
		NetSales  int64
		PaidBills int64
	}{}
	err = r.db.WithContext(ctx).Model(&entity.Bill{}).
		Select("COALESCE(SUM(total), 0) AS net_sales, COUNT(*) AS paid_bills").
		Where("business_day_id = ? AND is_paid = ?", businessDayID, true).
		Scan(&paid).Error
	if err != nil {
		return nil, err
	}

	totals.NetSales = paid.NetSales
	totals.PaidBills = paid.PaidBills
	return totals, nil
}

func (r *reportRepository) PaymentsByMethod(ctx context.Context, businessDayID uuid.UUID) (map[enum.PaymentMethod]int64, error) {
	rows := []struct {
		Method enum.PaymentMethod
		Total  int64
	}{}
	err := r.db.WithContext(ctx).Model(&entity.Payment{}).
		Select("method, COALESCE(SUM(amount), 0) AS total").
		Where("business_day_id = ?", businessDayID).
		Group("method").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[enum.PaymentMethod]int64, len(rows))
	for _, row := range rows {
		result[row.Method] = row.Total
	}
	return result, nil
}

func (r *reportRepository) SessionsByType(ctx context.Context, businessDayID uuid.UUID) (map[enum.OrderType]int64, error) {
	rows := []struct {
		OrderType enum.OrderType
		Count     int64
	}{}
	err := r.db.WithContext(ctx).Model(&entity.Session{}).
		Select("order_type, COUNT(*) AS count").
		Where("business_day_id = ?", businessDayID).
		Group("order_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[enum.OrderType]int64, len(rows))
	for _, row := range rows {
		result[row.OrderType] = row.Count
	}
	return result, nil
}
