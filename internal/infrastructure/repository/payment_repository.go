package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	domainRepo "github.com/dinetrack/dinetrack-api/internal/domain/repository"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

// Settle runs the four settlement writes in one transaction. A failure at any
// step rolls back the whole sequence and surfaces as a SettlementError naming
// the step, so the caller can log exactly where the sequence broke.
func (r *paymentRepository) Settle(ctx context.Context, payment *entity.Payment, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return &domainRepo.SettlementError{Step: domainRepo.StepInsertPayment, Err: err}
		}

		if err := tx.Save(bill).Error; err != nil {
			return &domainRepo.SettlementError{Step: domainRepo.StepMarkBillPaid, Err: err}
		}

		// Rejected and cancelled orders stay in their terminal state; every
		// other order of the session is settled with the bill.
		err := tx.Model(&entity.Order{}).
			Where("session_id = ? AND status NOT IN ?", bill.SessionID,
				[]enum.OrderStatus{enum.OrderStatusRejected, enum.OrderStatusCancelled}).
			Update("status", enum.OrderStatusPaid).Error
		if err != nil {
			return &domainRepo.SettlementError{Step: domainRepo.StepMarkOrders, Err: err}
		}

		now := time.Now()
		err = tx.Model(&entity.Session{}).
			Where("id = ?", bill.SessionID).
			Updates(map[string]interface{}{
				"status":    enum.SessionClosed,
				"closed_at": now,
			}).Error
		if err != nil {
			return &domainRepo.SettlementError{Step: domainRepo.StepCloseSession, Err: err}
		}

		return nil
	})
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) ListByBill(ctx context.Context, billID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("bill_id = ?", billID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListByBusinessDay(ctx context.Context, businessDayID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("business_day_id = ?", businessDayID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}
