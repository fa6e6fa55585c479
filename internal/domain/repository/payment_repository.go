package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
)

// SettlementStep identifies which write of the settlement sequence failed.
// Partial settlement is the worst failure mode this system has; callers log
// the exact step for manual reconciliation.
type SettlementStep string

const (
	StepInsertPayment SettlementStep = "insert_payment"
	StepMarkBillPaid  SettlementStep = "mark_bill_paid"
	StepMarkOrders    SettlementStep = "mark_orders_paid"
	StepCloseSession  SettlementStep = "close_session"
)

// SettlementError wraps a settlement failure with the step that failed
type SettlementError struct {
	Step SettlementStep
	Err  error
}

func (e *SettlementError) Error() string {
	return "settlement failed at step " + string(e.Step) + ": " + e.Err.Error()
}

func (e *SettlementError) Unwrap() error {
	return e.Err
}

// PaymentRepository defines payment data access
type PaymentRepository interface {
	// Settle performs the four settlement writes in one transaction: insert
	// the payment, mark the bill paid, mark the session's open orders paid,
	// close the session. On failure it returns a SettlementError naming the
	// failed step and the transaction rolls back.
	Settle(ctx context.Context, payment *entity.Payment, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	ListByBill(ctx context.Context, billID uuid.UUID) ([]entity.Payment, error)
	ListByBusinessDay(ctx context.Context, businessDayID uuid.UUID) ([]entity.Payment, error)
}
