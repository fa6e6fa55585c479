package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	"github.com/dinetrack/dinetrack-api/internal/domain/repository"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
	"github.com/dinetrack/dinetrack-api/pkg/logger"
)

// PaymentService settles bills. Settlement is the one multi-write sequence in
// the system: payment insert, bill paid, orders paid, session closed, all in
// one transaction.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	billRepo    repository.BillRepository
	sessionRepo repository.SessionRepository
	staffRepo   repository.StaffRepository
	auditRepo   repository.AuditRepository
	printerSvc  *PrinterService
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	billRepo repository.BillRepository,
	sessionRepo repository.SessionRepository,
	staffRepo repository.StaffRepository,
	auditRepo repository.AuditRepository,
	printerSvc *PrinterService,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		billRepo:    billRepo,
		sessionRepo: sessionRepo,
		staffRepo:   staffRepo,
		auditRepo:   auditRepo,
		printerSvc:  printerSvc,
	}
}

// PayInput represents the settlement input. AmountPaid is in cents.
type PayInput struct {
	BillID     uuid.UUID
	Method     enum.PaymentMethod
	AmountPaid int64
	ActorID    uuid.UUID
}

// PayResult carries the settlement outcome
type PayResult struct {
	Payment *entity.Payment
	Bill    *entity.Bill
	Receipt *entity.Receipt
}

// Pay settles a bill. The tendered amount must cover the total; the change is
// recorded on the bill. The payment row records the settled total, so
// per-method report sums reflect revenue, not cash handled.
func (s *PaymentService) Pay(ctx context.Context, input *PayInput) (*PayResult, error) {
	bill, err := s.billRepo.GetByID(ctx, input.BillID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	if bill.IsPaid {
		return nil, apperror.NewConflictError("Bill is already paid")
	}
	if input.AmountPaid < bill.Total {
		return nil, apperror.NewValidationError("Amount paid is less than the bill total")
	}

	session, err := s.sessionRepo.GetWithDetails(ctx, bill.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}

	now := time.Now()
	bill.IsPaid = true
	bill.PaidAt = &now
	bill.PaidAmount = input.AmountPaid
	bill.ChangeAmount = input.AmountPaid - bill.Total

	payment := &entity.Payment{
		BillID:        bill.ID,
		BusinessDayID: bill.BusinessDayID,
		Method:        input.Method,
		Amount:        bill.Total,
		CreatedBy:     input.ActorID,
	}

	if err := s.paymentRepo.Settle(ctx, payment, bill); err != nil {
		var settleErr *repository.SettlementError
		if errors.As(err, &settleErr) {
			logger.Error("settlement failed", map[string]interface{}{
				"bill_number": bill.BillNumber,
				"step":        string(settleErr.Step),
				"error":       settleErr.Err.Error(),
			})
		}
		return nil, err
	}

	s.audit(ctx, bill, payment, input.ActorID)

	receipt := s.buildReceipt(ctx, session, bill, payment, input.ActorID)
	if s.printerSvc != nil {
		if err := s.printerSvc.PrintReceipt(receipt); err != nil {
			// A dead printer must not unsettle a settled bill.
			logger.Error("receipt print failed", map[string]interface{}{
				"bill_number": bill.BillNumber,
				"error":       err.Error(),
			})
		}
	}

	logger.Info("bill settled", map[string]interface{}{
		"bill_number": bill.BillNumber,
		"method":      payment.Method.String(),
		"total":       float64(bill.Total) / 100,
	})

	return &PayResult{Payment: payment, Bill: bill, Receipt: receipt}, nil
}

func (s *PaymentService) buildReceipt(ctx context.Context, session *entity.Session, bill *entity.Bill, payment *entity.Payment, actorID uuid.UUID) *entity.Receipt {
	receipt := &entity.Receipt{
		Header:        s.printerSvc.ReceiptHeader(),
		BillNumber:    bill.BillNumber,
		OrderType:     session.OrderType.String(),
		Date:          bill.PaidAt.Format("2006-01-02 15:04"),
		Subtotal:      float64(bill.Subtotal) / 100,
		Discount:      float64(bill.DiscountAmount) / 100,
		Tax:           float64(bill.TaxAmount) / 100,
		DeliveryFee:   float64(bill.DeliveryFee) / 100,
		Total:         float64(bill.Total) / 100,
		PaymentMethod: payment.Method.String(),
		Paid:          float64(bill.PaidAmount) / 100,
		Change:        float64(bill.ChangeAmount) / 100,
	}
	if session.Table != nil {
		receipt.TableNumber = session.Table.TableNumber
	}

	if cashier, err := s.staffRepo.GetByID(ctx, actorID); err == nil && cashier != nil {
		receipt.Cashier = cashier.FullName
	}

	for i := range session.Orders {
		order := &session.Orders[i]
		if !order.Status.IsBillable() {
			continue
		}
		for j := range order.Items {
			item := &order.Items[j]
			line := entity.ReceiptItem{
				Name:      item.MenuItem.Name,
				Quantity:  item.Quantity,
				UnitPrice: float64(item.UnitPrice) / 100,
				Total:     float64(item.LineTotal()) / 100,
			}
			for k := range item.Modifiers {
				line.Modifiers = append(line.Modifiers, item.Modifiers[k].Modifier.Name)
			}
			receipt.Items = append(receipt.Items, line)
		}
	}

	return receipt
}

func (s *PaymentService) audit(ctx context.Context, bill *entity.Bill, payment *entity.Payment, actorID uuid.UUID) {
	payload, _ := json.Marshal(map[string]interface{}{
		"bill_number": bill.BillNumber,
		"method":      payment.Method.String(),
		"total":       float64(bill.Total) / 100,
		"paid":        float64(bill.PaidAmount) / 100,
		"change":      float64(bill.ChangeAmount) / 100,
	})
	recordID := payment.ID
	log := &entity.AuditLog{
		Action:   entity.AuditPaymentRecorded,
		Entity:   "payment",
		RecordID: &recordID,
		ActorID:  &actorID,
		Details:  string(payload),
	}
	if err := s.auditRepo.Create(ctx, log); err != nil {
		logger.Error("failed to write audit log", map[string]interface{}{
			"action": entity.AuditPaymentRecorded,
			"error":  err.Error(),
		})
	}
}
