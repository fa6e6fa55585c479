package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/dinetrack/dinetrack-api/internal/config"
	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	"github.com/dinetrack/dinetrack-api/internal/domain/repository"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
	"github.com/dinetrack/dinetrack-api/pkg/utils"
)

// BillingService computes and persists bills for sessions. Only printed and
// paid orders count toward the subtotal: an order that never reached the
// kitchen is not charged.
type BillingService struct {
	billRepo    repository.BillRepository
	orderRepo   repository.OrderRepository
	sessionRepo repository.SessionRepository
	posCfg      config.POSConfig
}

// NewBillingService creates a new billing service
func NewBillingService(
	billRepo repository.BillRepository,
	orderRepo repository.OrderRepository,
	sessionRepo repository.SessionRepository,
	posCfg config.POSConfig,
) *BillingService {
	return &BillingService{
		billRepo:    billRepo,
		orderRepo:   orderRepo,
		sessionRepo: sessionRepo,
		posCfg:      posCfg,
	}
}

// UpsertBillInput represents the bill computation input. DiscountAmount is in
// cents; it is mutually exclusive with DiscountPercentage.
type UpsertBillInput struct {
	SessionID          uuid.UUID
	ActorID            uuid.UUID
	ActorRole          enum.StaffRole
	DiscountAmount     *int64
	DiscountPercentage *float64
}

// UpsertBill recomputes the session's bill and persists the full derived set
// in one write. Recomputation is allowed any number of times before payment;
// a paid bill is immutable.
func (s *BillingService) UpsertBill(ctx context.Context, input *UpsertBillInput) (*entity.Bill, error) {
	if input.DiscountAmount != nil && input.DiscountPercentage != nil {
		return nil, apperror.NewValidationError("Provide a discount amount or a percentage, not both")
	}

	session, err := s.sessionRepo.GetByID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}

	existing, err := s.billRepo.GetBySessionID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.IsPaid {
		return nil, apperror.NewConflictError("Bill is already paid")
	}

	orders, err := s.orderRepo.ListBillable(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, apperror.NewPreconditionError("Session has no printed orders to bill")
	}

	var subtotal int64
	for i := range orders {
		subtotal += orders[i].ItemsSubtotal()
	}

	discount, err := s.resolveDiscount(input, subtotal)
	if err != nil {
		return nil, err
	}

	taxable := subtotal - discount

	var taxPercent float64
	var tax int64
	if session.OrderType == enum.OrderTypeDineIn {
		taxPercent = s.posCfg.TaxRatePercent
		tax = roundCents(float64(taxable) * taxPercent / 100)
	}

	var deliveryFee int64
	if session.OrderType == enum.OrderTypeDelivery {
		deliveryFee = session.DeliveryFee
	}

	total := taxable + tax + deliveryFee

	bill := existing
	if bill == nil {
		bill = &entity.Bill{
			BillNumber:    utils.GenerateBillNumber(),
			SessionID:     session.ID,
			BusinessDayID: session.BusinessDayID,
			CreatedBy:     input.ActorID,
		}
	}

	bill.Subtotal = subtotal
	bill.DiscountAmount = discount
	bill.DiscountPercentage = input.DiscountPercentage
	bill.TaxPercentage = taxPercent
	bill.TaxAmount = tax
	bill.DeliveryFee = deliveryFee
	bill.Total = total

	if existing == nil {
		err = s.billRepo.Create(ctx, bill)
	} else {
		err = s.billRepo.Update(ctx, bill)
	}
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// GetBillBySession returns the session's bill
func (s *BillingService) GetBillBySession(ctx context.Context, sessionID uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// resolveDiscount converts the discount input to cents. Percentage discounts
// are capped per role; absolute amounts only have to fit inside the subtotal.
func (s *BillingService) resolveDiscount(input *UpsertBillInput, subtotal int64) (int64, error) {
	if input.DiscountPercentage != nil {
		pct := *input.DiscountPercentage
		if pct < 0 || pct > 100 {
			return 0, apperror.NewValidationError("Discount percentage must be between 0 and 100")
		}
		ceiling := s.discountCeiling(input.ActorRole)
		if pct > ceiling {
			return 0, apperror.NewAuthorizationError(
				fmt.Sprintf("Discount exceeds the %.0f%% limit for your role", ceiling))
		}
		return roundCents(float64(subtotal) * pct / 100), nil
	}

	if input.DiscountAmount != nil {
		amount := *input.DiscountAmount
		if amount < 0 {
			return 0, apperror.NewValidationError("Discount amount cannot be negative")
		}
		if amount > subtotal {
			return 0, apperror.NewValidationError("Discount cannot exceed the subtotal")
		}
		return amount, nil
	}

	return 0, nil
}

func (s *BillingService) discountCeiling(role enum.StaffRole) float64 {
	switch role {
	case enum.RoleOwner:
		return s.posCfg.OwnerDiscountCeiling
	case enum.RoleCashier:
		return s.posCfg.CashierDiscountCeiling
	default:
		return 0
	}
}

// roundCents rounds a fractional cent value half-up to the nearest cent
func roundCents(v float64) int64 {
	return int64(math.Round(v))
}
