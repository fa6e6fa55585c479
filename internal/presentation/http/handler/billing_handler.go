package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dinetrack/dinetrack-api/internal/application/service"
	"github.com/dinetrack/dinetrack-api/internal/presentation/http/dto/request"
	"github.com/dinetrack/dinetrack-api/internal/presentation/http/dto/response"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
	"github.com/dinetrack/dinetrack-api/pkg/utils"
)

// BillingHandler handles billing endpoints
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// Upsert handles POST /api/v1/bills
func (h *BillingHandler) Upsert(c *gin.Context) {
	var req request.UpsertBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.NewValidationError("Invalid bill payload"))
		return
	}

	staffID := GetStaffID(c)
	if staffID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	sessionID, err := utils.ParseUUID(req.SessionID)
	if err != nil {
		response.Error(c, apperror.NewValidationError("Invalid session ID"))
		return
	}

	input := &service.UpsertBillInput{
		SessionID:          sessionID,
		ActorID:            *staffID,
		ActorRole:          GetStaffRole(c),
		DiscountPercentage: req.DiscountPercentage,
	}
	if req.DiscountAmount != nil {
		amount := toCents(*req.DiscountAmount)
		input.DiscountAmount = &amount
	}

	bill, err := h.billingService.UpsertBill(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill computed", bill)
}

// GetBySession handles GET /api/v1/sessions/:id/bill
func (h *BillingHandler) GetBySession(c *gin.Context) {
	sessionID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.NewValidationError("Invalid session ID"))
		return
	}

	bill, err := h.billingService.GetBillBySession(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved", bill)
}
