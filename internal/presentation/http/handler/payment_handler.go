package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dinetrack/dinetrack-api/internal/application/service"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	"github.com/dinetrack/dinetrack-api/internal/presentation/http/dto/request"
	"github.com/dinetrack/dinetrack-api/internal/presentation/http/dto/response"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
	"github.com/dinetrack/dinetrack-api/pkg/utils"
)

// PaymentHandler handles settlement endpoints
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Pay handles POST /api/v1/payments
func (h *PaymentHandler) Pay(c *gin.Context) {
	var req request.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.NewValidationError("Invalid payment payload"))
		return
	}

	staffID := GetStaffID(c)
	if staffID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	billID, err := utils.ParseUUID(req.BillID)
	if err != nil {
		response.Error(c, apperror.NewValidationError("Invalid bill ID"))
		return
	}

	method, err := enum.ParsePaymentMethod(req.Method)
	if err != nil {
		response.Error(c, apperror.NewValidationError("Invalid payment method"))
		return
	}

	result, err := h.paymentService.Pay(c.Request.Context(), &service.PayInput{
		BillID:     billID,
		Method:     method,
		AmountPaid: toCents(req.AmountPaid),
		ActorID:    *staffID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded", gin.H{
		"payment": result.Payment,
		"bill":    result.Bill,
		"receipt": result.Receipt,
	})
}
