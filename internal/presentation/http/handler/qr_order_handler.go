package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dinetrack/dinetrack-api/internal/application/service"
	"github.com/dinetrack/dinetrack-api/internal/presentation/http/dto/request"
	"github.com/dinetrack/dinetrack-api/internal/presentation/http/dto/response"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
)

// QROrderHandler handles the public QR submission endpoint. It is the only
// unauthenticated write in the system.
type QROrderHandler struct {
	qrService *service.QROrderService
}

// NewQROrderHandler creates a new QR order handler
func NewQROrderHandler(qrService *service.QROrderService) *QROrderHandler {
	return &QROrderHandler{qrService: qrService}
}

// Submit handles POST /orders
func (h *QROrderHandler) Submit(c *gin.Context) {
	var req request.QROrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.NewValidationError("Invalid order payload"))
		return
	}

	items, err := mapOrderItems(req.Items)
	if err != nil {
		response.Error(c, err)
		return
	}

	order, err := h.qrService.SubmitOrder(c.Request.Context(), &service.SubmitQROrderInput{
		TableNumber:     req.TableNumber,
		ClientRequestID: req.ClientRequestID,
		SourceIP:        c.ClientIP(),
		Notes:           req.Notes,
		Items:           items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// The customer device only needs the order number for its confirmation
	// screen; nothing else leaves the building.
	c.JSON(200, gin.H{
		"success":     true,
		"orderNumber": order.OrderNumber,
	})
}
