package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dinetrack/dinetrack-api/internal/application/service"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	"github.com/dinetrack/dinetrack-api/internal/domain/repository"
	"github.com/dinetrack/dinetrack-api/internal/presentation/http/dto/request"
	"github.com/dinetrack/dinetrack-api/internal/presentation/http/dto/response"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
	"github.com/dinetrack/dinetrack-api/pkg/pagination"
	"github.com/dinetrack/dinetrack-api/pkg/utils"
)

// OrderHandler handles staff order endpoints
type OrderHandler struct {
	orderService   *service.OrderService
	printerService *service.PrinterService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, printerService *service.PrinterService) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		printerService: printerService,
	}
}

// Create handles POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.NewValidationError("Invalid order payload"))
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

	items, err := mapOrderItems(req.Items)
	if err != nil {
		response.Error(c, err)
		return
	}

	order, err := h.orderService.CreateManualOrder(c.Request.Context(), &service.CreateManualOrderInput{
		SessionID: sessionID,
		ActorID:   *staffID,
		Notes:     req.Notes,
		Items:     items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created", order)
}

// Accept handles POST /api/v1/orders/:id/accept
func (h *OrderHandler) Accept(c *gin.Context) {
	orderID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.NewValidationError("Invalid order ID"))
		return
	}

	staffID := GetStaffID(c)
	if staffID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	order, err := h.orderService.AcceptOrder(c.Request.Context(), orderID, *staffID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order accepted", order)
}

// Reject handles POST /api/v1/orders/:id/reject
func (h *OrderHandler) Reject(c *gin.Context) {
	orderID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.NewValidationError("Invalid order ID"))
		return
	}

	var req request.RejectOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.Error(c, apperror.NewValidationError("Invalid reject payload"))
		return
	}

	staffID := GetStaffID(c)
	if staffID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	order, err := h.orderService.RejectOrder(c.Request.Context(), orderID, *staffID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order rejected", order)
}

// Print handles POST /api/v1/orders/:id/print
func (h *OrderHandler) Print(c *gin.Context) {
	orderID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.NewValidationError("Invalid order ID"))
		return
	}

	staffID := GetStaffID(c)
	if staffID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	order, err := h.printerService.PrintOrder(c.Request.Context(), orderID, *staffID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order sent to kitchen", order)
}

// Get handles GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.NewValidationError("Invalid order ID"))
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved", order)
}

// List handles GET /api/v1/orders. The kitchen queue uses this with a status
// filter.
func (h *OrderHandler) List(c *gin.Context) {
	params := &repository.OrderFilterParams{
		Pagination: pagination.DefaultPagination(),
		Search:     c.Query("search"),
	}
	if err := c.ShouldBindQuery(params.Pagination); err != nil {
		response.Error(c, apperror.NewValidationError("Invalid pagination parameters"))
		return
	}

	if sessionID := c.Query("session_id"); sessionID != "" {
		id, err := utils.ParseUUID(sessionID)
		if err != nil {
			response.Error(c, apperror.NewValidationError("Invalid session ID"))
			return
		}
		params.SessionID = &id
	}
	if dayID := c.Query("business_day_id"); dayID != "" {
		id, err := utils.ParseUUID(dayID)
		if err != nil {
			response.Error(c, apperror.NewValidationError("Invalid business day ID"))
			return
		}
		params.BusinessDayID = &id
	}
	if status := c.Query("status"); status != "" {
		parsed, ok := parseOrderStatus(status)
		if !ok {
			response.Error(c, apperror.NewValidationError("Invalid order status"))
			return
		}
		params.Status = &parsed
	}
	if source := c.Query("source"); source != "" {
		switch source {
		case "manual":
			s := enum.OrderSourceManual
			params.Source = &s
		case "qr":
			s := enum.OrderSourceQR
			params.Source = &s
		default:
			response.Error(c, apperror.NewValidationError("Invalid order source"))
			return
		}
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(orders,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Orders retrieved", result)
}

func parseOrderStatus(s string) (enum.OrderStatus, bool) {
	switch s {
	case "pending":
		return enum.OrderStatusPending, true
	case "accepted":
		return enum.OrderStatusAccepted, true
	case "rejected":
		return enum.OrderStatusRejected, true
	case "printed":
		return enum.OrderStatusPrinted, true
	case "paid":
		return enum.OrderStatusPaid, true
	case "cancelled":
		return enum.OrderStatusCancelled, true
	default:
		return 0, false
	}
}

// mapOrderItems converts wire item lines to service inputs
func mapOrderItems(reqItems []request.OrderItemRequest) ([]service.OrderItemInput, error) {
	items := make([]service.OrderItemInput, 0, len(reqItems))
	for _, ri := range reqItems {
		menuItemID, err := uuid.Parse(ri.MenuItemID)
		if err != nil {
			return nil, apperror.NewValidationError("Invalid menu item ID")
		}
		item := service.OrderItemInput{
			MenuItemID: menuItemID,
			Quantity:   ri.Quantity,
			Notes:      ri.Notes,
		}
		for _, rm := range ri.Modifiers {
			modifierID, err := uuid.Parse(rm.ModifierID)
			if err != nil {
				return nil, apperror.NewValidationError("Invalid modifier ID")
			}
			item.Modifiers = append(item.Modifiers, service.OrderModifierInput{
				ModifierID: modifierID,
				Quantity:   rm.Quantity,
			})
		}
		items = append(items, item)
	}
	return items, nil
}
