package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dinetrack/dinetrack-api/internal/application/service"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	"github.com/dinetrack/dinetrack-api/internal/domain/repository"
	"github.com/dinetrack/dinetrack-api/internal/presentation/http/dto/request"
	"github.com/dinetrack/dinetrack-api/internal/presentation/http/dto/response"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
	"github.com/dinetrack/dinetrack-api/pkg/pagination"
	"github.com/dinetrack/dinetrack-api/pkg/utils"
)

// SessionHandler handles session endpoints
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// OpenDineIn handles POST /api/v1/sessions/dine-in
func (h *SessionHandler) OpenDineIn(c *gin.Context) {
	var req request.OpenDineInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.NewValidationError("Invalid session payload"))
		return
	}

	staffID := GetStaffID(c)
	if staffID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	tableID, err := utils.ParseUUID(req.TableID)
	if err != nil {
		response.Error(c, apperror.NewValidationError("Invalid table ID"))
		return
	}

	session, err := h.sessionService.OpenDineIn(c.Request.Context(), &service.OpenDineInInput{
		TableID:    tableID,
		GuestCount: req.GuestCount,
		ActorID:    *staffID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Session opened", session)
}

// OpenTakeaway handles POST /api/v1/sessions/takeaway
func (h *SessionHandler) OpenTakeaway(c *gin.Context) {
	var req request.OpenTakeawayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.NewValidationError("Invalid session payload"))
		return
	}

	staffID := GetStaffID(c)
	if staffID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	session, err := h.sessionService.OpenTakeaway(c.Request.Context(), &service.OpenTakeawayInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		ActorID:       *staffID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Session opened", session)
}

// OpenDelivery handles POST /api/v1/sessions/delivery
func (h *SessionHandler) OpenDelivery(c *gin.Context) {
	var req request.OpenDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.NewValidationError("Invalid session payload"))
		return
	}

	staffID := GetStaffID(c)
	if staffID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	session, err := h.sessionService.OpenDelivery(c.Request.Context(), &service.OpenDeliveryInput{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		DeliveryFee:     toCents(req.DeliveryFee),
		ActorID:         *staffID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Session opened", session)
}

// Get handles GET /api/v1/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	sessionID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.NewValidationError("Invalid session ID"))
		return
	}

	session, err := h.sessionService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session retrieved", session)
}

// List handles GET /api/v1/sessions
func (h *SessionHandler) List(c *gin.Context) {
	params := &repository.SessionFilterParams{
		Pagination: pagination.DefaultPagination(),
	}
	if err := c.ShouldBindQuery(params.Pagination); err != nil {
		response.Error(c, apperror.NewValidationError("Invalid pagination parameters"))
		return
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
		switch status {
		case "active":
			s := enum.SessionActive
			params.Status = &s
		case "closed":
			s := enum.SessionClosed
			params.Status = &s
		default:
			response.Error(c, apperror.NewValidationError("Invalid session status"))
			return
		}
	}
	if orderType := c.Query("order_type"); orderType != "" {
		t, err := enum.ParseOrderType(orderType)
		if err != nil {
			response.Error(c, apperror.NewValidationError("Invalid order type"))
			return
		}
		params.OrderType = &t
	}

	sessions, total, err := h.sessionService.ListSessions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(sessions,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Sessions retrieved", result)
}
