package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dinetrack/dinetrack-api/internal/application/service"
	"github.com/dinetrack/dinetrack-api/internal/presentation/http/dto/request"
	"github.com/dinetrack/dinetrack-api/internal/presentation/http/dto/response"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
	"github.com/dinetrack/dinetrack-api/pkg/pagination"
	"github.com/dinetrack/dinetrack-api/pkg/utils"
)

// BusinessDayHandler handles business day ledger endpoints
type BusinessDayHandler struct {
	dayService    *service.BusinessDayService
	reportService *service.ReportService
}

// NewBusinessDayHandler creates a new business day handler
func NewBusinessDayHandler(dayService *service.BusinessDayService, reportService *service.ReportService) *BusinessDayHandler {
	return &BusinessDayHandler{
		dayService:    dayService,
		reportService: reportService,
	}
}

// Open handles POST /api/v1/business-days/open
func (h *BusinessDayHandler) Open(c *gin.Context) {
	var req request.OpenDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.NewValidationError("Invalid open day payload"))
		return
	}

	staffID := GetStaffID(c)
	if staffID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	day, err := h.dayService.OpenDay(c.Request.Context(), &service.OpenDayInput{
		OpeningCash: toCents(req.OpeningCash),
		ActorID:     *staffID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Business day opened", day)
}

// Close handles POST /api/v1/business-days/:id/close
func (h *BusinessDayHandler) Close(c *gin.Context) {
	dayID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.NewValidationError("Invalid business day ID"))
		return
	}

	var req request.CloseDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.NewValidationError("Invalid close day payload"))
		return
	}

	staffID := GetStaffID(c)
	if staffID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	day, err := h.dayService.CloseDay(c.Request.Context(), &service.CloseDayInput{
		DayID:       dayID,
		ClosingCash: toCents(req.ClosingCash),
		ActorID:     *staffID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business day closed", day)
}

// Current handles GET /api/v1/business-days/current
func (h *BusinessDayHandler) Current(c *gin.Context) {
	day, err := h.dayService.Current(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Current business day", day)
}

// List handles GET /api/v1/business-days
func (h *BusinessDayHandler) List(c *gin.Context) {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.Error(c, apperror.NewValidationError("Invalid pagination parameters"))
		return
	}

	days, total, err := h.dayService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(days, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Business days retrieved", result)
}

// Report handles GET /api/v1/business-days/:id/report
func (h *BusinessDayHandler) Report(c *gin.Context) {
	dayID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.NewValidationError("Invalid business day ID"))
		return
	}

	report, err := h.reportService.Report(c.Request.Context(), dayID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "End of day report", report)
}
