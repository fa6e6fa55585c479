package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dinetrack/dinetrack-api/internal/application/service"
	"github.com/dinetrack/dinetrack-api/internal/presentation/http/dto/request"
	"github.com/dinetrack/dinetrack-api/internal/presentation/http/dto/response"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
	"github.com/dinetrack/dinetrack-api/pkg/utils"
)

// TableHandler handles table management endpoints
type TableHandler struct {
	tableService *service.TableService
}

// NewTableHandler creates a new table handler
func NewTableHandler(tableService *service.TableService) *TableHandler {
	return &TableHandler{tableService: tableService}
}

// Create handles POST /api/v1/tables
func (h *TableHandler) Create(c *gin.Context) {
	var req request.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.NewValidationError("Invalid table payload"))
		return
	}

	qrEnabled := true
	if req.QREnabled != nil {
		qrEnabled = *req.QREnabled
	}

	table, err := h.tableService.CreateTable(c.Request.Context(), &service.CreateTableInput{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		QREnabled:   qrEnabled,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Table created", table)
}

// Update handles PUT /api/v1/tables/:id
func (h *TableHandler) Update(c *gin.Context) {
	tableID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.NewValidationError("Invalid table ID"))
		return
	}

	var req request.UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.NewValidationError("Invalid table payload"))
		return
	}

	table, err := h.tableService.UpdateTable(c.Request.Context(), &service.UpdateTableInput{
		TableID:   tableID,
		Capacity:  req.Capacity,
		QREnabled: req.QREnabled,
		IsActive:  req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table updated", table)
}

// Delete handles DELETE /api/v1/tables/:id
func (h *TableHandler) Delete(c *gin.Context) {
	tableID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.NewValidationError("Invalid table ID"))
		return
	}

	if err := h.tableService.DeleteTable(c.Request.Context(), tableID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ToggleQR handles POST /api/v1/tables/:id/toggle-qr
func (h *TableHandler) ToggleQR(c *gin.Context) {
	tableID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.NewValidationError("Invalid table ID"))
		return
	}

	table, err := h.tableService.ToggleQR(c.Request.Context(), tableID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table QR setting updated", table)
}

// Get handles GET /api/v1/tables/:id
func (h *TableHandler) Get(c *gin.Context) {
	tableID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.NewValidationError("Invalid table ID"))
		return
	}

	table, err := h.tableService.GetTable(c.Request.Context(), tableID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table retrieved", table)
}

// List handles GET /api/v1/tables
func (h *TableHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	tables, err := h.tableService.ListTables(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tables retrieved", tables)
}

// Occupancy handles GET /api/v1/tables/occupancy. The floor view polls this.
func (h *TableHandler) Occupancy(c *gin.Context) {
	tables, err := h.tableService.ListWithOccupancy(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Table occupancy retrieved", tables)
}
