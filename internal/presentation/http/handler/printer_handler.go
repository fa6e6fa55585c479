package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dinetrack/dinetrack-api/internal/application/service"
	"github.com/dinetrack/dinetrack-api/internal/presentation/http/dto/response"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
)

// PrinterHandler handles printer status endpoints
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// Status handles GET /api/v1/printer/status
func (h *PrinterHandler) Status(c *gin.Context) {
	printerType, connected := h.printerService.Status()
	response.OK(c, "Printer status", gin.H{
		"type":      printerType,
		"connected": connected,
	})
}

// Test handles POST /api/v1/printer/test
func (h *PrinterHandler) Test(c *gin.Context) {
	if err := h.printerService.TestPrint(); err != nil {
		response.Error(c, apperror.NewAppError(500, "Printer test failed: "+err.Error()))
		return
	}
	response.OK(c, "Test page sent to printer", nil)
}
