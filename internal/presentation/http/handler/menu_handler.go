package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dinetrack/dinetrack-api/internal/application/service"
	"github.com/dinetrack/dinetrack-api/internal/presentation/http/dto/response"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
	"github.com/dinetrack/dinetrack-api/pkg/utils"
)

// MenuHandler handles read-only catalog endpoints
type MenuHandler struct {
	menuService *service.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// ListCategories handles GET /api/v1/menu/categories
func (h *MenuHandler) ListCategories(c *gin.Context) {
	activeOnly := c.Query("active") != "false"
	categories, err := h.menuService.ListCategories(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu categories retrieved", categories)
}

// ListItems handles GET /api/v1/menu/items
func (h *MenuHandler) ListItems(c *gin.Context) {
	activeOnly := c.Query("active") != "false"
	availableOnly := c.Query("available") == "true"
	items, err := h.menuService.ListItems(c.Request.Context(), activeOnly, availableOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu items retrieved", items)
}

// GetItem handles GET /api/v1/menu/items/:id
func (h *MenuHandler) GetItem(c *gin.Context) {
	itemID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.NewValidationError("Invalid menu item ID"))
		return
	}

	item, err := h.menuService.GetItem(c.Request.Context(), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu item retrieved", item)
}
