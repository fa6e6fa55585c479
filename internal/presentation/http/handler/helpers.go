package handler

import (
	"math"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
)

// GetStaffID extracts the authenticated staff ID from the Gin context
func GetStaffID(c *gin.Context) *uuid.UUID {
	val, exists := c.Get("staff_id")
	if !exists {
		return nil
	}
	staffID, ok := val.(uuid.UUID)
	if !ok {
		return nil
	}
	return &staffID
}

// GetStaffRole extracts the authenticated staff role from the Gin context
func GetStaffRole(c *gin.Context) enum.StaffRole {
	role, err := enum.ParseStaffRole(c.GetString("staff_role"))
	if err != nil {
		return enum.RoleWaiter
	}
	return role
}

// toCents converts a decimal wire amount to cents, rounding half-up
func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}
