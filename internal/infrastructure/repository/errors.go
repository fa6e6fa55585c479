package repository

import (
	"strings"

	"gorm.io/gorm"
)

// IsUniqueViolation reports whether err is a unique-index violation. Matching
// on the driver message keeps this working across postgres ("duplicate key
// value violates unique constraint") and the sqlite driver used in tests
// ("UNIQUE constraint failed"). gorm.ErrDuplicatedKey covers drivers that
// translate natively.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if err == gorm.ErrDuplicatedKey {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "unique constraint")
}
