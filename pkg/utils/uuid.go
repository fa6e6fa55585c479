package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateOrderNumber builds a human-facing order number: prefix ("QR" or
// "MN"), base36 millisecond timestamp, random suffix. The timestamp keeps
// numbers roughly sortable; the suffix breaks same-millisecond collisions.
func GenerateOrderNumber(prefix string) string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strings.ToUpper(uuid.New().String()[:6])
	return prefix + "-" + strings.ToUpper(ts) + "-" + suffix
}

// GenerateBillNumber generates a unique bill reference
func GenerateBillNumber() string {
	return "BILL-" + strings.ToUpper(uuid.New().String()[:8])
}
