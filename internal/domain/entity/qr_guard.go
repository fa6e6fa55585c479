package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QrRequestKey records a processed clientRequestId from the public QR
// endpoint. The unique index on client_request_id makes the duplicate check
// an atomic check-and-set: the second insert fails regardless of timing.
// Rows expire after the idempotency TTL and are removed by a background sweep.
type QrRequestKey struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key"`
	ClientRequestID string     `gorm:"size:255;uniqueIndex;not null"`
	TableNumber     string     `gorm:"size:20;not null"`
	OrderID         *uuid.UUID `gorm:"type:uuid"` // filled once the order is persisted
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	ExpiresAt       time.Time  `gorm:"not null;index"`
}

func (k *QrRequestKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for QrRequestKey
func (QrRequestKey) TableName() string {
	return "qr_request_keys"
}

// IsExpired checks if the request key has expired
func (k *QrRequestKey) IsExpired() bool {
	return time.Now().After(k.ExpiresAt)
}

// QrRateWindow is one fixed rate-limit window for a (source IP, table number)
// pair. Count is advanced with a conditional UPDATE so concurrent submissions
// cannot both pass the ceiling. LastSeenAt backs the minimum-gap check
// between consecutive submissions from the same key.
type QrRateWindow struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	Key             string    `gorm:"size:128;uniqueIndex;not null"` // "ip:table_number"
	WindowStartedAt time.Time `gorm:"not null"`
	Count           int       `gorm:"default:0"`
	LastSeenAt      time.Time `gorm:"not null;index"`
}

func (w *QrRateWindow) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for QrRateWindow
func (QrRateWindow) TableName() string {
	return "qr_rate_windows"
}
