package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog is an append-only record of sensitive actions: QR submissions,
// order accept/reject, kitchen prints, payments, day open/close.
type AuditLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Action    string     `gorm:"size:100;not null;index" json:"action"`
	Entity    string     `gorm:"size:100;not null" json:"entity"`
	RecordID  *uuid.UUID `gorm:"type:uuid;index" json:"record_id,omitempty"`
	Details   string     `gorm:"type:text" json:"details,omitempty"` // JSON payload
	IPAddress string     `gorm:"size:64" json:"ip_address,omitempty"`
	ActorID   *uuid.UUID `gorm:"type:uuid" json:"actor_id,omitempty"` // nil for anonymous QR devices
	CreatedAt time.Time  `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new audit log entry
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit action names
const (
	AuditQROrderSubmitted = "qr_order_submitted"
	AuditOrderAccepted    = "order_accepted"
	AuditOrderRejected    = "order_rejected"
	AuditOrderPrinted     = "order_printed"
	AuditPaymentRecorded  = "payment_recorded"
	AuditDayOpened        = "business_day_opened"
	AuditDayClosed        = "business_day_closed"
)
