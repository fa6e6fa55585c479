package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
)

// Session represents one customer visit / order tab. TableID is nil for
// takeaway and delivery. The partial unique index on (table_id) where
// status=active enforces one active session per table.
type Session struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	BusinessDayID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"business_day_id"`
	TableID         *uuid.UUID         `gorm:"type:uuid;index" json:"table_id,omitempty"`
	OrderType       enum.OrderType     `gorm:"default:0" json:"order_type"`
	Status          enum.SessionStatus `gorm:"default:0;index" json:"status"`
	CustomerName    string             `gorm:"size:255" json:"customer_name,omitempty"`
	CustomerPhone   string             `gorm:"size:50" json:"customer_phone,omitempty"`
	CustomerAddress string             `gorm:"type:text" json:"customer_address,omitempty"`
	GuestCount      int                `gorm:"default:1" json:"guest_count"`
	DeliveryFee     int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	OpenedAt        time.Time          `gorm:"not null" json:"opened_at"`
	ClosedAt        *time.Time         `json:"closed_at,omitempty"`
	CreatedBy       uuid.UUID          `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	BusinessDay BusinessDay `gorm:"foreignKey:BusinessDayID" json:"-"`
	Table       *Table      `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Orders      []Order     `gorm:"foreignKey:SessionID" json:"orders,omitempty"`
	Bill        *Bill       `gorm:"foreignKey:SessionID" json:"bill,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Session) MarshalJSON() ([]byte, error) {
	type Alias Session
	return json.Marshal(&struct {
		Alias
		DeliveryFee float64 `json:"delivery_fee"`
	}{
		Alias:       Alias(s),
		DeliveryFee: float64(s.DeliveryFee) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new session
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Session model
func (Session) TableName() string {
	return "sessions"
}

// IsActive reports whether the session still accepts orders
func (s *Session) IsActive() bool {
	return s.Status == enum.SessionActive
}
