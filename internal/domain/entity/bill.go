package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bill represents the computed, payable total for a session. It is recomputed
// in place while unpaid and becomes immutable once is_paid is set.
type Bill struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BillNumber         string         `gorm:"size:50;uniqueIndex;not null" json:"bill_number"`
	SessionID          uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"session_id"`
	BusinessDayID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"business_day_id"`
	Subtotal           int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	DiscountAmount     int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	DiscountPercentage *float64       `json:"discount_percentage,omitempty"`
	TaxPercentage      float64        `gorm:"default:0" json:"tax_percentage"`
	TaxAmount          int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	DeliveryFee        int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Total              int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	IsPaid             bool           `gorm:"default:false;index" json:"is_paid"`
	PaidAt             *time.Time     `json:"paid_at,omitempty"`
	PaidAmount         int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	ChangeAmount       int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedBy          uuid.UUID      `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Session  Session   `gorm:"foreignKey:SessionID" json:"-"`
	Payments []Payment `gorm:"foreignKey:BillID" json:"payments,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (b Bill) MarshalJSON() ([]byte, error) {
	type Alias Bill
	return json.Marshal(&struct {
		Alias
		Subtotal       float64 `json:"subtotal"`
		DiscountAmount float64 `json:"discount_amount"`
		TaxAmount      float64 `json:"tax_amount"`
		DeliveryFee    float64 `json:"delivery_fee"`
		Total          float64 `json:"total"`
		PaidAmount     float64 `json:"paid_amount"`
		ChangeAmount   float64 `json:"change_amount"`
	}{
		Alias:          Alias(b),
		Subtotal:       float64(b.Subtotal) / 100,
		DiscountAmount: float64(b.DiscountAmount) / 100,
		TaxAmount:      float64(b.TaxAmount) / 100,
		DeliveryFee:    float64(b.DeliveryFee) / 100,
		Total:          float64(b.Total) / 100,
		PaidAmount:     float64(b.PaidAmount) / 100,
		ChangeAmount:   float64(b.ChangeAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}
