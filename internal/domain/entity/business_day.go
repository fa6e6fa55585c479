package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
)

// BusinessDay represents one accounting period. At most one open day exists
// system-wide; the partial unique index on status=open enforces it.
type BusinessDay struct {
	ID             uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	Status         enum.BusinessDayStatus `gorm:"default:0;index" json:"status"`
	OpenedAt       time.Time              `gorm:"not null" json:"opened_at"`
	OpenedBy       uuid.UUID              `gorm:"type:uuid;not null" json:"opened_by"`
	ClosedAt       *time.Time             `json:"closed_at,omitempty"`
	ClosedBy       *uuid.UUID             `gorm:"type:uuid" json:"closed_by,omitempty"`
	OpeningCash    int64                  `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	ClosingCash    int64                  `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	ExpectedCash   int64                  `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CashDifference int64                  `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`

	// Relationships
	Sessions []Session `gorm:"foreignKey:BusinessDayID" json:"-"`
	Orders   []Order   `gorm:"foreignKey:BusinessDayID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (d BusinessDay) MarshalJSON() ([]byte, error) {
	type Alias BusinessDay
	return json.Marshal(&struct {
		Alias
		OpeningCash    float64 `json:"opening_cash"`
		ClosingCash    float64 `json:"closing_cash"`
		ExpectedCash   float64 `json:"expected_cash"`
		CashDifference float64 `json:"cash_difference"`
	}{
		Alias:          Alias(d),
		OpeningCash:    float64(d.OpeningCash) / 100,
		ClosingCash:    float64(d.ClosingCash) / 100,
		ExpectedCash:   float64(d.ExpectedCash) / 100,
		CashDifference: float64(d.CashDifference) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new business day
func (d *BusinessDay) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BusinessDay model
func (BusinessDay) TableName() string {
	return "business_days"
}

// IsOpen reports whether the day is still accepting sales activity
func (d *BusinessDay) IsOpen() bool {
	return d.Status == enum.BusinessDayOpen
}
