package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Table represents a physical table resource. Occupancy is never stored on
// the row; it is derived from the active-session join at query time.
type Table struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TableNumber string         `gorm:"size:20;uniqueIndex;not null" json:"table_number"`
	Capacity    int            `gorm:"default:4" json:"capacity"`
	QREnabled   bool           `gorm:"default:true" json:"qr_enabled"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sessions []Session `gorm:"foreignKey:TableID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new table
func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Table model
func (Table) TableName() string {
	return "tables"
}

// TableWithOccupancy is the polling view of a table: the stored row plus the
// derived occupancy and, when occupied, the active session.
type TableWithOccupancy struct {
	Table
	Occupied      bool     `json:"occupied"`
	ActiveSession *Session `json:"active_session,omitempty"`
}
