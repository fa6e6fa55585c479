package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The catalog entities are read-only from the core's perspective: the intake
// pipeline resolves prices from them but never writes them. Administration
// lives outside this service.

// MenuCategory groups menu items for display ordering
type MenuCategory struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	DisplayOrder int            `gorm:"default:0" json:"display_order"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Items []MenuItem `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
}

func (c *MenuCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (MenuCategory) TableName() string {
	return "menu_categories"
}

// MenuItem is a sellable item with its current price. Order items snapshot
// this price at submission time.
type MenuItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Price       int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	IsAvailable bool           `gorm:"default:true" json:"is_available"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Category       MenuCategory    `gorm:"foreignKey:CategoryID" json:"-"`
	ModifierGroups []ModifierGroup `gorm:"foreignKey:MenuItemID" json:"modifier_groups,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (m MenuItem) MarshalJSON() ([]byte, error) {
	type Alias MenuItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(m),
		Price: float64(m.Price) / 100,
	})
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (MenuItem) TableName() string {
	return "menu_items"
}

// ModifierGroup constrains modifier selection for an item (e.g. "Size:
// choose exactly one"). Min/max selection is validated at submission time,
// not stored per order item.
type ModifierGroup struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	MenuItemID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"menu_item_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	MinSelection int            `gorm:"default:0" json:"min_selection"`
	MaxSelection int            `gorm:"default:1" json:"max_selection"`
	Required     bool           `gorm:"default:false" json:"required"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Modifiers []Modifier `gorm:"foreignKey:GroupID" json:"modifiers,omitempty"`
}

func (g *ModifierGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

func (ModifierGroup) TableName() string {
	return "modifier_groups"
}

// Modifier is a selectable option inside a group, with a price adjustment
type Modifier struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	GroupID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"group_id"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	PriceAdjustment int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	IsAvailable     bool           `gorm:"default:true" json:"is_available"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (m Modifier) MarshalJSON() ([]byte, error) {
	type Alias Modifier
	return json.Marshal(&struct {
		Alias
		PriceAdjustment float64 `json:"price_adjustment"`
	}{
		Alias:           Alias(m),
		PriceAdjustment: float64(m.PriceAdjustment) / 100,
	})
}

func (m *Modifier) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (Modifier) TableName() string {
	return "modifiers"
}
