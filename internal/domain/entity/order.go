package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
)

// Order represents one batch of items submitted together. QR orders start
// pending and require explicit staff accept/reject; manual orders are created
// directly as accepted.
type Order struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	SessionID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"session_id"`
	BusinessDayID uuid.UUID        `gorm:"type:uuid;not null;index" json:"business_day_id"`
	OrderNumber   string           `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	Source        enum.OrderSource `gorm:"default:0" json:"source"`
	Status        enum.OrderStatus `gorm:"default:0;index" json:"status"`
	Notes         string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy     *uuid.UUID       `gorm:"type:uuid" json:"created_by,omitempty"` // nil for QR orders
	AcceptedBy    *uuid.UUID       `gorm:"type:uuid" json:"accepted_by,omitempty"`
	AcceptedAt    *time.Time       `json:"accepted_at,omitempty"`
	RejectedBy    *uuid.UUID       `gorm:"type:uuid" json:"rejected_by,omitempty"`
	RejectedAt    *time.Time       `json:"rejected_at,omitempty"`
	PrintedAt     *time.Time       `json:"printed_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Session Session     `gorm:"foreignKey:SessionID" json:"-"`
	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// ItemsSubtotal sums the line subtotals including modifier adjustments, in cents
func (o *Order) ItemsSubtotal() int64 {
	var total int64
	for i := range o.Items {
		total += o.Items[i].LineTotal()
	}
	return total
}

// OrderItem represents one line within an order. UnitPrice is a snapshot of
// the catalog price at submission time and is immutable thereafter.
type OrderItem struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	MenuItemID uuid.UUID      `gorm:"type:uuid;not null;index" json:"menu_item_id"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	UnitPrice  int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Subtotal   int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Notes      string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order     Order               `gorm:"foreignKey:OrderID" json:"-"`
	MenuItem  MenuItem            `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Modifiers []OrderItemModifier `gorm:"foreignKey:OrderItemID" json:"modifiers,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Subtotal  float64 `json:"subtotal"`
	}{
		Alias:     Alias(oi),
		UnitPrice: float64(oi.UnitPrice) / 100,
		Subtotal:  float64(oi.Subtotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal returns the item subtotal plus modifier adjustments, in cents
func (oi *OrderItem) LineTotal() int64 {
	total := oi.Subtotal
	for i := range oi.Modifiers {
		total += oi.Modifiers[i].PriceAdjustment * int64(oi.Modifiers[i].Quantity)
	}
	return total
}

// OrderItemModifier represents a selected modifier on an order item.
// PriceAdjustment is snapshotted at submission time.
type OrderItemModifier struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderItemID     uuid.UUID `gorm:"type:uuid;not null;index" json:"order_item_id"`
	ModifierID      uuid.UUID `gorm:"type:uuid;not null" json:"modifier_id"`
	Quantity        int       `gorm:"default:1" json:"quantity"`
	PriceAdjustment int64     `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt       time.Time `json:"created_at"`

	// Relationships
	Modifier Modifier `gorm:"foreignKey:ModifierID" json:"modifier,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (m OrderItemModifier) MarshalJSON() ([]byte, error) {
	type Alias OrderItemModifier
	return json.Marshal(&struct {
		Alias
		PriceAdjustment float64 `json:"price_adjustment"`
	}{
		Alias:           Alias(m),
		PriceAdjustment: float64(m.PriceAdjustment) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item modifier
func (m *OrderItemModifier) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItemModifier model
func (OrderItemModifier) TableName() string {
	return "order_item_modifiers"
}
