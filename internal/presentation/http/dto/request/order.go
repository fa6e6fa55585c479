package request

// OrderModifierRequest represents a selected modifier on an item line
type OrderModifierRequest struct {
	ModifierID string `json:"modifier_id" binding:"required,uuid"`
	Quantity   int    `json:"quantity"`
}

// OrderItemRequest represents one item line in an order payload
type OrderItemRequest struct {
	MenuItemID string                 `json:"menu_item_id" binding:"required,uuid"`
	Quantity   int                    `json:"quantity" binding:"required,min=1,max=20"`
	Notes      string                 `json:"notes"`
	Modifiers  []OrderModifierRequest `json:"modifiers"`
}

// CreateOrderRequest represents the staff order creation payload
type CreateOrderRequest struct {
	SessionID string             `json:"session_id" binding:"required,uuid"`
	Notes     string             `json:"notes"`
	Items     []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// QROrderRequest is the public QR submission wire contract. Field names are
// camelCase: this payload is produced by the customer-facing web menu.
type QROrderRequest struct {
	TableNumber     string             `json:"tableNumber" binding:"required"`
	ClientRequestID string             `json:"clientRequestId"`
	Notes           string             `json:"notes"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,max=20,dive"`
}

// RejectOrderRequest represents the order rejection payload
type RejectOrderRequest struct {
	Reason string `json:"reason"`
}
