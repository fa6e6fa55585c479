package entity

// Print-facing view structs. Amounts here are decimals, not cents: these are
// rendering inputs, never persisted or used in arithmetic.

// KitchenTicket is the data rendered when an order is sent to the kitchen
type KitchenTicket struct {
	OrderNumber string              `json:"order_number"`
	TableNumber string              `json:"table_number,omitempty"` // empty for takeaway/delivery
	OrderType   string              `json:"order_type"`
	Source      string              `json:"source"`
	Notes       string              `json:"notes,omitempty"`
	PrintedAt   string              `json:"printed_at"`
	Lines       []KitchenTicketLine `json:"lines"`
}

// KitchenTicketLine is one item line on a kitchen ticket. No prices: the
// kitchen never sees money.
type KitchenTicketLine struct {
	Quantity  int      `json:"quantity"`
	ItemName  string   `json:"item_name"`
	Modifiers []string `json:"modifiers,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

// Receipt is the data rendered on successful payment
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	BillNumber    string        `json:"bill_number"`
	TableNumber   string        `json:"table_number,omitempty"`
	OrderType     string        `json:"order_type"`
	Date          string        `json:"date"`
	Cashier       string        `json:"cashier,omitempty"`
	Items         []ReceiptItem `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Discount      float64       `json:"discount"`
	Tax           float64       `json:"tax"`
	DeliveryFee   float64       `json:"delivery_fee"`
	Total         float64       `json:"total"`
	PaymentMethod string        `json:"payment_method"`
	Paid          float64       `json:"paid"`
	Change        float64       `json:"change"`
}

// ReceiptHeader contains the venue info printed at the top of a receipt
type ReceiptHeader struct {
	VenueName string `json:"venue_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptItem is one line on a receipt
type ReceiptItem struct {
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	UnitPrice float64  `json:"unit_price"`
	Total     float64  `json:"total"`
	Modifiers []string `json:"modifiers,omitempty"`
}
