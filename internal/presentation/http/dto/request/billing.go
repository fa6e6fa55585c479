package request

// UpsertBillRequest represents the bill computation payload. The two discount
// fields are mutually exclusive; the amount is a decimal on the wire.
type UpsertBillRequest struct {
	SessionID          string   `json:"session_id" binding:"required,uuid"`
	DiscountAmount     *float64 `json:"discount_amount"`
	DiscountPercentage *float64 `json:"discount_percentage"`
}

// PayRequest represents the settlement payload
type PayRequest struct {
	BillID     string  `json:"bill_id" binding:"required,uuid"`
	Method     string  `json:"method" binding:"required"`
	AmountPaid float64 `json:"amount_paid" binding:"required,gt=0"`
}
