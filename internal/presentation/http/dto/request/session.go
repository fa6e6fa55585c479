package request

// OpenDineInRequest represents the open dine-in session payload
type OpenDineInRequest struct {
	TableID    string `json:"table_id" binding:"required,uuid"`
	GuestCount int    `json:"guest_count"`
}

// OpenTakeawayRequest represents the open takeaway session payload
type OpenTakeawayRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

// OpenDeliveryRequest represents the open delivery session payload
type OpenDeliveryRequest struct {
	CustomerName    string  `json:"customer_name" binding:"required"`
	CustomerPhone   string  `json:"customer_phone" binding:"required"`
	CustomerAddress string  `json:"customer_address" binding:"required"`
	DeliveryFee     float64 `json:"delivery_fee" binding:"min=0"`
}
