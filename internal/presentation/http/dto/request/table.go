package request

// CreateTableRequest represents the create table payload
type CreateTableRequest struct {
	TableNumber string `json:"table_number" binding:"required"`
	Capacity    int    `json:"capacity"`
	QREnabled   *bool  `json:"qr_enabled"`
}

// UpdateTableRequest represents the update table payload
type UpdateTableRequest struct {
	Capacity  *int  `json:"capacity"`
	QREnabled *bool `json:"qr_enabled"`
	IsActive  *bool `json:"is_active"`
}
