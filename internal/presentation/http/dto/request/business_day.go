package request

// OpenDayRequest represents the open business day payload. Cash amounts are
// decimals on the wire and cents internally.
type OpenDayRequest struct {
	OpeningCash float64 `json:"opening_cash" binding:"min=0"`
}

// CloseDayRequest represents the close business day payload
type CloseDayRequest struct {
	ClosingCash float64 `json:"closing_cash" binding:"min=0"`
}
