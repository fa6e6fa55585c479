package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderType represents the kind of dining session
type OrderType int

const (
	OrderTypeDineIn   OrderType = 0
	OrderTypeTakeaway OrderType = 1
	OrderTypeDelivery OrderType = 2
)

func (t OrderType) String() string {
	return [...]string{"dine_in", "takeaway", "delivery"}[t]
}

// ParseOrderType converts a wire string into an OrderType
func ParseOrderType(s string) (OrderType, error) {
	switch s {
	case "dine_in":
		return OrderTypeDineIn, nil
	case "takeaway":
		return OrderTypeTakeaway, nil
	case "delivery":
		return OrderTypeDelivery, nil
	default:
		return 0, fmt.Errorf("unknown order type %q", s)
	}
}

func (t OrderType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *OrderType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = OrderType(i)
		return nil
	}
	parsed, err := ParseOrderType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t OrderType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *OrderType) Scan(value interface{}) error {
	if value == nil {
		*t = OrderTypeDineIn
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = OrderType(v)
	case int:
		*t = OrderType(v)
	}
	return nil
}
