package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderSource represents who submitted an order
type OrderSource int

const (
	OrderSourceManual OrderSource = 0
	OrderSourceQR     OrderSource = 1
)

func (s OrderSource) String() string {
	if s < 0 || int(s) >= len(orderSourceNames) {
		return "unknown"
	}
	return orderSourceNames[s]
}

var orderSourceNames = [...]string{"manual", "qr"}

func (s OrderSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderSource) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderSource(i)
		return nil
	}
	switch str {
	case "manual":
		*s = OrderSourceManual
	case "qr":
		*s = OrderSourceQR
	}
	return nil
}

func (s OrderSource) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderSource) Scan(value interface{}) error {
	if value == nil {
		*s = OrderSourceManual
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderSource(v)
	case int:
		*s = OrderSource(v)
	}
	return nil
}
