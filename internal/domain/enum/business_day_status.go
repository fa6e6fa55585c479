package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// BusinessDayStatus represents the lifecycle state of a business day
type BusinessDayStatus int

const (
	BusinessDayOpen   BusinessDayStatus = 0
	BusinessDayClosed BusinessDayStatus = 1
)

func (s BusinessDayStatus) String() string {
	if s < 0 || int(s) >= len(businessDayStatusNames) {
		return "unknown"
	}
	return businessDayStatusNames[s]
}

var businessDayStatusNames = [...]string{"open", "closed"}

// CanTransitionTo reports whether the transition is legal. The only move is
// open -> closed; a closed day is terminal.
func (s BusinessDayStatus) CanTransitionTo(next BusinessDayStatus) bool {
	return s == BusinessDayOpen && next == BusinessDayClosed
}

func (s BusinessDayStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *BusinessDayStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = BusinessDayStatus(i)
		return nil
	}
	switch str {
	case "open":
		*s = BusinessDayOpen
	case "closed":
		*s = BusinessDayClosed
	}
	return nil
}

func (s BusinessDayStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *BusinessDayStatus) Scan(value interface{}) error {
	if value == nil {
		*s = BusinessDayOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = BusinessDayStatus(v)
	case int:
		*s = BusinessDayStatus(v)
	}
	return nil
}
