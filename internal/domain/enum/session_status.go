package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SessionStatus represents the lifecycle state of a dining session
type SessionStatus int

const (
	SessionActive SessionStatus = 0
	SessionClosed SessionStatus = 1
)

func (s SessionStatus) String() string {
	if s < 0 || int(s) >= len(sessionStatusNames) {
		return "unknown"
	}
	return sessionStatusNames[s]
}

var sessionStatusNames = [...]string{"active", "closed"}

// CanTransitionTo reports whether the transition is legal. A session only
// closes, and only as a side effect of payment settlement.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	return s == SessionActive && next == SessionClosed
}

func (s SessionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SessionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SessionStatus(i)
		return nil
	}
	switch str {
	case "active":
		*s = SessionActive
	case "closed":
		*s = SessionClosed
	}
	return nil
}

func (s SessionStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SessionStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SessionActive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SessionStatus(v)
	case int:
		*s = SessionStatus(v)
	}
	return nil
}
