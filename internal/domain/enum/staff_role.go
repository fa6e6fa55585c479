package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StaffRole represents a staff member's role
type StaffRole int

const (
	RoleOwner   StaffRole = 0
	RoleCashier StaffRole = 1
	RoleWaiter  StaffRole = 2
	RoleKitchen StaffRole = 3
)

func (r StaffRole) String() string {
	return [...]string{"owner", "cashier", "waiter", "kitchen"}[r]
}

// ParseStaffRole converts a wire string into a StaffRole
func ParseStaffRole(s string) (StaffRole, error) {
	switch s {
	case "owner":
		return RoleOwner, nil
	case "cashier":
		return RoleCashier, nil
	case "waiter":
		return RoleWaiter, nil
	case "kitchen":
		return RoleKitchen, nil
	default:
		return 0, fmt.Errorf("unknown staff role %q", s)
	}
}

func (r StaffRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *StaffRole) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*r = StaffRole(i)
		return nil
	}
	parsed, err := ParseStaffRole(str)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r StaffRole) Value() (driver.Value, error) {
	return int64(r), nil
}

func (r *StaffRole) Scan(value interface{}) error {
	if value == nil {
		*r = RoleWaiter
		return nil
	}
	switch v := value.(type) {
	case int64:
		*r = StaffRole(v)
	case int:
		*r = StaffRole(v)
	}
	return nil
}
