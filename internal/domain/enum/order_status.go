package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents the status of an order
type OrderStatus int

const (
	OrderStatusPending   OrderStatus = 0
	OrderStatusAccepted  OrderStatus = 1
	OrderStatusRejected  OrderStatus = 2
	OrderStatusPrinted   OrderStatus = 3
	OrderStatusPaid      OrderStatus = 4
	OrderStatusCancelled OrderStatus = 5
)

var orderStatusNames = [...]string{"pending", "accepted", "rejected", "printed", "paid", "cancelled"}

func (s OrderStatus) String() string {
	if s < 0 || int(s) >= len(orderStatusNames) {
		return "unknown"
	}
	return orderStatusNames[s]
}

// orderTransitions is the closed transition table. Rejected, paid and
// cancelled are terminal; printed moves only to paid via settlement.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:  {OrderStatusAccepted, OrderStatusRejected, OrderStatusCancelled},
	OrderStatusAccepted: {OrderStatusPrinted, OrderStatusCancelled},
	OrderStatusPrinted:  {OrderStatusPaid},
}

// CanTransitionTo reports whether moving to next is a legal transition
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsBillable reports whether the order counts toward a session's subtotal.
// Only orders that reached the kitchen (or were already settled) bill.
func (s OrderStatus) IsBillable() bool {
	return s == OrderStatusPrinted || s == OrderStatusPaid
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	switch str {
	case "pending":
		*s = OrderStatusPending
	case "accepted":
		*s = OrderStatusAccepted
	case "rejected":
		*s = OrderStatusRejected
	case "printed":
		*s = OrderStatusPrinted
	case "paid":
		*s = OrderStatusPaid
	case "cancelled":
		*s = OrderStatusCancelled
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
