package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents the settlement status of an order
type OrderStatus int

const (
	OrderStatusCompleted         OrderStatus = 0
	OrderStatusPartiallyRefunded OrderStatus = 1
	OrderStatusRefunded          OrderStatus = 2
)

func (s OrderStatus) String() string {
	return [...]string{"Completed", "PartiallyRefunded", "Refunded"}[s]
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	switch str {
	case "Completed":
		*s = OrderStatusCompleted
	case "PartiallyRefunded":
		*s = OrderStatusPartiallyRefunded
	case "Refunded":
		*s = OrderStatusRefunded
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusCompleted
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
