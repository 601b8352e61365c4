package enums

import "fmt"

// OrderStatus tracks the fulfillment lifecycle of a submitted order.
//
// The first four values form a strictly ordered chain; StatusComplete sits
// outside the chain and is terminal once set.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusDispatched OrderStatus = "dispatched"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusComplete   OrderStatus = "complete"
)

var orderStatusChain = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusDispatched,
	OrderStatusDelivered,
}

var validOrderStatuses = append(append([]OrderStatus{}, orderStatusChain...), OrderStatusComplete)

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// StageIndex returns the position of the status in the ordered chain. The
// second return is false for StatusComplete and unknown values, which have no
// chain position.
func (s OrderStatus) StageIndex() (int, bool) {
	for i, candidate := range orderStatusChain {
		if candidate == s {
			return i, true
		}
	}
	return -1, false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
