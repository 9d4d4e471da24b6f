package notify

import (
	"fmt"
	"time"
)

// Publisher delivers a payload to every subscriber of a topic. Delivery is
// best-effort and at-most-once; callers must never treat a publish as part of
// the operation that triggered it.
type Publisher interface {
	Publish(topic string, payload any)
}

// RestaurantTopic is the live channel of a restaurant's staff dashboard.
func RestaurantTopic(restaurantID int64) string {
	return fmt.Sprintf("restaurant:%d", restaurantID)
}

// UserTopic is the live channel of an identified customer.
func UserTopic(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

// Event types pushed over order channels.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the payload pushed on order creation and status changes.
type OrderEvent struct {
	Type         string    `json:"type"`
	OrderID      int64     `json:"order_id"`
	Number       string    `json:"number"`
	RestaurantID int64     `json:"restaurant_id"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}
