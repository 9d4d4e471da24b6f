package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest is one dish reference with quantity. The price is resolved
// server-side.
type OrderLineRequest struct {
	DishID   int64 `json:"dish_id"`
	Quantity int   `json:"quantity"`
}

// CreateOrderRequest describes the checkout payload.
type CreateOrderRequest struct {
	RestaurantID int64              `json:"restaurant_id"`
	Items        []OrderLineRequest `json:"items"`
	Note         string             `json:"note"`
	Phone        string             `json:"phone"`
	Email        string             `json:"email"`
	PaymentMode  string             `json:"payment_mode"`
	Fulfillment  string             `json:"fulfillment"`
	Address      string             `json:"address"`
}

// StatusRequest carries the target lifecycle status.
type StatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse is a snapshotted order line.
type OrderItemResponse struct {
	DishID    int64           `json:"dish_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse describes an order as returned to clients.
type OrderResponse struct {
	ID            int64               `json:"id"`
	Number        string              `json:"number"`
	TrackingToken string              `json:"tracking_token,omitempty"`
	RestaurantID  int64               `json:"restaurant_id"`
	Status        string              `json:"status"`
	PaymentMode   string              `json:"payment_mode"`
	PaymentStatus string              `json:"payment_status"`
	Fulfillment   string              `json:"fulfillment"`
	Address       string              `json:"address,omitempty"`
	Note          string              `json:"note,omitempty"`
	Total         decimal.Decimal     `json:"total"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
	ConfirmedAt   *time.Time          `json:"confirmed_at,omitempty"`
	PreparingAt   *time.Time          `json:"preparing_at,omitempty"`
	ReadyAt       *time.Time          `json:"ready_at,omitempty"`
	CompletedAt   *time.Time          `json:"completed_at,omitempty"`
	CancelledAt   *time.Time          `json:"cancelled_at,omitempty"`
}
