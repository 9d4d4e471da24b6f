package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes the order lifecycle state.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "en_attente"
	OrderStatusConfirmed OrderStatus = "confirmee"
	OrderStatusPreparing OrderStatus = "en_preparation"
	OrderStatusReady     OrderStatus = "prete"
	OrderStatusDelivered OrderStatus = "livree"
	OrderStatusPickedUp  OrderStatus = "recuperee"
	OrderStatusCancelled OrderStatus = "annulee"
)

// PaymentStatus tracks payment independently from the order lifecycle.
// It never gates lifecycle transitions.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "en_attente"
	PaymentStatusPaid     PaymentStatus = "paye"
	PaymentStatusFailed   PaymentStatus = "echoue"
	PaymentStatusRefunded PaymentStatus = "rembourse"
)

// PaymentMode describes how the customer intends to pay.
type PaymentMode string

const (
	PaymentModeOnSite PaymentMode = "sur_place"
	PaymentModeOnline PaymentMode = "en_ligne"
)

// FulfillmentMode selects the terminal success status of an order.
type FulfillmentMode string

const (
	FulfillmentPickup   FulfillmentMode = "retrait"
	FulfillmentDelivery FulfillmentMode = "livraison"
)

// transitions is the adjacency table of legal status moves. Cancellation is
// reachable from every non-terminal state; the success path never skips a step.
var transitions = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPending:   {OrderStatusConfirmed: true, OrderStatusCancelled: true},
	OrderStatusConfirmed: {OrderStatusPreparing: true, OrderStatusCancelled: true},
	OrderStatusPreparing: {OrderStatusReady: true, OrderStatusCancelled: true},
	OrderStatusReady:     {OrderStatusDelivered: true, OrderStatusPickedUp: true, OrderStatusCancelled: true},
	OrderStatusDelivered: {},
	OrderStatusPickedUp:  {},
	OrderStatusCancelled: {},
}

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s OrderStatus) bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal reports whether no further transitions are possible from s.
func (s OrderStatus) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransition checks the adjacency table for a from->to move.
func CanTransition(from, to OrderStatus) bool {
	next := transitions[from]
	return next != nil && next[to]
}

// CompletionStatus returns the terminal success status matching the
// fulfillment mode.
func (m FulfillmentMode) CompletionStatus() OrderStatus {
	if m == FulfillmentDelivery {
		return OrderStatusDelivered
	}
	return OrderStatusPickedUp
}

// OrderItem is a line of an order with name and price snapshotted at creation
// time, so later menu edits never alter placed orders.
type OrderItem struct {
	ID        int64
	OrderID   int64
	DishID    int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Subtotal  decimal.Decimal
}

// Order describes one placed order. UserID is nil for guest checkout.
type Order struct {
	ID            int64
	Number        string
	TrackingToken string
	RestaurantID  int64
	UserID        *int64
	Items         []OrderItem
	Total         decimal.Decimal
	Note          string
	Phone         string
	Email         string
	PaymentMode   PaymentMode
	PaymentStatus PaymentStatus
	Fulfillment   FulfillmentMode
	Address       string
	Status        OrderStatus

	CreatedAt   time.Time
	ConfirmedAt *time.Time
	PreparingAt *time.Time
	ReadyAt     *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
}

// StampTransition records the timestamp associated with reaching status at the
// given instant. Delivered and picked-up share the completion stamp.
func (o *Order) StampTransition(status OrderStatus, at time.Time) {
	switch status {
	case OrderStatusConfirmed:
		o.ConfirmedAt = &at
	case OrderStatusPreparing:
		o.PreparingAt = &at
	case OrderStatusReady:
		o.ReadyAt = &at
	case OrderStatusDelivered, OrderStatusPickedUp:
		o.CompletedAt = &at
	case OrderStatusCancelled:
		o.CancelledAt = &at
	}
}
