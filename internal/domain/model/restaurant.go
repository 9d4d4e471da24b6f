package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Restaurant holds the fields relevant to order placement. Active is a soft
// disable by an administrator; ExceptionalClosure forces the restaurant closed
// regardless of its schedule (vacation, equipment failure).
type Restaurant struct {
	ID                 int64
	OwnerID            int64
	Name               string
	Address            string
	Phone              string
	Active             bool
	ExceptionalClosure bool
	Schedule           *WeeklySchedule
	CreatedAt          time.Time
}

// Dish is a menu entry priced server-side. Orders snapshot name and price at
// creation time.
type Dish struct {
	ID           int64
	RestaurantID int64
	Name         string
	Description  string
	Price        decimal.Decimal
	Available    bool
}
