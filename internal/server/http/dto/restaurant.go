package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/restoflow/restoflow/internal/domain/model"
)

// NextOpeningResponse tells a closed restaurant's visitor when to come back.
type NextOpeningResponse struct {
	Day        string    `json:"day"`
	Start      string    `json:"start"`
	At         time.Time `json:"at"`
	IsToday    bool      `json:"is_today"`
	IsTomorrow bool      `json:"is_tomorrow"`
}

// RestaurantResponse describes a restaurant with its live availability.
type RestaurantResponse struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Address     string               `json:"address"`
	Phone       string               `json:"phone"`
	IsOpen      bool                 `json:"is_open"`
	ClosesAt    *time.Time           `json:"closes_at,omitempty"`
	NextOpening *NextOpeningResponse `json:"next_opening,omitempty"`
}

// DishResponse is one menu entry.
type DishResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Available   bool            `json:"available"`
}

// ScheduleRequest replaces the weekly schedule, Monday first.
type ScheduleRequest struct {
	Schedule model.WeeklySchedule `json:"schedule"`
}

// ClosureRequest toggles the exceptional closure flag.
type ClosureRequest struct {
	Closed bool `json:"closed"`
}

// DishAvailabilityRequest toggles whether a dish can be ordered.
type DishAvailabilityRequest struct {
	Available bool `json:"available"`
}
