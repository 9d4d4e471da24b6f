package repository

import (
	"context"

	"github.com/restoflow/restoflow/internal/domain/model"
)

// RestaurantRepository describes persistence operations with restaurants and
// their menus.
type RestaurantRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Restaurant, error)
	List(ctx context.Context) ([]model.Restaurant, error)
	UpdateSchedule(ctx context.Context, restaurantID int64, schedule model.WeeklySchedule) error
	SetExceptionalClosure(ctx context.Context, restaurantID int64, closed bool) error

	ListDishes(ctx context.Context, restaurantID int64) ([]model.Dish, error)
	DishesByIDs(ctx context.Context, restaurantID int64, ids []int64) ([]model.Dish, error)
	SetDishAvailability(ctx context.Context, restaurantID, dishID int64, available bool) error
}
