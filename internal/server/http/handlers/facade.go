package handlers

import (
	"context"

	"github.com/restoflow/restoflow/internal/domain/model"
	"github.com/restoflow/restoflow/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string, role model.Role) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (model.Actor, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, req usecase.CreateOrderRequest) (*model.Order, error)
	TransitionOrder(ctx context.Context, orderID int64, target model.OrderStatus, actor model.Actor) (*model.Order, error)
	CancelOrder(ctx context.Context, orderID int64, actor model.Actor) (*model.Order, error)
	TrackOrder(ctx context.Context, token string) (*model.Order, error)
	UserOrders(ctx context.Context, userID int64) ([]model.Order, error)
	RestaurantOrders(ctx context.Context, restaurantID int64, actor model.Actor) ([]model.Order, error)
}

// RestaurantFacade provides restaurant listing and owner-side settings.
type RestaurantFacade interface {
	Restaurants(ctx context.Context) ([]model.Restaurant, error)
	Restaurant(ctx context.Context, id int64) (*model.Restaurant, error)
	RestaurantMenu(ctx context.Context, id int64) ([]model.Dish, error)
	RestaurantAvailability(r *model.Restaurant) usecase.Availability
	UpdateSchedule(ctx context.Context, restaurantID int64, ws model.WeeklySchedule, actor model.Actor) error
	SetExceptionalClosure(ctx context.Context, restaurantID int64, closed bool, actor model.Actor) error
	SetDishAvailability(ctx context.Context, restaurantID, dishID int64, available bool, actor model.Actor) error
	AuthorizeRestaurantAccess(ctx context.Context, restaurantID int64, actor model.Actor) error
}

// MarketplaceFacade aggregates the full set of operations used across handlers.
type MarketplaceFacade interface {
	AuthFacade
	OrderFacade
	RestaurantFacade
}
