package app

import (
	"context"

	"github.com/restoflow/restoflow/internal/domain/model"
	"github.com/restoflow/restoflow/internal/usecase"
)

// MarketFacade aggregates the marketplace use cases behind one surface for the
// HTTP layer.
type MarketFacade struct {
	auth        *usecase.AuthUseCase
	orders      *usecase.OrderUseCase
	restaurants *usecase.RestaurantUseCase
}

// NewMarketFacade constructs MarketFacade.
func NewMarketFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, restaurants *usecase.RestaurantUseCase) *MarketFacade {
	return &MarketFacade{auth: auth, orders: orders, restaurants: restaurants}
}

func (f *MarketFacade) Register(ctx context.Context, login, password string, role model.Role) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, role)
	return token, err
}

func (f *MarketFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *MarketFacade) ParseToken(token string) (model.Actor, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketFacade) PlaceOrder(ctx context.Context, req usecase.CreateOrderRequest) (*model.Order, error) {
	return f.orders.Create(ctx, req)
}

func (f *MarketFacade) TransitionOrder(ctx context.Context, orderID int64, target model.OrderStatus, actor model.Actor) (*model.Order, error) {
	return f.orders.Transition(ctx, orderID, target, actor)
}

func (f *MarketFacade) CancelOrder(ctx context.Context, orderID int64, actor model.Actor) (*model.Order, error) {
	return f.orders.Cancel(ctx, orderID, actor)
}

func (f *MarketFacade) TrackOrder(ctx context.Context, token string) (*model.Order, error) {
	return f.orders.TrackByToken(ctx, token)
}

func (f *MarketFacade) UserOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *MarketFacade) RestaurantOrders(ctx context.Context, restaurantID int64, actor model.Actor) ([]model.Order, error) {
	return f.orders.ListByRestaurant(ctx, restaurantID, actor)
}

func (f *MarketFacade) Restaurants(ctx context.Context) ([]model.Restaurant, error) {
	return f.restaurants.List(ctx)
}

func (f *MarketFacade) Restaurant(ctx context.Context, id int64) (*model.Restaurant, error) {
	return f.restaurants.GetByID(ctx, id)
}

func (f *MarketFacade) RestaurantMenu(ctx context.Context, id int64) ([]model.Dish, error) {
	return f.restaurants.Menu(ctx, id)
}

func (f *MarketFacade) RestaurantAvailability(r *model.Restaurant) usecase.Availability {
	return f.restaurants.AvailabilityOf(r)
}

func (f *MarketFacade) UpdateSchedule(ctx context.Context, restaurantID int64, ws model.WeeklySchedule, actor model.Actor) error {
	return f.restaurants.UpdateSchedule(ctx, restaurantID, ws, actor)
}

func (f *MarketFacade) SetExceptionalClosure(ctx context.Context, restaurantID int64, closed bool, actor model.Actor) error {
	return f.restaurants.SetExceptionalClosure(ctx, restaurantID, closed, actor)
}

func (f *MarketFacade) AuthorizeRestaurantAccess(ctx context.Context, restaurantID int64, actor model.Actor) error {
	return f.restaurants.AuthorizeOwner(ctx, restaurantID, actor)
}

func (f *MarketFacade) SetDishAvailability(ctx context.Context, restaurantID, dishID int64, available bool, actor model.Actor) error {
	return f.restaurants.SetDishAvailability(ctx, restaurantID, dishID, available, actor)
}
