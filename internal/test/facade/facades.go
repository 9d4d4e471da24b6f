package facade

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/restoflow/restoflow/internal/domain/model"
	"github.com/restoflow/restoflow/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, model.Role) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (model.Actor, error)
	Actor          model.Actor
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, login, password string, role model.Role) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password, role)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// ParseToken returns the stored actor.
func (s AuthFacadeStub) ParseToken(token string) (model.Actor, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Actor != (model.Actor{}) {
		return s.Actor, nil
	}
	return model.Actor{UserID: 1, Role: model.RoleCustomer}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn            func(context.Context, usecase.CreateOrderRequest) (*model.Order, error)
	TransitionFn       func(context.Context, int64, model.OrderStatus, model.Actor) (*model.Order, error)
	CancelFn           func(context.Context, int64, model.Actor) (*model.Order, error)
	TrackFn            func(context.Context, string) (*model.Order, error)
	UserOrdersFn       func(context.Context, int64) ([]model.Order, error)
	RestaurantOrdersFn func(context.Context, int64, model.Actor) ([]model.Order, error)
}

// PlaceOrder delegates to provided function or returns a default order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, req usecase.CreateOrderRequest) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, req)
	}
	return &model.Order{
		ID:            1,
		Number:        "CMD-20260101-AAAAAA",
		TrackingToken: "stub-token",
		RestaurantID:  req.RestaurantID,
		UserID:        req.UserID,
		Status:        model.OrderStatusPending,
		Total:         decimal.Zero,
	}, nil
}

// TransitionOrder delegates or returns the order in the target status.
func (s OrderFacadeStub) TransitionOrder(ctx context.Context, orderID int64, target model.OrderStatus, actor model.Actor) (*model.Order, error) {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, orderID, target, actor)
	}
	return &model.Order{ID: orderID, Status: target}, nil
}

// CancelOrder delegates or returns the order cancelled.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, orderID int64, actor model.Actor) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, orderID, actor)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusCancelled}, nil
}

// TrackOrder delegates or returns a default tracked order.
func (s OrderFacadeStub) TrackOrder(ctx context.Context, token string) (*model.Order, error) {
	if s.TrackFn != nil {
		return s.TrackFn(ctx, token)
	}
	return &model.Order{ID: 1, TrackingToken: token, Status: model.OrderStatusPending}, nil
}

// UserOrders returns predefined orders for given user.
func (s OrderFacadeStub) UserOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.UserOrdersFn != nil {
		return s.UserOrdersFn(ctx, userID)
	}
	return []model.Order{{ID: 1, Number: "CMD-20260101-AAAAAA"}}, nil
}

// RestaurantOrders returns predefined orders for the restaurant dashboard.
func (s OrderFacadeStub) RestaurantOrders(ctx context.Context, restaurantID int64, actor model.Actor) ([]model.Order, error) {
	if s.RestaurantOrdersFn != nil {
		return s.RestaurantOrdersFn(ctx, restaurantID, actor)
	}
	return []model.Order{{ID: 1, RestaurantID: restaurantID}}, nil
}

// RestaurantFacadeStub simulates restaurant operations.
type RestaurantFacadeStub struct {
	ListFn         func(context.Context) ([]model.Restaurant, error)
	GetFn          func(context.Context, int64) (*model.Restaurant, error)
	MenuFn         func(context.Context, int64) ([]model.Dish, error)
	AvailabilityFn func(*model.Restaurant) usecase.Availability
	ScheduleFn     func(context.Context, int64, model.WeeklySchedule, model.Actor) error
	ClosureFn      func(context.Context, int64, bool, model.Actor) error
	DishFn         func(context.Context, int64, int64, bool, model.Actor) error
	AuthorizeFn    func(context.Context, int64, model.Actor) error
}

// Restaurants returns configured restaurants.
func (s RestaurantFacadeStub) Restaurants(ctx context.Context) ([]model.Restaurant, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return []model.Restaurant{{ID: 1, Name: "Chez Stub", Active: true}}, nil
}

// Restaurant returns one restaurant.
func (s RestaurantFacadeStub) Restaurant(ctx context.Context, id int64) (*model.Restaurant, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Restaurant{ID: id, Name: "Chez Stub", Active: true}, nil
}

// RestaurantMenu returns configured dishes.
func (s RestaurantFacadeStub) RestaurantMenu(ctx context.Context, id int64) ([]model.Dish, error) {
	if s.MenuFn != nil {
		return s.MenuFn(ctx, id)
	}
	return []model.Dish{{ID: 1, RestaurantID: id, Name: "Plat du jour", Available: true}}, nil
}

// RestaurantAvailability reports configured availability.
func (s RestaurantFacadeStub) RestaurantAvailability(r *model.Restaurant) usecase.Availability {
	if s.AvailabilityFn != nil {
		return s.AvailabilityFn(r)
	}
	return usecase.Availability{IsOpen: true}
}

// UpdateSchedule executes configured handler.
func (s RestaurantFacadeStub) UpdateSchedule(ctx context.Context, restaurantID int64, ws model.WeeklySchedule, actor model.Actor) error {
	if s.ScheduleFn != nil {
		return s.ScheduleFn(ctx, restaurantID, ws, actor)
	}
	return nil
}

// SetExceptionalClosure executes configured handler.
func (s RestaurantFacadeStub) SetExceptionalClosure(ctx context.Context, restaurantID int64, closed bool, actor model.Actor) error {
	if s.ClosureFn != nil {
		return s.ClosureFn(ctx, restaurantID, closed, actor)
	}
	return nil
}

// SetDishAvailability executes configured handler.
func (s RestaurantFacadeStub) SetDishAvailability(ctx context.Context, restaurantID, dishID int64, available bool, actor model.Actor) error {
	if s.DishFn != nil {
		return s.DishFn(ctx, restaurantID, dishID, available, actor)
	}
	return nil
}

// AuthorizeRestaurantAccess executes configured handler.
func (s RestaurantFacadeStub) AuthorizeRestaurantAccess(ctx context.Context, restaurantID int64, actor model.Actor) error {
	if s.AuthorizeFn != nil {
		return s.AuthorizeFn(ctx, restaurantID, actor)
	}
	return nil
}

// MarketplaceFacadeStub aggregates facade dependencies for HTTP layer tests.
type MarketplaceFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	RestaurantFacadeStub
}
