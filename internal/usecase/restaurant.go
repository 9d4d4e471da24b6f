package usecase

import (
	"context"
	"time"

	domainErrors "github.com/restoflow/restoflow/internal/domain/errors"
	"github.com/restoflow/restoflow/internal/domain/model"
	"github.com/restoflow/restoflow/internal/domain/repository"
	"github.com/restoflow/restoflow/internal/schedule"
)

// Availability is the schedule-derived state of a restaurant at one instant.
type Availability struct {
	IsOpen      bool
	ClosesAt    *time.Time
	NextOpening *schedule.Opening
}

// RestaurantUseCase handles restaurant listing and owner-side settings.
type RestaurantUseCase struct {
	restaurants repository.RestaurantRepository
	now         func() time.Time
}

// NewRestaurantUseCase constructs RestaurantUseCase.
func NewRestaurantUseCase(restaurants repository.RestaurantRepository) *RestaurantUseCase {
	return &RestaurantUseCase{restaurants: restaurants, now: time.Now}
}

// List returns all active restaurants.
func (u *RestaurantUseCase) List(ctx context.Context) ([]model.Restaurant, error) {
	restaurants, err := u.restaurants.List(ctx)
	if err != nil {
		return nil, err
	}
	active := restaurants[:0]
	for _, r := range restaurants {
		if r.Active {
			active = append(active, r)
		}
	}
	return active, nil
}

// GetByID returns one restaurant; inactive restaurants are hidden.
func (u *RestaurantUseCase) GetByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	restaurant, err := u.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !restaurant.Active {
		return nil, domainErrors.ErrNotFound
	}
	return restaurant, nil
}

// Menu returns the restaurant's dishes.
func (u *RestaurantUseCase) Menu(ctx context.Context, restaurantID int64) ([]model.Dish, error) {
	return u.restaurants.ListDishes(ctx, restaurantID)
}

// AvailabilityOf computes the open/closed state of a restaurant via the
// schedule evaluator, the single source of open-hours semantics. Restaurants
// without a configured schedule are treated as always open.
func (u *RestaurantUseCase) AvailabilityOf(r *model.Restaurant) Availability {
	if r.Schedule == nil {
		return Availability{IsOpen: !r.ExceptionalClosure}
	}

	now := u.now()
	av := Availability{IsOpen: schedule.IsOpen(*r.Schedule, r.ExceptionalClosure, now)}
	if av.IsOpen {
		if closes, ok := schedule.ClosingTime(*r.Schedule, now); ok {
			av.ClosesAt = &closes
		}
		return av
	}

	if next, err := schedule.NextOpening(*r.Schedule, now); err == nil {
		av.NextOpening = &next
	}
	return av
}

// UpdateSchedule replaces the weekly schedule after validating its invariants.
// A schedule with no usable opening at all is rejected with ErrNoOpeningFound
// so a misconfiguration is visible to the owner instead of silently making the
// restaurant unreachable.
func (u *RestaurantUseCase) UpdateSchedule(ctx context.Context, restaurantID int64, ws model.WeeklySchedule, actor model.Actor) error {
	if err := u.authorizeOwner(ctx, restaurantID, actor); err != nil {
		return err
	}
	if err := ws.Validate(); err != nil {
		return domainErrors.ErrInvalidRequest
	}
	if !ws.HasAnyOpening() {
		return domainErrors.ErrNoOpeningFound
	}
	return u.restaurants.UpdateSchedule(ctx, restaurantID, ws)
}

// SetExceptionalClosure toggles the manual closed-override flag.
func (u *RestaurantUseCase) SetExceptionalClosure(ctx context.Context, restaurantID int64, closed bool, actor model.Actor) error {
	if err := u.authorizeOwner(ctx, restaurantID, actor); err != nil {
		return err
	}
	return u.restaurants.SetExceptionalClosure(ctx, restaurantID, closed)
}

// SetDishAvailability toggles whether a dish can be ordered.
func (u *RestaurantUseCase) SetDishAvailability(ctx context.Context, restaurantID, dishID int64, available bool, actor model.Actor) error {
	if err := u.authorizeOwner(ctx, restaurantID, actor); err != nil {
		return err
	}
	return u.restaurants.SetDishAvailability(ctx, restaurantID, dishID, available)
}

// AuthorizeOwner verifies the actor may manage the restaurant: admins always,
// restaurateurs only for restaurants they own.
func (u *RestaurantUseCase) AuthorizeOwner(ctx context.Context, restaurantID int64, actor model.Actor) error {
	return u.authorizeOwner(ctx, restaurantID, actor)
}

func (u *RestaurantUseCase) authorizeOwner(ctx context.Context, restaurantID int64, actor model.Actor) error {
	if actor.Role == model.RoleAdmin {
		return nil
	}
	if actor.Role != model.RoleRestaurateur {
		return domainErrors.ErrForbidden
	}
	restaurant, err := u.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return err
	}
	if restaurant.OwnerID != actor.UserID {
		return domainErrors.ErrForbidden
	}
	return nil
}
