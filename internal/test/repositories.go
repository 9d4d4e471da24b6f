package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/restoflow/restoflow/internal/domain/errors"
	"github.com/restoflow/restoflow/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// RestaurantRepositoryStub allows tests to customize restaurant data.
type RestaurantRepositoryStub struct {
	GetByIDFn             func(context.Context, int64) (*model.Restaurant, error)
	ListFn                func(context.Context) ([]model.Restaurant, error)
	UpdateScheduleFn      func(context.Context, int64, model.WeeklySchedule) error
	SetClosureFn          func(context.Context, int64, bool) error
	ListDishesFn          func(context.Context, int64) ([]model.Dish, error)
	DishesByIDsFn         func(context.Context, int64, []int64) ([]model.Dish, error)
	SetDishAvailabilityFn func(context.Context, int64, int64, bool) error

	Restaurants []model.Restaurant
	Dishes      []model.Dish

	ScheduleUpdates []model.WeeklySchedule
	ClosureUpdates  []bool
}

// GetByID returns the matching restaurant from the configured slice.
func (s *RestaurantRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for i := range s.Restaurants {
		if s.Restaurants[i].ID == id {
			r := s.Restaurants[i]
			return &r, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns configured restaurants.
func (s *RestaurantRepositoryStub) List(ctx context.Context) ([]model.Restaurant, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Restaurants, nil
}

// UpdateSchedule records the new schedule.
func (s *RestaurantRepositoryStub) UpdateSchedule(ctx context.Context, id int64, ws model.WeeklySchedule) error {
	if s.UpdateScheduleFn != nil {
		return s.UpdateScheduleFn(ctx, id, ws)
	}
	s.ScheduleUpdates = append(s.ScheduleUpdates, ws)
	return nil
}

// SetExceptionalClosure records the flag change.
func (s *RestaurantRepositoryStub) SetExceptionalClosure(ctx context.Context, id int64, closed bool) error {
	if s.SetClosureFn != nil {
		return s.SetClosureFn(ctx, id, closed)
	}
	s.ClosureUpdates = append(s.ClosureUpdates, closed)
	return nil
}

// ListDishes returns configured dishes of the restaurant.
func (s *RestaurantRepositoryStub) ListDishes(ctx context.Context, restaurantID int64) ([]model.Dish, error) {
	if s.ListDishesFn != nil {
		return s.ListDishesFn(ctx, restaurantID)
	}
	dishes := make([]model.Dish, 0)
	for _, d := range s.Dishes {
		if d.RestaurantID == restaurantID {
			dishes = append(dishes, d)
		}
	}
	return dishes, nil
}

// DishesByIDs returns the configured dishes matching the requested IDs.
func (s *RestaurantRepositoryStub) DishesByIDs(ctx context.Context, restaurantID int64, ids []int64) ([]model.Dish, error) {
	if s.DishesByIDsFn != nil {
		return s.DishesByIDsFn(ctx, restaurantID, ids)
	}
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	dishes := make([]model.Dish, 0, len(ids))
	for _, d := range s.Dishes {
		if d.RestaurantID == restaurantID && wanted[d.ID] {
			dishes = append(dishes, d)
		}
	}
	return dishes, nil
}

// SetDishAvailability records the flag change on the stored dish.
func (s *RestaurantRepositoryStub) SetDishAvailability(ctx context.Context, restaurantID, dishID int64, available bool) error {
	if s.SetDishAvailabilityFn != nil {
		return s.SetDishAvailabilityFn(ctx, restaurantID, dishID, available)
	}
	for i := range s.Dishes {
		if s.Dishes[i].RestaurantID == restaurantID && s.Dishes[i].ID == dishID {
			s.Dishes[i].Available = available
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// StatusUpdateCall records an UpdateStatus invocation.
type StatusUpdateCall struct {
	OrderID int64
	From    model.OrderStatus
	To      model.OrderStatus
	At      time.Time
}

// OrderRepositoryStub allows tests to customize order behaviour.
type OrderRepositoryStub struct {
	CreateFn             func(context.Context, *model.Order) error
	GetByIDFn            func(context.Context, int64) (*model.Order, error)
	GetByTrackingTokenFn func(context.Context, string) (*model.Order, error)
	ListByUserFn         func(context.Context, int64) ([]model.Order, error)
	ListByRestaurantFn   func(context.Context, int64) ([]model.Order, error)
	UpdateStatusFn       func(context.Context, int64, model.OrderStatus, model.OrderStatus, time.Time) error

	Created     []*model.Order
	Orders      []model.Order
	UpdateCalls []StatusUpdateCall
	Next        int64
}

// Create tracks invocations and assigns sequential identifiers.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.Next++
	order.ID = s.Next
	s.Created = append(s.Created, order)
	return nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByTrackingToken returns matched order from configured slice.
func (s *OrderRepositoryStub) GetByTrackingToken(ctx context.Context, token string) (*model.Order, error) {
	if s.GetByTrackingTokenFn != nil {
		return s.GetByTrackingTokenFn(ctx, token)
	}
	for _, o := range s.Orders {
		if o.TrackingToken == token {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns orders from configured slice.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return s.Orders, nil
}

// ListByRestaurant returns orders from configured slice.
func (s *OrderRepositoryStub) ListByRestaurant(ctx context.Context, restaurantID int64) ([]model.Order, error) {
	if s.ListByRestaurantFn != nil {
		return s.ListByRestaurantFn(ctx, restaurantID)
	}
	return s.Orders, nil
}

// UpdateStatus records conditional status updates.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, from, to model.OrderStatus, at time.Time) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, from, to, at)
	}
	s.UpdateCalls = append(s.UpdateCalls, StatusUpdateCall{OrderID: orderID, From: from, To: to, At: at})
	return nil
}

// PublishedEvent records one Publish invocation.
type PublishedEvent struct {
	Topic   string
	Payload any
}

// PublisherStub captures published notifications.
type PublisherStub struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// Publish records the event.
func (s *PublisherStub) Publish(topic string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, PublishedEvent{Topic: topic, Payload: payload})
}

// Published returns a snapshot of recorded events.
func (s *PublisherStub) Published() []PublishedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PublishedEvent, len(s.Events))
	copy(out, s.Events)
	return out
}
