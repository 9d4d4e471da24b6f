package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/restoflow/restoflow/internal/domain/errors"
	"github.com/restoflow/restoflow/internal/domain/model"
	"github.com/restoflow/restoflow/internal/domain/repository"
	"github.com/restoflow/restoflow/internal/notify"
	"github.com/restoflow/restoflow/internal/schedule"
)

// OrderLine is one requested dish with quantity. Prices always come from the
// stored dish, never from the client.
type OrderLine struct {
	DishID   int64
	Quantity int
}

// CreateOrderRequest carries everything needed to place an order. UserID is
// nil for guest checkout.
type CreateOrderRequest struct {
	RestaurantID int64
	UserID       *int64
	Lines        []OrderLine
	Note         string
	Phone        string
	Email        string
	PaymentMode  model.PaymentMode
	Fulfillment  model.FulfillmentMode
	Address      string
}

// OrderUseCase owns the order lifecycle: creation with availability and
// open-hours checks, status transitions with actor authorization, and the
// notification side effects of both.
type OrderUseCase struct {
	orders      repository.OrderRepository
	restaurants repository.RestaurantRepository
	publisher   notify.Publisher
	now         func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, restaurants repository.RestaurantRepository, publisher notify.Publisher) *OrderUseCase {
	return &OrderUseCase{
		orders:      orders,
		restaurants: restaurants,
		publisher:   publisher,
		now:         time.Now,
	}
}

// Create validates and persists a new order in pending status.
//
// A restaurant with a configured schedule that is currently closed rejects the
// order with ErrRestaurantClosed; the check is enforced here, server-side, so
// every call site shares one policy. Dish validation is all-or-nothing: any
// foreign or unavailable dish aborts the whole creation.
func (u *OrderUseCase) Create(ctx context.Context, req CreateOrderRequest) (*model.Order, error) {
	if len(req.Lines) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}
	if strings.TrimSpace(req.Phone) == "" {
		return nil, domainErrors.ErrInvalidRequest
	}

	if req.PaymentMode == "" {
		req.PaymentMode = model.PaymentModeOnSite
	}
	if req.PaymentMode != model.PaymentModeOnSite && req.PaymentMode != model.PaymentModeOnline {
		return nil, domainErrors.ErrInvalidRequest
	}
	if req.Fulfillment == "" {
		req.Fulfillment = model.FulfillmentPickup
	}
	switch req.Fulfillment {
	case model.FulfillmentPickup:
	case model.FulfillmentDelivery:
		if strings.TrimSpace(req.Address) == "" {
			return nil, domainErrors.ErrInvalidRequest
		}
	default:
		return nil, domainErrors.ErrInvalidRequest
	}
	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			return nil, domainErrors.ErrInvalidRequest
		}
	}

	restaurant, err := u.restaurants.GetByID(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !restaurant.Active {
		return nil, domainErrors.ErrNotFound
	}

	now := u.now()
	if restaurant.Schedule != nil && !schedule.IsOpen(*restaurant.Schedule, restaurant.ExceptionalClosure, now) {
		return nil, domainErrors.ErrRestaurantClosed
	}

	ids := make([]int64, 0, len(req.Lines))
	for _, line := range req.Lines {
		ids = append(ids, line.DishID)
	}
	dishes, err := u.restaurants.DishesByIDs(ctx, req.RestaurantID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]model.Dish, len(dishes))
	for _, d := range dishes {
		byID[d.ID] = d
	}

	items := make([]model.OrderItem, 0, len(req.Lines))
	total := decimal.Zero
	for _, line := range req.Lines {
		dish, ok := byID[line.DishID]
		if !ok {
			return nil, domainErrors.ErrInvalidDish
		}
		if !dish.Available {
			return nil, domainErrors.ErrDishUnavailable
		}
		subtotal := dish.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, model.OrderItem{
			DishID:    dish.ID,
			Name:      dish.Name,
			UnitPrice: dish.Price,
			Quantity:  line.Quantity,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}

	order := &model.Order{
		Number:        generateOrderNumber(now),
		TrackingToken: uuid.NewString(),
		RestaurantID:  req.RestaurantID,
		UserID:        req.UserID,
		Items:         items,
		Total:         total,
		Note:          req.Note,
		Phone:         strings.TrimSpace(req.Phone),
		Email:         strings.TrimSpace(req.Email),
		PaymentMode:   req.PaymentMode,
		PaymentStatus: model.PaymentStatusPending,
		Fulfillment:   req.Fulfillment,
		Address:       strings.TrimSpace(req.Address),
		Status:        model.OrderStatusPending,
		CreatedAt:     now,
	}

	if err := u.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	u.publisher.Publish(notify.RestaurantTopic(order.RestaurantID), notify.OrderEvent{
		Type:         notify.EventOrderCreated,
		OrderID:      order.ID,
		Number:       order.Number,
		RestaurantID: order.RestaurantID,
		Status:       string(order.Status),
		OccurredAt:   now,
	})

	return order, nil
}

// Transition moves the order to the target status on behalf of the actor.
//
// Customers may only cancel their own orders; restaurateurs operate only on
// orders of restaurants they own; admins are unrestricted. The storage write
// is conditional on the status the order was read at, so a concurrent update
// surfaces as ErrConflictRetry and the caller retries with a fresh read.
func (u *OrderUseCase) Transition(ctx context.Context, orderID int64, target model.OrderStatus, actor model.Actor) (*model.Order, error) {
	if !model.ValidStatus(target) {
		return nil, domainErrors.ErrInvalidTransition
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := u.authorizeTransition(ctx, order, target, actor); err != nil {
		return nil, err
	}

	if order.Status.IsTerminal() {
		return nil, domainErrors.ErrAlreadyTerminal
	}
	if target == model.OrderStatusDelivered || target == model.OrderStatusPickedUp {
		if target != order.Fulfillment.CompletionStatus() {
			return nil, domainErrors.ErrInvalidTransition
		}
	}
	if !model.CanTransition(order.Status, target) {
		return nil, domainErrors.ErrInvalidTransition
	}

	at := u.now()
	if err := u.orders.UpdateStatus(ctx, order.ID, order.Status, target, at); err != nil {
		return nil, err
	}

	order.Status = target
	order.StampTransition(target, at)

	event := notify.OrderEvent{
		Type:         notify.EventOrderStatusChanged,
		OrderID:      order.ID,
		Number:       order.Number,
		RestaurantID: order.RestaurantID,
		Status:       string(target),
		OccurredAt:   at,
	}
	u.publisher.Publish(notify.RestaurantTopic(order.RestaurantID), event)
	if order.UserID != nil {
		u.publisher.Publish(notify.UserTopic(*order.UserID), event)
	}

	return order, nil
}

// Cancel is sugar for transitioning to the cancelled status.
func (u *OrderUseCase) Cancel(ctx context.Context, orderID int64, actor model.Actor) (*model.Order, error) {
	return u.Transition(ctx, orderID, model.OrderStatusCancelled, actor)
}

// TrackByToken returns the order matching an opaque tracking token without
// authentication. Tokens are random UUIDs, so possession of one proves the
// holder received it at checkout.
func (u *OrderUseCase) TrackByToken(ctx context.Context, token string) (*model.Order, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domainErrors.ErrNotFound
	}
	return u.orders.GetByTrackingToken(ctx, token)
}

// ListByUser returns the actor's own orders, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// ListByRestaurant returns a restaurant's orders for its staff dashboard.
func (u *OrderUseCase) ListByRestaurant(ctx context.Context, restaurantID int64, actor model.Actor) ([]model.Order, error) {
	if err := u.authorizeRestaurant(ctx, restaurantID, actor); err != nil {
		return nil, err
	}
	return u.orders.ListByRestaurant(ctx, restaurantID)
}

func (u *OrderUseCase) authorizeTransition(ctx context.Context, order *model.Order, target model.OrderStatus, actor model.Actor) error {
	switch actor.Role {
	case model.RoleAdmin:
		return nil
	case model.RoleRestaurateur:
		return u.authorizeRestaurant(ctx, order.RestaurantID, actor)
	case model.RoleCustomer:
		if target != model.OrderStatusCancelled {
			return domainErrors.ErrForbidden
		}
		if order.UserID == nil || *order.UserID != actor.UserID {
			return domainErrors.ErrForbidden
		}
		return nil
	}
	return domainErrors.ErrForbidden
}

func (u *OrderUseCase) authorizeRestaurant(ctx context.Context, restaurantID int64, actor model.Actor) error {
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

// generateOrderNumber builds the customer-facing order number: date plus a
// short random suffix. Uniqueness is backed by the database constraint.
func generateOrderNumber(at time.Time) string {
	suffix := make([]byte, 3)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("CMD-%s-%s", at.Format("20060102"), strings.ToUpper(hex.EncodeToString(suffix)))
}
