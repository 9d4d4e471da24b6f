package repository

import (
	"context"
	"time"

	"github.com/restoflow/restoflow/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
//
// UpdateStatus is a conditional write: it moves the order from the expected
// current status to the target status and stamps the matching timestamp in a
// single statement. When the row exists but its status no longer matches
// `from`, implementations return ErrConflictRetry so the caller can re-read
// and retry.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByTrackingToken(ctx context.Context, token string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, from, to model.OrderStatus, at time.Time) error
}
