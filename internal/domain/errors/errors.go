package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")

	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyTerminal   = errors.New("order already in terminal status")
	ErrConflictRetry     = errors.New("concurrent update, retry with fresh read")

	ErrInvalidDish      = errors.New("dish does not belong to restaurant")
	ErrDishUnavailable  = errors.New("dish unavailable")
	ErrRestaurantClosed = errors.New("restaurant closed")
	ErrNoOpeningFound   = errors.New("no opening found within a week")

	ErrEmptyOrder     = errors.New("order has no items")
	ErrInvalidRequest = errors.New("invalid request")
)
