package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/restoflow/restoflow/internal/domain/errors"
	"github.com/restoflow/restoflow/internal/domain/model"
	"github.com/restoflow/restoflow/internal/server/http/middleware"
)

// CurrentActor extracts the authenticated actor from context. The second
// return is false for anonymous requests.
func CurrentActor(c *gin.Context) (model.Actor, bool) {
	val, ok := c.Get(middleware.ActorContextKey)
	if !ok {
		return model.Actor{}, false
	}
	actor, ok := val.(model.Actor)
	return actor, ok
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// statusFromError maps the domain error taxonomy onto HTTP status codes.
// Conflicts (state raced or already settled) are 409, business rule rejections
// on a well-formed request are 422, malformed input is 400.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrAlreadyExists),
		errors.Is(err, domainErrors.ErrInvalidTransition),
		errors.Is(err, domainErrors.ErrAlreadyTerminal),
		errors.Is(err, domainErrors.ErrConflictRetry):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrInvalidDish),
		errors.Is(err, domainErrors.ErrDishUnavailable),
		errors.Is(err, domainErrors.ErrRestaurantClosed),
		errors.Is(err, domainErrors.ErrNoOpeningFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrEmptyOrder),
		errors.Is(err, domainErrors.ErrInvalidRequest),
		errors.Is(err, domainErrors.ErrInvalidCredentials):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
