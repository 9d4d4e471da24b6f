package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/restoflow/restoflow/internal/domain/model"
	"github.com/restoflow/restoflow/internal/server/http/dto"
	"github.com/restoflow/restoflow/internal/usecase"
)

// RestaurantHandler serves restaurant discovery and owner-side settings.
type RestaurantHandler struct {
	facade RestaurantFacade
}

// NewRestaurantHandler constructs RestaurantHandler.
func NewRestaurantHandler(facade RestaurantFacade) *RestaurantHandler {
	return &RestaurantHandler{facade: facade}
}

// List handles GET /api/restaurants.
func (h *RestaurantHandler) List(c *gin.Context) {
	restaurants, err := h.facade.Restaurants(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.RestaurantResponse, 0, len(restaurants))
	for i := range restaurants {
		response = append(response, h.toRestaurantResponse(&restaurants[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/restaurants/:id.
func (h *RestaurantHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	restaurant, err := h.facade.Restaurant(c.Request.Context(), id)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, h.toRestaurantResponse(restaurant))
}

// Menu handles GET /api/restaurants/:id/menu.
func (h *RestaurantHandler) Menu(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	dishes, err := h.facade.RestaurantMenu(c.Request.Context(), id)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	response := make([]dto.DishResponse, 0, len(dishes))
	for _, d := range dishes {
		response = append(response, dto.DishResponse{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Price:       d.Price,
			Available:   d.Available,
		})
	}
	c.JSON(http.StatusOK, response)
}

// UpdateSchedule handles PUT /api/restaurants/:id/schedule.
func (h *RestaurantHandler) UpdateSchedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	actor, _ := CurrentActor(c)
	if err := h.facade.UpdateSchedule(c.Request.Context(), id, req.Schedule, actor); err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.Status(http.StatusOK)
}

// SetClosure handles POST /api/restaurants/:id/closure.
func (h *RestaurantHandler) SetClosure(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ClosureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	actor, _ := CurrentActor(c)
	if err := h.facade.SetExceptionalClosure(c.Request.Context(), id, req.Closed, actor); err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.Status(http.StatusOK)
}

// SetDishAvailability handles PATCH /api/restaurants/:id/dishes/:dishID.
func (h *RestaurantHandler) SetDishAvailability(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	dishID, ok := pathID(c, "dishID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.DishAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	actor, _ := CurrentActor(c)
	if err := h.facade.SetDishAvailability(c.Request.Context(), id, dishID, req.Available, actor); err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.Status(http.StatusOK)
}

func (h *RestaurantHandler) toRestaurantResponse(r *model.Restaurant) dto.RestaurantResponse {
	availability := h.facade.RestaurantAvailability(r)
	return toRestaurantResponse(r, availability)
}

func toRestaurantResponse(r *model.Restaurant, availability usecase.Availability) dto.RestaurantResponse {
	resp := dto.RestaurantResponse{
		ID:       r.ID,
		Name:     r.Name,
		Address:  r.Address,
		Phone:    r.Phone,
		IsOpen:   availability.IsOpen,
		ClosesAt: availability.ClosesAt,
	}
	if next := availability.NextOpening; next != nil {
		resp.NextOpening = &dto.NextOpeningResponse{
			Day:        strings.ToLower(next.Day.String()),
			Start:      next.Start,
			At:         next.At,
			IsToday:    next.IsToday,
			IsTomorrow: next.IsTomorrow,
		}
	}
	return resp
}
