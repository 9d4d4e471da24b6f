package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/restoflow/restoflow/internal/domain/model"
	"github.com/restoflow/restoflow/internal/server/http/dto"
	"github.com/restoflow/restoflow/internal/usecase"
)

// OrderHandler manages order lifecycle endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders. Guests may order without a token; an
// authenticated customer's orders are linked to their account.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	lines := make([]usecase.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, usecase.OrderLine{DishID: item.DishID, Quantity: item.Quantity})
	}

	createReq := usecase.CreateOrderRequest{
		RestaurantID: req.RestaurantID,
		Lines:        lines,
		Note:         req.Note,
		Phone:        req.Phone,
		Email:        req.Email,
		PaymentMode:  model.PaymentMode(req.PaymentMode),
		Fulfillment:  model.FulfillmentMode(req.Fulfillment),
		Address:      req.Address,
	}
	if actor, ok := CurrentActor(c); ok {
		userID := actor.UserID
		createReq.UserID = &userID
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), createReq)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order, true))
}

// List handles GET /api/user/orders.
func (h *OrderHandler) List(c *gin.Context) {
	actor, _ := CurrentActor(c)
	orders, err := h.facade.UserOrders(c.Request.Context(), actor.UserID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o, true))
	}
	c.JSON(http.StatusOK, response)
}

// UpdateStatus handles POST /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	actor, _ := CurrentActor(c)
	order, err := h.facade.TransitionOrder(c.Request.Context(), id, model.OrderStatus(req.Status), actor)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order, false))
}

// Cancel handles POST /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	actor, _ := CurrentActor(c)
	order, err := h.facade.CancelOrder(c.Request.Context(), id, actor)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order, false))
}

// RestaurantOrders handles GET /api/restaurants/:id/orders.
func (h *OrderHandler) RestaurantOrders(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	actor, _ := CurrentActor(c)
	orders, err := h.facade.RestaurantOrders(c.Request.Context(), id, actor)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o, false))
	}
	c.JSON(http.StatusOK, response)
}

// toOrderResponse converts the domain order. The tracking token is only
// exposed to the order's owner, never on staff views.
func toOrderResponse(order model.Order, withToken bool) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, dto.OrderItemResponse{
			DishID:    it.DishID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		})
	}

	resp := dto.OrderResponse{
		ID:            order.ID,
		Number:        order.Number,
		RestaurantID:  order.RestaurantID,
		Status:        string(order.Status),
		PaymentMode:   string(order.PaymentMode),
		PaymentStatus: string(order.PaymentStatus),
		Fulfillment:   string(order.Fulfillment),
		Address:       order.Address,
		Note:          order.Note,
		Total:         order.Total,
		Items:         items,
		CreatedAt:     order.CreatedAt,
		ConfirmedAt:   order.ConfirmedAt,
		PreparingAt:   order.PreparingAt,
		ReadyAt:       order.ReadyAt,
		CompletedAt:   order.CompletedAt,
		CancelledAt:   order.CancelledAt,
	}
	if withToken {
		resp.TrackingToken = order.TrackingToken
	}
	return resp
}
