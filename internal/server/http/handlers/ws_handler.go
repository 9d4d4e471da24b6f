package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/restoflow/restoflow/internal/notify"
)

// WSHandler upgrades connections to the notification hub.
type WSHandler struct {
	facade RestaurantFacade
	hub    *notify.Hub
}

// NewWSHandler constructs WSHandler.
func NewWSHandler(facade RestaurantFacade, hub *notify.Hub) *WSHandler {
	return &WSHandler{facade: facade, hub: hub}
}

// SubscribeRestaurant handles GET /ws/restaurants/:id. Only staff of the
// restaurant may listen on its topic.
func (h *WSHandler) SubscribeRestaurant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	actor, _ := CurrentActor(c)
	if err := h.facade.AuthorizeRestaurantAccess(c.Request.Context(), id, actor); err != nil {
		c.Status(statusFromError(err))
		return
	}

	if err := h.hub.Subscribe(c.Writer, c.Request, notify.RestaurantTopic(id)); err != nil {
		c.Status(http.StatusBadRequest)
	}
}

// SubscribeUser handles GET /ws/user. The actor subscribes to their own topic
// only, so the token fully determines the topic.
func (h *WSHandler) SubscribeUser(c *gin.Context) {
	actor, _ := CurrentActor(c)
	if err := h.hub.Subscribe(c.Writer, c.Request, notify.UserTopic(actor.UserID)); err != nil {
		c.Status(http.StatusBadRequest)
	}
}
