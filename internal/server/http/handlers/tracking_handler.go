package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TrackingHandler serves unauthenticated order lookups by tracking token.
type TrackingHandler struct {
	facade OrderFacade
}

// NewTrackingHandler constructs TrackingHandler.
func NewTrackingHandler(facade OrderFacade) *TrackingHandler {
	return &TrackingHandler{facade: facade}
}

// Track handles GET /api/track/:token.
func (h *TrackingHandler) Track(c *gin.Context) {
	order, err := h.facade.TrackOrder(c.Request.Context(), c.Param("token"))
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order, false))
}
