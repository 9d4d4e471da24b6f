package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/restoflow/restoflow/internal/notify"
	"github.com/restoflow/restoflow/internal/server/http/handlers"
	"github.com/restoflow/restoflow/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketplaceFacade, hub *notify.Hub, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	restaurantHandler := handlers.NewRestaurantHandler(facade)
	trackingHandler := handlers.NewTrackingHandler(facade)
	wsHandler := handlers.NewWSHandler(facade, hub)

	api := engine.Group("/api")

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.GET("/orders", orderHandler.List)

	restaurants := api.Group("/restaurants")
	restaurants.GET("", restaurantHandler.List)
	restaurants.GET("/:id", restaurantHandler.Get)
	restaurants.GET("/:id/menu", restaurantHandler.Menu)

	restaurantsAuth := restaurants.Group("")
	restaurantsAuth.Use(middleware.AuthRequired(facade))
	restaurantsAuth.GET("/:id/orders", orderHandler.RestaurantOrders)
	restaurantsAuth.PUT("/:id/schedule", restaurantHandler.UpdateSchedule)
	restaurantsAuth.POST("/:id/closure", restaurantHandler.SetClosure)
	restaurantsAuth.PATCH("/:id/dishes/:dishID", restaurantHandler.SetDishAvailability)

	orders := api.Group("/orders")
	orders.POST("", middleware.AuthOptional(facade), orderHandler.Create)

	ordersAuth := orders.Group("")
	ordersAuth.Use(middleware.AuthRequired(facade))
	ordersAuth.POST("/:id/status", orderHandler.UpdateStatus)
	ordersAuth.POST("/:id/cancel", orderHandler.Cancel)

	api.GET("/track/:token", trackingHandler.Track)

	ws := engine.Group("/ws")
	ws.Use(middleware.AuthRequired(facade))
	ws.GET("/restaurants/:id", wsHandler.SubscribeRestaurant)
	ws.GET("/user", wsHandler.SubscribeUser)

	return engine
}
