package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/caffeinepub/food-order-delivery-platform/internal/server/http/handlers"
	"github.com/caffeinepub/food-order-delivery-platform/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, health handlers.HealthChecker, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	menuHandler := handlers.NewMenuHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	profileHandler := handlers.NewProfileHandler(facade)
	healthHandler := handlers.NewHealthHandler(health)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)
	api.GET("/menu", menuHandler.List)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/courier", authHandler.CourierLogin)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.POST("/orders", orderHandler.Place)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.GET("/customers/:principal/orders", orderHandler.CustomerOrders)
	authed.GET("/me/profile", profileHandler.Get)
	authed.PUT("/me/profile", profileHandler.Save)

	admin := authed.Group("/admin")
	admin.Use(middleware.RequireStaff())
	admin.GET("/menu", menuHandler.AdminList)
	admin.POST("/menu", menuHandler.Create)
	admin.PATCH("/menu/:id", menuHandler.Update)
	admin.POST("/menu/:id/toggle", menuHandler.Toggle)
	admin.DELETE("/menu/:id", menuHandler.Delete)
	admin.GET("/orders", orderHandler.All)
	admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	admin.POST("/orders/:id/cancel", orderHandler.Cancel)
	admin.DELETE("/orders/:id", orderHandler.Delete)

	return engine
}
