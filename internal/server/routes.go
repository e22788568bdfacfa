package server

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

func (s *Server) RegisterRoutes(logger *slog.Logger) http.Handler {
	e := echo.New()
	e.Use(middleware.RequestID())
	e.Use(NewEchoLogger(logger))
	e.Use(middleware.Recover())
	e.Use(otelecho.Middleware("reign-api", otelecho.WithSkipper(skipper)))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.GET("/api", s.HelloWorldHandler)

	e.GET("/api/health", s.healthHandler)

	e.GET("/api/websocket", s.websocketHandler)

	var authGroup = e.Group("/api/v1/auth")
	authGroup.POST("/register", s.RegisterUser)
	authGroup.POST("/sign-in", s.SignIn)
	authGroup.POST("/refresh", s.RefreshSession)
	authGroup.POST("/sign-out", s.SignOut)

	var modelGroup = e.Group("/api/v1/models")
	modelGroup.GET("", s.ListModels)
	modelGroup.GET("/:slug", s.GetModelProfile)
	modelGroup.POST("", s.CreateModel, s.AuthMiddleware, s.AdminMiddleware)
	modelGroup.PUT("/:id", s.UpdateModel, s.AuthMiddleware, s.AdminMiddleware)
	modelGroup.DELETE("/:id", s.DeleteModel, s.AuthMiddleware, s.AdminMiddleware)
	modelGroup.POST("/:id/sync-instagram", s.SyncModelInstagram, s.AuthMiddleware, s.AdminMiddleware)

	var assetGroup = e.Group("/api/v1/assets")
	assetGroup.GET("", s.ListModelAssets)
	assetGroup.GET("/landing-cover", s.LandingPageCover)
	assetGroup.POST("", s.CreateAsset, s.AuthMiddleware, s.AdminMiddleware)
	assetGroup.PUT("/:id", s.UpdateAsset, s.AuthMiddleware, s.AdminMiddleware)
	assetGroup.PATCH("/:id/status", s.UpdateAssetStatus, s.AuthMiddleware, s.AdminMiddleware)
	assetGroup.PATCH("/:id/order", s.UpdateAssetOrder, s.AuthMiddleware, s.AdminMiddleware)
	assetGroup.PATCH("/order", s.BulkUpdateAssetOrders, s.AuthMiddleware, s.AdminMiddleware)
	assetGroup.DELETE("/:id", s.DeleteAsset, s.AuthMiddleware, s.AdminMiddleware)

	var bookingGroup = e.Group("/api/v1/bookings")
	bookingGroup.POST("", s.CreateBooking)
	bookingGroup.GET("", s.ListBookings, s.AuthMiddleware, s.AdminMiddleware)
	bookingGroup.PUT("/:id", s.UpdateBooking, s.AuthMiddleware, s.AdminMiddleware)
	bookingGroup.PATCH("/:id/status", s.UpdateBookingStatus, s.AuthMiddleware, s.AdminMiddleware)
	bookingGroup.DELETE("/:id", s.DeleteBooking, s.AuthMiddleware, s.AdminMiddleware)

	return e
}
