package routes

import (
	"net/http"
	"time"

	"spedocity/handlers"
	"spedocity/middleware"
	"spedocity/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the phone-OTP auth endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/send-otp", hb.SendOTPHandler)
		api.POST("/verify-otp", hb.VerifyOTPHandler)
		api.POST("/resend-otp", hb.ResendOTPHandler)

		// Protected routes (require authentication)
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("/logout", hb.LogoutHandler)
	}
}

// RegisterBookingRoutes sets up the booking wizard session endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		bookingGroup.GET("/services", hb.GetAvailableServices)
		bookingGroup.POST("/fare-quote", hb.QuoteFare)
		bookingGroup.POST("/session", hb.InitiateSession)
		bookingGroup.GET("/session/:sessionID", hb.GetSession)
		bookingGroup.POST("/session/:sessionID/step", hb.CompleteStep)
		bookingGroup.POST("/session/:sessionID/back", hb.StepBack)
		bookingGroup.DELETE("/session/:sessionID", hb.CancelSession)
	}
}

// RegisterOrderRoutes registers the order endpoints.
func RegisterOrderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/orders")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("", hb.ListOrders)
		api.GET("/:orderID", hb.GetOrder)
		api.PATCH("/:orderID/status", hb.UpdateOrderStatus)
		api.POST("/:orderID/cancel", hb.CancelOrder)
	}
}

// RegisterWalletRoutes registers the wallet endpoints.
func RegisterWalletRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/wallet")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("", hb.GetWallet)
		api.POST("/topup", hb.TopUpWallet)
		api.GET("/transactions", hb.ListWalletTransactions)
	}
}

// RegisterNotificationRoutes registers the notification feed endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("", hb.ListNotifications)
		api.PATCH("/:notificationID/read", hb.MarkNotificationRead)
	}
}

// RegisterProfileRoutes registers the user profile endpoints.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/me", hb.GetProfileHandler)
		api.PUT("/me", hb.UpdateProfileHandler)
	}
}

// RegisterStorageRoutes registers the item photo upload endpoints.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/storage")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("/upload/:bucket", hb.UploadItemPhotoHandler)
		api.DELETE("/file", hb.DeleteItemPhotoHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterOrderRoutes(r, hb)
	RegisterWalletRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
}
