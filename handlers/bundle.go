package handlers

import (
	userRepoPkg "spedocity/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	// Auth endpoints
	SendOTPHandler   gin.HandlerFunc
	VerifyOTPHandler gin.HandlerFunc
	ResendOTPHandler gin.HandlerFunc
	LogoutHandler    gin.HandlerFunc

	// Booking session endpoints
	InitiateSession      gin.HandlerFunc
	GetSession           gin.HandlerFunc
	CompleteStep         gin.HandlerFunc
	StepBack             gin.HandlerFunc
	CancelSession        gin.HandlerFunc
	GetAvailableServices gin.HandlerFunc
	QuoteFare            gin.HandlerFunc

	// Order endpoints
	ListOrders        gin.HandlerFunc
	GetOrder          gin.HandlerFunc
	UpdateOrderStatus gin.HandlerFunc
	CancelOrder       gin.HandlerFunc

	// Wallet endpoints
	GetWallet              gin.HandlerFunc
	TopUpWallet            gin.HandlerFunc
	ListWalletTransactions gin.HandlerFunc

	// Notification endpoints
	ListNotifications    gin.HandlerFunc
	MarkNotificationRead gin.HandlerFunc

	// Profile endpoints
	GetProfileHandler    gin.HandlerFunc
	UpdateProfileHandler gin.HandlerFunc

	// Storage endpoints
	UploadItemPhotoHandler gin.HandlerFunc
	DeleteItemPhotoHandler gin.HandlerFunc
}
