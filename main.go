package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spedocity/config"
	"spedocity/cron"
	"spedocity/database"
	notificationRepoPkg "spedocity/database/repository/notification"
	orderRepoPkg "spedocity/database/repository/order"
	userRepoPkg "spedocity/database/repository/user"
	walletRepoPkg "spedocity/database/repository/wallet"
	"spedocity/handlers"
	"spedocity/middleware"
	"spedocity/routes"
	"spedocity/services/booking"
	"spedocity/services/notification"
	"spedocity/services/order"
	"spedocity/services/storage"
	"spedocity/services/tasks"
	"spedocity/services/user"
	"spedocity/services/wallet"
	"spedocity/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	storageService, err := storage.NewStorageService(config.AppConfig.CloudinaryURL)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	orderRepo := orderRepoPkg.NewMongoOrderRepo()
	walletRepo := walletRepoPkg.NewMongoWalletRepo()
	notifRepo := notificationRepoPkg.NewMongoNotificationRepo()

	// services.
	walletService := &wallet.DefaultWalletService{
		Repo: walletRepo,
	}

	notificationService := &notification.DefaultNotificationService{
		Repo: notifRepo,
	}

	reminderScheduler := tasks.NewAsynqReminderScheduler()
	defer reminderScheduler.Close()

	orderService := &order.DefaultOrderService{
		Repo:      orderRepo,
		Wallet:    walletService,
		Notify:    notificationService,
		Reminders: reminderScheduler,
	}

	bookingService := &booking.DefaultBookingSessionService{
		Store:      booking.NewRedisSessionStore(utils.GetSessionCacheClient()),
		Refs:       booking.NewReferenceGenerator(),
		Orders:     orderService,
		SessionTTL: time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute,
	}

	userService := &user.DefaultUserService{
		Repo:     userRepo,
		OTP:      user.NewRedisOTPStore(),
		Tokens:   user.NewRedisTokenCache(),
		OTPTTL:   time.Duration(config.AppConfig.OTPTTLMinutes) * time.Minute,
		Cooldown: time.Duration(config.AppConfig.OTPResendCooldown) * time.Second,
		TokenTTL: 30 * 24 * time.Hour,
	}

	// handlers.
	authHandler := handlers.NewAuthHandler(userService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	orderHandler := handlers.NewOrderHandler(orderService)
	walletHandler := handlers.NewWalletHandler(walletService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	profileHandler := handlers.NewProfileHandler(userService)
	storageHandler := handlers.NewStorageHandler(storageService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		// Auth endpoints.
		SendOTPHandler:   authHandler.SendOTPHandler,
		VerifyOTPHandler: authHandler.VerifyOTPHandler,
		ResendOTPHandler: authHandler.ResendOTPHandler,
		LogoutHandler:    authHandler.LogoutHandler,

		// Booking session endpoints.
		InitiateSession:      bookingHandler.InitiateSession,
		GetSession:           bookingHandler.GetSession,
		CompleteStep:         bookingHandler.CompleteStep,
		StepBack:             bookingHandler.StepBack,
		CancelSession:        bookingHandler.CancelSession,
		GetAvailableServices: bookingHandler.GetAvailableServices,
		QuoteFare:            bookingHandler.QuoteFare,

		// Order endpoints.
		ListOrders:        orderHandler.ListOrders,
		GetOrder:          orderHandler.GetOrder,
		UpdateOrderStatus: orderHandler.UpdateOrderStatus,
		CancelOrder:       orderHandler.CancelOrder,

		// Wallet endpoints.
		GetWallet:              walletHandler.GetWallet,
		TopUpWallet:            walletHandler.TopUpWallet,
		ListWalletTransactions: walletHandler.ListWalletTransactions,

		// Notification endpoints.
		ListNotifications:    notificationHandler.ListNotifications,
		MarkNotificationRead: notificationHandler.MarkNotificationRead,

		// Profile endpoints.
		GetProfileHandler:    profileHandler.GetProfileHandler,
		UpdateProfileHandler: profileHandler.UpdateProfileHandler,

		// Storage endpoints.
		UploadItemPhotoHandler: storageHandler.UploadItemPhotoHandler,
		DeleteItemPhotoHandler: storageHandler.DeleteItemPhotoHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder worker and health monitor.
	cron.InitReminderWorker(notificationService)
	utils.StartHealthMonitor([]*redis.Client{
		utils.GetSessionCacheClient(),
		utils.GetAuthCacheClient(),
		utils.GetOTPCacheClient(),
	}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
