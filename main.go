package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"

	"glowbook/config"
	"glowbook/cron"
	"glowbook/database"
	bookingRepoPkg "glowbook/database/repository/booking"
	customerRepoPkg "glowbook/database/repository/customer"
	serviceRepoPkg "glowbook/database/repository/service"
	staffRepoPkg "glowbook/database/repository/staff"
	vendorRepoPkg "glowbook/database/repository/vendor"
	"glowbook/handlers"
	"glowbook/middleware"
	"glowbook/routes"
	"glowbook/services/booking"
	"glowbook/services/notification"
	"glowbook/services/payment"
	"glowbook/services/tasks"
	"glowbook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	staffRepo := staffRepoPkg.NewMongoStaffRepo()
	vendorRepo := vendorRepoPkg.NewMongoVendorRepo()
	customerRepo := customerRepoPkg.NewMongoCustomerRepo()

	// services.
	dispatcher := tasks.NewAsynqDispatcher()
	defer dispatcher.Close()

	bookingService := &booking.DefaultBookingService{
		ServiceRepo: serviceRepo,
		VendorRepo:  vendorRepo,
		StaffRepo:   staffRepo,
		BookingRepo: bookingRepo,
		Dispatch:    dispatcher,
		Settings: booking.Settings{
			CancellationWindow: time.Duration(config.AppConfig.CancellationWindowHours) * time.Hour,
			SlotInterval:       time.Duration(config.AppConfig.SlotIntervalMinutes) * time.Minute,
			PastGrace:          time.Duration(config.AppConfig.BookingPastGraceMinutes) * time.Minute,
			ReminderLead:       time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute,
		},
	}

	notificationService, err := notification.NewDefaultNotificationService(customerRepo, vendorRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}
	refundHandler := payment.NewStripeRefundHandler(logger)

	// The background worker processes the best-effort side effects.
	cron.InitBookingWorker(notificationService, refundHandler, bookingRepo)

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	routes.RegisterRoutes(router, bookingHandler)

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
