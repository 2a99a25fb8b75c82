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
	"github.com/sirupsen/logrus"

	"github.com/skyvoyage/flight-booking-backend/internal/cache"
	"github.com/skyvoyage/flight-booking-backend/internal/config"
	"github.com/skyvoyage/flight-booking-backend/internal/database"
	"github.com/skyvoyage/flight-booking-backend/internal/events"
	"github.com/skyvoyage/flight-booking-backend/internal/handlers"
	"github.com/skyvoyage/flight-booking-backend/internal/i18n"
	"github.com/skyvoyage/flight-booking-backend/internal/middleware"
	"github.com/skyvoyage/flight-booking-backend/internal/services"
	"github.com/skyvoyage/flight-booking-backend/pkg/jwt"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting SkyVoyage Flight Booking Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	flightCache := cache.NewFlightCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.SearchTTL)
	defer flightCache.Close()
	if err := flightCache.Ping(context.Background()); err != nil {
		logger.WithError(err).Warn("Redis unavailable, flight search cache disabled")
		flightCache = nil
	}

	producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.BookingTopic, logger)
	defer producer.Close()

	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	catalog := i18n.NewCatalog()

	bookingRepo := database.NewBookingRepository(db.DB)
	flightRepo := database.NewFlightRepository(db.DB)
	passengerRepo := database.NewPassengerRepository(db.DB)
	ticketRepo := database.NewTicketRepository(db.DB)
	refundRepo := database.NewRefundRepository(db.DB)
	userRepo := database.NewUserRepository(db.DB)

	var searchCache services.SearchCache
	if flightCache != nil {
		searchCache = flightCache
	}

	purchaseService := services.NewPurchaseService(bookingRepo, producer, cfg.Booking.HoldDuration, logger)
	flightService := services.NewFlightService(flightRepo, searchCache, logger)
	ticketService := services.NewTicketService(ticketRepo, bookingRepo, logger)
	refundService := services.NewRefundService(refundRepo, producer, logger)
	authService := services.NewAuthService(userRepo, jwtService, cfg.Security.BcryptCost, logger)

	expirationService := services.NewBookingExpirationService(
		bookingRepo,
		producer,
		cfg.Booking.HoldDuration,
		cfg.Booking.SweepInterval,
		cfg.Booking.SweepBatch,
		logger,
	)
	expirationService.Start()

	purchaseHandler := handlers.NewPurchaseHandler(purchaseService, catalog, logger)
	flightHandler := handlers.NewFlightHandler(flightService, catalog, logger)
	ticketHandler := handlers.NewTicketHandler(ticketService, catalog, logger)
	refundHandler := handlers.NewRefundHandler(refundService, catalog, logger)
	authHandler := handlers.NewAuthHandler(authService, catalog, logger)
	passengerHandler := handlers.NewPassengerHandler(passengerRepo, catalog, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": version})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.GET("/me", middleware.AuthMiddleware(jwtService), authHandler.Me)
		}

		flights := v1.Group("/flights")
		{
			flights.GET("", flightHandler.SearchFlights)
			flights.GET("/:id", flightHandler.GetFlight)
			flights.GET("/:id/seats", flightHandler.GetAvailableSeats)
		}

		bookings := v1.Group("/bookings", middleware.AuthMiddleware(jwtService))
		{
			bookings.POST("/reserve", purchaseHandler.ReserveFlight)
			bookings.GET("", purchaseHandler.GetUserBookings)
			bookings.GET("/:id", purchaseHandler.GetBookingDetails)
			bookings.POST("/:id/passengers", purchaseHandler.AddPassengers)
			bookings.GET("/:id/passengers", purchaseHandler.GetBookingPassengers)
			bookings.POST("/:id/seats", purchaseHandler.AssignSeats)
			bookings.POST("/:id/confirm", purchaseHandler.ConfirmBooking)
			bookings.POST("/:id/payment", purchaseHandler.MakePayment)
			bookings.GET("/:id/tickets", ticketHandler.GetBookingTickets)
		}

		passengers := v1.Group("/passengers", middleware.AuthMiddleware(jwtService))
		{
			passengers.POST("", passengerHandler.CreatePassenger)
			passengers.GET("/:id", passengerHandler.GetPassenger)
			passengers.PATCH("/:id", passengerHandler.UpdatePassenger)
		}

		tickets := v1.Group("/tickets", middleware.AuthMiddleware(jwtService))
		{
			tickets.GET("/:id", ticketHandler.GetTicket)
			tickets.GET("/:id/refund", refundHandler.GetTicketRefund)
		}

		refunds := v1.Group("/refunds", middleware.AuthMiddleware(jwtService))
		{
			refunds.POST("", refundHandler.CreateRefund)
			refunds.GET("", refundHandler.ListRefunds)
			refunds.GET("/:id", refundHandler.GetRefund)
			refunds.PATCH("/:id", refundHandler.UpdateRefund)
			refunds.DELETE("/:id", refundHandler.DeleteRefund)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	expirationService.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.WithFields(logrus.Fields{
			"status":   c.Writer.Status(),
			"method":   c.Request.Method,
			"path":     path,
			"ip":       c.ClientIP(),
			"latency":  time.Since(start).String(),
			"warnings": c.Errors.String(),
		}).Info("HTTP request")
	}
}
