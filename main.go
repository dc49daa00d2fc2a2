// File: roomly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"roomly/config"
	"roomly/cron"
	"roomly/database"
	notificationRepoPkg "roomly/database/repository/notification"
	reservationRepoPkg "roomly/database/repository/reservation"
	resourceRepoPkg "roomly/database/repository/resource"
	userRepoPkg "roomly/database/repository/user"
	"roomly/handlers"
	"roomly/middleware"
	"roomly/routes"
	"roomly/services/assistant"
	"roomly/services/booking"
	"roomly/services/dialog"
	"roomly/services/nlu"
	"roomly/services/notification"
	"roomly/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	resourceRepo := resourceRepoPkg.NewMongoResourceRepo()
	reservationRepo := reservationRepoPkg.NewMongoReservationRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	for name, ensure := range map[string]func() error{
		"users":        userRepo.EnsureIndexes,
		"resources":    resourceRepo.EnsureIndexes,
		"reservations": reservationRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	// services.
	notificationService := notification.NewDefaultNotificationService(notificationRepo)
	cron.InitNotificationWorker(notificationService)

	poolTTL := time.Duration(config.AppConfig.MatchPoolTTLSec) * time.Second
	matcher := booking.NewDefaultMatcher(resourceRepo, reservationRepo).
		WithPoolCache(booking.NewRedisPoolCache(utils.GetCacheClient(), poolTTL))
	committer := booking.NewDefaultCommitter(matcher, reservationRepo, notificationService)

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMin) * time.Minute
	sessionStore := dialog.NewRedisSessionStore(utils.GetSessionCacheClient(), sessionTTL)

	var classifier nlu.Classifier = nlu.NewRuleClassifier()
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		gemini, err := nlu.NewGeminiClient(key)
		if err != nil {
			logger.Sugar().Warnf("main: gemini unavailable, staying on rule classifier: %v", err)
		} else {
			classifier = nlu.NewHybridClassifier(classifier, gemini, 0.6)
		}
	}

	assistantService := assistant.NewDefaultAssistantService(
		classifier,
		nlu.NewRuleExtractor(),
		nlu.NewTemporalParser(),
		dialog.NewTracker(),
		sessionStore,
		matcher,
		committer,
		reservationRepo,
		resourceRepo,
		notificationService,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		RegisterUserHandler:     handlers.RegisterUserHandler(userRepo),
		AuthenticateUserHandler: handlers.AuthenticateUserHandler(userRepo),

		ChatHandler: handlers.ChatHandler(assistantService),

		ListReservationsHandler:  handlers.ListReservationsHandler(reservationRepo),
		CancelReservationHandler: handlers.CancelReservationHandler(reservationRepo, notificationService),

		ListResourcesHandler: handlers.ListResourcesHandler(resourceRepo),

		ListNotificationsHandler: handlers.ListNotificationsHandler(notificationRepo),
		MarkNotificationHandler:  handlers.MarkNotificationHandler(notificationRepo),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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
