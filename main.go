// File: teambond/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"teambond/config"
	"teambond/database"
	historyRepo "teambond/database/repository/history"
	rosterRepo "teambond/database/repository/roster"
	"teambond/handlers"
	"teambond/middleware"
	"teambond/routes"
	"teambond/services/intelligence"
	"teambond/services/location"
	"teambond/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitGeoCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	roster := rosterRepo.NewMongoRosterRepo()
	history := historyRepo.NewMongoHistoryRepo()

	// Provider registry: register every adapter with a configured key.
	registry := intelligence.NewRegistry(
		config.AppConfig.DefaultAIProvider,
		config.AppConfig.FallbackAIProvider,
	)
	if key := config.AppConfig.OpenAIAPIKey; key != "" {
		registry.Register(intelligence.NewOpenAIClient(key, ""))
	}
	if key := config.AppConfig.AnthropicAPIKey; key != "" {
		registry.Register(intelligence.NewAnthropicClient(key, ""))
	}
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		gemini, err := intelligence.NewGeminiClient(key, "")
		if err != nil {
			logger.Sugar().Warnf("main: failed to initialize Gemini client: %v", err)
		} else {
			registry.Register(gemini)
		}
	}

	// Location enrichment with Redis-cached Maps lookups.
	enricher := location.NewGoogleEnricher(
		config.AppConfig.GoogleMapsAPIKey,
		time.Duration(config.AppConfig.MapsTimeoutSeconds)*time.Second,
		utils.GetGeoCacheClient(),
		logger,
	)

	validator := &intelligence.ConstraintValidator{
		Enricher: enricher,
		Logger:   logger,
	}
	planService := &intelligence.DefaultPlanService{
		Registry:    registry,
		Roster:      roster,
		History:     history,
		Validator:   validator,
		Enricher:    enricher,
		Cache:       utils.GetCacheClient(),
		Temperature: config.AppConfig.AITemperature,
		MaxTokens:   config.AppConfig.AIMaxTokens,
		Timeout:     time.Duration(config.AppConfig.AITimeoutSeconds) * time.Second,
		Logger:      logger,
	}

	planHandler := handlers.NewPlanHandler(planService)
	rosterHandler := handlers.NewRosterHandler(roster)
	historyHandler := handlers.NewHistoryHandler(history)
	aiOpsHandler := handlers.NewAIOpsHandler(registry)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		GeneratePlans: planHandler.GeneratePlansHandler,

		CreateMember: rosterHandler.CreateMemberHandler,
		ListMembers:  rosterHandler.ListMembersHandler,
		GetMember:    rosterHandler.GetMemberHandler,
		UpdateMember: rosterHandler.UpdateMemberHandler,
		DeleteMember: rosterHandler.DeleteMemberHandler,

		SaveEvent:   historyHandler.SaveEventHandler,
		ListEvents:  historyHandler.ListEventsHandler,
		GetEvent:    historyHandler.GetEventHandler,
		RateEvent:   historyHandler.RateEventHandler,
		DeleteEvent: historyHandler.DeleteEventHandler,

		ProviderStats: aiOpsHandler.ProviderStatsHandler,
		SetupABTest:   aiOpsHandler.SetupABTestHandler,
		ABTestResults: aiOpsHandler.ABTestResultsHandler,
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
