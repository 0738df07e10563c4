package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ngabriel/sproutquest/internal/api"
	"github.com/ngabriel/sproutquest/internal/config"
	"github.com/ngabriel/sproutquest/internal/db"
	"github.com/ngabriel/sproutquest/internal/logger"
	"github.com/ngabriel/sproutquest/internal/places"
	"github.com/ngabriel/sproutquest/internal/quest"
	"github.com/ngabriel/sproutquest/internal/repository/sqlite"
	"github.com/ngabriel/sproutquest/internal/services"
	"github.com/ngabriel/sproutquest/internal/tripgen"
	"github.com/ngabriel/sproutquest/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("SproutQuest Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("gemini_model=%s", cfg.GeminiModel)
	log.Debug("poi_radius_meters=%d", cfg.POIRadiusMeters)
	log.Debug("poi_limit=%d", cfg.POILimit)
	log.Debug("trip_worker_count=%d", cfg.TripWorkerCount)
	log.Debug("trip_queue_size=%d", cfg.TripQueueSize)
	log.Debug("quest_count=%d", cfg.QuestCount)
	log.Debug("passing_threshold=%d", cfg.PassingThreshold)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories
	userRepo := sqlite.NewUserRepository(database.DB)
	groupRepo := sqlite.NewGroupRepository(database.DB)
	tripRepo := sqlite.NewTripRepository(database.DB)

	// Initialize trip generation
	var generator tripgen.Generator
	if cfg.GeminiAPIKey != "" {
		generator, err = tripgen.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Error("failed to create trip generator: %v", err)
			os.Exit(1)
		}
	} else {
		log.Warn("GEMINI_API_KEY not set, trip generation disabled")
		generator = tripgen.Disabled{}
	}

	var placesClient places.ClientInterface
	if cfg.GeoapifyAPIKey != "" {
		placesClient = places.New(cfg.GeoapifyAPIKey, cfg.POIRadiusMeters, cfg.POILimit)
	} else {
		log.Warn("GEOAPIFY_API_KEY not set, trips are planned without nearby places")
	}

	dice, err := quest.NewRollerFromEntropy()
	if err != nil {
		log.Error("failed to seed dice roller: %v", err)
		os.Exit(1)
	}

	// Initialize worker pool
	tripPool := worker.NewPool(cfg.TripWorkerCount, cfg.TripQueueSize)

	// Initialize services
	userService := services.NewUserService(userRepo)
	surveyService := services.NewSurveyService(userRepo)
	groupService := services.NewGroupService(groupRepo, userRepo)
	tripService := services.NewTripService(
		tripRepo, groupRepo, userRepo, groupService,
		generator, placesClient, tripPool, dice,
		cfg.QuestCount, cfg.PassingThreshold,
	)

	srv := &api.Server{
		DB:            database.DB,
		UserService:   userService,
		SurveyService: surveyService,
		GroupService:  groupService,
		TripService:   tripService,
	}

	ctx, cancel := context.WithCancel(context.Background())
	tripPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Cancel worker context
	log.Debug("stopping worker pool")
	cancel()

	// Shutdown HTTP server
	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping trip pool")
	tripPool.Stop()

	log.Info("===========================================")
	log.Info("SproutQuest Server Stopped")
	log.Info("===========================================")
}
