package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gymhub/gym-api/internal/api"
	"gymhub/gym-api/internal/config"
	mongorepo "gymhub/gym-api/internal/repository/mongo"
	"gymhub/gym-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	logger.Info().Msg("starting gym API server")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load config")
	}
	if cfg.JWT.Secret == "" {
		logger.Fatal().Msg("JWT_SECRET is not configured")
	}

	// --- Database Connection ---
	dbClient, err := mongorepo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not connect to MongoDB")
	}
	defer func() {
		logger.Info().Msg("disconnecting MongoDB")
		if err := mongorepo.DisconnectDB(dbClient); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info().Str("database", cfg.Database.Name).Msg("database connection established")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongorepo.EnsureManagerIndexes(ctx, appDB.Collection("managers"))
		mongorepo.EnsureTrainerIndexes(ctx, appDB.Collection("trainers"))
		mongorepo.EnsureMemberIndexes(ctx, appDB.Collection("members"))
		mongorepo.EnsureScheduleIndexes(ctx, appDB.Collection("schedules"))
		logger.Info().Msg("index creation completed")
	}()

	// --- Initialize Repositories ---
	gymRepo := mongorepo.NewMongoGymRepository(appDB)
	managerRepo := mongorepo.NewMongoManagerRepository(appDB)
	trainerRepo := mongorepo.NewMongoTrainerRepository(appDB)
	memberRepo := mongorepo.NewMongoMemberRepository(appDB)
	scheduleRepo := mongorepo.NewMongoScheduleRepository(appDB)

	// --- Initialize Services ---
	authService := service.NewAuthService(managerRepo, trainerRepo, memberRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	gymService := service.NewGymService(gymRepo, managerRepo, logger)
	trainerService := service.NewTrainerService(managerRepo, trainerRepo, memberRepo, scheduleRepo)
	memberService := service.NewMemberService(managerRepo, trainerRepo, memberRepo, scheduleRepo)
	scheduleService := service.NewScheduleService(managerRepo, trainerRepo, memberRepo, scheduleRepo)
	reportService := service.NewReportService(managerRepo, trainerRepo, memberRepo, scheduleRepo)

	// --- Initialize Gin Engine ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(api.RequestID(), api.AccessLog(logger), gin.Recovery(), api.RequestTimeout(cfg.Server.RequestTimeout))

	api.SetupRoutes(router, cfg.JWT.Secret,
		authService, gymService, trainerService, memberService, scheduleService, reportService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().Str("address", cfg.Server.Address).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen and serve error")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exiting")
}
