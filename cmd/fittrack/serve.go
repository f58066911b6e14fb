package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fittrack/internal/api"
	"fittrack/internal/jobs"
	"fittrack/internal/repository/postgres"
	"fittrack/internal/service"
	"fittrack/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logrus.Info("starting fittrack server")

	cfg, db, err := loadConfigAndDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(cmd.Context(), db); err != nil {
		return err
	}

	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		return err
	}

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(db)
	muscleGroupRepo := postgres.NewMuscleGroupRepository(db)
	exerciseRepo := postgres.NewExerciseRepository(db)
	routineRepo := postgres.NewRoutineRepository(db)
	workoutRepo := postgres.NewWorkoutRepository(db)
	challengeRepo := postgres.NewChallengeRepository(db)
	reminderRepo := postgres.NewReminderRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)
	eodRepo := postgres.NewExerciseOfTheDayRepository(db)

	// --- Services ---
	services := api.Services{
		Auth:      service.NewAuthService(userRepo, fileStorage, cfg.JWT.Secret, cfg.JWT.Expiration),
		Catalog:   service.NewCatalogService(muscleGroupRepo, exerciseRepo, favoriteRepo, eodRepo),
		Routine:   service.NewRoutineService(routineRepo, exerciseRepo),
		Workout:   service.NewWorkoutService(workoutRepo, routineRepo),
		Progress:  service.NewProgressService(workoutRepo),
		Challenge: service.NewChallengeService(challengeRepo),
		Reminder:  service.NewReminderService(reminderRepo, routineRepo, workoutRepo, userRepo, service.LogNotifier{}),
	}

	// --- Background Jobs ---
	scheduler, err := jobs.NewScheduler(cfg.Jobs, services.Reminder)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	// --- Router ---
	router := gin.Default()
	api.SetupRoutes(router, services)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logrus.WithField("address", cfg.Server.Address).Info("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	// Wait for interrupt, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("server exited gracefully")
	return nil
}
