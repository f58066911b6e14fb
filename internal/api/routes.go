package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Auth      service.AuthService
	Catalog   service.CatalogService
	Routine   service.RoutineService
	Workout   service.WorkoutService
	Progress  service.ProgressService
	Challenge service.ChallengeService
	Reminder  service.ReminderService
}

// SetupRoutes mounts the whole API surface under /api/v1. The bearer
// middleware verifies tokens with the same secret the auth service
// signs them with.
func SetupRoutes(router *gin.Engine, services Services) {
	authHandler := NewAuthHandler(services.Auth)
	catalogHandler := NewCatalogHandler(services.Catalog)
	routineHandler := NewRoutineHandler(services.Routine)
	workoutHandler := NewWorkoutHandler(services.Workout)
	progressHandler := NewProgressHandler(services.Progress)
	challengeHandler := NewChallengeHandler(services.Challenge)
	reminderHandler := NewReminderHandler(services.Reminder)

	authMiddleware := AuthMiddleware(services.Auth.GetJWTSecret())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Profile ---
		protected.GET("/profile", authHandler.GetProfile)
		protected.PUT("/profile", authHandler.UpdateProfile)
		protected.POST("/profile/picture", authHandler.UploadProfilePicture)
		protected.GET("/profile/picture", authHandler.GetProfilePicture)
		protected.POST("/change-password", authHandler.ChangePassword)
		protected.DELETE("/account", authHandler.DeleteAccount)

		// --- Catalog ---
		muscleGroups := protected.Group("/muscle-groups")
		{
			muscleGroups.POST("", catalogHandler.CreateMuscleGroup)
			muscleGroups.GET("", catalogHandler.ListMuscleGroups)
			muscleGroups.GET("/:id", catalogHandler.GetMuscleGroup)
			muscleGroups.PUT("/:id", catalogHandler.UpdateMuscleGroup)
			muscleGroups.DELETE("/:id", catalogHandler.DeleteMuscleGroup)
		}

		exercises := protected.Group("/exercises")
		{
			exercises.POST("", catalogHandler.CreateExercise)
			exercises.GET("", catalogHandler.ListExercises)
			exercises.GET("/:id", catalogHandler.GetExercise)
			exercises.PUT("/:id", catalogHandler.UpdateExercise)
			exercises.DELETE("/:id", catalogHandler.DeleteExercise)
		}
		protected.GET("/exercise-types", catalogHandler.ListExerciseTypes)
		protected.GET("/exercise-of-the-day", catalogHandler.ExerciseOfTheDay)

		protected.GET("/favorite-exercises", catalogHandler.ListFavorites)
		protected.POST("/toggle-favorite-exercise", catalogHandler.ToggleFavorite)

		// --- Routines ---
		routines := protected.Group("/routines")
		{
			routines.POST("", routineHandler.CreateRoutine)
			routines.GET("", routineHandler.ListRoutines)
			routines.GET("/today", routineHandler.TodayRoutine)
			routines.GET("/:id", routineHandler.GetRoutine)
			routines.PUT("/:id", routineHandler.UpdateRoutine)
			routines.DELETE("/:id", routineHandler.DeleteRoutine)
			routines.POST("/:id/exercises", routineHandler.AddRoutineExercise)
		}

		routineExercises := protected.Group("/routine-exercises")
		{
			routineExercises.GET("", routineHandler.ListRoutineExercises)
			routineExercises.PUT("/:id", routineHandler.UpdateRoutineExercise)
			routineExercises.DELETE("/:id", routineHandler.DeleteRoutineExercise)
		}

		// --- Workout Log ---
		workouts := protected.Group("/completed-workouts")
		{
			workouts.POST("", workoutHandler.LogWorkout)
			workouts.GET("", workoutHandler.ListWorkouts)
			workouts.GET("/:id", workoutHandler.GetWorkout)
			workouts.DELETE("/:id", workoutHandler.DeleteWorkout)
			workouts.POST("/:id/exercises", workoutHandler.AddCompletedExercise)
		}

		completedExercises := protected.Group("/completed-exercises")
		{
			completedExercises.GET("", workoutHandler.ListCompletedExercises)
			completedExercises.PUT("/:id", workoutHandler.UpdateCompletedExercise)
			completedExercises.DELETE("/:id", workoutHandler.DeleteCompletedExercise)
		}

		// --- Progress ---
		protected.GET("/progress", progressHandler.Report)

		// --- Challenges ---
		challenges := protected.Group("/workout-challenges")
		{
			challenges.GET("", challengeHandler.ListChallenges)
			challenges.GET("/:id", challengeHandler.GetChallenge)
			challenges.POST("/:id/join", challengeHandler.Join)
		}

		userChallenges := protected.Group("/user-challenges")
		{
			userChallenges.GET("", challengeHandler.ListUserChallenges)
			userChallenges.GET("/:id", challengeHandler.GetUserChallenge)
			userChallenges.POST("/:id/update_progress", challengeHandler.UpdateProgress)
		}

		// --- Reminders ---
		reminders := protected.Group("/reminders")
		{
			reminders.POST("", reminderHandler.CreateReminder)
			reminders.GET("", reminderHandler.ListReminders)
			reminders.GET("/today", reminderHandler.TodayReminders)
			reminders.PUT("/:id", reminderHandler.UpdateReminder)
			reminders.DELETE("/:id", reminderHandler.DeleteReminder)
		}
	}
}
