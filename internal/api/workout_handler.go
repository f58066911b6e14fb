package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fittrack/internal/service"
)

// WorkoutHandler serves the completed workout log.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Request Structs ---

type LogWorkoutRequest struct {
	RoutineID      int64                            `json:"routineId" binding:"required"`
	StartedAt      time.Time                        `json:"startedAt" binding:"required"`
	CompletedAt    time.Time                        `json:"completedAt" binding:"required"`
	CaloriesBurned int                              `json:"caloriesBurned"`
	Notes          string                           `json:"notes"`
	Exercises      []service.CompletedExerciseInput `json:"exercises" binding:"dive"`
}

// --- Completed Workouts ---

func (h *WorkoutHandler) LogWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := h.workoutService.LogWorkout(c.Request.Context(), userID, req.RoutineID, req.StartedAt, req.CompletedAt, req.CaloriesBurned, req.Notes, req.Exercises)
	if err != nil {
		h.fail(c, err, "Could not log workout")
		return
	}
	c.JSON(http.StatusCreated, workout)
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	workout, err := h.workoutService.GetWorkout(c.Request.Context(), id, userID)
	if err != nil {
		h.fail(c, err, "Could not fetch workout")
		return
	}
	c.JSON(http.StatusOK, workout)
}

func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	workouts, err := h.workoutService.ListWorkouts(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "Could not list workouts")
		return
	}
	c.JSON(http.StatusOK, workouts)
}

func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workoutService.DeleteWorkout(c.Request.Context(), id, userID); err != nil {
		h.fail(c, err, "Could not delete workout")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Completed Exercises ---

func (h *WorkoutHandler) AddCompletedExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.CompletedExerciseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	ce, err := h.workoutService.AddCompletedExercise(c.Request.Context(), userID, workoutID, req)
	if err != nil {
		h.fail(c, err, "Could not add completed exercise")
		return
	}
	c.JSON(http.StatusCreated, ce)
}

func (h *WorkoutHandler) ListCompletedExercises(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	entries, err := h.workoutService.ListCompletedExercises(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "Could not list completed exercises")
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *WorkoutHandler) UpdateCompletedExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.CompletedExerciseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	ce, err := h.workoutService.UpdateCompletedExercise(c.Request.Context(), id, userID, req)
	if err != nil {
		h.fail(c, err, "Could not update completed exercise")
		return
	}
	c.JSON(http.StatusOK, ce)
}

func (h *WorkoutHandler) DeleteCompletedExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workoutService.DeleteCompletedExercise(c.Request.Context(), id, userID); err != nil {
		h.fail(c, err, "Could not delete completed exercise")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WorkoutHandler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidWorkoutWindow), errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrCompletedExerciseNotFound),
		errors.Is(err, service.ErrRoutineNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		logrus.WithError(err).Error(fallback)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
