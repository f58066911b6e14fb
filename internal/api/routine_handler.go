package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fittrack/internal/service"
)

// RoutineHandler serves routines and their exercise entries.
type RoutineHandler struct {
	routineService service.RoutineService
}

func NewRoutineHandler(routineService service.RoutineService) *RoutineHandler {
	return &RoutineHandler{routineService: routineService}
}

// --- Request Structs ---

type CreateRoutineRequest struct {
	Name      string                         `json:"name" binding:"required"`
	Exercises []service.RoutineExerciseInput `json:"exercises" binding:"dive"`
}

type UpdateRoutineRequest struct {
	Name string `json:"name" binding:"required"`
}

// --- Routines ---

func (h *RoutineHandler) CreateRoutine(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	routine, err := h.routineService.CreateRoutine(c.Request.Context(), userID, req.Name, req.Exercises)
	if err != nil {
		h.fail(c, err, "Could not create routine")
		return
	}
	c.JSON(http.StatusCreated, routine)
}

func (h *RoutineHandler) GetRoutine(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	routine, err := h.routineService.GetRoutine(c.Request.Context(), id, userID)
	if err != nil {
		h.fail(c, err, "Could not fetch routine")
		return
	}
	c.JSON(http.StatusOK, routine)
}

func (h *RoutineHandler) ListRoutines(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	routines, err := h.routineService.ListRoutines(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "Could not list routines")
		return
	}
	c.JSON(http.StatusOK, routines)
}

// TodayRoutine returns the routine the tracker treats as today's plan.
func (h *RoutineHandler) TodayRoutine(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	routine, err := h.routineService.TodayRoutine(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrRoutineNotFound) {
			abortWithError(c, http.StatusNotFound, "No routine scheduled for today")
			return
		}
		h.fail(c, err, "Could not fetch today's routine")
		return
	}
	c.JSON(http.StatusOK, routine)
}

func (h *RoutineHandler) UpdateRoutine(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	routine, err := h.routineService.UpdateRoutine(c.Request.Context(), id, userID, req.Name)
	if err != nil {
		h.fail(c, err, "Could not update routine")
		return
	}
	c.JSON(http.StatusOK, routine)
}

func (h *RoutineHandler) DeleteRoutine(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.routineService.DeleteRoutine(c.Request.Context(), id, userID); err != nil {
		h.fail(c, err, "Could not delete routine")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Routine Exercises ---

func (h *RoutineHandler) AddRoutineExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	routineID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.RoutineExerciseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	re, err := h.routineService.AddRoutineExercise(c.Request.Context(), userID, routineID, req)
	if err != nil {
		h.fail(c, err, "Could not add routine exercise")
		return
	}
	c.JSON(http.StatusCreated, re)
}

func (h *RoutineHandler) ListRoutineExercises(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	entries, err := h.routineService.ListRoutineExercises(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "Could not list routine exercises")
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *RoutineHandler) UpdateRoutineExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.RoutineExerciseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	re, err := h.routineService.UpdateRoutineExercise(c.Request.Context(), id, userID, req)
	if err != nil {
		h.fail(c, err, "Could not update routine exercise")
		return
	}
	c.JSON(http.StatusOK, re)
}

func (h *RoutineHandler) DeleteRoutineExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.routineService.DeleteRoutineExercise(c.Request.Context(), id, userID); err != nil {
		h.fail(c, err, "Could not delete routine exercise")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RoutineHandler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRoutineNotFound),
		errors.Is(err, service.ErrRoutineExerciseNotFound),
		errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		logrus.WithError(err).Error(fallback)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
