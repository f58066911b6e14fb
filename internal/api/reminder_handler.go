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

// ReminderHandler serves workout reminders.
type ReminderHandler struct {
	reminderService service.ReminderService
}

func NewReminderHandler(reminderService service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// --- Request Structs ---

type ReminderRequest struct {
	RoutineID    *int64    `json:"routineId"`
	ReminderTime time.Time `json:"reminderTime" binding:"required"`
	Message      string    `json:"message" binding:"required"`
}

// --- Handlers ---

func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	reminder, err := h.reminderService.CreateReminder(c.Request.Context(), userID, req.RoutineID, req.ReminderTime, req.Message)
	if err != nil {
		h.fail(c, err, "Could not create reminder")
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

func (h *ReminderHandler) ListReminders(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	reminders, err := h.reminderService.ListReminders(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "Could not list reminders")
		return
	}
	c.JSON(http.StatusOK, reminders)
}

// TodayReminders returns the user's unsent reminders scheduled today.
func (h *ReminderHandler) TodayReminders(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	reminders, err := h.reminderService.TodayReminders(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "Could not list today's reminders")
		return
	}
	c.JSON(http.StatusOK, reminders)
}

func (h *ReminderHandler) UpdateReminder(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	reminder, err := h.reminderService.UpdateReminder(c.Request.Context(), id, userID, req.RoutineID, req.ReminderTime, req.Message)
	if err != nil {
		h.fail(c, err, "Could not update reminder")
		return
	}
	c.JSON(http.StatusOK, reminder)
}

func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reminderService.DeleteReminder(c.Request.Context(), id, userID); err != nil {
		h.fail(c, err, "Could not delete reminder")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReminderHandler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrReminderNotFound), errors.Is(err, service.ErrRoutineNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		logrus.WithError(err).Error(fallback)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
