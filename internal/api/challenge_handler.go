package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fittrack/internal/service"
)

// ChallengeHandler serves workout challenges and per-user progress.
type ChallengeHandler struct {
	challengeService service.ChallengeService
}

func NewChallengeHandler(challengeService service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService}
}

// --- Request Structs ---

type UpdateChallengeProgressRequest struct {
	ExerciseID int64 `json:"exercise_id" binding:"required"`
}

// --- Challenges ---

func (h *ChallengeHandler) ListChallenges(c *gin.Context) {
	challenges, err := h.challengeService.ListChallenges(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Could not list challenges")
		return
	}
	c.JSON(http.StatusOK, challenges)
}

func (h *ChallengeHandler) GetChallenge(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	challenge, err := h.challengeService.GetChallenge(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Could not fetch challenge")
		return
	}
	c.JSON(http.StatusOK, challenge)
}

// Join enrolls the user in a challenge. Rejoining is reported rather
// than rejected.
func (h *ChallengeHandler) Join(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	challengeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.challengeService.Join(c.Request.Context(), userID, challengeID)
	if err != nil {
		h.fail(c, err, "Could not join challenge")
		return
	}

	status := http.StatusCreated
	if result.AlreadyJoined {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// --- User Challenges ---

func (h *ChallengeHandler) ListUserChallenges(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	states, err := h.challengeService.ListUserChallenges(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "Could not list user challenges")
		return
	}
	c.JSON(http.StatusOK, states)
}

func (h *ChallengeHandler) GetUserChallenge(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	state, err := h.challengeService.GetUserChallenge(c.Request.Context(), userID, id)
	if err != nil {
		h.fail(c, err, "Could not fetch user challenge")
		return
	}
	c.JSON(http.StatusOK, state)
}

// UpdateProgress marks one challenge exercise complete.
func (h *ChallengeHandler) UpdateProgress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateChallengeProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	state, err := h.challengeService.UpdateProgress(c.Request.Context(), userID, id, req.ExerciseID)
	if err != nil {
		h.fail(c, err, "Could not update challenge progress")
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *ChallengeHandler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrChallengeNotFound),
		errors.Is(err, service.ErrUserChallengeNotFound),
		errors.Is(err, service.ErrChallengeExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		logrus.WithError(err).Error(fallback)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
