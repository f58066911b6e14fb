package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fittrack/internal/domain"
	"fittrack/internal/service"
)

// CatalogHandler serves muscle groups, exercises, favorites and the
// exercise of the day.
type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// --- Request Structs ---

type MuscleGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

type ExerciseRequest struct {
	Name          string              `json:"name" binding:"required"`
	MuscleGroupID int64               `json:"muscleGroupId" binding:"required"`
	Description   string              `json:"description"`
	ExerciseType  domain.ExerciseType `json:"exerciseType" binding:"required"`
}

type ToggleFavoriteRequest struct {
	ExerciseID int64 `json:"exerciseId" binding:"required"`
}

// --- Muscle Groups ---

func (h *CatalogHandler) CreateMuscleGroup(c *gin.Context) {
	var req MuscleGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	mg, err := h.catalogService.CreateMuscleGroup(c.Request.Context(), req.Name)
	if err != nil {
		h.fail(c, err, "Could not create muscle group")
		return
	}
	c.JSON(http.StatusCreated, mg)
}

func (h *CatalogHandler) GetMuscleGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	mg, err := h.catalogService.GetMuscleGroup(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Could not fetch muscle group")
		return
	}
	c.JSON(http.StatusOK, mg)
}

func (h *CatalogHandler) ListMuscleGroups(c *gin.Context) {
	groups, err := h.catalogService.ListMuscleGroups(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Could not list muscle groups")
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (h *CatalogHandler) UpdateMuscleGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req MuscleGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	mg, err := h.catalogService.UpdateMuscleGroup(c.Request.Context(), id, req.Name)
	if err != nil {
		h.fail(c, err, "Could not update muscle group")
		return
	}
	c.JSON(http.StatusOK, mg)
}

func (h *CatalogHandler) DeleteMuscleGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteMuscleGroup(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Could not delete muscle group")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Exercises ---

func (h *CatalogHandler) CreateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	exercise, err := h.catalogService.CreateExercise(c.Request.Context(), req.Name, req.MuscleGroupID, req.Description, req.ExerciseType)
	if err != nil {
		h.fail(c, err, "Could not create exercise")
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

func (h *CatalogHandler) GetExercise(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	exercise, err := h.catalogService.GetExercise(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Could not fetch exercise")
		return
	}
	c.JSON(http.StatusOK, exercise)
}

func (h *CatalogHandler) ListExercises(c *gin.Context) {
	exercises, err := h.catalogService.ListExercises(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Could not list exercises")
		return
	}
	c.JSON(http.StatusOK, exercises)
}

func (h *CatalogHandler) UpdateExercise(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	exercise, err := h.catalogService.UpdateExercise(c.Request.Context(), id, req.Name, req.MuscleGroupID, req.Description, req.ExerciseType)
	if err != nil {
		h.fail(c, err, "Could not update exercise")
		return
	}
	c.JSON(http.StatusOK, exercise)
}

func (h *CatalogHandler) DeleteExercise(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteExercise(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Could not delete exercise")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListExerciseTypes returns the exercise type enum.
func (h *CatalogHandler) ListExerciseTypes(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.ExerciseTypes())
}

// --- Favorites ---

func (h *CatalogHandler) ListFavorites(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	favorites, err := h.catalogService.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "Could not list favorites")
		return
	}
	c.JSON(http.StatusOK, favorites)
}

func (h *CatalogHandler) ToggleFavorite(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ToggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	favorited, err := h.catalogService.ToggleFavorite(c.Request.Context(), userID, req.ExerciseID)
	if err != nil {
		h.fail(c, err, "Could not toggle favorite")
		return
	}
	c.JSON(http.StatusOK, gin.H{"exerciseId": req.ExerciseID, "favorited": favorited})
}

// --- Exercise of the Day ---

func (h *CatalogHandler) ExerciseOfTheDay(c *gin.Context) {
	eod, err := h.catalogService.ExerciseOfTheDay(c.Request.Context(), time.Now().UTC())
	if err != nil {
		if errors.Is(err, service.ErrCatalogEmpty) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		h.fail(c, err, "Could not fetch exercise of the day")
		return
	}
	c.JSON(http.StatusOK, eod)
}

// fail maps service errors to HTTP statuses.
func (h *CatalogHandler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrMuscleGroupNotFound), errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		logrus.WithError(err).Error(fallback)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
