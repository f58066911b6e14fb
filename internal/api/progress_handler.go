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

// ProgressHandler serves the aggregated progress report.
type ProgressHandler struct {
	progressService service.ProgressService
}

func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// Report returns the per-day and per-week aggregation. Optional
// start_date/end_date query parameters (YYYY-MM-DD) bound the range;
// absent bounds default to the last 30 days.
func (h *ProgressHandler) Report(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	start, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	end, ok := parseDateQuery(c, "end_date")
	if !ok {
		return
	}

	report, err := h.progressService.Report(c.Request.Context(), userID, start, end)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		logrus.WithError(err).Error("progress report failed")
		abortWithError(c, http.StatusInternalServerError, "Could not build progress report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter. A
// missing parameter yields the zero time.
func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s, expected YYYY-MM-DD", name))
		return time.Time{}, false
	}
	return t, true
}
