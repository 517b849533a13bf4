// Package usagehandler serves the purpose-tagged token usage reports.
package usagehandler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/tokenusage"
	middleware "github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/middlewares"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/responses"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/platformerrors"
)

// defaultRangeDays is the lookback window when the caller names none.
const defaultRangeDays = 30

// UsageHandler handles token usage API requests
type UsageHandler struct {
	usageService *tokenusage.Service
}

// NewUsageHandler creates a new UsageHandler
func NewUsageHandler(usageService *tokenusage.Service) *UsageHandler {
	return &UsageHandler{
		usageService: usageService,
	}
}

// GetMyUsage returns the authenticated user's usage summary, grouped by
// purpose, model and provider.
func (h *UsageHandler) GetMyUsage(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required")
		return
	}

	startDate, endDate, err := parseDateRange(c)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	usage, err := h.usageService.GetMyUsage(c.Request.Context(), userID, startDate, endDate)
	if err != nil {
		responses.HandleError(c, platformerrors.AsError(c.Request.Context(), platformerrors.LayerHandler, err, "failed to get usage"))
		return
	}

	c.JSON(http.StatusOK, usage)
}

// GetMyDailyUsage returns the authenticated user's daily aggregates.
func (h *UsageHandler) GetMyDailyUsage(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required")
		return
	}

	startDate, endDate, err := parseDateRange(c)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	dailyUsage, err := h.usageService.GetMyDailyUsage(c.Request.Context(), userID, startDate, endDate)
	if err != nil {
		responses.HandleError(c, platformerrors.AsError(c.Request.Context(), platformerrors.LayerHandler, err, "failed to get daily usage"))
		return
	}

	c.JSON(http.StatusOK, dailyUsage)
}

// parseDateRange resolves the query window: an explicit start_date/end_date
// pair wins, then a days=N lookback, then the default 30 days.
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	endDate := now
	startDate := now.AddDate(0, 0, -defaultRangeDays)

	if daysStr := c.Query("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days < 1 || days > 366 {
			return time.Time{}, time.Time{}, platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler,
				platformerrors.ErrorTypeValidation, "days must be between 1 and 366", err, "6e2b8d4f-1a9c-4e7b-8f3d-5c0a2e9b7d1f")
		}
		startDate = now.AddDate(0, 0, -days)
	}

	if startStr := c.Query("start_date"); startStr != "" {
		parsed, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler,
				platformerrors.ErrorTypeValidation, "start_date must be YYYY-MM-DD", err, "b4f8c2a6-9d1e-4c5b-a7f3-2e8d0b6c4a9e")
		}
		startDate = parsed
	}

	if endStr := c.Query("end_date"); endStr != "" {
		parsed, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return time.Time{}, time.Time{}, platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler,
				platformerrors.ErrorTypeValidation, "end_date must be YYYY-MM-DD", err, "d9a3e7c1-2f6b-4d8e-b5a0-7c1f4e2d9b6a")
		}
		endDate = parsed.Add(24*time.Hour - time.Second) // End of day
	}

	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler,
			platformerrors.ErrorTypeValidation, "end_date precedes start_date", nil, "f1c5a9e3-7b2d-4f6c-8e1a-3d9b5c7f2e4a")
	}

	return startDate, endDate, nil
}
