package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"feedbackhub/internal/errors"
	"feedbackhub/internal/service"
)

// AdminHandler handles the token-protected admin read endpoints.
type AdminHandler struct {
	feedbackService service.FeedbackService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(feedbackService service.FeedbackService) *AdminHandler {
	return &AdminHandler{feedbackService: feedbackService}
}

// ListFeedbacks godoc
// @Summary List feedback entries
// @Description Returns feedback entries ordered newest first.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum entries to return (default 50, capped at 100)"
// @Param offset query int false "Entries to skip (default 0)"
// @Success 200 {array} model.Feedback
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/feedbacks [get]
func (h *AdminHandler) ListFeedbacks(c echo.Context) error {
	limit := queryInt(c, "limit", service.DefaultListLimit)
	offset := queryInt(c, "offset", 0)

	feedbacks, err := h.feedbackService.List(c.Request().Context(), limit, offset)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, feedbacks)
}

// GetStats godoc
// @Summary Aggregate feedback statistics
// @Description Returns total count, average rating, the 1-5 rating distribution, and the ten most recent entries.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Stats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) GetStats(c echo.Context) error {
	stats, err := h.feedbackService.Stats(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, stats)
}

// queryInt parses an integer query parameter, falling back on absence or junk.
func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return parsed
}
