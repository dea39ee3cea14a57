package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"feedbackhub/internal/errors"
	"feedbackhub/internal/service"
)

// FeedbackHandler handles the public feedback endpoint.
type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// SubmitFeedbackRequest represents a feedback submission.
type SubmitFeedbackRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Feedback  string  `json:"feedback" validate:"required"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	ProductID string  `json:"product_id"`
}

// Submit godoc
// @Summary Submit feedback
// @Description Accepts a rated feedback entry. Name and email are optional.
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body SubmitFeedbackRequest true "Feedback data"
// @Success 201 {object} model.Feedback
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /feedback [post]
func (h *FeedbackHandler) Submit(c echo.Context) error {
	var req SubmitFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	feedback, err := h.feedbackService.Submit(c.Request().Context(), service.SubmitFeedbackInput{
		Name:      emptyToNil(req.Name),
		Email:     emptyToNil(req.Email),
		Feedback:  req.Feedback,
		Rating:    req.Rating,
		ProductID: req.ProductID,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, feedback)
}

// emptyToNil stores blank optional fields as NULL rather than empty strings.
func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
