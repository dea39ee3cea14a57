package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrFeedbackRequired is returned when the feedback text is missing.
	ErrFeedbackRequired = errors.New("feedback text is required")
	// ErrInvalidRating is returned when the rating is outside 1-5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrInvalidCredentials is returned for any failed login attempt. The
	// message deliberately does not reveal whether the username exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognized is
// an internal error: the cause is for server logs, never for the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrFeedbackRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "FEEDBACK_REQUIRED")
	case errors.Is(err, ErrInvalidRating):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RATING")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
