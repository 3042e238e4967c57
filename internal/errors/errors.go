package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when the requesting user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrCheckNotFound is returned when a check record is not found.
	ErrCheckNotFound = errors.New("check not found")
	// ErrAccessDenied is returned when a user reads a check they do not own.
	ErrAccessDenied = errors.New("access denied")
	// ErrInsufficientCredits is returned when the credit ledger gate fails.
	ErrInsufficientCredits = errors.New("no credits remaining, please upgrade your plan")
	// ErrInvalidPlan is returned when a plan key is not in the plan table.
	ErrInvalidPlan = errors.New("unknown plan")
	// ErrInvalidInput is returned when the submitted product link is malformed.
	ErrInvalidInput = errors.New("invalid request data")
	// ErrFetchFailed is returned when product data could not be fetched.
	ErrFetchFailed = errors.New("failed to fetch product data")
	// ErrAnalysisService is returned when the AI analysis call fails.
	ErrAnalysisService = errors.New("failed to analyze product with AI")
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

// MapErrorToHTTP maps domain errors to HTTP errors. Pipeline failures
// (fetch, analysis, persistence) all surface as a generic 500 with a
// human-readable message and no further classification.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrCheckNotFound):
		return NewHTTPError(http.StatusNotFound, ErrCheckNotFound.Error(), "CHECK_NOT_FOUND")
	case errors.Is(err, ErrAccessDenied):
		return NewHTTPError(http.StatusForbidden, ErrAccessDenied.Error(), "ACCESS_DENIED")
	case errors.Is(err, ErrInsufficientCredits):
		return NewHTTPError(http.StatusForbidden, ErrInsufficientCredits.Error(), "INSUFFICIENT_CREDITS")
	case errors.Is(err, ErrInvalidPlan):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidPlan.Error(), "INVALID_PLAN")
	case errors.Is(err, ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidInput.Error(), "INVALID_REQUEST")
	case errors.Is(err, ErrFetchFailed):
		return NewHTTPError(http.StatusInternalServerError, ErrFetchFailed.Error(), "FETCH_FAILED")
	case errors.Is(err, ErrAnalysisService):
		return NewHTTPError(http.StatusInternalServerError, ErrAnalysisService.Error(), "ANALYSIS_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
