package server

import (
	"errors"
	"net/http"

	checklistdomain "github.com/bigdino44/DemoManagerPro/internal/checklist/domain"
	customerdomain "github.com/bigdino44/DemoManagerPro/internal/customer/domain"
	demodomain "github.com/bigdino44/DemoManagerPro/internal/demo/domain"
	notificationdomain "github.com/bigdino44/DemoManagerPro/internal/notification/domain"
	"github.com/gin-gonic/gin"
)

// Generic transport errors.
var (
	ErrNotFound     = errors.New("not_found")
	ErrInvalidID    = errors.New("invalid_id")
	ErrRateLimited  = errors.New("rate_limited")
	ErrInvalidInput = errors.New("invalid_request")
)

type apiError struct {
	status  int
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *apiError) Error() string { return e.Code }

func invalidRequestError() error {
	return &apiError{
		status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "request body could not be parsed",
	}
}

func newValidationError(field, code, message string) error {
	return &apiError{
		status:  http.StatusBadRequest,
		Code:    code,
		Message: message,
		Field:   field,
	}
}

// AbortWithError maps domain sentinels onto HTTP responses with a stable
// {"error": {code, message}} shape.
func AbortWithError(c *gin.Context, err error) {
	var api *apiError
	if errors.As(err, &api) {
		c.AbortWithStatusJSON(api.status, gin.H{"error": api})
		return
	}

	status := http.StatusInternalServerError
	code := "internal_error"

	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, customerdomain.ErrCustomerNotFound),
		errors.Is(err, demodomain.ErrDemoNotFound),
		errors.Is(err, checklistdomain.ErrItemNotFound):
		status = http.StatusNotFound
		code = err.Error()
	case errors.Is(err, ErrRateLimited):
		status = http.StatusTooManyRequests
		code = err.Error()
	case isValidationError(err):
		status = http.StatusBadRequest
		code = err.Error()
	}

	message := code
	if status == http.StatusInternalServerError {
		// Do not leak internals.
		message = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": &apiError{
		status:  status,
		Code:    code,
		Message: message,
	}})
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, customerdomain.ErrInvalidCompany),
		errors.Is(err, customerdomain.ErrInvalidStatus),
		errors.Is(err, customerdomain.ErrInvalidInfluence),
		errors.Is(err, customerdomain.ErrNegativeRevenue),
		errors.Is(err, customerdomain.ErrInvalidAmount),
		errors.Is(err, demodomain.ErrInvalidLocation),
		errors.Is(err, demodomain.ErrInvalidAttendees),
		errors.Is(err, demodomain.ErrTooManyAttendees),
		errors.Is(err, demodomain.ErrMissingLocationDetails),
		errors.Is(err, demodomain.ErrOutsideBookingWindow),
		errors.Is(err, demodomain.ErrInvalidDate),
		errors.Is(err, demodomain.ErrInvalidTime),
		errors.Is(err, demodomain.ErrCustomerNotFound),
		errors.Is(err, checklistdomain.ErrInvalidTask),
		errors.Is(err, checklistdomain.ErrInvalidCategory),
		errors.Is(err, checklistdomain.ErrInvalidStatus),
		errors.Is(err, checklistdomain.ErrInvalidPriority),
		errors.Is(err, notificationdomain.ErrInvalidTitle),
		errors.Is(err, notificationdomain.ErrInvalidKind):
		return true
	}
	return false
}
