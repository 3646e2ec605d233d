package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skinlab/skinanalyzer/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

// httpErrorFrom maps coded domain errors to their transport status. Gateway
// quota and rate-limit codes keep their upstream status so clients can react.
func httpErrorFrom(err error) *HTTPError {
	status := http.StatusInternalServerError
	code := "internal_error"
	for mappedCode, mappedStatus := range codeStatus {
		if apperrors.IsCode(err, mappedCode) {
			status = mappedStatus
			code = mappedCode
			break
		}
	}
	return NewHTTPError(status, code, err.Error(), err)
}

var codeStatus = map[string]int{
	"invalid_input":      http.StatusBadRequest,
	"invalid_transition": http.StatusConflict,
	"rate_limited":       http.StatusTooManyRequests,
	"quota_exceeded":     http.StatusPaymentRequired,
	"network_error":      http.StatusBadGateway,
	"service_error":      http.StatusBadGateway,
	"content_error":      http.StatusBadGateway,
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
