package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/apperr"
	"resume-tailor/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if clientID := c.GetString("clientId"); clientID != "" {
		fields["client_id"] = clientID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindUnsupportedFormat:
		return http.StatusBadRequest
	case apperr.KindAuth:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindRateLimited:
		return http.StatusTooManyRequests
	case apperr.KindExtraction:
		return http.StatusUnprocessableEntity
	case apperr.KindProvider, apperr.KindMalformedResponse, apperr.KindScrape:
		return http.StatusBadGateway
	case apperr.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Failure sends err as a standardized error response. Unclassified errors are
// reported as internal without leaking their text.
func Failure(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		telemetry.Error("http.internal_error", map[string]any{
			"path":       c.Request.URL.Path,
			"request_id": c.GetString("requestId"),
			"error":      errString(err),
		})
		Error(c, http.StatusInternalServerError, string(apperr.KindInternal), "Something went wrong. Try again.", nil)
		return
	}

	message := appErr.Message
	if message == "" {
		message = appErr.Error()
	}
	var details interface{}
	if appErr.Kind == apperr.KindMalformedResponse && appErr.Raw != "" {
		details = map[string]string{"raw": appErr.Raw}
	}
	Error(c, StatusFor(appErr.Kind), string(appErr.Kind), message, details)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
