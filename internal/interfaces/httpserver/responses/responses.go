// Package responses renders API error and success envelopes.
package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/logger"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/platformerrors"
)

// ErrorBody is the wire shape of every error response.
type ErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
}

// ErrorResponse wraps the error body in the standard envelope.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// HandleError renders err as an HTTP response, mapping platform error types
// to status codes and logging server-side failures.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var platformErr *platformerrors.PlatformError
	if !errors.As(err, &platformErr) {
		platformErr = platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeInternal, err.Error(), err, "")
	}

	status := platformerrors.ErrorTypeToHTTPStatus(platformErr.Type)
	if status >= http.StatusInternalServerError {
		platformerrors.LogError(logger.GetLogger(), platformErr)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Message: platformErr.Message,
			Type:    string(platformErr.Type),
			Code:    platformErr.UUID,
		},
	})
}

// HandleNewError renders a fresh error of the given type.
func HandleNewError(c *gin.Context, errorType platformerrors.ErrorType, message string) {
	HandleError(c, platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler, errorType, message, nil, ""))
}

// HandleErrorWithStatus renders err with an explicit status code. Used by
// middleware that decides the status itself.
func HandleErrorWithStatus(c *gin.Context, status int, err error, message string) {
	if message == "" && err != nil {
		message = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Message: message,
			Type:    string(statusToErrorType(status)),
		},
	})
}

func statusToErrorType(status int) platformerrors.ErrorType {
	switch status {
	case http.StatusNotFound:
		return platformerrors.ErrorTypeNotFound
	case http.StatusBadRequest:
		return platformerrors.ErrorTypeValidation
	case http.StatusConflict:
		return platformerrors.ErrorTypeConflict
	case http.StatusUnauthorized:
		return platformerrors.ErrorTypeUnauthorized
	case http.StatusForbidden:
		return platformerrors.ErrorTypeForbidden
	case http.StatusPaymentRequired:
		return platformerrors.ErrorTypePaymentRequired
	case http.StatusTooManyRequests:
		return platformerrors.ErrorTypeRateLimited
	case http.StatusGatewayTimeout:
		return platformerrors.ErrorTypeTimeout
	case http.StatusBadGateway:
		return platformerrors.ErrorTypeExternal
	default:
		return platformerrors.ErrorTypeInternal
	}
}
