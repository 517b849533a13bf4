package platformerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAsErrorPreservesTypeAndUUID(t *testing.T) {
	ctx := context.Background()
	inner := NewError(ctx, LayerRepository, ErrorTypeNotFound, "post not found", nil, "5f0c2b1a-0000-4000-8000-000000000001")

	wrapped := AsError(ctx, LayerDomain, fmt.Errorf("lookup: %w", inner), "loading post")

	if wrapped.Type != ErrorTypeNotFound {
		t.Errorf("expected type %s, got %s", ErrorTypeNotFound, wrapped.Type)
	}
	if wrapped.UUID != inner.UUID {
		t.Errorf("expected UUID %s to survive wrapping, got %s", inner.UUID, wrapped.UUID)
	}
	if !IsErrorType(wrapped, ErrorTypeNotFound) {
		t.Error("IsErrorType should see through the wrapper")
	}
}

func TestAsErrorDefaultsToInternal(t *testing.T) {
	wrapped := AsError(context.Background(), LayerInfrastructure, errors.New("dial tcp: refused"), "provider call")
	if wrapped.Type != ErrorTypeInternal {
		t.Errorf("expected INTERNAL for plain errors, got %s", wrapped.Type)
	}
	if wrapped.UUID == "" {
		t.Error("expected an auto-generated UUID")
	}
}

func TestAsErrorNil(t *testing.T) {
	if got := AsError(context.Background(), LayerDomain, nil, "noop"); got != nil {
		t.Errorf("expected nil for nil cause, got %v", got)
	}
}

func TestErrorTypeToHTTPStatus(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		want      int
	}{
		{ErrorTypeNotFound, http.StatusNotFound},
		{ErrorTypeValidation, http.StatusBadRequest},
		{ErrorTypeConflict, http.StatusConflict},
		{ErrorTypeUnauthorized, http.StatusUnauthorized},
		{ErrorTypeForbidden, http.StatusForbidden},
		{ErrorTypePaymentRequired, http.StatusPaymentRequired},
		{ErrorTypeRateLimited, http.StatusTooManyRequests},
		{ErrorTypeTimeout, http.StatusGatewayTimeout},
		{ErrorTypeExternal, http.StatusBadGateway},
		{ErrorTypeInternal, http.StatusInternalServerError},
		{ErrorType("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			if got := ErrorTypeToHTTPStatus(tt.errorType); got != tt.want {
				t.Errorf("ErrorTypeToHTTPStatus(%s) = %d, want %d", tt.errorType, got, tt.want)
			}
		})
	}
}

func TestIsErrorTypeOnForeignError(t *testing.T) {
	if IsErrorType(errors.New("plain"), ErrorTypeInternal) {
		t.Error("plain errors must not match any platform error type")
	}
	if IsErrorType(nil, ErrorTypeInternal) {
		t.Error("nil must not match")
	}
}
