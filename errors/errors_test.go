package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestNew_RetryableDetection(t *testing.T) {
	tests := []struct {
		code      ErrorCode
		retryable bool
	}{
		{ErrCodeServiceUnavailable, true},
		{ErrCodeConnectionFailed, true},
		{ErrCodeTimeout, true},
		{ErrCodeNotInitialized, false},
		{ErrCodeNotFound, false},
		{ErrCodeInvalidInput, false},
		{ErrCodeInternal, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			err := New(tc.code, "msg", http.StatusTeapot)
			if err.Retryable != tc.retryable {
				t.Errorf("expected retryable=%v, got %v", tc.retryable, err.Retryable)
			}
			if err.HTTPStatus != http.StatusTeapot {
				t.Errorf("expected status %d, got %d", http.StatusTeapot, err.HTTPStatus)
			}
		})
	}
}

func TestNotInitialized(t *testing.T) {
	err := NotInitialized("redis")
	if err.Code != ErrCodeNotInitialized {
		t.Errorf("expected NOT_INITIALIZED, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", err.HTTPStatus)
	}
	if err.Details["component"] != "redis" {
		t.Errorf("expected component=redis, got %v", err.Details["component"])
	}
	if !strings.Contains(err.Error(), "redis is not attached") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestNotFound(t *testing.T) {
	err := NotFound("key", "user:1")
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected 404, got %d", err.HTTPStatus)
	}
	if err.Details["id"] != "user:1" {
		t.Errorf("expected id detail, got %v", err.Details)
	}
	if _, ok := NotFound("key", "").Details["id"]; ok {
		t.Error("expected no id detail for empty id")
	}
}

func TestWithCause_CopiesAndUnwraps(t *testing.T) {
	sentinel := NotInitialized("redis")
	cause := fmt.Errorf("dial tcp: refused")
	wrapped := sentinel.WithCause(cause)

	if sentinel.Cause != nil {
		t.Error("WithCause must not mutate the receiver")
	}
	if !stderrors.Is(wrapped, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
	if !stderrors.Is(wrapped, sentinel) {
		t.Error("expected errors.Is to match the sentinel")
	}
	if !strings.Contains(wrapped.Error(), "cause: dial tcp: refused") {
		t.Errorf("expected cause in message, got %s", wrapped.Error())
	}
}

func TestWithDetail_Copies(t *testing.T) {
	base := InvalidInput("pool_size", "must be >= 0")
	withKey := base.WithDetail("value", -1)
	if _, ok := base.Details["value"]; ok {
		t.Error("WithDetail must not mutate the receiver")
	}
	if withKey.Details["value"] != -1 || withKey.Details["field"] != "pool_size" {
		t.Errorf("unexpected details: %v", withKey.Details)
	}
}

func TestIs_DifferentCodes(t *testing.T) {
	if stderrors.Is(NotFound("key", ""), NotInitialized("redis")) {
		t.Error("different codes must not match")
	}
	var nilErr *AppError
	if NotFound("key", "").Is(nilErr) {
		t.Error("nil target must not match")
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", MissingField("url"))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AppError in chain")
	}
	if appErr.Code != ErrCodeMissingField {
		t.Errorf("expected MISSING_FIELD, got %s", appErr.Code)
	}
	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("expected no AppError for plain error")
	}
}

func TestToResponse(t *testing.T) {
	resp := ConnectionFailed("redis").ToResponse()
	if resp.Error.Code != ErrCodeConnectionFailed {
		t.Errorf("expected CONNECTION_FAILED, got %s", resp.Error.Code)
	}
	if !resp.Error.Retryable {
		t.Error("expected retryable response")
	}
	if resp.Error.Details["service"] != "redis" {
		t.Errorf("expected service detail, got %v", resp.Error.Details)
	}
}

func TestInternal(t *testing.T) {
	cause := stderrors.New("boom")
	err := Internal(cause)
	if err.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", err.HTTPStatus)
	}
	if stderrors.Unwrap(err) != cause {
		t.Error("expected Unwrap to return cause")
	}
}
