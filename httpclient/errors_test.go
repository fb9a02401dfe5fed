package httpclient

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTypes(t *testing.T) {
	tests := []struct {
		name     string
		err      ClientError
		wantType ErrorType
	}{
		{"network", NewNetworkError("refused", nil), NetworkError},
		{"api", NewAPIError("API error: boom", 500, nil), APIError},
		{"validation", NewValidationError("bad input", nil), ValidationError},
		{"rate limit", NewRateLimitError("slow down", 10), RateLimitError},
		{"auth", NewAuthError("bad credentials", nil), AuthError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type())
			assert.True(t, IsErrorType(tt.err, tt.wantType))
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestIsErrorType(t *testing.T) {
	assert.False(t, IsErrorType(nil, NetworkError))
	assert.False(t, IsErrorType(fmt.Errorf("plain"), NetworkError))
	assert.False(t, IsErrorType(NewAPIError("m", 500, nil), NetworkError))

	// Wrapped client errors are still recognized.
	wrapped := fmt.Errorf("context: %w", NewNetworkError("refused", nil))
	assert.True(t, IsErrorType(wrapped, NetworkError))
}

func TestStatusCode(t *testing.T) {
	code, ok := StatusCode(NewAPIError("m", 503, nil))
	require.True(t, ok)
	assert.Equal(t, 503, code)

	assert.True(t, IsAPIStatusError(NewAPIError("m", 404, nil), 404))
	assert.False(t, IsAPIStatusError(NewAPIError("m", 404, nil), 500))

	_, ok = StatusCode(NewNetworkError("m", nil))
	assert.False(t, ok)
}

func TestFieldErrors(t *testing.T) {
	fields := map[string][]string{"email": {"Invalid"}}
	got, ok := FieldErrors(NewValidationError("bad input", fields))
	require.True(t, ok)
	assert.Equal(t, fields, got)

	_, ok = FieldErrors(NewAPIError("m", 400, nil))
	assert.False(t, ok)
}

func TestRetryAfterSeconds(t *testing.T) {
	seconds, ok := RetryAfterSeconds(NewRateLimitError("m", 30))
	require.True(t, ok)
	assert.Equal(t, 30, seconds)

	_, ok = RetryAfterSeconds(NewAPIError("m", 429, nil))
	assert.False(t, ok)
}

func TestErrorMessages(t *testing.T) {
	t.Run("network wraps cause", func(t *testing.T) {
		cause := fmt.Errorf("dial tcp: refused")
		err := NewNetworkError("request execution failed", cause)
		assert.Contains(t, err.Error(), "dial tcp: refused")
		assert.ErrorIs(t, err, cause)
	})

	t.Run("validation lists fields", func(t *testing.T) {
		err := NewValidationError("bad input", map[string][]string{"b": {"x"}, "a": {"y"}})
		assert.Contains(t, err.Error(), "a, b")
	})

	t.Run("rate limit reports hint", func(t *testing.T) {
		err := NewRateLimitError("slow down", 30)
		assert.Contains(t, err.Error(), "30s")
	})
}
