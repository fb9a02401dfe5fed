package httpclient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskHeaders(t *testing.T) {
	headers := map[string]string{
		"Authorization": "Bearer secret-token",
		"X-API-Key":     "key-123",
		"Cookie":        "session=abc",
		"Set-Cookie":    "session=abc",
		"Content-Type":  "application/json",
		"X-Request-ID":  "req-1",
	}

	masked := MaskHeaders(headers)

	assert.Equal(t, MaskValue, masked["Authorization"])
	assert.Equal(t, MaskValue, masked["X-API-Key"])
	assert.Equal(t, MaskValue, masked["Cookie"])
	assert.Equal(t, MaskValue, masked["Set-Cookie"])
	assert.Equal(t, "application/json", masked["Content-Type"])
	assert.Equal(t, "req-1", masked["X-Request-ID"])

	// Input map is untouched.
	assert.Equal(t, "Bearer secret-token", headers["Authorization"])
}

func TestMaskHeadersCaseInsensitive(t *testing.T) {
	masked := MaskHeaders(map[string]string{"authorization": "x", "X-Api-Key": "y"})
	assert.Equal(t, MaskValue, masked["authorization"])
	assert.Equal(t, MaskValue, masked["X-Api-Key"])
}

func TestMaskBody(t *testing.T) {
	t.Run("masks denylisted fields", func(t *testing.T) {
		body := []byte(`{"password":"hunter2","token":"tok","api_key":"k","secret":"s","private_key":"pk","name":"alice"}`)
		masked := MaskBody(body)

		var parsed map[string]any
		require.NoError(t, json.Unmarshal(masked, &parsed))
		assert.Equal(t, MaskValue, parsed["password"])
		assert.Equal(t, MaskValue, parsed["token"])
		assert.Equal(t, MaskValue, parsed["api_key"])
		assert.Equal(t, MaskValue, parsed["secret"])
		assert.Equal(t, MaskValue, parsed["private_key"])
		assert.Equal(t, "alice", parsed["name"])
	})

	t.Run("non-JSON left unchanged", func(t *testing.T) {
		body := []byte("password=hunter2")
		assert.Equal(t, body, MaskBody(body))
	})

	t.Run("JSON array left unchanged", func(t *testing.T) {
		body := []byte(`[{"password":"x"}]`)
		assert.Equal(t, body, MaskBody(body))
	})
}

func TestMaskingIdempotence(t *testing.T) {
	headers := map[string]string{"Authorization": "Bearer tok", "Accept": "application/json"}
	once := MaskHeaders(headers)
	twice := MaskHeaders(once)
	assert.Equal(t, once, twice)

	body := []byte(`{"password":"hunter2","name":"alice"}`)
	maskedOnce := MaskBody(body)
	maskedTwice := MaskBody(maskedOnce)
	assert.JSONEq(t, string(maskedOnce), string(maskedTwice))
}
