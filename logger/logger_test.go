package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewWithOutputLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("info", false, &buf)

	log.Debug().Msg("suppressed")
	assert.Zero(t, buf.Len())

	log.Info().Msg("visible")
	entry := logLine(t, &buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "visible", entry["message"])
	assert.NotEmpty(t, entry["time"])
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("bogus", false, &buf)

	log.Debug().Msg("suppressed")
	assert.Zero(t, buf.Len())

	log.Info().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestEventFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("debug", false, &buf)

	log.Warn().
		Str("method", "GET").
		Int("status", 503).
		Int64("calls", 2).
		Dur("elapsed", 1500*time.Millisecond).
		Err(errors.New("upstream unavailable")).
		Msg("request failed")

	entry := logLine(t, &buf)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, float64(503), entry["status"])
	assert.Equal(t, float64(2), entry["calls"])
	assert.Equal(t, "upstream unavailable", entry["error"])
	assert.Equal(t, "request failed", entry["message"])
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("info", false, &buf)

	scoped := log.WithFields(map[string]any{"component": "httpclient"})
	scoped.Info().Msg("built")

	entry := logLine(t, &buf)
	assert.Equal(t, "httpclient", entry["component"])
}

func TestDisabledDiscardsEverything(t *testing.T) {
	log := Disabled()
	log.Info().Msg("dropped")
	log.Error().Err(errors.New("boom")).Msg("dropped")
	log.Debug().Msgf("dropped %d", 1)
	// Reaching here without output or panic is the assertion.
}

func TestPrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("info", true, &buf)

	log.Info().Str("mode", "console").Msg("pretty line")

	out := buf.String()
	assert.Contains(t, out, "pretty line")
	assert.Contains(t, out, "mode=")
	assert.False(t, json.Valid(buf.Bytes()))
}
