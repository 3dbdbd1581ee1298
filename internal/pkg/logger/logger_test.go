package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_Fields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")

	log.WithFields(map[string]interface{}{
		"alert_id": 42,
		"channel":  "email",
	}).ErrorWithErr(errors.New("dial tcp: refused"), "Notification delivery failed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, float64(42), entry["alert_id"])
	assert.Equal(t, "email", entry["channel"])
	assert.Equal(t, "dial tcp: refused", entry["error"])
	assert.Equal(t, "Notification delivery failed", entry["message"])
}

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel_Default(t *testing.T) {
	assert.Equal(t, parseLevel("info"), parseLevel("verbose"))
}
