package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestRejected(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "info", "json")
	t.Cleanup(func() { Initialize("info", "text") })

	Rejected(11, "HANDOVER/IDENTITY_CHECK", "PROCEED", errors.New("flagged"), false)
	Rejected(11, "HANDOVER/IDENTITY_CHECK", "SUBMIT_IDENTITY", errors.New("timeout"), true)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.NoError(t, json.Unmarshal(lines[1], &second))
	assert.Equal(t, "WARN", first["level"])
	assert.Equal(t, "PROCEED", first["event"])
	assert.Equal(t, "ERROR", second["level"])
	assert.Equal(t, float64(11), second["booking_id"])
}

func TestDebugHelpersRespectLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "info", "text")
	t.Cleanup(func() { Initialize("info", "text") })

	DatabaseCall("SELECT", "bookings", "id", 1)
	DatabaseResult("SELECT", 1, nil)
	assert.Empty(t, buf.String())

	DatabaseResult("SELECT", 0, errors.New("connection reset"))
	assert.Contains(t, buf.String(), "connection reset")
}
