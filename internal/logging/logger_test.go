package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"info", "info", slog.LevelInfo},
		{"debug", "debug", slog.LevelDebug},
		{"trace", "trace", LevelTrace},
		{"uppercase DEBUG", "DEBUG", slog.LevelDebug},
		{"mixed case Trace", "Trace", LevelTrace},
		{"unknown defaults to info", "loud", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		logAtDebug bool
		logAtTrace bool
	}{
		{"info filters debug", "info", false, false},
		{"debug passes debug", "debug", true, false},
		{"trace passes everything", "trace", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(tt.level, &buf)
			require.NotNil(t, logger)

			logger.Debug("debug message")
			assert.Equal(t, tt.logAtDebug, bytes.Contains(buf.Bytes(), []byte("debug message")))

			buf.Reset()
			logger.Log(context.Background(), LevelTrace, "trace message")
			assert.Equal(t, tt.logAtTrace, bytes.Contains(buf.Bytes(), []byte("trace message")))
			if tt.logAtTrace {
				assert.Contains(t, buf.String(), "level=TRACE")
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
