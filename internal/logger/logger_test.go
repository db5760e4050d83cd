package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{name: "json info", level: "info", format: "json", enabled: zapcore.InfoLevel, muted: zapcore.DebugLevel},
		{name: "console debug", level: "debug", format: "console", enabled: zapcore.DebugLevel, muted: zapcore.DebugLevel - 1},
		{name: "unknown level falls back to info", level: "loud", format: "", enabled: zapcore.InfoLevel, muted: zapcore.DebugLevel},
		{name: "error", level: "ERROR", format: "json", enabled: zapcore.ErrorLevel, muted: zapcore.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.level, tt.format, "armhub-seatdesk")
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.enabled))
			assert.False(t, l.Core().Enabled(tt.muted))
		})
	}
}
