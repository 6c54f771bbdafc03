package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level   string
		verbose bool
		want    zapcore.Level
	}{
		{"", false, zapcore.InfoLevel},
		{"warn", false, zapcore.WarnLevel},
		{"ERROR", false, zapcore.ErrorLevel},
		{"warn", true, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		logger, err := New(tt.level, tt.verbose)
		require.NoError(t, err)
		assert.Equal(t, tt.want, logger.Level(), "level=%q verbose=%v", tt.level, tt.verbose)
	}
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New("chatty", false)
	assert.Error(t, err)
}
