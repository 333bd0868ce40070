package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		development bool
		wantLevel   zap.AtomicLevel
	}{
		{name: "production info", level: "info", wantLevel: zap.NewAtomicLevelAt(zap.InfoLevel)},
		{name: "development debug", level: "debug", development: true, wantLevel: zap.NewAtomicLevelAt(zap.DebugLevel)},
		{name: "upper case level", level: "WARN", wantLevel: zap.NewAtomicLevelAt(zap.WarnLevel)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.level, tt.development)
			require.NoError(t, err)
			defer logger.Sync()

			assert.True(t, logger.Core().Enabled(tt.wantLevel.Level()))
			assert.False(t, logger.Core().Enabled(tt.wantLevel.Level()-1))
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("chatty", false)
	assert.Error(t, err)
}
