package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/randomizedcoder/mpmc-ring/internal/logging"
)

func TestNew(t *testing.T) {
	for _, dev := range []bool{false, true} {
		logger, err := logging.New("warn", dev)
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	}
}

func TestNew_DebugLevel(t *testing.T) {
	logger, err := logging.New("debug", false)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_BadLevel(t *testing.T) {
	_, err := logging.New("loud", false)
	require.Error(t, err)
}
