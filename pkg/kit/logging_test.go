package kit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"MiniCatalog/pkg/kit"
)

func TestNewLogger_Level(t *testing.T) {
	log, err := kit.NewLogger("catalog", "warn")
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNewLogger_BadLevel(t *testing.T) {
	_, err := kit.NewLogger("catalog", "chatty")
	assert.Error(t, err)
}
