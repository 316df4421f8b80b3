package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(Te *testing.T) {
	L, err := New("warn", "json")
	require.NoError(Te, err)
	assert.False(Te, L.Core().Enabled(zapcore.InfoLevel))
	assert.True(Te, L.Core().Enabled(zapcore.WarnLevel))

	L, err = New("", "")
	require.NoError(Te, err)
	assert.True(Te, L.Core().Enabled(zapcore.InfoLevel))
	assert.False(Te, L.Core().Enabled(zapcore.DebugLevel))

	_, err = New("loud", "json")
	assert.Error(Te, err)
	_, err = New("info", "xml")
	assert.Error(Te, err)
}
