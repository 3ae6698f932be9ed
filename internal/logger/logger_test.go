package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("component", "content").Warn("cache write failed", "lesson_id", "vocab-greetings")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "cache write failed", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "content", fields["component"])
	assert.Equal(t, "vocab-greetings", fields["lesson_id"])
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := Nop()
	assert.Same(t, l, OrNop(l))
	// Must not panic.
	OrNop(nil).Info("discarded")
}

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "warn", "error"} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		require.NotNil(t, l)
	}

	l, err := New("warn")
	require.NoError(t, err)
	assert.False(t, l.SugaredLogger.Desugar().Core().Enabled(zap.InfoLevel))
	assert.True(t, l.SugaredLogger.Desugar().Core().Enabled(zap.WarnLevel))
}
