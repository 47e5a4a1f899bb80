package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConfig(t *testing.T) {
	cases := []struct {
		name     string
		debug    bool
		encoding string
		level    zap.AtomicLevel
	}{
		{"production", false, "json", zap.NewAtomicLevelAt(zap.InfoLevel)},
		{"debug", true, "console", zap.NewAtomicLevelAt(zap.DebugLevel)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Config(c.debug)
			assert.Equal(t, c.encoding, cfg.Encoding)
			assert.Equal(t, c.level.Level(), cfg.Level.Level())
			assert.Equal(t, c.debug, cfg.Development)
		})
	}
}

func TestNew(t *testing.T) {
	logger, err := New(false)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))

	dev, err := New(true)
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zap.DebugLevel))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}
