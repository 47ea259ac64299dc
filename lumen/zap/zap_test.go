package zap

import (
	"context"
	"testing"

	logpkg "github.com/lumenpay/lib-lumen/lumen/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_ValidatesConfig(t *testing.T) {
	t.Parallel()

	t.Run("missing library name", func(t *testing.T) {
		t.Parallel()

		_, _, err := New(Config{Environment: EnvironmentLocal})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OTelLibraryName")
	})

	t.Run("invalid environment", func(t *testing.T) {
		t.Parallel()

		_, _, err := New(Config{Environment: "staging?", OTelLibraryName: "lumen"})
		require.Error(t, err)
	})

	t.Run("invalid level", func(t *testing.T) {
		t.Parallel()

		_, _, err := New(Config{
			Environment:     EnvironmentProduction,
			Level:           "loudest",
			OTelLibraryName: "lumen",
		})
		require.Error(t, err)
	})
}

func TestNew_LevelResolution(t *testing.T) {
	t.Parallel()

	t.Run("explicit level wins", func(t *testing.T) {
		t.Parallel()

		logger, level, err := New(Config{
			Environment:     EnvironmentLocal,
			Level:           "warn",
			OTelLibraryName: "lumen",
		})
		require.NoError(t, err)
		assert.Equal(t, zapcore.WarnLevel, level.Level())
		assert.False(t, logger.Enabled(logpkg.LevelInfo))
		assert.True(t, logger.Enabled(logpkg.LevelError))
	})

	t.Run("development defaults to debug", func(t *testing.T) {
		t.Parallel()

		_, level, err := New(Config{
			Environment:     EnvironmentDevelopment,
			OTelLibraryName: "lumen",
		})
		require.NoError(t, err)
		assert.Equal(t, zapcore.DebugLevel, level.Level())
	})

	t.Run("production defaults to info", func(t *testing.T) {
		t.Parallel()

		_, level, err := New(Config{
			Environment:     EnvironmentProduction,
			OTelLibraryName: "lumen",
		})
		require.NoError(t, err)
		assert.Equal(t, zapcore.InfoLevel, level.Level())
	})
}

func TestLogger_NilReceiverIsSafe(t *testing.T) {
	t.Parallel()

	var logger *Logger

	// Must not panic; must report disabled.
	logger.Log(context.Background(), logpkg.LevelError, "dropped")
	assert.False(t, logger.Enabled(logpkg.LevelError))
}

func TestLogger_WithReturnsChild(t *testing.T) {
	t.Parallel()

	logger, _, err := New(Config{
		Environment:     EnvironmentLocal,
		OTelLibraryName: "lumen",
	})
	require.NoError(t, err)

	child := logger.With(logpkg.String("run_id", "abc"))
	require.NotNil(t, child)
	assert.NotSame(t, logger, child)
}
