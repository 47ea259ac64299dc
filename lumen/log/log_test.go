package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_String(t *testing.T) {
	t.Parallel()

	cases := []struct {
		level Level
		want  string
	}{
		{LevelError, "error"},
		{LevelWarn, "warn"},
		{LevelInfo, "info"},
		{LevelDebug, "debug"},
		{Level(42), "unknown"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.level.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	t.Run("valid levels", func(t *testing.T) {
		t.Parallel()

		for input, want := range map[string]Level{
			"debug":   LevelDebug,
			"INFO":    LevelInfo,
			"warn":    LevelWarn,
			"warning": LevelWarn,
			"Error":   LevelError,
		} {
			got, err := ParseLevel(input)
			require.NoError(t, err, "input %q", input)
			assert.Equal(t, want, got, "input %q", input)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		t.Parallel()

		_, err := ParseLevel("verbose")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "verbose")
	})
}

func TestField_Constructors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Field{Key: "seq", Value: int64(7)}, Int64("seq", 7))
	assert.Equal(t, Field{Key: "found", Value: true}, Bool("found", true))
	assert.Equal(t, Field{Key: "account", Value: "GABC"}, String("account", "GABC"))

	err := assert.AnError
	assert.Equal(t, Field{Key: "error", Value: err}, Err(err))
}

func TestNopLogger(t *testing.T) {
	t.Parallel()

	logger := NewNop()

	// Must never panic and never report itself as enabled.
	logger.Log(context.Background(), LevelError, "dropped", String("k", "v"))
	assert.False(t, logger.Enabled(LevelError))
	assert.Same(t, logger, logger.With(String("k", "v")))
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	t.Run("escapes control characters", func(t *testing.T) {
		t.Parallel()

		got := Sanitize("line1\nline2\rtab\there")
		assert.Equal(t, `line1\nline2\rtab\there`, got)
	})

	t.Run("passes clean strings through", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "tx_bad_seq", Sanitize("tx_bad_seq"))
	})
}

func TestSanitizeFields(t *testing.T) {
	t.Parallel()

	fields := []Field{
		String("reason", "fake\nentry"),
		Int64("sequence", 5),
	}

	sanitized := SanitizeFields(fields)

	require.Len(t, sanitized, 2)
	assert.Equal(t, `fake\nentry`, sanitized[0].Value)
	assert.Equal(t, int64(5), sanitized[1].Value)
}
