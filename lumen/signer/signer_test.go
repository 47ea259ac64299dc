package signer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDenied_Classification(t *testing.T) {
	t.Parallel()

	err := Denied("User declined access")

	require.ErrorIs(t, err, ErrDenied)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "User declined access")
}

func TestDenied_EmptyMessage(t *testing.T) {
	t.Parallel()

	err := Denied("")
	require.ErrorIs(t, err, ErrDenied)
	assert.Equal(t, ErrDenied.Error(), err.Error())
}

func TestDeniedMessage(t *testing.T) {
	t.Parallel()

	t.Run("extracts from wrapped chain", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("stage failed: %w", Denied("User declined access"))
		assert.Equal(t, "User declined access", DeniedMessage(err))
	})

	t.Run("bare sentinel", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, ErrDenied.Error(), DeniedMessage(ErrDenied))
	})

	t.Run("non-denial", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, DeniedMessage(errors.New("boom")))
		assert.Empty(t, DeniedMessage(ErrUnavailable))
	})
}
