package window

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnknownBackend(t *testing.T) {
	_, err := New(Config{Backend: "vulkan"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInit))
}
