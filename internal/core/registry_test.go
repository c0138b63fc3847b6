package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry[int]()

	require.NoError(t, r.Register("b", 2))
	require.NoError(t, r.Register("a", 1))
	assert.ErrorIs(t, r.Register("a", 3), ErrExists)
	assert.Error(t, r.Register("", 0))

	v, err := r.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = r.Lookup("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []string{"a", "b"}, r.Names())
}
