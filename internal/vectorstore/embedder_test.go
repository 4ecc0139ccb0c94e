package vectorstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderEmbedder(t *testing.T) {
	e := NewPlaceholderEmbedder(1536)

	vec, err := e.Embed(context.Background(), "My TV has no sound.")
	require.NoError(t, err)
	require.Len(t, vec, 1536)
	for _, v := range vec {
		assert.InDelta(t, 0.1, v, 1e-6)
	}

	// Input-independent, so any two queries produce the same vector.
	other, err := e.Embed(context.Background(), "completely different text")
	require.NoError(t, err)
	assert.Equal(t, vec, other)
}
