package vectorstore

import (
	"context"
	"testing"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ixome/troubleshooter/internal/config"
)

// Dimension mismatches must be rejected before any SQL runs; otherwise
// Postgres raises per-row "different vector dimensions" errors that the
// resolver would silently absorb into the catalog fallback.
func TestStoreRejectsMismatchedDimensions(t *testing.T) {
	s := &Store{dim: 8, log: zap.NewNop()}

	err := s.Upsert(context.Background(), &SupportSolution{
		Problem:   "short vector",
		Embedding: pgvector.NewVector(make([]float32, 4)),
	})
	assert.ErrorContains(t, err, "does not match index dimension")

	_, err = s.Query(context.Background(), make([]float32, 768), 1)
	assert.ErrorContains(t, err, "does not match index dimension")
}

// The loader and the resolver share one embedder configuration, so vectors
// written and vectors queried always agree with the store dimension.
func TestEmbedderMatchesStoreDimension(t *testing.T) {
	cfg := &config.Config{EmbeddingProvider: "placeholder", EmbedDim: 32}

	embedder, err := NewEmbedderFromConfig(cfg)
	require.NoError(t, err)

	vec, err := embedder.Embed(context.Background(), "My TV has no sound.")
	require.NoError(t, err)

	s := &Store{dim: cfg.EmbedDim, log: zap.NewNop()}
	assert.Len(t, vec, s.Dim())
}

func TestNewEmbedderFromConfigOllama(t *testing.T) {
	cfg := &config.Config{
		EmbeddingProvider: "ollama",
		OllamaBaseURL:     "http://localhost:11434",
		OllamaModel:       "nomic-embed-text",
	}

	embedder, err := NewEmbedderFromConfig(cfg)
	require.NoError(t, err)
	assert.IsType(t, &OllamaEmbedder{}, embedder)
}

func TestOpenRejectsInvalidDimension(t *testing.T) {
	_, err := Open("postgres://localhost/troubleshooter", 0, zap.NewNop())
	assert.ErrorContains(t, err, "invalid embedding dimension")
}
