package vectorstore

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/ixome/troubleshooter/internal/config"
)

// NewEmbedderFromConfig selects the embedding provider. EMBED_DIM must
// match the provider's output dimension; the placeholder matches by
// construction, a real model (e.g. nomic-embed-text emits 768) requires
// setting EMBED_DIM accordingly or the store rejects its vectors.
func NewEmbedderFromConfig(cfg *config.Config) (Embedder, error) {
	switch cfg.EmbeddingProvider {
	case "ollama":
		return NewOllamaEmbedder(cfg.OllamaBaseURL, cfg.OllamaModel)
	default:
		return NewPlaceholderEmbedder(cfg.EmbedDim), nil
	}
}

// PlaceholderEmbedder returns a constant vector regardless of input. It
// reproduces the fixed query vector the service shipped with; queries made
// with it rank every document identically, so top-1 is effectively arbitrary.
// Select a real provider via EMBEDDING_PROVIDER to get meaningful retrieval.
type PlaceholderEmbedder struct {
	dim int
}

func NewPlaceholderEmbedder(dim int) *PlaceholderEmbedder {
	return &PlaceholderEmbedder{dim: dim}
}

func (p *PlaceholderEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	vec := make([]float32, p.dim)
	for i := range vec {
		vec[i] = 0.1
	}
	return vec, nil
}

// OllamaEmbedder generates real embeddings with a local Ollama model.
type OllamaEmbedder struct {
	embedder *embeddings.EmbedderImpl
}

func NewOllamaEmbedder(baseURL, model string) (*OllamaEmbedder, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(baseURL),
		ollama.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	return &OllamaEmbedder{embedder: embedder}, nil
}

func (o *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return o.embedder.EmbedQuery(ctx, text)
}
