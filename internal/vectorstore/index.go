package vectorstore

import "context"

// Match is a single nearest-neighbor result. Metadata carries the stored
// fields of the matched document; the resolver reads the "solution" key.
type Match struct {
	ID       string
	Score    float64
	Metadata map[string]string
}

// SolutionIndex defines the interface for vector-similarity lookups over the
// support solution corpus.
type SolutionIndex interface {
	Query(ctx context.Context, vector []float32, topK int) ([]Match, error)
}

// Embedder turns text into a query vector for the solution index.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
