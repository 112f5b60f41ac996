package embedding

import "context"

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	// Probe validates the provider's credential without producing output
	// the caller keeps.
	Probe(ctx context.Context) error
}
