package interfaces

import "context"

// GenerationClient defines the interface for the external text-completion
// engine. Synchronous request/response; no streaming, no automatic retry.
type GenerationClient interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Embedder converts free text into embedding vectors.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}
