package interfaces

import (
	"context"

	"github.com/sableworks/grimoire/pkg/domain/model"
)

// VectorStore defines the interface for Document persistence with
// similarity search. The indexing and ranking algorithm is owned by the
// backend, not by this system.
type VectorStore interface {
	// Insert stores documents with their embedding vectors. It fails if
	// any document ID already exists; nothing is written in that case.
	Insert(ctx context.Context, docs []*model.Document, embeddings [][]float32) error

	// Search returns up to limit documents ranked most similar first.
	// An empty collection yields an empty slice, never an error.
	Search(ctx context.Context, vector []float32, limit int) ([]*model.ScoredDocument, error)

	// Exists reports which of the given IDs are already stored.
	Exists(ctx context.Context, ids []string) ([]string, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)

	// Close releases the backend connection.
	Close() error
}
