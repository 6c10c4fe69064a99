// Package knowledge is the client-side boundary of the external
// similarity store: it pairs an embedder with a vector store and enforces
// the collection invariants (matched texts/ids, unique identifiers).
package knowledge

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sableworks/grimoire/pkg/domain/interfaces"
	"github.com/sableworks/grimoire/pkg/domain/model"
	"github.com/sableworks/grimoire/pkg/domain/types"
)

// Service adds and queries documents in the knowledge base.
type Service struct {
	embedder interfaces.Embedder
	store    interfaces.VectorStore
}

// New creates a knowledge service with the provided embedder and store
func New(embedder interfaces.Embedder, store interfaces.VectorStore) (*Service, error) {
	if embedder == nil {
		return nil, goerr.New("embedder is required")
	}
	if store == nil {
		return nil, goerr.New("vector store is required")
	}

	return &Service{
		embedder: embedder,
		store:    store,
	}, nil
}

// Add embeds and stores the given texts under the given IDs. Duplicate
// identifiers are rejected, both within the batch and against the stored
// collection; nothing is written for a rejected batch.
func (s *Service) Add(ctx context.Context, texts []string, ids []string) error {
	if len(texts) != len(ids) {
		return goerr.New("texts and ids count mismatch",
			goerr.V("texts", len(texts)),
			goerr.V("ids", len(ids)),
			goerr.T(types.ErrTagValidation))
	}
	if len(texts) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return goerr.New("document ID is required", goerr.T(types.ErrTagValidation))
		}
		if _, ok := seen[id]; ok {
			return goerr.New("duplicate document ID in batch",
				goerr.V("id", id),
				goerr.T(types.ErrTagValidation))
		}
		seen[id] = struct{}{}
	}

	existing, err := s.store.Exists(ctx, ids)
	if err != nil {
		return goerr.Wrap(err, "failed to check existing documents")
	}
	if len(existing) > 0 {
		return goerr.New("document ID already exists",
			goerr.V("ids", existing),
			goerr.T(types.ErrTagValidation))
	}

	embeddings, err := s.embedder.GenerateEmbedding(ctx, texts)
	if err != nil {
		return goerr.Wrap(err, "failed to embed documents")
	}

	docs := make([]*model.Document, len(texts))
	for i := range texts {
		docs[i] = &model.Document{ID: ids[i], Content: texts[i]}
	}

	if err := s.store.Insert(ctx, docs, embeddings); err != nil {
		return goerr.Wrap(err, "failed to store documents")
	}
	return nil
}

// Existing reports which of the given IDs are already stored.
func (s *Service) Existing(ctx context.Context, ids []string) ([]string, error) {
	return s.store.Exists(ctx, ids)
}

// Query embeds the text and returns up to limit documents ranked most
// similar first. An empty collection yields an empty result, never an
// error.
func (s *Service) Query(ctx context.Context, text string, limit int) ([]*model.ScoredDocument, error) {
	if limit < 1 {
		return nil, goerr.New("limit must be positive",
			goerr.V("limit", limit),
			goerr.T(types.ErrTagValidation))
	}

	embeddings, err := s.embedder.GenerateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to embed query")
	}
	if len(embeddings) == 0 {
		return nil, goerr.New("embedder returned no vector", goerr.T(types.ErrTagDependency))
	}

	results, err := s.store.Search(ctx, embeddings[0], limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search documents")
	}
	return results, nil
}

// Count returns the number of stored documents.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}
