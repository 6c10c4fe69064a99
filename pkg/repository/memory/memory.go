package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sableworks/grimoire/pkg/domain/interfaces"
	"github.com/sableworks/grimoire/pkg/domain/model"
	"github.com/sableworks/grimoire/pkg/domain/types"
)

var _ interfaces.VectorStore = (*Store)(nil)

type entry struct {
	doc    model.Document
	vector []float32
}

// Store is an in-memory VectorStore for development and testing.
// Ranking uses cosine similarity.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New creates an empty in-memory store
func New() *Store {
	return &Store{
		entries: make(map[string]entry),
	}
}

func (s *Store) Insert(ctx context.Context, docs []*model.Document, embeddings [][]float32) error {
	if len(docs) != len(embeddings) {
		return goerr.New("documents and embeddings count mismatch",
			goerr.V("docs", len(docs)),
			goerr.V("embeddings", len(embeddings)),
			goerr.T(types.ErrTagValidation))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Reject the whole batch before mutating anything so a failed insert
	// leaves the collection untouched.
	for _, doc := range docs {
		if doc == nil || doc.ID == "" {
			return goerr.New("document ID is required", goerr.T(types.ErrTagValidation))
		}
		if _, exists := s.entries[doc.ID]; exists {
			return goerr.New("document ID already exists",
				goerr.V("id", doc.ID),
				goerr.T(types.ErrTagValidation))
		}
	}

	for i, doc := range docs {
		vec := make([]float32, len(embeddings[i]))
		copy(vec, embeddings[i])
		s.entries[doc.ID] = entry{
			doc:    model.Document{ID: doc.ID, Content: doc.Content},
			vector: vec,
		}
	}

	return nil
}

func (s *Store) Search(ctx context.Context, vector []float32, limit int) ([]*model.ScoredDocument, error) {
	if limit < 1 {
		return nil, goerr.New("limit must be positive", goerr.V("limit", limit), goerr.T(types.ErrTagValidation))
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*model.ScoredDocument, 0, len(s.entries))
	for _, e := range s.entries {
		doc := e.doc
		results = append(results, &model.ScoredDocument{
			Document: &doc,
			Score:    cosine(vector, e.vector),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Document.ID < results[j].Document.ID
	})

	if limit < len(results) {
		results = results[:limit]
	}
	return results, nil
}

func (s *Store) Exists(ctx context.Context, ids []string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := s.entries[id]; ok {
			found = append(found, id)
		}
	}
	return found, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

func (s *Store) Close() error {
	return nil
}

func cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
