// Package qdrant provides a Qdrant-backed implementation of the
// VectorStore interface. Points are stored with a deterministic UUIDv5
// derived from the document ID; the original ID is kept in the payload.
package qdrant

import (
	"context"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/qdrant/go-client/qdrant"
	"github.com/sableworks/grimoire/pkg/domain/interfaces"
	"github.com/sableworks/grimoire/pkg/domain/model"
	"github.com/sableworks/grimoire/pkg/domain/types"
)

var _ interfaces.VectorStore = (*Store)(nil)

const (
	fieldID      = "id"
	fieldContent = "content"
)

// Store implements interfaces.VectorStore using Qdrant.
type Store struct {
	client     *qdrant.Client
	collection string
	dimension  int
}

type config struct {
	host       string
	port       int
	apiKey     string
	useTLS     bool
	collection string
	dimension  int
}

// Option configures the Store
type Option func(*config)

// WithAPIKey sets the Qdrant API key
func WithAPIKey(key string) Option {
	return func(c *config) {
		c.apiKey = key
	}
}

// WithTLS enables TLS for the Qdrant connection
func WithTLS(enabled bool) Option {
	return func(c *config) {
		c.useTLS = enabled
	}
}

// New connects to Qdrant and ensures the collection exists with a cosine
// distance index of the configured dimension.
func New(ctx context.Context, host string, port int, collection string, dimension int, opts ...Option) (*Store, error) {
	cfg := config{
		host:       host,
		port:       port,
		collection: collection,
		dimension:  dimension,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.collection == "" {
		return nil, goerr.New("collection name is required", goerr.T(types.ErrTagValidation))
	}
	if cfg.dimension <= 0 {
		return nil, goerr.New("dimension must be positive",
			goerr.V("dimension", cfg.dimension),
			goerr.T(types.ErrTagValidation))
	}

	clientCfg := &qdrant.Config{
		Host: cfg.host,
		Port: cfg.port,
	}
	if cfg.apiKey != "" {
		clientCfg.APIKey = cfg.apiKey
	}
	if cfg.useTLS {
		clientCfg.UseTLS = true
	}

	client, err := qdrant.NewClient(clientCfg)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to connect to qdrant",
			goerr.V("host", cfg.host),
			goerr.V("port", cfg.port),
			goerr.T(types.ErrTagDependency))
	}

	s := &Store{
		client:     client,
		collection: cfg.collection,
		dimension:  cfg.dimension,
	}

	if err := s.ensureCollection(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) ensureCollection(ctx context.Context) error {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return goerr.Wrap(err, "failed to check collection",
			goerr.V("collection", s.collection),
			goerr.T(types.ErrTagDependency))
	}
	if exists {
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(s.dimension),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return goerr.Wrap(err, "failed to create collection",
			goerr.V("collection", s.collection),
			goerr.T(types.ErrTagDependency))
	}
	return nil
}

func (s *Store) Insert(ctx context.Context, docs []*model.Document, embeddings [][]float32) error {
	if len(docs) != len(embeddings) {
		return goerr.New("documents and embeddings count mismatch",
			goerr.V("docs", len(docs)),
			goerr.V("embeddings", len(embeddings)),
			goerr.T(types.ErrTagValidation))
	}
	if len(docs) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, 0, len(docs))
	for i, doc := range docs {
		if doc == nil || doc.ID == "" {
			return goerr.New("document ID is required",
				goerr.V("index", i),
				goerr.T(types.ErrTagValidation))
		}
		if len(embeddings[i]) != s.dimension {
			return goerr.New("embedding dimension mismatch",
				goerr.V("id", doc.ID),
				goerr.V("expected", s.dimension),
				goerr.V("actual", len(embeddings[i])),
				goerr.T(types.ErrTagValidation))
		}
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(idToUUID(doc.ID)),
			Vectors: qdrant.NewVectors(embeddings[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				fieldID:      doc.ID,
				fieldContent: doc.Content,
			}),
		})
	}

	if _, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
	}); err != nil {
		return goerr.Wrap(err, "failed to upsert points",
			goerr.V("collection", s.collection),
			goerr.V("count", len(points)),
			goerr.T(types.ErrTagDependency))
	}
	return nil
}

func (s *Store) Search(ctx context.Context, vector []float32, limit int) ([]*model.ScoredDocument, error) {
	if limit < 1 {
		return nil, goerr.New("limit must be positive", goerr.V("limit", limit), goerr.T(types.ErrTagValidation))
	}
	if len(vector) != s.dimension {
		return nil, goerr.New("query vector dimension mismatch",
			goerr.V("expected", s.dimension),
			goerr.V("actual", len(vector)),
			goerr.T(types.ErrTagValidation))
	}

	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query points",
			goerr.V("collection", s.collection),
			goerr.T(types.ErrTagDependency))
	}

	results := make([]*model.ScoredDocument, 0, len(points))
	for _, pt := range points {
		results = append(results, &model.ScoredDocument{
			Document: &model.Document{
				ID:      getPayloadString(pt.Payload, fieldID),
				Content: getPayloadString(pt.Payload, fieldContent),
			},
			Score: pt.Score,
		})
	}
	return results, nil
}

func (s *Store) Exists(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	pointIDs := make([]*qdrant.PointId, len(ids))
	for i, id := range ids {
		pointIDs[i] = qdrant.NewID(idToUUID(id))
	}

	points, err := s.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: s.collection,
		Ids:            pointIDs,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get points",
			goerr.V("collection", s.collection),
			goerr.T(types.ErrTagDependency))
	}

	found := make([]string, 0, len(points))
	for _, pt := range points {
		if id := getPayloadString(pt.Payload, fieldID); id != "" {
			found = append(found, id)
		}
	}
	return found, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	count, err := s.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: s.collection,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count points",
			goerr.V("collection", s.collection),
			goerr.T(types.ErrTagDependency))
	}
	return int(count), nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// pointNamespace is a dedicated UUID namespace for deterministic UUIDv5
// generation from document IDs. Qdrant point IDs must be UUIDs or integers,
// while ATT&CK identifiers like T1059 are neither.
var pointNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

func idToUUID(id string) string {
	if _, err := uuid.Parse(id); err == nil {
		return id
	}
	return uuid.NewSHA1(pointNamespace, []byte(id)).String()
}

func getPayloadString(payload map[string]*qdrant.Value, key string) string {
	if payload == nil {
		return ""
	}
	v, ok := payload[key]
	if !ok || v == nil {
		return ""
	}
	if sv, ok := v.Kind.(*qdrant.Value_StringValue); ok {
		return sv.StringValue
	}
	return ""
}
