package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sableworks/grimoire/pkg/domain/interfaces"
	"github.com/sableworks/grimoire/pkg/repository/memory"
	"github.com/sableworks/grimoire/pkg/repository/qdrant"
	"github.com/sableworks/grimoire/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Store holds CLI flags for vector store backend configuration
type Store struct {
	backend    string
	host       string
	port       int
	apiKey     string
	useTLS     bool
	collection string
	dimension  int
}

// Flags returns CLI flags for store configuration
func (s *Store) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "store-backend",
			Usage:       "Vector store backend type (qdrant or memory)",
			Value:       "qdrant",
			Sources:     cli.EnvVars("GRIMOIRE_STORE_BACKEND"),
			Destination: &s.backend,
		},
		&cli.StringFlag{
			Name:        "qdrant-host",
			Usage:       "Qdrant host",
			Value:       "localhost",
			Sources:     cli.EnvVars("GRIMOIRE_QDRANT_HOST"),
			Destination: &s.host,
		},
		&cli.IntFlag{
			Name:        "qdrant-port",
			Usage:       "Qdrant gRPC port",
			Value:       6334,
			Sources:     cli.EnvVars("GRIMOIRE_QDRANT_PORT"),
			Destination: &s.port,
		},
		&cli.StringFlag{
			Name:        "qdrant-api-key",
			Usage:       "Qdrant API key",
			Sources:     cli.EnvVars("GRIMOIRE_QDRANT_API_KEY"),
			Destination: &s.apiKey,
		},
		&cli.BoolFlag{
			Name:        "qdrant-tls",
			Usage:       "Use TLS for the Qdrant connection",
			Sources:     cli.EnvVars("GRIMOIRE_QDRANT_TLS"),
			Destination: &s.useTLS,
		},
		&cli.StringFlag{
			Name:        "collection",
			Usage:       "Knowledge base collection name",
			Value:       "docs",
			Sources:     cli.EnvVars("GRIMOIRE_COLLECTION"),
			Destination: &s.collection,
		},
		&cli.IntFlag{
			Name:        "embedding-dimension",
			Usage:       "Embedding vector dimension (must match the embedding model)",
			Value:       768,
			Sources:     cli.EnvVars("GRIMOIRE_EMBEDDING_DIMENSION"),
			Destination: &s.dimension,
		},
	}
}

// Configure initializes and returns a vector store based on the configured
// backend. The caller is responsible for calling Close() on the returned
// store.
func (s *Store) Configure(ctx context.Context) (interfaces.VectorStore, error) {
	switch s.backend {
	case "qdrant":
		var opts []qdrant.Option
		if s.apiKey != "" {
			opts = append(opts, qdrant.WithAPIKey(s.apiKey))
		}
		if s.useTLS {
			opts = append(opts, qdrant.WithTLS(true))
		}
		store, err := qdrant.New(ctx, s.host, s.port, s.collection, s.dimension, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize qdrant store")
		}
		logging.Default().Info("Using Qdrant vector store",
			"host", s.host,
			"port", s.port,
			"collection", s.collection,
			"dimension", s.dimension,
		)
		return store, nil

	case "memory":
		logging.Default().Info("Using in-memory vector store (development mode)")
		return memory.New(), nil

	default:
		return nil, goerr.New("invalid store backend", goerr.V("backend", s.backend))
	}
}
