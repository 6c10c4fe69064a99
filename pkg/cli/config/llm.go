package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sableworks/grimoire/pkg/service/ollama"
	"github.com/urfave/cli/v3"
)

// LLM holds CLI flags for the Ollama generation and embedding client
type LLM struct {
	host       string
	model      string
	embedModel string
}

// Flags returns CLI flags for LLM configuration
func (l *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "ollama-host",
			Usage:       "Ollama base URL",
			Value:       "http://localhost:11434",
			Sources:     cli.EnvVars("GRIMOIRE_OLLAMA_HOST"),
			Destination: &l.host,
		},
		&cli.StringFlag{
			Name:        "model",
			Usage:       "Generation model name",
			Value:       "tinyllama",
			Sources:     cli.EnvVars("MODEL_NAME", "GRIMOIRE_MODEL"),
			Destination: &l.model,
		},
		&cli.StringFlag{
			Name:        "embedding-model",
			Usage:       "Embedding model name",
			Value:       "nomic-embed-text",
			Sources:     cli.EnvVars("GRIMOIRE_EMBEDDING_MODEL"),
			Destination: &l.embedModel,
		},
	}
}

// Model returns the configured generation model name
func (l *LLM) Model() string {
	return l.model
}

// Configure creates the Ollama client from the configured flags
func (l *LLM) Configure() (*ollama.Client, error) {
	client, err := ollama.New(l.host, l.embedModel)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create ollama client")
	}
	return client, nil
}

// LogValue returns the LLM configuration as a structured log value
func (l *LLM) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("host", l.host),
		slog.String("model", l.model),
		slog.String("embedding_model", l.embedModel),
	)
}
