// Package ollama wraps the official Ollama API client as the generation
// engine and embedder of the knowledge base.
package ollama

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/ollama/ollama/api"
	"github.com/sableworks/grimoire/pkg/domain/interfaces"
	"github.com/sableworks/grimoire/pkg/domain/types"
)

var (
	_ interfaces.GenerationClient = (*Client)(nil)
	_ interfaces.Embedder         = (*Client)(nil)
)

// Client talks to a local or remote Ollama daemon.
type Client struct {
	api        *api.Client
	embedModel string
}

// Option is a functional option for client configuration
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Used by tests and
// callers that need custom transport settings.
func WithHTTPClient(host *url.URL, hc *http.Client) Option {
	return func(c *Client) {
		c.api = api.NewClient(host, hc)
	}
}

// New creates an Ollama client for the given host URL
// (e.g. http://localhost:11434) and embedding model.
func New(host, embedModel string, opts ...Option) (*Client, error) {
	if embedModel == "" {
		return nil, goerr.New("embedding model is required", goerr.T(types.ErrTagValidation))
	}

	u, err := url.Parse(host)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid ollama host", goerr.V("host", host), goerr.T(types.ErrTagValidation))
	}

	c := &Client{
		api:        api.NewClient(u, http.DefaultClient),
		embedModel: embedModel,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Generate sends the prompt to the engine and returns the completion text.
// Fatal to the request on failure; not retried.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: &stream,
	}

	var sb strings.Builder
	err := c.api.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", goerr.Wrap(err, "generation request failed",
			goerr.V("model", model),
			goerr.T(types.ErrTagDependency))
	}

	return sb.String(), nil
}

// GenerateEmbedding returns one embedding vector per input text, using the
// configured embedding model.
func (c *Client) GenerateEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := c.api.Embed(ctx, &api.EmbedRequest{
		Model: c.embedModel,
		Input: texts,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "embedding request failed",
			goerr.V("model", c.embedModel),
			goerr.V("texts", len(texts)),
			goerr.T(types.ErrTagDependency))
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, goerr.New("unexpected embedding count",
			goerr.V("expected", len(texts)),
			goerr.V("actual", len(resp.Embeddings)),
			goerr.T(types.ErrTagDependency))
	}

	return resp.Embeddings, nil
}
