// Package mitre fetches the MITRE ATT&CK STIX bundle and extracts
// technique records suitable for ingestion into the knowledge base.
package mitre

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sableworks/grimoire/pkg/domain/interfaces"
	"github.com/sableworks/grimoire/pkg/domain/model"
	"github.com/sableworks/grimoire/pkg/domain/types"
	"github.com/sableworks/grimoire/pkg/utils/safe"
)

// DefaultSourceURL is the upstream enterprise ATT&CK STIX 2.1 bundle.
const DefaultSourceURL = "https://raw.githubusercontent.com/mitre/cti/master/enterprise-attack/enterprise-attack.json"

var _ interfaces.TechniqueSource = (*Service)(nil)

// Service downloads and parses the ATT&CK dataset.
type Service struct {
	httpClient *http.Client
	sourceURL  string
}

// Option is a functional option for service configuration
type Option func(*Service)

// WithHTTPClient replaces the HTTP client used to fetch the dataset
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Service) {
		s.httpClient = hc
	}
}

// WithSourceURL overrides the dataset location
func WithSourceURL(u string) Option {
	return func(s *Service) {
		s.sourceURL = u
	}
}

// New creates a MITRE dataset service
func New(opts ...Option) *Service {
	s := &Service{
		httpClient: http.DefaultClient,
		sourceURL:  DefaultSourceURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchTechniques downloads the dataset and returns all active technique
// records. Network and HTTP failures are surfaced to the caller, never
// retried silently.
func (s *Service) FetchTechniques(ctx context.Context) ([]*model.Technique, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.sourceURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build dataset request",
			goerr.V("url", s.sourceURL),
			goerr.T(types.ErrTagFetch))
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch dataset",
			goerr.V("url", s.sourceURL),
			goerr.T(types.ErrTagFetch))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected dataset response status",
			goerr.V("url", s.sourceURL),
			goerr.V("status", resp.StatusCode),
			goerr.T(types.ErrTagFetch))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read dataset body",
			goerr.V("url", s.sourceURL),
			goerr.T(types.ErrTagFetch))
	}

	return Parse(data)
}

// stixBundle is the subset of a STIX 2.1 bundle this service reads.
type stixBundle struct {
	Objects []stixObject `json:"objects"`
}

type stixObject struct {
	Type               string          `json:"type"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Revoked            bool            `json:"revoked"`
	Deprecated         bool            `json:"x_mitre_deprecated"`
	ExternalReferences []stixReference `json:"external_references"`
}

type stixReference struct {
	SourceName string `json:"source_name"`
	ExternalID string `json:"external_id"`
}

// externalID returns the ATT&CK identifier (e.g. T1059) of the object,
// or an empty string when none is present.
func (o *stixObject) externalID() string {
	for _, ref := range o.ExternalReferences {
		if ref.SourceName == "mitre-attack" && ref.ExternalID != "" {
			return ref.ExternalID
		}
	}
	return ""
}

// Parse extracts technique records from a raw STIX bundle, skipping
// revoked and deprecated entries and entries without an ATT&CK ID.
func Parse(data []byte) ([]*model.Technique, error) {
	var bundle stixBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, goerr.Wrap(err, "failed to parse STIX bundle", goerr.T(types.ErrTagParse))
	}

	techniques := make([]*model.Technique, 0, len(bundle.Objects))
	for _, obj := range bundle.Objects {
		if obj.Type != "attack-pattern" {
			continue
		}
		if obj.Revoked || obj.Deprecated {
			continue
		}

		id := obj.externalID()
		if id == "" || obj.Name == "" {
			continue
		}

		techniques = append(techniques, &model.Technique{
			ID:          id,
			Name:        obj.Name,
			Description: obj.Description,
		})
	}

	return techniques, nil
}
