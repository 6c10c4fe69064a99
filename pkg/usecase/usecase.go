package usecase

import (
	"github.com/sableworks/grimoire/pkg/domain/interfaces"
	"github.com/sableworks/grimoire/pkg/domain/types"
	"github.com/sableworks/grimoire/pkg/service/knowledge"
)

const (
	defaultTopK = 3

	// maxQuestionLen bounds inbound question size. The store and engine
	// have their own limits; this keeps obviously abusive inputs out.
	maxQuestionLen = 4096
)

// UseCases coordinates retrieval, prompt assembly, generation and
// ingestion. Stateless across requests; all collaborators are injected at
// construction and read-only afterwards.
type UseCases struct {
	knowledge *knowledge.Service
	genClient interfaces.GenerationClient
	source    interfaces.TechniqueSource
	model     string
	variant   types.PromptVariant
	topK      int
}

// Option is a functional option for UseCases configuration
type Option func(*UseCases)

// WithTechniqueSource enables the ingestion pipeline
func WithTechniqueSource(src interfaces.TechniqueSource) Option {
	return func(uc *UseCases) {
		uc.source = src
	}
}

// WithPromptVariant selects the prompt framing
func WithPromptVariant(v types.PromptVariant) Option {
	return func(uc *UseCases) {
		uc.variant = v
	}
}

// WithTopK sets how many context documents are retrieved per question
func WithTopK(k int) Option {
	return func(uc *UseCases) {
		uc.topK = k
	}
}

// New creates the use case layer. model is the generation model name
// passed through to the engine on every request.
func New(knowledgeSvc *knowledge.Service, genClient interfaces.GenerationClient, model string, opts ...Option) *UseCases {
	uc := &UseCases{
		knowledge: knowledgeSvc,
		genClient: genClient,
		model:     model,
		variant:   types.VariantSecurityExpert,
		topK:      defaultTopK,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
