package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sableworks/grimoire/pkg/domain/model"
	"github.com/sableworks/grimoire/pkg/domain/types"
	"github.com/sableworks/grimoire/pkg/service/prompt"
	"github.com/sableworks/grimoire/pkg/utils/logging"
)

// Ask answers a question grounded in the knowledge base:
// retrieve top-k context, assemble a prompt, generate, shape the response.
// The query path never writes to the store.
func (uc *UseCases) Ask(ctx context.Context, question string) (*model.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, goerr.New("question is required", goerr.T(types.ErrTagValidation))
	}
	if len(question) > maxQuestionLen {
		return nil, goerr.New("question is too long",
			goerr.V("length", len(question)),
			goerr.V("max", maxQuestionLen),
			goerr.T(types.ErrTagValidation))
	}

	logging.From(ctx).Info("question received", "question", question, "variant", uc.variant)

	hits, err := uc.knowledge.Query(ctx, question, uc.topK)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to retrieve context", goerr.V("question", question))
	}

	contextDocs := make([]string, 0, len(hits))
	for _, hit := range hits {
		contextDocs = append(contextDocs, hit.Document.Content)
	}

	p := prompt.Assemble(question, contextDocs, uc.variant)

	answer, err := uc.genClient.Generate(ctx, uc.model, p)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate answer", goerr.V("model", uc.model))
	}

	return &model.Answer{
		Question: question,
		Answer:   answer,
	}, nil
}

// CountDocuments reports the knowledge base size for health reporting.
func (uc *UseCases) CountDocuments(ctx context.Context) (int, error) {
	return uc.knowledge.Count(ctx)
}
