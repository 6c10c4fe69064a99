package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sableworks/grimoire/pkg/domain/model"
	"github.com/sableworks/grimoire/pkg/domain/types"
	"github.com/sableworks/grimoire/pkg/utils/logging"
)

// AddDocument stores one text under a generated identifier and returns
// the identifier.
func (uc *UseCases) AddDocument(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", goerr.New("text is required", goerr.T(types.ErrTagValidation))
	}

	id := model.NewDocumentID()
	if err := uc.knowledge.Add(ctx, []string{text}, []string{id}); err != nil {
		return "", goerr.Wrap(err, "failed to add document", goerr.V("id", id))
	}

	logging.From(ctx).Info("document added", "id", id, "size", len(text))
	return id, nil
}
