package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sableworks/grimoire/pkg/domain/types"
	"github.com/sableworks/grimoire/pkg/utils/logging"
)

// IngestResult reports the outcome of one ingestion run. Skipped holds
// identifiers that were not loaded because they already exist, either in
// the stored collection or earlier in the same dataset.
type IngestResult struct {
	Loaded  int      `json:"loaded"`
	Skipped []string `json:"skipped,omitempty"`
}

// IngestTechniques fetches the threat-intelligence dataset, maps each
// active technique record to one document, and bulk-loads the documents
// into the knowledge base. Duplicate identifiers are skipped and reported
// rather than failing the run.
func (uc *UseCases) IngestTechniques(ctx context.Context) (*IngestResult, error) {
	if uc.source == nil {
		return nil, goerr.New("technique source is not configured", goerr.T(types.ErrTagValidation))
	}

	techniques, err := uc.source.FetchTechniques(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch techniques")
	}

	result := &IngestResult{}

	// The external identifier is reused verbatim, so uniqueness is only
	// as good as the source dataset. Drop in-batch duplicates first.
	seen := make(map[string]struct{}, len(techniques))
	texts := make([]string, 0, len(techniques))
	ids := make([]string, 0, len(techniques))
	for _, t := range techniques {
		if _, ok := seen[t.ID]; ok {
			result.Skipped = append(result.Skipped, t.ID)
			continue
		}
		seen[t.ID] = struct{}{}

		doc := t.ToDocument()
		texts = append(texts, doc.Content)
		ids = append(ids, doc.ID)
	}

	existing, err := uc.knowledge.Existing(ctx, ids)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check existing documents")
	}
	if len(existing) > 0 {
		stored := make(map[string]struct{}, len(existing))
		for _, id := range existing {
			stored[id] = struct{}{}
			result.Skipped = append(result.Skipped, id)
		}

		filteredTexts := texts[:0]
		filteredIDs := ids[:0]
		for i, id := range ids {
			if _, ok := stored[id]; ok {
				continue
			}
			filteredTexts = append(filteredTexts, texts[i])
			filteredIDs = append(filteredIDs, id)
		}
		texts = filteredTexts
		ids = filteredIDs
	}

	if len(ids) > 0 {
		if err := uc.knowledge.Add(ctx, texts, ids); err != nil {
			return nil, goerr.Wrap(err, "failed to load techniques", goerr.V("count", len(ids)))
		}
	}
	result.Loaded = len(ids)

	logging.From(ctx).Info("ingestion completed",
		"fetched", len(techniques),
		"loaded", result.Loaded,
		"skipped", len(result.Skipped),
	)

	return result, nil
}
