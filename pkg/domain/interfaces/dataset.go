package interfaces

import (
	"context"

	"github.com/sableworks/grimoire/pkg/domain/model"
)

// TechniqueSource provides technique records from an external
// threat-intelligence dataset, already filtered of revoked and
// deprecated entries.
type TechniqueSource interface {
	FetchTechniques(ctx context.Context) ([]*model.Technique, error)
}
