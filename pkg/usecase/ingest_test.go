package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/sableworks/grimoire/pkg/domain/model"
	"github.com/sableworks/grimoire/pkg/domain/types"
	"github.com/sableworks/grimoire/pkg/usecase"
)

func TestIngestTechniques(t *testing.T) {
	ctx := context.Background()
	svc, store := newKnowledge(t)

	src := &mockSource{techniques: []*model.Technique{
		{ID: "T1059", Name: "Command and Scripting Interpreter", Description: "Adversaries may abuse interpreters."},
		{ID: "T1003", Name: "OS Credential Dumping", Description: "Adversaries may dump credentials."},
	}}
	uc := usecase.New(svc, &mockGenerator{answer: "ok"}, "tinyllama",
		usecase.WithTechniqueSource(src),
	)

	result, err := uc.IngestTechniques(ctx)
	gt.NoError(t, err).Required()

	gt.Value(t, result.Loaded).Equal(2)
	gt.Array(t, result.Skipped).Length(0)

	existing, err := store.Exists(ctx, []string{"T1059", "T1003"})
	gt.NoError(t, err).Required()
	gt.Array(t, existing).Length(2)
}

func TestIngestTechniquesSkipsStoredDuplicates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newKnowledge(t)

	gt.NoError(t, svc.Add(ctx,
		[]string{"Command and Scripting Interpreter (T1059)\nAlready loaded."},
		[]string{"T1059"},
	)).Required()

	src := &mockSource{techniques: []*model.Technique{
		{ID: "T1059", Name: "Command and Scripting Interpreter", Description: "Adversaries may abuse interpreters."},
		{ID: "T1003", Name: "OS Credential Dumping", Description: "Adversaries may dump credentials."},
	}}
	uc := usecase.New(svc, &mockGenerator{answer: "ok"}, "tinyllama",
		usecase.WithTechniqueSource(src),
	)

	result, err := uc.IngestTechniques(ctx)
	gt.NoError(t, err).Required()

	gt.Value(t, result.Loaded).Equal(1)
	gt.Array(t, result.Skipped).Length(1)
	gt.Array(t, result.Skipped).Has("T1059")
}

func TestIngestTechniquesSkipsInBatchDuplicates(t *testing.T) {
	ctx := context.Background()
	svc, store := newKnowledge(t)

	src := &mockSource{techniques: []*model.Technique{
		{ID: "T1566", Name: "Phishing", Description: "First occurrence."},
		{ID: "T1566", Name: "Phishing", Description: "Duplicate record."},
	}}
	uc := usecase.New(svc, &mockGenerator{answer: "ok"}, "tinyllama",
		usecase.WithTechniqueSource(src),
	)

	result, err := uc.IngestTechniques(ctx)
	gt.NoError(t, err).Required()

	gt.Value(t, result.Loaded).Equal(1)
	gt.Array(t, result.Skipped).Length(1)

	count, err := store.Count(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(1)
}

func TestIngestTechniquesIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, store := newKnowledge(t)

	src := &mockSource{techniques: []*model.Technique{
		{ID: "T1059", Name: "Command and Scripting Interpreter", Description: "d"},
	}}
	uc := usecase.New(svc, &mockGenerator{answer: "ok"}, "tinyllama",
		usecase.WithTechniqueSource(src),
	)

	first, err := uc.IngestTechniques(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, first.Loaded).Equal(1)

	second, err := uc.IngestTechniques(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, second.Loaded).Equal(0)
	gt.Array(t, second.Skipped).Length(1)

	count, err := store.Count(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(1)
}

func TestIngestTechniquesFetchFailure(t *testing.T) {
	ctx := context.Background()
	svc, store := newKnowledge(t)

	src := &mockSource{err: goerr.New("source unavailable", goerr.T(types.ErrTagFetch))}
	uc := usecase.New(svc, &mockGenerator{answer: "ok"}, "tinyllama",
		usecase.WithTechniqueSource(src),
	)

	_, err := uc.IngestTechniques(ctx)
	gt.Error(t, err)
	gt.Bool(t, goerr.HasTag(err, types.ErrTagFetch)).True()

	count, err := store.Count(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(0)
}

func TestIngestTechniquesWithoutSource(t *testing.T) {
	ctx := context.Background()
	svc, _ := newKnowledge(t)
	uc := usecase.New(svc, &mockGenerator{answer: "ok"}, "tinyllama")

	_, err := uc.IngestTechniques(ctx)
	gt.Error(t, err)
	gt.Bool(t, goerr.HasTag(err, types.ErrTagValidation)).True()
}
