package memory_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/sableworks/grimoire/pkg/domain/model"
	"github.com/sableworks/grimoire/pkg/domain/types"
	"github.com/sableworks/grimoire/pkg/repository/memory"
)

func TestSearchEmptyCollection(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	results, err := store.Search(ctx, []float32{1, 0, 0}, 5)
	gt.NoError(t, err).Required()
	gt.Array(t, results).Length(0)
}

func TestInsertAndSearch(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	docs := []*model.Document{
		{ID: "T1059", Content: "Command and Scripting Interpreter"},
		{ID: "T1003", Content: "OS Credential Dumping"},
		{ID: "T1566", Content: "Phishing"},
	}
	embeddings := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}

	gt.NoError(t, store.Insert(ctx, docs, embeddings)).Required()

	results, err := store.Search(ctx, []float32{0.9, 0.1, 0}, 2)
	gt.NoError(t, err).Required()
	gt.Array(t, results).Length(2)
	gt.Value(t, results[0].Document.ID).Equal("T1059")
	gt.Bool(t, results[0].Score > results[1].Score).True()
}

func TestSearchReturnsFewerThanLimit(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	gt.NoError(t, store.Insert(ctx,
		[]*model.Document{{ID: "only", Content: "single doc"}},
		[][]float32{{1, 1}},
	)).Required()

	results, err := store.Search(ctx, []float32{1, 1}, 10)
	gt.NoError(t, err).Required()
	gt.Array(t, results).Length(1)
}

func TestInsertRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	gt.NoError(t, store.Insert(ctx,
		[]*model.Document{{ID: "T1059", Content: "first"}},
		[][]float32{{1, 0}},
	)).Required()

	err := store.Insert(ctx,
		[]*model.Document{
			{ID: "T1566", Content: "new"},
			{ID: "T1059", Content: "dup"},
		},
		[][]float32{{0, 1}, {1, 1}},
	)
	gt.Error(t, err)
	gt.Bool(t, goerr.HasTag(err, types.ErrTagValidation)).True()

	// Rejected batch must not be partially applied
	count, err := store.Count(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(1)

	existing, err := store.Exists(ctx, []string{"T1566"})
	gt.NoError(t, err).Required()
	gt.Array(t, existing).Length(0)
}

func TestInsertCountMismatch(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	err := store.Insert(ctx,
		[]*model.Document{{ID: "a", Content: "a"}},
		[][]float32{{1}, {2}},
	)
	gt.Error(t, err)
	gt.Bool(t, goerr.HasTag(err, types.ErrTagValidation)).True()
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	gt.NoError(t, store.Insert(ctx,
		[]*model.Document{
			{ID: "T1059", Content: "a"},
			{ID: "T1003", Content: "b"},
		},
		[][]float32{{1, 0}, {0, 1}},
	)).Required()

	existing, err := store.Exists(ctx, []string{"T1059", "T9999", "T1003"})
	gt.NoError(t, err).Required()
	gt.Array(t, existing).Length(2)
	gt.Array(t, existing).Has("T1059")
	gt.Array(t, existing).Has("T1003")
}

func TestCount(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	count, err := store.Count(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(0)

	gt.NoError(t, store.Insert(ctx,
		[]*model.Document{{ID: "a", Content: "a"}},
		[][]float32{{1}},
	)).Required()

	count, err = store.Count(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(1)
}
