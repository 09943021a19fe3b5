package facade

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/cantine/search/internal/engine"
	"github.com/cantine/search/internal/recipe"
	"github.com/cantine/search/internal/recordstore"
	"github.com/cantine/search/pkg/queryparser"
)

// buildCorpus indexes n recipes (uuid, sequential id, and a Calories
// value of 100*i for i in [0, n)) into a fresh engine+record store pair
// rooted under t.TempDir, returning a ready-to-query Facade.
func buildCorpus(t *testing.T, n int) *Facade {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(dir+"/index", 0o755))

	writer, err := engine.OpenWriter(dir+"/index", nil)
	require.NoError(t, err)

	store, err := recordstore.OpenWriter(recordstore.WriterConfig[recipe.Recipe]{
		DataDir: dir + "/store",
		Codec:   recordstore.JSONCodec[recipe.Recipe]{},
	})
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		calories := uint32(100 * i)
		r := recipe.Recipe{
			UUID: uuid.New(),
			ID:   uint64(i),
			Name: "chicken soup",
			Features: recipe.Features{
				NumIngredients: 3,
				Calories:       &calories,
			},
		}
		require.NoError(t, writer.Update(r.UUID.String(), recipe.ToDocument(r)))
		require.NoError(t, store.Append(r.UUID, r.ID, r))
	}
	require.NoError(t, store.Close())

	indexReader, err := writer.Reader()
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	storeReader, err := recordstore.OpenReader(recordstore.ReaderConfig[recipe.Recipe]{
		DataDir: dir + "/store",
		Codec:   recordstore.JSONCodec[recipe.Recipe]{},
	})
	require.NoError(t, err)

	parser := queryparser.NewParser(queryparser.FieldConfig{Name: recipe.FieldName, Analyzer: recipe.TextAnalyzer})
	return New(Config{
		Reader:  indexReader,
		Records: storeReader,
		Parser:  parser,
		Schema:  recipe.Schema,
	})
}

func TestSearchPaginationVisitsEveryDocumentExactlyOnce(t *testing.T) {
	const total = 25
	f := buildCorpus(t, total)
	ctx := context.Background()

	seen := make(map[uuid.UUID]bool)
	after := ""
	for {
		resp, err := f.Search(ctx, Request{Fulltext: "chicken", NumItems: 7, After: after})
		require.NoError(t, err)
		require.NotEmpty(t, resp.Items)

		for _, item := range resp.Items {
			require.False(t, seen[item.UUID], "item %s returned twice", item.UUID)
			seen[item.UUID] = true
		}

		if resp.Next == "" {
			break
		}
		after = resp.Next
	}

	require.Len(t, seen, total)
}

func TestSearchFastFieldSortOrdersByFeatureValue(t *testing.T) {
	f := buildCorpus(t, 10)
	ctx := context.Background()

	resp, err := f.Search(ctx, Request{NumItems: 10, Sort: "Calories", Ascending: true})
	require.NoError(t, err)
	require.Len(t, resp.Items, 10)

	for i := 1; i < len(resp.Items); i++ {
		prev, cur := resp.Items[i-1].Calories, resp.Items[i].Calories
		require.NotNil(t, prev)
		require.NotNil(t, cur)
		require.LessOrEqual(t, *prev, *cur)
	}
}

func TestSearchRejectsUnknownCursorUUID(t *testing.T) {
	f := buildCorpus(t, 5)
	ctx := context.Background()

	bogus := cursorForTest(t)
	_, err := f.Search(ctx, Request{Fulltext: "chicken", After: bogus})
	require.Error(t, err)
}

func cursorForTest(t *testing.T) string {
	t.Helper()
	return cursorFor(SortRelevance, 1.0, uuid.New()).Encode()
}
