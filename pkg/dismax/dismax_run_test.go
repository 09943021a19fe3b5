package dismax

import (
	"context"
	"testing"

	"github.com/blugelabs/bluge"
	"github.com/blugelabs/bluge/analysis"
	"github.com/blugelabs/bluge/analysis/tokenizer"
	"github.com/blugelabs/bluge/search"
	"github.com/stretchr/testify/require"

	"github.com/cantine/search/internal/engine"
)

func idOf(match *search.DocumentMatch) (uint64, error) {
	var id uint64
	err := match.VisitStoredFields(func(field string, value []byte) bool {
		if field == "id" {
			id = uint64(value[0])
		}
		return true
	})
	return id, err
}

func buildEngine(t *testing.T) *engine.Reader {
	t.Helper()
	dir := t.TempDir()
	w, err := engine.OpenWriter(dir, nil)
	require.NoError(t, err)

	docs := []struct {
		id    byte
		name  string
		notes string
	}{
		{1, "chicken soup", "warm comfort food"},
		{2, "chicken salad", "cold lunch"},
		{3, "beef stew", "warm comfort food"},
	}
	analyzer := &analysis.Analyzer{Tokenizer: tokenizer.NewWhitespaceTokenizer()}
	for _, d := range docs {
		doc := bluge.NewDocument(string(rune(d.id)))
		doc.AddField(bluge.NewKeywordField("id", string([]byte{d.id})).StoreValue())
		doc.AddField(bluge.NewTextField("name", d.name).WithAnalyzer(analyzer).StoreValue())
		doc.AddField(bluge.NewTextField("notes", d.notes).WithAnalyzer(analyzer).StoreValue())
		require.NoError(t, w.Update(string(rune(d.id)), doc))
	}

	r, err := w.Reader()
	require.NoError(t, err)
	t.Cleanup(func() { r.Close(); w.Close() })
	return r
}

func TestRunCombinesScoresFromMatchingSubqueries(t *testing.T) {
	r := buildEngine(t)

	q := New([]bluge.Query{
		bluge.NewTermQuery("chicken").SetField("name"),
		bluge.NewTermQuery("comfort").SetField("notes"),
	}, 0.5)

	results, err := q.Run(context.Background(), r, idOf)
	require.NoError(t, err)

	// doc 1 matches both subqueries; doc 2 matches only "name"; doc 3
	// matches only "notes". All three must appear, and doc 1's score
	// must be strictly the highest since it is the only document
	// contributing to both the max and the tiebreaker-scaled remainder.
	require.Len(t, results, 3)
	require.Contains(t, results, uint64(1))
	require.Contains(t, results, uint64(2))
	require.Contains(t, results, uint64(3))

	for doc, res := range results {
		if doc != 1 {
			require.Less(t, res.Score, results[1].Score)
		}
	}
}
