package topterms

import (
	"context"
	"testing"

	"github.com/blugelabs/bluge"
	"github.com/stretchr/testify/require"

	"github.com/cantine/search/internal/engine"
)

func buildTermsCorpus(t *testing.T) *engine.Reader {
	t.Helper()
	dir := t.TempDir()
	w, err := engine.OpenWriter(dir, nil)
	require.NoError(t, err)

	docs := []struct {
		id   string
		name string
	}{
		{"1", "roast chicken with garlic and lemon"},
		{"2", "grilled chicken with lemon butter"},
		{"3", "chocolate lava cake"},
	}
	for _, d := range docs {
		doc := bluge.NewDocument(d.id)
		doc.AddField(bluge.NewKeywordField("id", d.id).StoreValue())
		doc.AddField(bluge.NewTextField("name", d.name).WithAnalyzer(whitespaceAnalyzer()).StoreValue())
		require.NoError(t, w.Update(d.id, doc))
	}

	r, err := w.Reader()
	require.NoError(t, err)
	t.Cleanup(func() { r.Close(); w.Close() })
	return r
}

func TestExtractFromDocumentFindsSimilarDocuments(t *testing.T) {
	r := buildTermsCorpus(t)
	ctx := context.Background()

	extractor := New(r, FieldConfig{Name: "name", Analyzer: whitespaceAnalyzer()})

	keywords, err := extractor.ExtractFromDocument(ctx, 10, "id", "1", AcceptAll)
	require.NoError(t, err)
	require.NotEmpty(t, keywords)

	// "roast"/"garlic" are unique to doc 1 (document frequency 1), so
	// tf*idf scores them higher than "chicken"/"lemon", which also occur
	// in doc 2 (document frequency 2) — standard tf*idf behavior, not a
	// defect: rarity drives the ranking, overlap with other docs doesn't.
	byTerm := make(map[string]float64, len(keywords))
	for _, k := range keywords {
		byTerm[k.Term] = k.Score
	}

	require.Contains(t, byTerm, "chicken")
	require.Contains(t, byTerm, "roast")
	require.Greater(t, byTerm["roast"], byTerm["chicken"])

	query := Query("name", keywords)
	it, err := r.AllMatches(ctx, query)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for {
		match, err := it.Next()
		require.NoError(t, err)
		if match == nil {
			break
		}
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "id" {
				seen[string(value)] = true
			}
			return true
		})
		require.NoError(t, err)
	}

	require.True(t, seen["2"], "querying doc 1's extracted keywords should surface the similar doc 2")
}
