package collector

import (
	"context"
	"testing"

	"github.com/blugelabs/bluge/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cantine/search/pkg/cond"
	"github.com/cantine/search/pkg/topk"
)

// fakeIterator replays a fixed slice of scores as successive matches,
// handing out doc ids 0..n-1 in the same order they were visited — good
// enough to exercise Collect without a live host index.
type fakeIterator struct {
	scores []float64
	next   int
}

func (f *fakeIterator) Next() (*search.DocumentMatch, error) {
	if f.next >= len(f.scores) {
		return nil, nil
	}
	m := &search.DocumentMatch{Score: f.scores[f.next]}
	f.next++
	return m, nil
}

func idByArrivalOrder() (IDOf, *int) {
	n := 0
	return func(*search.DocumentMatch) (uint64, error) {
		id := uint64(n)
		n++
		return id, nil
	}, &n
}

func TestCollectRelevanceDescendingKeepsTopScores(t *testing.T) {
	it := &fakeIterator{scores: []float64{0.5, 3.0, 1.0, 2.0, 0.1}}
	idOf, _ := idByArrivalOrder()

	result, err := Collect(context.Background(), it, idOf, RelevanceScorer{}, cond.AlwaysTrue, 2, true, false)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 5, result.Visited)
	assert.Len(t, result.Items, 2)

	sorted := make([]float64, 0, 2)
	for _, e := range result.Items {
		sorted = append(sorted, e.Score)
	}
	assert.ElementsMatch(t, []float64{3.0, 2.0}, sorted)
}

func TestCollectCustomScorerIgnoresEngineScore(t *testing.T) {
	it := &fakeIterator{scores: []float64{9, 9, 9}}
	idOf, _ := idByArrivalOrder()

	scorer := CustomScorer(func(doc uint64) float64 { return float64(doc) })
	result, err := Collect(context.Background(), it, idOf, scorer, cond.AlwaysTrue, 3, false, true)
	require.NoError(t, err)

	vals := make([]float64, 0, 3)
	for _, e := range result.Items {
		vals = append(vals, e.Score)
	}
	assert.ElementsMatch(t, []float64{0, 1, 2}, vals)
}

func TestCollectPaginationConditionSkipsAlreadySeen(t *testing.T) {
	it := &fakeIterator{scores: []float64{1, 2, 3, 4, 5}}
	idOf, _ := idByArrivalOrder()

	marker := cond.Marker{Score: 2, SegmentID: 0, Doc: 1}
	factory := cond.Pagination{Marker: marker}

	result, err := Collect(context.Background(), it, idOf, RelevanceScorer{}, factory, 10, false, true)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 3, result.Visited)
}

func TestCollectHasMoreWhenConditionAdmitsMoreThanLimit(t *testing.T) {
	it := &fakeIterator{scores: []float64{1, 2, 3, 4, 5}}
	idOf, _ := idByArrivalOrder()

	result, err := Collect(context.Background(), it, idOf, RelevanceScorer{}, cond.AlwaysTrue, 2, true, false)
	require.NoError(t, err)
	assert.True(t, result.HasMore())
}

func TestMergeCombinesSegmentsAndSorts(t *testing.T) {
	a := CollectionResult{Total: 3, Visited: 3, Items: []topk.Entry[float64]{{Score: 1, Doc: 10}, {Score: 3, Doc: 11}}}
	b := CollectionResult{Total: 2, Visited: 2, Items: []topk.Entry[float64]{{Score: 2, Doc: 12}}}

	merged := Merge([]CollectionResult{a, b}, 10, true)
	assert.Equal(t, 5, merged.Total)
	assert.Equal(t, 5, merged.Visited)
	require.Len(t, merged.Items, 3)
	assert.Equal(t, []uint64{11, 12, 10}, []uint64{merged.Items[0].Doc, merged.Items[1].Doc, merged.Items[2].Doc})
}
