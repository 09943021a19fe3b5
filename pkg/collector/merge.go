package collector

import (
	"github.com/cantine/search/pkg/topk"
)

// Merge combines per-segment CollectionResults into one page: Total and
// Visited sum across segments, and Items is the global top-K re-sorted
// from the union of every segment's kept items. Since every search in
// this repository runs over a single logical segment (see Collect's
// doc comment), Merge in practice folds a one-element slice, but it
// stays general so a future multi-segment host index needs no change
// here.
func Merge(results []CollectionResult, limit int, descending bool) CollectionResult {
	merged := CollectionResult{}
	tk := topk.New[float64](limit, descending)

	for _, r := range results {
		merged.Total += r.Total
		merged.Visited += r.Visited
		for _, item := range r.Items {
			tk.Visit(item.Score, item.Doc)
		}
	}

	merged.Items = tk.IntoSortedVec()
	return merged
}
