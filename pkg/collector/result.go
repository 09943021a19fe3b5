// Package collector implements the four ordered-collector variants built
// on top of pkg/topk and pkg/cond: relevance-scored, custom-scored,
// fast-field-ordered, and tweaked-score. Each collector produces a
// per-segment CollectionResult; results from multiple segments merge
// into one page plus an optional continuation cursor marker.
package collector

import "github.com/cantine/search/pkg/topk"

// CollectionResult is one segment's (or, after Merge, the whole search's)
// collection outcome.
type CollectionResult struct {
	// Total is how many documents the underlying query matched, before
	// any condition filtering.
	Total int
	// Visited is how many of those documents the condition admitted.
	Visited int
	// Items is the kept top-K, in heap order pre-merge and natural
	// order post-merge.
	Items []topk.Entry[float64]
}

// HasMore reports whether the condition admitted strictly more
// documents than made it into Items — the rule for emitting a
// continuation cursor.
func (r CollectionResult) HasMore() bool {
	return r.Visited-len(r.Items) > 0
}
