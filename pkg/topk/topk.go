// Package topk implements a bounded ordered container that keeps the K
// best-scored (score, doc) pairs seen across a stream of candidates,
// under either ascending or descending ordering, with a stable tie-break
// on the document id.
package topk

import "cmp"

// Entry is one (score, doc) pair admitted to a TopK.
type Entry[S cmp.Ordered] struct {
	Score S
	Doc   uint64
}

// worseThan reports whether a is a worse candidate to keep than b under
// the given direction: for descending TopK a smaller Score is worse, for
// ascending a larger Score is worse. Ties always resolve the same way
// regardless of direction: the larger Doc is worse, so the smaller Doc
// wins and stays admitted.
func worseThan[S cmp.Ordered](a, b Entry[S], descending bool) bool {
	if a.Score != b.Score {
		if descending {
			return a.Score < b.Score
		}
		return a.Score > b.Score
	}
	return a.Doc > b.Doc
}

// TopK keeps the K best entries seen via Visit, under a fixed capacity
// set at construction. Capacity is never exceeded; the container never
// allocates past it. Constructing with limit == 0 is a programmer error
// and panics.
type TopK[S cmp.Ordered] struct {
	limit      int
	descending bool
	items      []Entry[S]
}

// New constructs a TopK of the given capacity and direction. descending
// == true keeps the largest K entries (typical relevance ordering);
// descending == false keeps the smallest K.
func New[S cmp.Ordered](limit int, descending bool) *TopK[S] {
	if limit == 0 {
		panic("topk: limit must be greater than zero")
	}
	return &TopK[S]{limit: limit, descending: descending, items: make([]Entry[S], 0, limit)}
}

// NewAscending keeps the smallest limit entries.
func NewAscending[S cmp.Ordered](limit int) *TopK[S] { return New[S](limit, false) }

// NewDescending keeps the largest limit entries.
func NewDescending[S cmp.Ordered](limit int) *TopK[S] { return New[S](limit, true) }

// Len reports how many entries are currently held (<= capacity).
func (t *TopK[S]) Len() int { return len(t.items) }

// Cap reports the configured capacity.
func (t *TopK[S]) Cap() int { return t.limit }

// Descending reports the configured direction.
func (t *TopK[S]) Descending() bool { return t.descending }

// betterThanExtreme reports whether e should displace the current worst
// kept entry (the "extreme" of the heap): for descending TopK the
// extreme is the smallest kept entry, so e must be strictly larger (with
// smaller Doc winning ties); for ascending TopK it's the mirror image.
func (t *TopK[S]) betterThanExtreme(e, extreme Entry[S]) bool {
	return worseThan(extreme, e, t.descending)
}

// Visit offers a candidate to the container. Below capacity it is always
// kept; at capacity it replaces the current worst kept entry iff it
// compares strictly better under the configured ordering.
func (t *TopK[S]) Visit(score S, doc uint64) {
	e := Entry[S]{Score: score, Doc: doc}

	if len(t.items) < t.limit {
		t.items = append(t.items, e)
		if len(t.items) == t.limit {
			t.heapify()
		}
		return
	}

	// t.items[0] is the extreme once heapified.
	if !t.betterThanExtreme(e, t.items[0]) {
		return
	}
	t.items[0] = e
	t.siftDown(0)
}

// worse reports whether b is a worse candidate than a from the
// heap-root's point of view: siftDown walks toward whichever child is
// worse so the root always holds the entry due for eviction next. For a
// descending TopK the root holds the smallest kept entry, so "worse"
// means smaller; for ascending it's the largest. Ties always favor the
// smaller Doc, independent of direction.
func (t *TopK[S]) worse(a, b Entry[S]) bool {
	return worseThan(b, a, t.descending)
}

func (t *TopK[S]) heapify() {
	n := len(t.items)
	for i := n/2 - 1; i >= 0; i-- {
		t.siftDown(i)
	}
}

func (t *TopK[S]) siftDown(i int) {
	n := len(t.items)
	for {
		left, right := 2*i+1, 2*i+2
		extreme := i
		if left < n && t.worse(t.items[extreme], t.items[left]) {
			extreme = left
		}
		if right < n && t.worse(t.items[extreme], t.items[right]) {
			extreme = right
		}
		if extreme == i {
			return
		}
		t.items[i], t.items[extreme] = t.items[extreme], t.items[i]
		i = extreme
	}
}

// IntoVec drains the container in heap order (undefined relative order
// beyond the heap invariant). Used when the caller will merge several
// TopK instances and re-sort afterwards.
func (t *TopK[S]) IntoVec() []Entry[S] {
	out := t.items
	t.items = nil
	return out
}

// IntoSortedVec drains the container in natural order: ascending TopK
// yields smallest-first, descending yields largest-first, ties broken by
// smaller Doc in both directions.
func (t *TopK[S]) IntoSortedVec() []Entry[S] {
	out := t.IntoVec()
	sortEntries(out, t.descending)
	return out
}

// goesBefore reports whether a must precede b in the requested natural
// order: ties always break on the smaller Doc, regardless of direction.
func goesBefore[S cmp.Ordered](a, b Entry[S], descending bool) bool {
	if a.Score != b.Score {
		if descending {
			return a.Score > b.Score
		}
		return a.Score < b.Score
	}
	return a.Doc < b.Doc
}

func sortEntries[S cmp.Ordered](items []Entry[S], descending bool) {
	// Insertion sort is adequate: callers bound K to page sizes, never
	// full corpora.
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && goesBefore(items[j], items[j-1], descending); j-- {
			items[j-1], items[j] = items[j], items[j-1]
		}
	}
}
