// Package engine adapts the host inverted-index engine
// (github.com/blugelabs/bluge) to the narrow surface the rest of this
// repository needs: open a writer/reader pair over a directory, index
// documents, and run a query to get back a stream of document matches.
//
// Everything above this package (the top-K collectors, the condition
// protocol, DisMax, top-terms) is implemented against bluge's stable,
// documented top-level API only — bluge's internal scorer/searcher
// plumbing is not used here, so none of this repository's own collection
// logic depends on bluge internals that could change across versions.
package engine

import (
	"context"

	"github.com/blugelabs/bluge"
	"github.com/blugelabs/bluge/search"
	"go.uber.org/zap"

	"github.com/cantine/search/pkg/ferrors"
)

// Writer owns the host index's write side. Serializing adds against
// commits is left to the caller: cmd/cantine's load command lets several
// decoder goroutines call Update under a reader-writer lock's read guard
// and takes the write guard for its periodic commit checkpoint.
type Writer struct {
	inner *bluge.Writer
	log   *zap.SugaredLogger
}

// OpenWriter opens (or creates) a bluge index rooted at path.
func OpenWriter(path string, log *zap.SugaredLogger) (*Writer, error) {
	config := bluge.DefaultConfig(path)
	w, err := bluge.OpenWriter(config)
	if err != nil {
		return nil, ferrors.NewStorageError(err, ferrors.KindIO, "failed to open index writer").WithPath(path)
	}
	return &Writer{inner: w, log: log}, nil
}

// Update indexes doc under id, replacing any prior document with the
// same id ("update" == append with the same key, last write wins).
func (w *Writer) Update(id string, doc *bluge.Document) error {
	if err := w.inner.Update(bluge.Identifier(id), doc); err != nil {
		return ferrors.NewStorageError(err, ferrors.KindIO, "failed to index document").WithDetail("id", id)
	}
	return nil
}

// Batch applies a prepared batch of document updates atomically.
func (w *Writer) Batch(b *bluge.Batch) error {
	if err := w.inner.Batch(b); err != nil {
		return ferrors.NewStorageError(err, ferrors.KindIO, "failed to apply index batch")
	}
	return nil
}

// Reader opens a reader over the writer's current committed state.
func (w *Writer) Reader() (*Reader, error) {
	r, err := w.inner.Reader()
	if err != nil {
		return nil, ferrors.NewStorageError(err, ferrors.KindIO, "failed to open reader from writer")
	}
	return &Reader{inner: r, log: w.log}, nil
}

// Close commits any buffered state and releases the index.
func (w *Writer) Close() error {
	if err := w.inner.Close(); err != nil {
		return ferrors.NewStorageError(err, ferrors.KindIO, "failed to close index writer")
	}
	if w.log != nil {
		w.log.Infow("index writer closed")
	}
	return nil
}

// Reader is a read-only view of the host index, safe for concurrent
// queries (per the concurrency model: "a shared reader is safe across
// concurrent queries").
type Reader struct {
	inner *bluge.Reader
	log   *zap.SugaredLogger
}

// OpenReader opens a standalone reader rooted at path, for callers that
// do not hold the writer.
func OpenReader(path string) (*Reader, error) {
	config := bluge.DefaultConfig(path)
	r, err := bluge.OpenReader(config)
	if err != nil {
		return nil, ferrors.NewStorageError(err, ferrors.KindIO, "failed to open index reader").WithPath(path)
	}
	return &Reader{inner: r}, nil
}

// Count reports the total number of live documents in the index.
func (r *Reader) Count() (uint64, error) {
	n, err := r.inner.Count()
	if err != nil {
		return 0, ferrors.NewStorageError(err, ferrors.KindIO, "failed to count documents")
	}
	return n, nil
}

// Search runs req (typically built with bluge.NewTopNSearch) and returns
// the resulting document match stream.
func (r *Reader) Search(ctx context.Context, req bluge.SearchRequest) (search.DocumentMatchIterator, error) {
	it, err := r.inner.Search(ctx, req)
	if err != nil {
		return nil, ferrors.NewStorageError(err, ferrors.KindIO, "search failed")
	}
	return it, nil
}

// AllMatches runs query unranked against every live document (used by
// DisMax, top-terms document-frequency counting, and the aggregation
// collector, none of which need bluge's own top-N ranking). It is
// implemented as a TopN search sized to the full corpus, since that is
// bluge's only documented way to enumerate matches through the stable
// top-level API.
func (r *Reader) AllMatches(ctx context.Context, query bluge.Query) (search.DocumentMatchIterator, error) {
	count, err := r.Count()
	if err != nil {
		return nil, err
	}
	req := bluge.NewTopNSearch(int(count)+1, query)
	return r.Search(ctx, req)
}

// Close releases the reader.
func (r *Reader) Close() error {
	if err := r.inner.Close(); err != nil {
		return ferrors.NewStorageError(err, ferrors.KindIO, "failed to close index reader")
	}
	return nil
}
