// Package facade binds the query parser, the derived filter/aggregation
// schema, the ordered collectors, the cursor codec and the record store
// into the single `search(query, after)` entry point the HTTP surface
// calls.
package facade

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/blugelabs/bluge"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cantine/search/internal/engine"
	"github.com/cantine/search/internal/recipe"
	"github.com/cantine/search/internal/recordstore"
	"github.com/cantine/search/pkg/collector"
	"github.com/cantine/search/pkg/cond"
	"github.com/cantine/search/pkg/cursor"
	"github.com/cantine/search/pkg/feature"
	"github.com/cantine/search/pkg/ferrors"
	"github.com/cantine/search/pkg/queryparser"
)

// ErrFacadeClosed is returned when Search or Lookup is called on a
// facade whose Close has already run.
var ErrFacadeClosed = errors.New("operation failed: facade is closed")

// SortRelevance is the Request.Sort value selecting the scored
// collector; any other value must name a Features field and selects
// the fast-field-ordered collector.
const SortRelevance = "relevance"

// Request is one decoded `POST /search` body.
type Request struct {
	Fulltext  string
	NumItems  int
	Sort      string
	Filter    feature.FilterQuery
	Agg       feature.AggQuery
	After     string
	Ascending bool
}

// Response is the facade's answer, ready for JSON encoding.
type Response struct {
	Items      []recipe.Card
	TotalFound int
	Next       string
	Agg        feature.AggResult
}

// Config holds every dependency a Facade needs. All fields are
// required except AggThreshold (zero disables aggregation entirely)
// and Logger.
type Config struct {
	Reader       *engine.Reader
	Records      *recordstore.Reader[recipe.Recipe]
	Parser       *queryparser.Parser
	Schema       *feature.Schema
	AggThreshold int
	Logger       *zap.SugaredLogger
}

// Facade is the immutable, concurrency-safe search entry point: built
// once from a committed index reader and record store, handed to every
// request by the HTTP surface via context (per the concurrency model —
// a shared reader is safe across concurrent queries).
type Facade struct {
	reader       *engine.Reader
	records      *recordstore.Reader[recipe.Recipe]
	parser       *queryparser.Parser
	schema       *feature.Schema
	aggThreshold int
	log          *zap.SugaredLogger
	closed       atomic.Bool
}

// New builds a Facade from cfg. The index subsystem and the record
// store are built by the caller first (per the teacher's "no external
// dependencies first" ordering) since both are assembled from on-disk
// state that already exists by the time a facade is wanted.
func New(cfg Config) *Facade {
	return &Facade{
		reader:       cfg.Reader,
		records:      cfg.Records,
		parser:       cfg.Parser,
		schema:       cfg.Schema,
		aggThreshold: cfg.AggThreshold,
		log:          cfg.Logger,
	}
}

// Close marks the facade closed. It does not own the reader or record
// store (those are shared across every facade instance built from the
// same committed state) and so never closes them itself; it only
// guards against further use after the caller has decided to retire
// this facade.
func (f *Facade) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return ErrFacadeClosed
	}
	return nil
}

// Lookup resolves a direct `GET /recipe/{uuid}` by its external id.
func (f *Facade) Lookup(id uuid.UUID) (recipe.Info, error) {
	r, err := f.records.FindByUUID(id)
	if err != nil {
		return recipe.Info{}, err
	}
	return recipe.ToInfo(r), nil
}

// buildQuery implements spec §4.10 steps 1-3: fulltext subquery (or
// AllQuery), filter subqueries from the derived schema, combined under
// a single AND (0 clauses -> AllQuery, 1 -> that clause, N -> boolean).
func (f *Facade) buildQuery(req Request) bluge.Query {
	var clauses []bluge.Query

	if req.Fulltext != "" {
		if q := f.parser.Parse(req.Fulltext); q != nil {
			clauses = append(clauses, q)
		}
	}
	clauses = append(clauses, feature.Interpret(req.Filter, f.schema)...)

	switch len(clauses) {
	case 0:
		return bluge.NewMatchAllQuery()
	case 1:
		return clauses[0]
	default:
		b := bluge.NewBooleanQuery()
		for _, c := range clauses {
			b.AddMust(c)
		}
		return b
	}
}

// chooseScorerAndCondition implements step 4: relevance sort ranks by
// the engine's own score, rounded to float32 as the relevance cursor
// stores it, under a pagination condition keyed by the
// previous cursor's (score, uuid); any other sort value names a
// Features field and is resolved against the record store's own value
// for that field (a fast-field read, logically — this repository's
// external-accessor realization of "fast field" per pkg/feature's doc).
func (f *Facade) chooseScorerAndCondition(req Request, marker *cursor.Cursor) (collector.Scorer, cond.Factory, error) {
	if req.Sort == SortRelevance || req.Sort == "" {
		factory, err := f.paginationFactory(marker)
		if err != nil {
			return nil, nil, err
		}
		// The relevance cursor carries a float32 score, so candidates are
		// ranked at that same precision for the marker to compare equal.
		scorer := collector.TweakedScorer(func(_ uint64, relevance float64) float64 {
			return float64(float32(relevance))
		})
		return scorer, factory, nil
	}

	if _, ok := f.schema.ByName(req.Sort); !ok {
		return nil, nil, ferrors.NewValidationError(nil, ferrors.KindQueryParse, "unknown sort field").
			WithField("sort").WithProvided(req.Sort)
	}

	scorer := collector.FastFieldScorer{Accessor: func(doc uint64) (float64, bool) {
		record, err := f.records.FindByID(doc)
		if err != nil {
			return 0, false
		}
		return feature.FieldValue(record.Features, req.Sort, f.schema)
	}}

	factory, err := f.paginationFactory(marker)
	if err != nil {
		return nil, nil, err
	}
	return scorer, factory, nil
}

// paginationFactory resolves a decoded cursor's uuid to the dense
// record id the pagination condition compares against (the collector's
// "doc" is always this service's stable record id — see pkg/collector's
// doc), since the wire cursor only carries the uuid. Search already
// validated the uuid exists before calling this, so FindByUUID failing
// here would mean the record store changed underneath the request; that
// is surfaced rather than silently producing a wrong page.
func (f *Facade) paginationFactory(marker *cursor.Cursor) (cond.Factory, error) {
	if marker == nil {
		return cond.Factory(cond.AlwaysTrue), nil
	}
	doc, err := f.records.FindByUUID(marker.UUID)
	if err != nil {
		return nil, err
	}
	return cond.Pagination{Marker: cond.Marker{Score: marker.Float64Score(), Doc: doc.GetID()}}, nil
}

// Search implements spec §4.10 in full.
func (f *Facade) Search(ctx context.Context, req Request) (Response, error) {
	if f.closed.Load() {
		return Response{}, ErrFacadeClosed
	}

	var marker *cursor.Cursor
	if req.After != "" {
		decoded, err := cursor.Decode(req.After)
		if err != nil {
			return Response{}, err
		}
		if !f.records.HasUUID(decoded.UUID) {
			return Response{}, ferrors.NewInvalidCursor("uuid not present in this corpus", decoded.UUID)
		}
		marker = &decoded
	}

	query := f.buildQuery(req)
	scorer, factory, err := f.chooseScorerAndCondition(req, marker)
	if err != nil {
		return Response{}, err
	}

	limit := req.NumItems
	if limit <= 0 {
		limit = 10
	}

	// AllMatches, not a bluge-ranked NewTopNSearch(limit, ...): this
	// service's own TopK does the ranking (by whichever Scorer the sort
	// tag chose), and the pagination condition needs to see every
	// candidate match, not just bluge's own top N by its internal score.
	it, err := f.reader.AllMatches(ctx, query)
	if err != nil {
		return Response{}, err
	}

	segment, err := collector.Collect(ctx, it, recipe.IDOf, scorer, factory, limit, !req.Ascending, req.Ascending)
	if err != nil {
		if f.log != nil {
			f.log.Warnw("search collection reported errors", "error", err)
		}
	}

	// Collect's Items come back in heap order (see pkg/topk.IntoVec); Merge
	// is what produces the final natural-sorted page, even over this
	// single-segment host index (see pkg/collector.Merge's doc comment).
	result := collector.Merge([]collector.CollectionResult{segment}, limit, !req.Ascending)

	items := make([]recipe.Card, 0, len(result.Items))
	for _, entry := range result.Items {
		r, ferr := f.records.FindByID(entry.Doc)
		if ferr != nil {
			continue
		}
		items = append(items, recipe.ToCard(r))
	}

	resp := Response{Items: items, TotalFound: result.Total}

	if result.HasMore() && len(result.Items) > 0 {
		last := result.Items[len(result.Items)-1]
		record, ferr := f.records.FindByID(last.Doc)
		if ferr == nil {
			resp.Next = cursorFor(req.Sort, last.Score, record.UUID).Encode()
		}
	}

	if req.Agg != nil && f.aggThreshold > 0 && result.Total <= f.aggThreshold {
		agg, aggErr := f.runAggregation(ctx, query, req.Agg)
		if aggErr != nil {
			if f.log != nil {
				f.log.Warnw("aggregation failed, primary search still returned", "error", aggErr)
			}
		} else {
			resp.Agg = agg
		}
	}

	return resp, nil
}

// cursorFor encodes the right cursor tag for sort.
func cursorFor(sort string, score float64, id uuid.UUID) cursor.Cursor {
	if sort == SortRelevance || sort == "" {
		return cursor.NewRelevance(float32(score), id)
	}
	return cursor.NewFloat64(score, id)
}

// runAggregation re-runs query unranked (pkg/topterms and dismax's
// "AllMatches" pattern) and streams every match through the derived
// Aggregator, resolving each match's record from the record store
// rather than a fast-field bytes reader (see DESIGN.md for why).
func (f *Facade) runAggregation(ctx context.Context, query bluge.Query, aggQuery feature.AggQuery) (feature.AggResult, error) {
	it, err := f.reader.AllMatches(ctx, query)
	if err != nil {
		return nil, err
	}

	agg := feature.NewAggregator(f.schema, aggQuery)
	result := agg.NewResult()

	for {
		match, err := it.Next()
		if err != nil {
			return nil, err
		}
		if match == nil {
			break
		}
		id, err := recipe.IDOf(match)
		if err != nil {
			continue
		}
		record, err := f.records.FindByID(id)
		if err != nil {
			continue
		}
		agg.Collect(result, record.Features)
	}

	return result, nil
}
