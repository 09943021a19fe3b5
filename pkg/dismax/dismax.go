// Package dismax implements the disjunction-max query combinator:
// documents matching any of N subqueries are scored by the best
// subquery score plus a tunable fraction of the remaining scores,
// rather than their sum.
//
// The host index's own scorer/weight interfaces are not part of its
// documented public surface (see internal/engine's package doc), so
// this is implemented as a post-retrieval combinator: every subquery
// runs to completion via the host index's stable search API, and the
// per-document scores are merged here.
package dismax

import (
	"context"
	"fmt"

	"github.com/blugelabs/bluge"

	"github.com/cantine/search/internal/engine"
	"github.com/cantine/search/pkg/collector"
)

// Query combines Subqueries with the DisMax formula
// score = max + (sum - max) * Tiebreaker.
type Query struct {
	Subqueries []bluge.Query
	Tiebreaker float64
}

// New builds a Query. Panics if tiebreaker is outside [0,1] — the same
// contract-violation-only panic discipline used throughout this
// repository (see pkg/topk.New).
func New(subqueries []bluge.Query, tiebreaker float64) *Query {
	if tiebreaker < 0 || tiebreaker > 1 {
		panic("dismax: tiebreaker must be within [0, 1]")
	}
	return &Query{Subqueries: subqueries, Tiebreaker: tiebreaker}
}

// perDoc accumulates one document's per-subquery scores as they're
// discovered across subquery result sets.
type perDoc struct {
	sum    float64
	max    float64
	hits   []float64
	nsubqs int
}

// Result is one document's combined DisMax outcome.
type Result struct {
	Doc   uint64
	Score float64
	// PerSubquery holds each subquery's raw score for Doc, 0 where the
	// document didn't match that subquery (used by Explain).
	PerSubquery []float64
}

// Run executes every subquery against reader and combines their
// per-document scores. Documents matching none of the subqueries never
// appear in the result.
func (q *Query) Run(ctx context.Context, reader *engine.Reader, idOf collector.IDOf) (map[uint64]Result, error) {
	acc := make(map[uint64]*perDoc)

	for i, sub := range q.Subqueries {
		it, err := reader.AllMatches(ctx, sub)
		if err != nil {
			return nil, err
		}
		for {
			match, err := it.Next()
			if err != nil {
				return nil, err
			}
			if match == nil {
				break
			}
			doc, err := idOf(match)
			if err != nil {
				continue
			}
			entry, ok := acc[doc]
			if !ok {
				entry = &perDoc{hits: make([]float64, len(q.Subqueries)), nsubqs: len(q.Subqueries)}
				acc[doc] = entry
			}
			entry.hits[i] = match.Score
			entry.sum += match.Score
			if match.Score > entry.max {
				entry.max = match.Score
			}
		}
	}

	out := make(map[uint64]Result, len(acc))
	for doc, e := range acc {
		out[doc] = Result{
			Doc:         doc,
			Score:       e.max + (e.sum-e.max)*q.Tiebreaker,
			PerSubquery: e.hits,
		}
	}
	return out, nil
}

// Explain renders a human-readable breakdown of how r's score was
// composed, mirroring the original's explanation heading that cites
// the tiebreaker.
func Explain(r Result, tiebreaker float64) string {
	s := fmt.Sprintf("DisMaxQuery. Score = max + (sum - max) * %.3f = %.6f", tiebreaker, r.Score)
	for i, score := range r.PerSubquery {
		if score > 0 {
			s += fmt.Sprintf("\n  subquery[%d]: %.6f", i, score)
		}
	}
	return s
}
