package collector

import (
	"context"

	"github.com/blugelabs/bluge/search"
	"github.com/hashicorp/go-multierror"

	"github.com/cantine/search/pkg/cond"
	"github.com/cantine/search/pkg/topk"
)

// Scorer computes a candidate's ordering score. Relevance scoring uses
// the native score the host engine already computed; the other three
// variants ignore it (or, for tweaked-score, transform it).
type Scorer interface {
	// RequiresEngineScore reports whether the native relevance score
	// must be computed by the host engine at all (Relevance and
	// TweakedScore need it; CustomScore and FastField discard it).
	RequiresEngineScore() bool
	// Score returns the ordering score for one document.
	Score(doc uint64, engineScore float64) float64
}

// RelevanceScorer uses the host engine's own relevance score unmodified.
type RelevanceScorer struct{}

func (RelevanceScorer) RequiresEngineScore() bool                { return true }
func (RelevanceScorer) Score(_ uint64, engineScore float64) float64 { return engineScore }

// CustomScorer discards the engine's relevance score, computing its own
// score purely as a function of the document id.
type CustomScorer func(doc uint64) float64

func (CustomScorer) RequiresEngineScore() bool { return false }
func (f CustomScorer) Score(doc uint64, _ float64) float64 { return f(doc) }

// FastFieldScorer specializes CustomScorer: it reads a numeric feature
// value via an accessor and converts it to the collector's float64
// ordering key. A document whose accessor reports ok == false (the field
// is absent) scores 0 and is collected like any other; it is not skipped.
type FastFieldScorer struct {
	Accessor func(doc uint64) (value float64, ok bool)
}

func (FastFieldScorer) RequiresEngineScore() bool { return false }
func (f FastFieldScorer) Score(doc uint64, _ float64) float64 {
	v, _ := f.Accessor(doc)
	return v
}

// TweakedScorer receives the engine's relevance score as input, so the
// final ordering is a user-defined function of (doc, relevance).
type TweakedScorer func(doc uint64, relevance float64) float64

func (TweakedScorer) RequiresEngineScore() bool { return true }
func (f TweakedScorer) Score(doc uint64, engineScore float64) float64 { return f(doc, engineScore) }

// IDOf extracts the stable record id from a host-engine document match
// (bridging bluge's internal doc addressing to this service's permanent
// dense ids, which is what TopK, cursors and pagination all key on).
type IDOf func(match *search.DocumentMatch) (uint64, error)

// Collect runs scorer and condition over every document it yields,
// feeding admitted candidates into a TopK of the given limit/direction.
// It mirrors the host engine's own per-segment-child-then-merge collector
// pipeline (this repository's own collection framework, not the host
// engine's internal one — see internal/engine's package doc) but, since
// every query here runs over one logical segment (segmentID 0; see
// DESIGN.md), there is exactly one segment to collect per call.
func Collect(
	ctx context.Context,
	it search.DocumentMatchIterator,
	idOf IDOf,
	scorer Scorer,
	factory cond.Factory,
	limit int,
	descending bool,
	ascending bool,
) (CollectionResult, error) {
	check, err := factory.ForSegment(0)
	if err != nil {
		return CollectionResult{}, err
	}

	tk := topk.New[float64](limit, descending)
	result := CollectionResult{}

	var errs *multierror.Error

	for {
		match, err := it.Next()
		if err != nil {
			errs = multierror.Append(errs, err)
			break
		}
		if match == nil {
			break
		}
		if err := ctx.Err(); err != nil {
			errs = multierror.Append(errs, err)
			break
		}

		doc, err := idOf(match)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}

		result.Total++

		engineScore := 0.0
		if scorer.RequiresEngineScore() {
			engineScore = match.Score
		}
		score := scorer.Score(doc, engineScore)

		if !check.Admit(0, doc, score, ascending) {
			continue
		}
		result.Visited++
		tk.Visit(score, doc)
	}

	result.Items = tk.IntoVec()
	return result, errs.ErrorOrNil()
}
