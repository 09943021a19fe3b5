// Package cond implements the per-segment condition protocol consumed by
// the ordered collectors: a factory opens per-segment state once, and the
// Check it returns is consulted for every candidate before it is offered
// to a TopK.
package cond

// Check decides whether a candidate (segment, doc, score) is eligible
// for collection. ascending tells the check which ordering is in effect,
// so the same pagination marker works for both directions.
type Check interface {
	Admit(segmentID uint64, doc uint64, score float64, ascending bool) bool
}

// Factory opens a Check for one segment. The engine calls ForSegment once
// per segment, giving implementations a chance to open fast-field
// readers or capture other per-segment state before Admit is called for
// every candidate document in that segment.
type Factory interface {
	ForSegment(segmentID uint64) (Check, error)
}

// CheckFunc adapts a plain function to Check.
type CheckFunc func(segmentID, doc uint64, score float64, ascending bool) bool

func (f CheckFunc) Admit(segmentID, doc uint64, score float64, ascending bool) bool {
	return f(segmentID, doc, score, ascending)
}

// FactoryFunc adapts a plain function to Factory.
type FactoryFunc func(segmentID uint64) (Check, error)

func (f FactoryFunc) ForSegment(segmentID uint64) (Check, error) { return f(segmentID) }

// Bool is a Condition that is the same constant on every segment and
// every document: AlwaysTrue accepts everything, AlwaysFalse rejects
// everything (used for short-circuit testing).
type Bool bool

func (b Bool) ForSegment(uint64) (Check, error) { return b, nil }

func (b Bool) Admit(uint64, uint64, float64, bool) bool { return bool(b) }

const (
	AlwaysTrue  Bool = true
	AlwaysFalse Bool = false
)

// Closure wraps any pure function of (segment, doc, score, ascending)
// into a Factory+Check that ignores per-segment setup.
func Closure(fn func(segmentID, doc uint64, score float64, ascending bool) bool) Factory {
	return FactoryFunc(func(uint64) (Check, error) {
		return CheckFunc(fn), nil
	})
}
