package dismax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPanicsOutsideUnitRange(t *testing.T) {
	assert.Panics(t, func() { New(nil, -0.1) })
	assert.Panics(t, func() { New(nil, 1.1) })
	assert.NotPanics(t, func() { New(nil, 0) })
	assert.NotPanics(t, func() { New(nil, 1) })
}

func TestCombineFormula(t *testing.T) {
	e := &perDoc{sum: 3, max: 2}
	tiebreaker := 0.5
	score := e.max + (e.sum-e.max)*tiebreaker
	assert.InDelta(t, 2.5, score, 1e-9)
}

func TestExplainMentionsTiebreaker(t *testing.T) {
	r := Result{Doc: 1, Score: 2.5, PerSubquery: []float64{1, 1.5}}
	s := Explain(r, 0.5)
	assert.Contains(t, s, "0.500")
	assert.Contains(t, s, "subquery[0]")
}
