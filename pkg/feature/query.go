package feature

// Range is a half-open numeric range [Start, End).
type Range struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (r Range) contains(v float64) bool {
	return v >= r.Start && v < r.End
}

// FilterQuery carries at most one half-open range per feature field;
// absent fields impose no constraint on that field.
type FilterQuery map[string]Range

// AggQuery carries zero or more half-open ranges per feature field; an
// empty (or absent) slice means "don't aggregate that field."
type AggQuery map[string][]Range

// FullRange builds an AggQuery with one range spanning schema's full
// numeric domain for every field, useful for one-shot corpus-wide stats
// (the `GET /info` endpoint's aggregation snapshot).
func FullRange(schema *Schema) AggQuery {
	q := make(AggQuery, len(schema.Fields))
	for _, f := range schema.Fields {
		start, end := f.Kind.domain()
		q[f.Name] = []Range{{Start: start, End: end}}
	}
	return q
}

// RangeStats accumulates min/max/count over the values observed inside
// one aggregation range. Min is seeded from the range's end and Max from
// its start so that the very first Collect call correctly widens both
// (the only way a half-open range can seed a running min/max without a
// separate "has it been set yet" flag).
type RangeStats struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count uint64  `json:"count"`
}

func newRangeStats(r Range) RangeStats {
	return RangeStats{Min: r.End, Max: r.Start, Count: 0}
}

// Collect widens Min/Max to include value and increments Count.
func (s *RangeStats) Collect(value float64) {
	if value < s.Min {
		s.Min = value
	}
	if value > s.Max {
		s.Max = value
	}
	s.Count++
}

// Merge absorbs another RangeStats computed over the same nominal range
// (e.g. from a different segment), widening bounds and summing counts.
func (s *RangeStats) Merge(other RangeStats) {
	if other.Min < s.Min {
		s.Min = other.Min
	}
	if other.Max > s.Max {
		s.Max = other.Max
	}
	s.Count += other.Count
}

// AggResult carries one RangeStats per range of an AggQuery, indexed the
// same way: AggResult[field][i] corresponds to AggQuery[field][i].
type AggResult map[string][]RangeStats
