package feature

// Accessor resolves a stored document id to the record it indexes,
// standing in for the original's "doc_id -> &Record" lookup. This
// implementation chooses the external-map realization the design notes
// call out as valid (backed here by the record store) rather than
// reading a serialized feature block out of the host index's fast-field
// bytes, to keep this package free of any dependency on the host
// engine's internal numeric encoding.
type Accessor func(docID uint64) (record any, ok bool)

// Aggregator streams matching documents through a range histogram
// derived from an AggQuery.
type Aggregator struct {
	schema *Schema
	query  AggQuery
}

// NewAggregator builds an Aggregator for query against schema.
func NewAggregator(schema *Schema, query AggQuery) *Aggregator {
	return &Aggregator{schema: schema, query: query}
}

// NewResult seeds one RangeStats per range of the query, ready for
// repeated Collect calls.
func (a *Aggregator) NewResult() AggResult {
	result := make(AggResult, len(a.query))
	for field, ranges := range a.query {
		stats := make([]RangeStats, len(ranges))
		for i, r := range ranges {
			stats[i] = newRangeStats(r)
		}
		result[field] = stats
	}
	return result
}

// Collect absorbs one matching record into result: for every field with
// queried ranges, reads the field's value out of record and, when
// present and inside one of the ranges, updates that range's RangeStats.
// A value inside two overlapping ranges updates both (counted with
// multiplicity, as the aggregation/filter coherence property requires).
func (a *Aggregator) Collect(result AggResult, record any) {
	for field, ranges := range a.query {
		spec, ok := a.schema.ByName(field)
		if !ok {
			continue
		}
		value, ok := fieldValue(record, spec)
		if !ok {
			continue
		}
		stats := result[field]
		for i, r := range ranges {
			if r.contains(value) {
				stats[i].Collect(value)
			}
		}
	}
}

// Merge absorbs src into dst in place, widening bounds and summing
// counts range-by-range (both results must come from the same AggQuery).
func Merge(dst, src AggResult) {
	for field, srcStats := range src {
		dstStats, ok := dst[field]
		if !ok {
			dst[field] = srcStats
			continue
		}
		for i := range srcStats {
			if i >= len(dstStats) {
				break
			}
			dstStats[i].Merge(srcStats[i])
		}
	}
}
