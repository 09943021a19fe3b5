package feature

import "github.com/blugelabs/bluge"

// AddToDocument writes record's present feature fields onto doc using
// each field's schema-bound index name. Optional-absent fields are
// omitted entirely rather than written as zero, so a later range query
// never matches a record that simply never set the field.
func AddToDocument(doc *bluge.Document, record any, schema *Schema) *bluge.Document {
	for _, spec := range schema.Fields {
		value, ok := fieldValue(record, spec)
		if !ok {
			continue
		}
		doc.AddField(bluge.NewNumericField(spec.IndexName, value).StoreValue().Sortable().Aggregatable())
	}
	return doc
}

// Interpret emits one numeric range subquery per non-empty field of
// filter, skipping fields the record type doesn't declare. The caller
// combines the result with any fulltext subquery under a boolean AND.
func Interpret(filter FilterQuery, schema *Schema) []bluge.Query {
	queries := make([]bluge.Query, 0, len(filter))
	for name, r := range filter {
		spec, ok := schema.ByName(name)
		if !ok {
			continue
		}
		queries = append(queries, bluge.NewNumericRangeInclusiveQuery(r.Start, r.End, true, false).SetField(spec.IndexName))
	}
	return queries
}
