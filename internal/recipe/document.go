package recipe

import (
	"strconv"
	"strings"

	"github.com/blugelabs/bluge"
	"github.com/blugelabs/bluge/analysis/analyzer"

	"github.com/cantine/search/pkg/feature"
)

// FieldName, FieldIngredients and FieldInstructions name this domain's
// searchable text fields — the set the query parser's field-name validator recognizes.
const (
	FieldName         = "name"
	FieldIngredients  = "ingredients"
	FieldInstructions = "instructions"

	// fieldID is the stored-keyword mirror of the record's dense id,
	// read back by pkg/collector's id extractor. See the numeric
	// idField below for why both representations exist.
	fieldID = "id"
	idField = "Filterable_field_id"
)

// TextFields lists every field the query parser and top-terms extractor
// may target, in the order they're tried for an unqualified clause.
var TextFields = []string{FieldName, FieldIngredients, FieldInstructions}

// TextAnalyzer is shared by every text field and by the query parser so
// indexing and query-time tokenization stay in lockstep.
var TextAnalyzer = analyzer.NewStandardAnalyzer()

// Schema is this record type's derived filter/aggregation schema,
// computed once: Features carries only numeric (or optional-numeric)
// public fields, satisfying pkg/feature.Derive's contract.
var Schema = feature.Derive[Features](feature.Flags{Indexed: true})

// ToDocument builds the host index document for r: text fields under
// the standard analyzer, the feature block via the derived schema, and
// the id in both a sortable/aggregatable numeric form (required by the
// collection framework's fast-field orderings) and a stored keyword
// form (read back exactly, used to resolve a match to a stored record).
// Text fields are stored as well as analyzed so pkg/topterms can
// re-tokenize a specific document's own text for "more like this"
// without walking the host index's internal term dictionary.
func ToDocument(r Recipe) *bluge.Document {
	doc := bluge.NewDocument(r.UUID.String())

	doc.AddField(bluge.NewTextField(FieldName, r.Name).WithAnalyzer(TextAnalyzer).StoreValue())
	doc.AddField(bluge.NewTextField(FieldIngredients, strings.Join(r.Ingredients, "\n")).WithAnalyzer(TextAnalyzer).StoreValue())
	doc.AddField(bluge.NewTextField(FieldInstructions, strings.Join(r.Instructions, "\n")).WithAnalyzer(TextAnalyzer).StoreValue())

	doc.AddField(bluge.NewKeywordField(fieldID, strconv.FormatUint(r.ID, 10)).StoreValue())
	doc.AddField(bluge.NewNumericField(idField, float64(r.ID)).Sortable().Aggregatable())

	feature.AddToDocument(doc, r.Features, Schema)

	return doc
}

// IDFieldName is the index name fast-field scorers read the record id
// from, for sort orderings that need to know which document a score
// belongs to without decoding the whole stored record.
const IDFieldName = idField

// StoredIDFieldName is the stored keyword field pkg/collector's id
// extractor visits to recover the record id from a match.
const StoredIDFieldName = fieldID
