// Package topterms implements tf*idf keyword extraction, used both for
// "more like this" (starting from a stored document) and for turning
// free text into a ranked set of query terms.
package topterms

import (
	"context"
	"math"
	"sort"

	"github.com/blugelabs/bluge"
	"github.com/blugelabs/bluge/analysis"

	"github.com/cantine/search/internal/engine"
	"github.com/cantine/search/pkg/ferrors"
)

// FieldConfig names one text field and the analyzer used to tokenize
// it, shared with pkg/queryparser's field configuration shape.
type FieldConfig struct {
	Name     string
	Analyzer *analysis.Analyzer
}

// Keyword is one extracted term and its tf*idf score.
type Keyword struct {
	Term  string
	Score float64
}

// Accept is consulted for every candidate term before it's admitted;
// return false to discard it regardless of score.
type Accept func(term string, tf uint32, docFreq, numDocs uint64) bool

// AcceptAll admits every term.
func AcceptAll(string, uint32, uint64, uint64) bool { return true }

// idf is the BM25-style smoothed inverse document frequency:
// ln(1 + (N - df + 0.5)/(df + 0.5)).
func idf(docFreq, numDocs uint64) float64 {
	x := (float64(numDocs-docFreq) + 0.5) / (float64(docFreq) + 0.5)
	return math.Log(1 + x)
}

// Extractor computes keywords against a host index reader.
type Extractor struct {
	reader *engine.Reader
	fields []FieldConfig
}

// New builds an Extractor scoped to fields.
func New(reader *engine.Reader, fields ...FieldConfig) *Extractor {
	return &Extractor{reader: reader, fields: fields}
}

func termFreq(fields []FieldConfig, text map[string]string) map[string]uint32 {
	freq := make(map[string]uint32)
	for _, field := range fields {
		input, ok := text[field.Name]
		if !ok {
			continue
		}
		for _, tok := range field.Analyzer.Analyze([]byte(input)) {
			freq[string(tok.Term)]++
		}
	}
	return freq
}

// docFreq counts how many documents contain term in field, by running
// a term query to completion — the same "stable top-level API only"
// substitute AllMatches uses elsewhere, trading a term-dictionary
// lookup for a full scan of the term's postings.
func (e *Extractor) docFreq(ctx context.Context, field, term string) (uint64, error) {
	q := bluge.NewTermQuery(term).SetField(field)
	it, err := e.reader.AllMatches(ctx, q)
	if err != nil {
		return 0, err
	}
	var n uint64
	for {
		match, err := it.Next()
		if err != nil {
			return 0, err
		}
		if match == nil {
			break
		}
		n++
	}
	return n, nil
}

func (e *Extractor) extract(ctx context.Context, limit int, text map[string]string, accept Accept) ([]Keyword, error) {
	numDocs, err := e.reader.Count()
	if err != nil {
		return nil, err
	}

	freqs := termFreq(e.fields, text)
	// field isn't tracked per-term here (terms are pooled across
	// fields, mirroring the original's per-field accumulation into one
	// Keywords set), so doc frequency is looked up against every
	// configured field and summed — a term present in "name" and
	// "ingredients" both contributes to its corpus-wide frequency.
	keywords := make([]Keyword, 0, len(freqs))
	for term, tf := range freqs {
		var docFreq uint64
		for _, field := range e.fields {
			df, err := e.docFreq(ctx, field.Name, term)
			if err != nil {
				return nil, err
			}
			docFreq += df
		}
		if docFreq == 0 {
			continue
		}
		if !accept(term, tf, docFreq, numDocs) {
			continue
		}
		score := float64(tf) * idf(docFreq, numDocs)
		keywords = append(keywords, Keyword{Term: term, Score: score})
	}

	sort.Slice(keywords, func(i, j int) bool { return keywords[i].Score > keywords[j].Score })
	if len(keywords) > limit {
		keywords = keywords[:limit]
	}
	return keywords, nil
}

// Extract scores terms found in input against the corpus's document
// frequencies.
func (e *Extractor) Extract(ctx context.Context, limit int, input string, accept Accept) ([]Keyword, error) {
	text := make(map[string]string, len(e.fields))
	for _, field := range e.fields {
		text[field.Name] = input
	}
	return e.extract(ctx, limit, text, accept)
}

// ExtractFromDocument scores terms found in a stored document's text
// fields, re-tokenizing the stored values rather than walking the host
// index's internal term dictionary (see internal/engine's package doc).
func (e *Extractor) ExtractFromDocument(ctx context.Context, limit int, idField string, id string, accept Accept) ([]Keyword, error) {
	q := bluge.NewTermQuery(id).SetField(idField)
	it, err := e.reader.AllMatches(ctx, q)
	if err != nil {
		return nil, err
	}
	match, err := it.Next()
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, ferrors.ErrNotFound
	}

	text := make(map[string]string, len(e.fields))
	err = match.VisitStoredFields(func(field string, value []byte) bool {
		text[field] = string(value)
		return true
	})
	if err != nil {
		return nil, err
	}

	return e.extract(ctx, limit, text, accept)
}

// Query builds an unweighted disjunction over kw's terms.
func Query(field string, kw []Keyword) bluge.Query {
	b := bluge.NewBooleanQuery()
	for _, k := range kw {
		b.AddShould(bluge.NewTermQuery(k.Term).SetField(field))
	}
	return b
}

// BoostedQuery builds a disjunction over kw's terms, each boosted by
// its tf*idf score, so a "more like this" query weighs rarer, more
// frequent terms more heavily than common ones.
func BoostedQuery(field string, kw []Keyword) bluge.Query {
	b := bluge.NewBooleanQuery()
	for _, k := range kw {
		b.AddShould(bluge.NewBoostedQuery(bluge.NewTermQuery(k.Term).SetField(field), k.Score))
	}
	return b
}
