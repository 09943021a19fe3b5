package queryparser

import (
	"github.com/blugelabs/bluge"
	"github.com/blugelabs/bluge/analysis"
)

// FieldConfig binds a queryable field to the analyzer used both to
// index and to interpret query clauses against it, plus an optional
// boost applied to every subquery generated for that field.
type FieldConfig struct {
	Name     string
	Analyzer *analysis.Analyzer
	Boost    *float64
}

// Parser interprets clauses (see Split) into host-index queries,
// dispatching each clause to one field's analyzer — either the field
// the clause names explicitly, or every field in DefaultFields when
// unqualified.
type Parser struct {
	fields        []FieldConfig
	byName        map[string]int
	defaultFields []int
}

// NewParser builds a Parser over fields, querying all of them by
// default for unqualified clauses.
func NewParser(fields ...FieldConfig) *Parser {
	p := &Parser{fields: fields, byName: make(map[string]int, len(fields))}
	for i, f := range fields {
		p.byName[f.Name] = i
	}
	p.defaultFields = make([]int, len(fields))
	for i := range fields {
		p.defaultFields[i] = i
	}
	return p
}

// SetDefaultFields restricts which fields an unqualified clause
// targets; unknown names are dropped.
func (p *Parser) SetDefaultFields(names ...string) {
	indices := make([]int, 0, len(names))
	for _, name := range names {
		if i, ok := p.byName[name]; ok {
			indices = append(indices, i)
		}
	}
	p.defaultFields = indices
}

// Valid implements FieldValidator against this parser's known fields.
func (p *Parser) Valid(name string) bool {
	_, ok := p.byName[name]
	return ok
}

// Combiner folds more than one positive subquery generated from a
// single clause (this happens when a clause targets several default
// fields) into one query. Parse uses a plain Should-disjunction;
// callers wanting other semantics (such as DisMax) pass their own
// Combiner to ParseWithCombiner.
type Combiner func(queries []bluge.Query) bluge.Query

// ShouldCombiner is the default Combiner: an OR of every subquery.
func ShouldCombiner(queries []bluge.Query) bluge.Query {
	b := bluge.NewBooleanQuery()
	for _, q := range queries {
		b.AddShould(q)
	}
	return b
}

// Parse interprets input with the default Should-disjunction combiner.
func (p *Parser) Parse(input string) bluge.Query {
	return p.ParseWithCombiner(input, ShouldCombiner)
}

// ParseWithCombiner interprets input, using combine whenever a single
// clause expands into subqueries over more than one field. Returns nil
// when input is empty or every clause's analyzer output is empty — the
// caller is expected to substitute bluge.NewMatchAllQuery() in that
// case, per the "empty input" boundary behavior.
func (p *Parser) ParseWithCombiner(input string, combine Combiner) bluge.Query {
	clauses := Split(input, p)

	type occurred struct {
		occur Occur
		query bluge.Query
	}
	var positive []occurred
	var mustNot []bluge.Query

	for _, clause := range clauses {
		queries := p.queriesFromClause(clause)
		if len(queries) == 0 {
			continue
		}
		if clause.Occur == MustNot {
			mustNot = append(mustNot, queries...)
			continue
		}
		var q bluge.Query
		if len(queries) == 1 {
			q = queries[0]
		} else {
			q = combine(queries)
		}
		positive = append(positive, occurred{occur: clause.Occur, query: q})
	}

	total := len(positive) + len(mustNot)
	if total == 0 {
		return nil
	}

	if total == 1 {
		if len(mustNot) == 1 {
			return bluge.NewBooleanQuery().AddMustNot(mustNot[0]).AddMust(bluge.NewMatchAllQuery())
		}
		if positive[0].occur == Must {
			return positive[0].query
		}
		return positive[0].query
	}

	b := bluge.NewBooleanQuery()
	for _, p := range positive {
		switch p.occur {
		case Must:
			b.AddMust(p.query)
		default:
			b.AddShould(p.query)
		}
	}
	for _, q := range mustNot {
		b.AddMustNot(q)
	}
	if len(positive) == 0 {
		// every clause was MustNot: match the universe minus the
		// prohibited set.
		b.AddMust(bluge.NewMatchAllQuery())
	}
	return b
}

func (p *Parser) queriesFromClause(clause Clause) []bluge.Query {
	indices := p.defaultFields
	if clause.Field != "" {
		if i, ok := p.byName[clause.Field]; ok {
			indices = []int{i}
		}
	}

	var out []bluge.Query
	for _, i := range indices {
		field := p.fields[i]
		q := interpret(field, clause)
		if q == nil {
			continue
		}
		if field.Boost != nil {
			out = append(out, bluge.NewBoostedQuery(q, *field.Boost))
			continue
		}
		out = append(out, q)
	}
	return out
}

// interpret tokenizes clause.Text with field's analyzer and builds the
// matching query shape: empty output is skipped, a single token
// becomes a term query (a phrase item that yields one token included),
// multiple tokens from a phrase item become a phrase query, multiple
// tokens from a bare item become a disjunction of term queries.
func interpret(field FieldConfig, clause Clause) bluge.Query {
	tokens := field.Analyzer.Analyze([]byte(clause.Text))
	if len(tokens) == 0 {
		return nil
	}

	if len(tokens) == 1 {
		return bluge.NewTermQuery(string(tokens[0].Term)).SetField(field.Name)
	}

	if clause.Phrase {
		return bluge.NewMatchPhraseQuery(clause.Text).SetField(field.Name).SetAnalyzer(field.Analyzer)
	}

	b := bluge.NewBooleanQuery()
	for _, tok := range tokens {
		b.AddShould(bluge.NewTermQuery(string(tok.Term)).SetField(field.Name))
	}
	return b
}
