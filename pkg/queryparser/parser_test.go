package queryparser

import (
	"testing"

	"github.com/blugelabs/bluge/analysis"
	"github.com/blugelabs/bluge/analysis/tokenizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func whitespaceAnalyzer() *analysis.Analyzer {
	return &analysis.Analyzer{Tokenizer: tokenizer.NewWhitespaceTokenizer()}
}

func newTestParser() *Parser {
	return NewParser(
		FieldConfig{Name: "title", Analyzer: whitespaceAnalyzer()},
		FieldConfig{Name: "body", Analyzer: whitespaceAnalyzer()},
	)
}

func TestParseEmptyInputIsNil(t *testing.T) {
	p := newTestParser()
	assert.Nil(t, p.Parse(""))
	assert.Nil(t, p.Parse("   "))
}

func TestParseSingleTermAcrossDefaultFields(t *testing.T) {
	p := newTestParser()
	q := p.Parse("apple")
	require.NotNil(t, q)
}

func TestParseFieldQualifiedClauseTargetsOneField(t *testing.T) {
	p := newTestParser()
	q := p.Parse("title:apple")
	require.NotNil(t, q)
}

func TestParsePurelyNegativeAddsMatchAll(t *testing.T) {
	p := newTestParser()
	q := p.Parse("-love")
	require.NotNil(t, q)
}

func TestParseUnknownFieldFoldsIntoTermText(t *testing.T) {
	p := newTestParser()
	q := p.Parse("unknownfield:apple")
	require.NotNil(t, q)
}
