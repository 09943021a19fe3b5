package ferrors

// ValidationError reports a problem with caller-supplied input: a
// malformed query, an out-of-range filter, a cursor that fails to
// decode. field and rule identify what was checked; provided/expected
// carry the offending and allowed values for structured logging.
type ValidationError struct {
	*baseError
	field    string
	rule     string
	provided any
	expected any
}

func NewValidationError(err error, code Kind, msg string) *ValidationError {
	return &ValidationError{baseError: newBase(err, code, msg)}
}

func (ve *ValidationError) WithField(field string) *ValidationError {
	ve.field = field
	return ve
}

func (ve *ValidationError) WithRule(rule string) *ValidationError {
	ve.rule = rule
	return ve
}

func (ve *ValidationError) WithProvided(v any) *ValidationError {
	ve.provided = v
	return ve
}

func (ve *ValidationError) WithExpected(v any) *ValidationError {
	ve.expected = v
	return ve
}

func (ve *ValidationError) WithDetail(key string, value any) *ValidationError {
	ve.baseError.WithDetail(key, value)
	return ve
}

func (ve *ValidationError) Field() string    { return ve.field }
func (ve *ValidationError) Rule() string     { return ve.rule }
func (ve *ValidationError) Provided() any    { return ve.provided }
func (ve *ValidationError) Expected() any    { return ve.expected }

// NewInvalidCursor builds the ValidationError for a cursor that failed to
// decode: wrong length, unrecognized tag, or (when checked against an
// open reader) an unknown UUID.
func NewInvalidCursor(reason string, provided any) *ValidationError {
	return NewValidationError(nil, KindInvalidCursor, "invalid cursor: "+reason).
		WithField("after").
		WithRule(reason).
		WithProvided(provided)
}

// NewQueryParseError builds the ValidationError for a query string the
// grammar parser rejected.
func NewQueryParseError(err error, query string) *ValidationError {
	return NewValidationError(err, KindQueryParse, "failed to parse query").
		WithField("fulltext").
		WithProvided(query)
}
