package ferrors

// Kind is the programmatic error code attached to every error value this
// package produces. It corresponds one-to-one with the error kinds named
// by the error handling design: schema and on-disk-format problems are
// fatal at open, cursor and query problems are 400-class, timeouts are
// 504-class, and lookups-by-key report NotFound rather than an error.
//
// Three additional failure modes — a zero collector limit, an out-of-range
// DisMax tiebreaker, and a schema created without the INDEXED flag — are
// programmer errors.
// They never produce a Kind; the constructors involved panic instead.
type Kind string

const (
	// KindSchemaMismatch: a declared feature field is absent from the
	// on-disk schema when opening a reader or writer. Fatal at open.
	KindSchemaMismatch Kind = "SCHEMA_MISMATCH"

	// KindCorruptLog: offsets.bin's size is not a multiple of the fixed
	// entry size. Fatal at open.
	KindCorruptLog Kind = "CORRUPT_LOG"

	// KindEncodeFailure: a record failed to serialize on append.
	KindEncodeFailure Kind = "ENCODE_FAILURE"

	// KindDecodeFailure: bytes read back from data.bin did not decode
	// into a record.
	KindDecodeFailure Kind = "DECODE_FAILURE"

	// KindIndexPointsAtUnreachable: a logged offset lies past the end of
	// data.bin. Fatal at open.
	KindIndexPointsAtUnreachable Kind = "INDEX_POINTS_AT_UNREACHABLE"

	// KindInvalidCursor: the cursor's tag byte, length, or referenced
	// UUID is invalid. 400-class.
	KindInvalidCursor Kind = "INVALID_CURSOR"

	// KindQueryParse: the user's query grammar failed to parse. 400-class.
	KindQueryParse Kind = "QUERY_PARSE"

	// KindSearchTimeout: the search deadline was exceeded. 504-class.
	KindSearchTimeout Kind = "SEARCH_TIMEOUT"

	// KindIO: an underlying filesystem operation failed (open, seek,
	// write, sync, mmap).
	KindIO Kind = "IO"

	// KindInternal: an unexpected failure with no more specific kind.
	KindInternal Kind = "INTERNAL"
)
