package ferrors

// StorageError reports a problem opening, reading or writing the record
// store or the host index. path/file name the resource; offset, when
// known, pinpoints where in the file the problem was found (set for
// IndexPointsAtUnreachable, DecodeFailure and failed appends).
type StorageError struct {
	*baseError
	path     string
	fileName string
	offset   int64
}

func NewStorageError(err error, code Kind, msg string) *StorageError {
	return &StorageError{baseError: newBase(err, code, msg)}
}

func (se *StorageError) WithPath(path string) *StorageError {
	se.path = path
	return se
}

func (se *StorageError) WithFileName(name string) *StorageError {
	se.fileName = name
	return se
}

func (se *StorageError) WithOffset(offset int64) *StorageError {
	se.offset = offset
	return se
}

func (se *StorageError) WithDetail(key string, value any) *StorageError {
	se.baseError.WithDetail(key, value)
	return se
}

func (se *StorageError) Path() string     { return se.path }
func (se *StorageError) FileName() string { return se.fileName }
func (se *StorageError) Offset() int64    { return se.offset }

// NewCorruptLog builds the fatal-on-open error for an offsets.bin whose
// size is not a multiple of the fixed entry size.
func NewCorruptLog(path string, size, entrySize int64) *StorageError {
	return NewStorageError(nil, KindCorruptLog, "offset log size is not a multiple of the entry size").
		WithPath(path).
		WithDetail("size", size).
		WithDetail("entrySize", entrySize)
}

// NewIndexPointsAtUnreachable builds the fatal-on-open error for a logged
// offset that lies past the end of data.bin.
func NewIndexPointsAtUnreachable(path string, offset, dataSize int64) *StorageError {
	return NewStorageError(nil, KindIndexPointsAtUnreachable, "logged offset lies past the end of the data file").
		WithPath(path).
		WithOffset(offset).
		WithDetail("dataSize", dataSize)
}

// NewSchemaMismatch builds the fatal-on-open error for a declared feature
// field missing from the on-disk schema.
func NewSchemaMismatch(field string) *StorageError {
	return NewStorageError(nil, KindSchemaMismatch, "declared field is absent from the on-disk schema").
		WithDetail("field", field)
}

// NewEncodeFailure wraps a record serialization failure.
func NewEncodeFailure(err error) *StorageError {
	return NewStorageError(err, KindEncodeFailure, "failed to encode record")
}

// NewDecodeFailure wraps a record deserialization failure.
func NewDecodeFailure(err error, offset int64) *StorageError {
	return NewStorageError(err, KindDecodeFailure, "failed to decode record").WithOffset(offset)
}
