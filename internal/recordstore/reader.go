package recordstore

import (
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/blevesearch/mmap-go"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cantine/search/pkg/ferrors"
)

// ReaderConfig configures a Reader.
type ReaderConfig[T any] struct {
	DataDir string
	Codec   Codec[T]
	Logger  *zap.SugaredLogger
}

// Reader provides O(1) lookup of records by id or uuid, backed by a
// memory-mapped data file and two hash indexes built once at open by
// scanning the offset log.
type Reader[T any] struct {
	codec Codec[T]
	log   *zap.SugaredLogger

	dataFile *os.File
	data     mmap.MMap

	idToOffset map[uint64]int64
	uuidToID   map[uuid.UUID]uint64
}

// OpenReader opens the offsets.bin/data.bin pair under DataDir, verifies
// the log's size is a whole number of entries (fatal on mismatch per the
// record store's invariants), scans it into the id/uuid indexes, and
// memory-maps the data file for the reader's lifetime.
func OpenReader[T any](cfg ReaderConfig[T]) (*Reader[T], error) {
	offsetsPath := filepath.Join(cfg.DataDir, "offsets.bin")
	dataPath := filepath.Join(cfg.DataDir, "data.bin")

	offsetsBytes, err := os.ReadFile(offsetsPath)
	if err != nil {
		return nil, ferrors.NewStorageError(err, ferrors.KindIO, "failed to read offsets file").WithPath(offsetsPath)
	}
	if len(offsetsBytes)%entrySize != 0 {
		return nil, ferrors.NewCorruptLog(offsetsPath, int64(len(offsetsBytes)), entrySize)
	}

	dataFile, err := os.Open(dataPath)
	if err != nil {
		return nil, ferrors.NewStorageError(err, ferrors.KindIO, "failed to open data file").WithPath(dataPath)
	}

	dataStat, err := dataFile.Stat()
	if err != nil {
		dataFile.Close()
		return nil, ferrors.NewStorageError(err, ferrors.KindIO, "failed to stat data file").WithPath(dataPath)
	}

	var mapped mmap.MMap
	if dataStat.Size() > 0 {
		mapped, err = mmap.Map(dataFile, mmap.RDONLY, 0)
		if err != nil {
			dataFile.Close()
			return nil, ferrors.NewStorageError(err, ferrors.KindIO, "failed to mmap data file").WithPath(dataPath)
		}
	}

	n := len(offsetsBytes) / entrySize
	idToOffset := make(map[uint64]int64, n)
	uuidToID := make(map[uuid.UUID]uint64, n)

	for i := 0; i < n; i++ {
		entry := unmarshalEntry(offsetsBytes[i*entrySize : (i+1)*entrySize])
		if entry.offset < 0 || entry.offset+lengthPrefixSize > int64(len(mapped)) {
			if mapped != nil {
				mapped.Unmap()
			}
			dataFile.Close()
			return nil, ferrors.NewIndexPointsAtUnreachable(dataPath, entry.offset, int64(len(mapped)))
		}
		idToOffset[entry.id] = entry.offset
		uuidToID[entry.uuid] = entry.id
	}

	if cfg.Logger != nil {
		cfg.Logger.Infow("record store reader opened", "entries", n, "dataDir", cfg.DataDir)
	}

	return &Reader[T]{
		codec:      cfg.Codec,
		log:        cfg.Logger,
		dataFile:   dataFile,
		data:       mapped,
		idToOffset: idToOffset,
		uuidToID:   uuidToID,
	}, nil
}

// Len reports how many records the reader indexed at open.
func (r *Reader[T]) Len() int { return len(r.idToOffset) }

// HasUUID reports whether uuid is known to this reader, without
// decoding the record. Used to validate a search cursor's embedded uuid.
func (r *Reader[T]) HasUUID(id uuid.UUID) bool {
	_, ok := r.uuidToID[id]
	return ok
}

// Each decodes and visits every record the reader indexed at open, in
// no particular order, stopping early if fn returns false. Used by
// whole-corpus scans (the `info` command's full-range aggregation
// snapshot) that have no need to route through the host index.
func (r *Reader[T]) Each(fn func(id uint64, record T) bool) error {
	for id, offset := range r.idToOffset {
		record, err := r.recordAt(offset)
		if err != nil {
			return err
		}
		if !fn(id, record) {
			return nil
		}
	}
	return nil
}

func (r *Reader[T]) recordAt(offset int64) (T, error) {
	var zero T
	length := binary.NativeEndian.Uint32(r.data[offset : offset+lengthPrefixSize])
	start := offset + lengthPrefixSize
	end := start + int64(length)
	if end > int64(len(r.data)) {
		return zero, ferrors.NewIndexPointsAtUnreachable("data.bin", offset, int64(len(r.data)))
	}
	v, err := r.codec.Decode(r.data[start:end])
	if err != nil {
		return zero, ferrors.NewDecodeFailure(err, offset)
	}
	return v, nil
}

// FindByID looks up a record by its dense integer id. A well-formed but
// absent id reports ferrors.ErrNotFound.
func (r *Reader[T]) FindByID(id uint64) (T, error) {
	var zero T
	offset, ok := r.idToOffset[id]
	if !ok {
		return zero, ferrors.ErrNotFound
	}
	return r.recordAt(offset)
}

// FindByUUID looks up a record by its stable external uuid, routing
// through uuid->id->offset.
func (r *Reader[T]) FindByUUID(id uuid.UUID) (T, error) {
	var zero T
	seq, ok := r.uuidToID[id]
	if !ok {
		return zero, ferrors.ErrNotFound
	}
	return r.FindByID(seq)
}

// Close unmaps the data file and releases the file handle.
func (r *Reader[T]) Close() error {
	if r.data != nil {
		if err := r.data.Unmap(); err != nil {
			return ferrors.NewStorageError(err, ferrors.KindIO, "failed to unmap data file")
		}
	}
	return r.dataFile.Close()
}
