package recordstore

import (
	"bufio"
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cantine/search/pkg/ferrors"
	"github.com/cantine/search/pkg/filesys"
)

// WriterConfig configures a Writer.
type WriterConfig[T any] struct {
	DataDir string
	Codec   Codec[T]
	Logger  *zap.SugaredLogger
}

// Writer appends records to the offsets.bin/data.bin pair under DataDir.
// It is buffered; data is flushed to disk on Close. Writer is not safe
// for concurrent use — the store has a single producer, by design (see
// the concurrency model's "record-store writer is owned by a single
// thread — no locking").
type Writer[T any] struct {
	codec Codec[T]
	log   *zap.SugaredLogger

	offsetsFile *os.File
	dataFile    *os.File
	data        *bufio.Writer
	offsets     *bufio.Writer

	nextOffset int64
}

// OpenWriter creates DataDir if needed and opens (or creates) the
// offsets.bin/data.bin pair, positioned to append after whatever they
// already contain.
func OpenWriter[T any](cfg WriterConfig[T]) (*Writer[T], error) {
	if err := filesys.CreateDir(cfg.DataDir, 0o755, true); err != nil {
		return nil, ferrors.NewStorageError(err, ferrors.KindIO, "failed to create data directory").
			WithPath(cfg.DataDir)
	}

	dataPath := filepath.Join(cfg.DataDir, "data.bin")
	offsetsPath := filepath.Join(cfg.DataDir, "offsets.bin")

	dataFile, err := os.OpenFile(dataPath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, ferrors.NewStorageError(err, ferrors.KindIO, "failed to open data file").
			WithPath(dataPath).WithFileName("data.bin")
	}

	offsetsFile, err := os.OpenFile(offsetsPath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		dataFile.Close()
		return nil, ferrors.NewStorageError(err, ferrors.KindIO, "failed to open offsets file").
			WithPath(offsetsPath).WithFileName("offsets.bin")
	}

	stat, err := dataFile.Stat()
	if err != nil {
		dataFile.Close()
		offsetsFile.Close()
		return nil, ferrors.NewStorageError(err, ferrors.KindIO, "failed to stat data file").WithPath(dataPath)
	}

	return &Writer[T]{
		codec:       cfg.Codec,
		log:         cfg.Logger,
		offsetsFile: offsetsFile,
		dataFile:    dataFile,
		data:        bufio.NewWriter(dataFile),
		offsets:     bufio.NewWriter(offsetsFile),
		nextOffset:  stat.Size(),
	}, nil
}

// Append serializes record, writes its length-prefixed payload to
// data.bin, then appends one fixed-size entry to offsets.bin. The data
// write happens before the log entry is appended, so a reader never
// observes an offset pointing at an unwritten payload.
func (w *Writer[T]) Append(id uuid.UUID, seq uint64, record T) error {
	payload, err := w.codec.Encode(record)
	if err != nil {
		return ferrors.NewEncodeFailure(err)
	}

	offset := w.nextOffset

	var lenBuf [lengthPrefixSize]byte
	binary.NativeEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.data.Write(lenBuf[:]); err != nil {
		return ferrors.NewStorageError(err, ferrors.KindIO, "failed to write record length prefix").WithOffset(offset)
	}
	if _, err := w.data.Write(payload); err != nil {
		return ferrors.NewStorageError(err, ferrors.KindIO, "failed to write record payload").WithOffset(offset)
	}
	w.nextOffset += int64(lengthPrefixSize + len(payload))

	entry := logEntry{uuid: id, id: seq, offset: offset}
	if _, err := w.offsets.Write(entry.marshal()); err != nil {
		return ferrors.NewStorageError(err, ferrors.KindIO, "failed to append log entry").WithOffset(offset)
	}

	return nil
}

// Flush pushes buffered bytes to the underlying files without closing
// them.
func (w *Writer[T]) Flush() error {
	if err := w.data.Flush(); err != nil {
		return ferrors.NewStorageError(err, ferrors.KindIO, "failed to flush data file")
	}
	if err := w.offsets.Flush(); err != nil {
		return ferrors.NewStorageError(err, ferrors.KindIO, "failed to flush offsets file")
	}
	return nil
}

// Close flushes and closes both files. Callers must Close the writer
// before opening a reader on the same directory.
func (w *Writer[T]) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	if err := w.dataFile.Close(); err != nil {
		return ferrors.NewStorageError(err, ferrors.KindIO, "failed to close data file")
	}
	if err := w.offsetsFile.Close(); err != nil {
		return ferrors.NewStorageError(err, ferrors.KindIO, "failed to close offsets file")
	}
	if w.log != nil {
		w.log.Infow("record store writer closed", "nextOffset", w.nextOffset)
	}
	return nil
}
