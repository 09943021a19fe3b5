package recordstore

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// entrySize is the fixed on-disk width of one offsets.bin record:
// 16-byte uuid + 8-byte id + 8-byte offset, both integers native-endian.
const entrySize = 16 + 8 + 8

// lengthPrefixSize is the width of the length prefix written before
// every record payload in data.bin.
const lengthPrefixSize = 4

type logEntry struct {
	uuid   uuid.UUID
	id     uint64
	offset int64
}

func (e logEntry) marshal() []byte {
	buf := make([]byte, entrySize)
	copy(buf[0:16], e.uuid[:])
	binary.NativeEndian.PutUint64(buf[16:24], e.id)
	binary.NativeEndian.PutUint64(buf[24:32], uint64(e.offset))
	return buf
}

func unmarshalEntry(buf []byte) logEntry {
	var e logEntry
	copy(e.uuid[:], buf[0:16])
	e.id = binary.NativeEndian.Uint64(buf[16:24])
	e.offset = int64(binary.NativeEndian.Uint64(buf[24:32]))
	return e
}
