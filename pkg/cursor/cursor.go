// Package cursor implements the 25-byte opaque pagination marker used as
// the "after" parameter between paginated search calls: a tag byte
// selecting the score's interpretation, an 8-byte big-endian score
// payload, and a 16-byte UUID identifying the last item on the previous
// page.
package cursor

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/cantine/search/pkg/ferrors"
)

// Tag selects how the 8-byte score payload is interpreted.
type Tag byte

const (
	// TagRelevance: payload is a big-endian float32, left-padded with
	// four zero bytes.
	TagRelevance Tag = 0
	// TagUint64: payload is a big-endian uint64 fast-field ordering score.
	TagUint64 Tag = 1
	// TagFloat64: payload is a big-endian float64 fast-field ordering score.
	TagFloat64 Tag = 2
)

// Size is the fixed on-the-wire length of a decoded cursor.
const Size = 1 + 8 + 16

// EncodedLen is the length of the base64url-no-padding encoding of a
// cursor: ceil(Size*8/6) == 34.
const EncodedLen = 34

// Cursor is a decoded pagination marker.
type Cursor struct {
	Tag   Tag
	Score [8]byte
	UUID  uuid.UUID
}

func scoreBytes(bits uint64) [8]byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], bits)
	return b
}

// NewRelevance builds a cursor tagged for a relevance (float32) score.
func NewRelevance(score float32, id uuid.UUID) Cursor {
	return Cursor{Tag: TagRelevance, Score: scoreBytes(uint64(math.Float32bits(score))), UUID: id}
}

// NewUint64 builds a cursor tagged for a u64 fast-field ordering score.
func NewUint64(score uint64, id uuid.UUID) Cursor {
	return Cursor{Tag: TagUint64, Score: scoreBytes(score), UUID: id}
}

// NewFloat64 builds a cursor tagged for an f64 fast-field ordering score.
func NewFloat64(score float64, id uuid.UUID) Cursor {
	return Cursor{Tag: TagFloat64, Score: scoreBytes(math.Float64bits(score)), UUID: id}
}

// Float64Score returns the score as a float64 regardless of tag, for
// feeding into the generic (float64-keyed) condition/topk machinery.
func (c Cursor) Float64Score() float64 {
	switch c.Tag {
	case TagRelevance:
		bits := binary.BigEndian.Uint64(c.Score[:])
		return float64(math.Float32frombits(uint32(bits)))
	case TagUint64:
		return float64(binary.BigEndian.Uint64(c.Score[:]))
	case TagFloat64:
		bits := binary.BigEndian.Uint64(c.Score[:])
		return math.Float64frombits(bits)
	default:
		return 0
	}
}

// Bytes serializes the cursor to its fixed 25-byte wire form.
func (c Cursor) Bytes() []byte {
	out := make([]byte, 0, Size)
	out = append(out, byte(c.Tag))
	out = append(out, c.Score[:]...)
	idBytes, _ := c.UUID.MarshalBinary()
	out = append(out, idBytes...)
	return out
}

// Encode renders the cursor as URL-safe base64 without padding (exactly
// EncodedLen characters).
func (c Cursor) Encode() string {
	return base64.RawURLEncoding.EncodeToString(c.Bytes())
}

// DecodeBytes decodes a raw 25-byte buffer. It never panics: any input
// whose length isn't Size, or whose tag byte isn't 0, 1 or 2, yields an
// error.
func DecodeBytes(b []byte) (Cursor, error) {
	if len(b) != Size {
		return Cursor{}, ferrors.NewInvalidCursor("wrong length", len(b))
	}

	tag := Tag(b[0])
	if tag != TagRelevance && tag != TagUint64 && tag != TagFloat64 {
		return Cursor{}, ferrors.NewInvalidCursor("unrecognized tag", b[0])
	}

	var c Cursor
	c.Tag = tag
	copy(c.Score[:], b[1:9])
	id, err := uuid.FromBytes(b[9:25])
	if err != nil {
		return Cursor{}, ferrors.NewInvalidCursor(fmt.Sprintf("malformed uuid: %v", err), nil)
	}
	c.UUID = id
	return c, nil
}

// Decode base64url-no-padding-decodes s and parses the result.
func Decode(s string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, ferrors.NewInvalidCursor(fmt.Sprintf("malformed base64: %v", err), s)
	}
	return DecodeBytes(raw)
}
