package recordstore

import "encoding/json"

// Codec parameterizes the record store by the record's on-disk
// encoding, so the store itself stays oblivious to record shape.
type Codec[T any] interface {
	Encode(v T) ([]byte, error)
	Decode(b []byte) (T, error)
}

// JSONCodec is the default Codec: records are newline-delimited JSON on
// the wire (the ingest CLI's input format), and the same encoding is
// reused for the on-disk payload so `check` can compare byte-for-byte
// after a round trip.
type JSONCodec[T any] struct{}

func (JSONCodec[T]) Encode(v T) ([]byte, error) { return json.Marshal(v) }

func (JSONCodec[T]) Decode(b []byte) (T, error) {
	var v T
	err := json.Unmarshal(b, &v)
	return v, err
}
