package cursor

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	id := uuid.New()
	cases := []Cursor{
		NewRelevance(3.14, id),
		NewUint64(42, id),
		NewFloat64(2.71828, id),
	}
	for _, c := range cases {
		encoded := c.Encode()
		assert.Len(t, encoded, EncodedLen)

		got, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestDecodeNeverPanicsOnArbitraryLength(t *testing.T) {
	for n := 0; n < 40; n++ {
		buf := make([]byte, n)
		assert.NotPanics(t, func() {
			_, _ = DecodeBytes(buf)
		})
	}
}

func TestDecodeRejectsBadTag(t *testing.T) {
	buf := make([]byte, Size)
	buf[0] = 3
	_, err := DecodeBytes(buf)
	assert.Error(t, err)
}

func TestDecodeAcceptsExactlyValidTags(t *testing.T) {
	for tag := 0; tag < 256; tag++ {
		buf := make([]byte, Size)
		buf[0] = byte(tag)
		_, err := DecodeBytes(buf)
		if tag == 0 || tag == 1 || tag == 2 {
			assert.NoError(t, err, "tag %d", tag)
		} else {
			assert.Error(t, err, "tag %d", tag)
		}
	}
}
