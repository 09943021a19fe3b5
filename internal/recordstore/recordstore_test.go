package recordstore

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cantine/search/pkg/ferrors"
)

type testRecord struct {
	Title string `json:"title"`
	Value int    `json:"value"`
}

func writeFixture(t *testing.T, dir string, n int) ([]uuid.UUID, []testRecord) {
	t.Helper()
	w, err := OpenWriter(WriterConfig[testRecord]{DataDir: dir, Codec: JSONCodec[testRecord]{}})
	require.NoError(t, err)

	ids := make([]uuid.UUID, n)
	records := make([]testRecord, n)
	for i := 0; i < n; i++ {
		ids[i] = uuid.New()
		records[i] = testRecord{Title: "recipe", Value: i}
		require.NoError(t, w.Append(ids[i], uint64(i), records[i]))
	}
	require.NoError(t, w.Close())
	return ids, records
}

func TestRoundTripByIDAndUUID(t *testing.T) {
	dir := t.TempDir()
	ids, records := writeFixture(t, dir, 10)

	r, err := OpenReader(ReaderConfig[testRecord]{DataDir: dir, Codec: JSONCodec[testRecord]{}})
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, 10, r.Len())

	for i := range records {
		byID, err := r.FindByID(uint64(i))
		require.NoError(t, err)
		assert.Equal(t, records[i], byID)

		byUUID, err := r.FindByUUID(ids[i])
		require.NoError(t, err)
		assert.Equal(t, records[i], byUUID)
	}
}

func TestAbsentKeyReturnsNotFound(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, 3)

	r, err := OpenReader(ReaderConfig[testRecord]{DataDir: dir, Codec: JSONCodec[testRecord]{}})
	require.NoError(t, err)
	defer r.Close()

	_, err = r.FindByID(999)
	assert.ErrorIs(t, err, ferrors.ErrNotFound)

	_, err = r.FindByUUID(uuid.New())
	assert.ErrorIs(t, err, ferrors.ErrNotFound)
}

func TestEachVisitsEveryRecordAndCanStopEarly(t *testing.T) {
	dir := t.TempDir()
	_, records := writeFixture(t, dir, 5)

	r, err := OpenReader(ReaderConfig[testRecord]{DataDir: dir, Codec: JSONCodec[testRecord]{}})
	require.NoError(t, err)
	defer r.Close()

	seen := make(map[int]bool)
	require.NoError(t, r.Each(func(id uint64, record testRecord) bool {
		seen[record.Value] = true
		return true
	}))
	assert.Len(t, seen, len(records))

	visited := 0
	require.NoError(t, r.Each(func(id uint64, record testRecord) bool {
		visited++
		return false
	}))
	assert.Equal(t, 1, visited)
}

func TestCorruptLogSizeIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, 2)

	// Truncate offsets.bin to a non-multiple-of-entrySize length.
	path := dir + "/offsets.bin"
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data[:len(data)-1], 0o644))

	_, err = OpenReader(ReaderConfig[testRecord]{DataDir: dir, Codec: JSONCodec[testRecord]{}})
	require.Error(t, err)
	se, ok := ferrors.AsStorageError(err)
	require.True(t, ok)
	assert.Equal(t, ferrors.KindCorruptLog, se.Code())
}
