package topk

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPanicsOnZeroLimit(t *testing.T) {
	assert.Panics(t, func() { New[int64](0, true) })
}

func TestAscendingKeepsSmallest(t *testing.T) {
	scores := []int64{50, 10, 40, 20, 30, 5, 60}
	tk := NewAscending[int64](3)
	for i, s := range scores {
		tk.Visit(s, uint64(i))
	}
	got := tk.IntoSortedVec()
	require.Len(t, got, 3)
	want := []int64{5, 10, 20}
	for i, e := range got {
		assert.Equal(t, want[i], e.Score)
	}
}

func TestDescendingKeepsLargest(t *testing.T) {
	scores := []int64{50, 10, 40, 20, 30, 5, 60}
	tk := NewDescending[int64](3)
	for i, s := range scores {
		tk.Visit(s, uint64(i))
	}
	got := tk.IntoSortedVec()
	require.Len(t, got, 3)
	want := []int64{60, 50, 40}
	for i, e := range got {
		assert.Equal(t, want[i], e.Score)
	}
}

func TestTieBreaksOnSmallerDoc(t *testing.T) {
	tk := NewDescending[int64](2)
	tk.Visit(10, 5)
	tk.Visit(10, 1)
	tk.Visit(10, 3)
	got := tk.IntoSortedVec()
	require.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[0].Doc)
	assert.Equal(t, uint64(3), got[1].Doc)
}

func TestResultLengthIsMinKAndInputSize(t *testing.T) {
	tk := NewDescending[int64](100)
	for i := 0; i < 7; i++ {
		tk.Visit(int64(i), uint64(i))
	}
	assert.Equal(t, 7, tk.Len())
}

func TestAdmissionAgainstBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		n := 1 + r.Intn(200)
		k := 1 + r.Intn(50)
		type pair struct {
			score int64
			doc   uint64
		}
		input := make([]pair, n)
		for i := range input {
			input[i] = pair{score: r.Int63n(1000), doc: uint64(i)}
		}

		for _, descending := range []bool{true, false} {
			tk := New[int64](k, descending)
			for _, p := range input {
				tk.Visit(p.score, p.doc)
			}
			got := tk.IntoSortedVec()

			sort.Slice(input, func(i, j int) bool {
				if input[i].score != input[j].score {
					if descending {
						return input[i].score > input[j].score
					}
					return input[i].score < input[j].score
				}
				return input[i].doc < input[j].doc
			})

			wantLen := k
			if n < k {
				wantLen = n
			}
			require.Len(t, got, wantLen)
			for i, e := range got {
				assert.Equal(t, input[i].score, e.Score, "trial %d descending=%v index %d", trial, descending, i)
				assert.Equal(t, input[i].doc, e.Doc, "trial %d descending=%v index %d", trial, descending, i)
			}
		}
	}
}
