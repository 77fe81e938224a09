package datasets

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeColumns returns n rows where row i has i%5+1 tokens, label i%3,
// id 100+i and raw text naming the row.
func makeColumns(n int) Columns {
	cols := Columns{
		Tokens: make([][]int, n),
		Labels: make([]int, n),
		Raw:    make([][]string, n),
		IDs:    make([]int, n),
	}
	for i := range n {
		row := make([]int, i%5+1)
		raw := make([]string, len(row))
		for j := range row {
			row[j] = 1 + (i+j)%2
			if row[j] == 1 {
				raw[j] = "a"
			} else {
				raw[j] = "b"
			}
		}
		cols.Tokens[i] = row
		cols.Labels[i] = i % 3
		cols.Raw[i] = raw
		cols.IDs[i] = 100 + i
	}
	return cols
}

func newTestDataset(t *testing.T, n, maxLen int, seed int64) *SeqDataset {
	t.Helper()
	ds, err := NewSeqDataset("unit", makeColumns(n), abVocab(t), Options{
		MaxLen:    maxLen,
		Precision: Standard,
		Rand:      rand.New(rand.NewSource(seed)),
	})
	require.NoError(t, err)
	return ds
}

func TestNewSeqDataset_LengthMismatch(t *testing.T) {
	base := makeColumns(4)

	cases := []struct {
		name   string
		mutate func(c *Columns)
	}{
		{"Labels", func(c *Columns) { c.Labels = c.Labels[:3] }},
		{"Raw", func(c *Columns) { c.Raw = c.Raw[:2] }},
		{"IDs", func(c *Columns) { c.IDs = append(c.IDs, 7) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			tc.mutate(&c)
			ds, err := NewSeqDataset("bad", c, abVocab(t), Options{MaxLen: 3, Precision: Standard})
			require.Nil(t, ds)
			require.True(t, errors.Is(err, ErrLengthMismatch), "got %v", err)
		})
	}
}

func TestNewSeqDataset_ConfigErrors(t *testing.T) {
	_, err := NewSeqDataset("p", makeColumns(2), abVocab(t), Options{MaxLen: 3, Precision: Precision(8)})
	require.True(t, errors.Is(err, ErrPrecision), "got %v", err)

	_, err = NewSeqDataset("m", makeColumns(2), abVocab(t), Options{MaxLen: 0, Precision: Standard})
	require.True(t, errors.Is(err, ErrInvalidMaxLen), "got %v", err)

	cols := makeColumns(2)
	cols.IDs[1] = 1 << 20
	_, err = NewSeqDataset("o", cols, abVocab(t), Options{MaxLen: 3, Precision: Narrow})
	require.True(t, errors.Is(err, ErrValueOverflow), "got %v", err)
}

// TestNewSeqDataset_Defaults checks nil Raw and nil IDs fall back to absent
// raw text and natural index order.
func TestNewSeqDataset_Defaults(t *testing.T) {
	cols := makeColumns(5)
	cols.Raw = nil
	cols.IDs = nil
	ds, err := NewSeqDataset("defaults", cols, abVocab(t), Options{MaxLen: 4, Precision: Wide})
	require.NoError(t, err)

	assert.Equal(t, 5, ds.Len())
	assert.Equal(t, 5, ds.RemainingInEpoch())
	for i := range 5 {
		ex, err := ds.Example(i)
		require.NoError(t, err)
		assert.Equal(t, i, ex.ID)
		assert.Nil(t, ex.Raw)
		assert.Len(t, ex.Tokens, 4)
		assert.Equal(t, min(i%5+1, 4), ex.Length)
	}

	_, err = ds.Example(5)
	require.True(t, errors.Is(err, ErrIndexOutOfRange))
}

// TestNextBatch_EpochExhaustive draws N/b batches and expects every id once.
func TestNextBatch_EpochExhaustive(t *testing.T) {
	const n, bs = 24, 6
	ds := newTestDataset(t, n, 4, 1)

	seen := make(map[int]int)
	for k := range n / bs {
		b, err := ds.NextBatch(bs)
		require.NoError(t, err)
		require.False(t, b.NewEpoch, "batch %d", k)
		require.Equal(t, bs, b.Size())
		for _, id := range b.IDs {
			seen[id]++
		}
		require.Equal(t, n-(k+1)*bs, ds.RemainingInEpoch())
	}
	require.Len(t, seen, n)
	for id, c := range seen {
		require.Equal(t, 1, c, "id %d drawn %d times", id, c)
	}
}

// TestNextBatch_ResetOnShortRemainder checks the tail is dropped and the
// batch comes from a fresh permutation.
func TestNextBatch_ResetOnShortRemainder(t *testing.T) {
	const n, bs = 10, 4
	ds := newTestDataset(t, n, 4, 2)

	for range 2 {
		b, err := ds.NextBatch(bs)
		require.NoError(t, err)
		require.False(t, b.NewEpoch)
	}
	require.Equal(t, 2, ds.RemainingInEpoch())

	b, err := ds.NextBatch(bs)
	require.NoError(t, err)
	assert.True(t, b.NewEpoch)
	assert.Equal(t, bs, b.Size())
	assert.Equal(t, n-bs, ds.RemainingInEpoch())

	ids := append([]int(nil), b.IDs...)
	sort.Ints(ids)
	for i := 1; i < len(ids); i++ {
		require.NotEqual(t, ids[i-1], ids[i], "duplicate id within batch")
	}
}

func TestNextBatch_FullBatchScenario(t *testing.T) {
	ds := newTestDataset(t, 4, 3, 3)

	b, err := ds.NextBatch(4)
	require.NoError(t, err)
	assert.False(t, b.NewEpoch)
	assert.Equal(t, 0, ds.RemainingInEpoch())

	b, err = ds.NextBatch(4)
	require.NoError(t, err)
	assert.True(t, b.NewEpoch)
	assert.Equal(t, 0, ds.RemainingInEpoch())
}

func TestNextBatch_UsageErrors(t *testing.T) {
	for _, n := range []int{1, 3, 8} {
		ds := newTestDataset(t, n, 3, 4)
		_, err := ds.NextBatch(n + 1)
		require.True(t, errors.Is(err, ErrBatchTooLarge), "n=%d got %v", n, err)
		require.Equal(t, n, ds.RemainingInEpoch(), "failed call must not move the cursor")
	}

	ds := newTestDataset(t, 3, 3, 4)
	_, err := ds.NextBatch(0)
	require.True(t, errors.Is(err, ErrBatchSize), "got %v", err)

	empty, err := NewSeqDataset("empty", Columns{}, abVocab(t), Options{MaxLen: 3, Precision: Standard})
	require.NoError(t, err)
	_, err = empty.NextBatch(1)
	require.True(t, errors.Is(err, ErrBatchTooLarge), "got %v", err)
}

// TestNextBatch_RowsStayAligned checks every column of a batch row comes
// from the same example.
func TestNextBatch_RowsStayAligned(t *testing.T) {
	const n = 12
	ds := newTestDataset(t, n, 4, 5)
	cols := makeColumns(n)

	b, err := ds.NextBatch(n)
	require.NoError(t, err)
	for i, id := range b.IDs {
		src := id - 100
		ex, err := ds.Example(src)
		require.NoError(t, err)
		assert.Equal(t, ex.Tokens, b.Tokens[i])
		assert.Equal(t, cols.Labels[src], b.Labels[i])
		assert.Equal(t, min(len(cols.Tokens[src]), 4), b.Lengths[i])
		assert.Equal(t, cols.Raw[src], b.Raw[i])
	}
}

// TestNextBatch_RawIsCopy mutates returned raw text and tokens and expects
// the dataset to be unaffected.
func TestNextBatch_RawIsCopy(t *testing.T) {
	ds := newTestDataset(t, 3, 4, 6)

	b, err := ds.NextBatch(3)
	require.NoError(t, err)
	idx := b.IDs[0] - 100
	before, err := ds.Example(idx)
	require.NoError(t, err)

	b.Raw[0][0] = "mutated"
	b.Tokens[0][0] = 99

	after, err := ds.Example(idx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestNextBatch_Deterministic(t *testing.T) {
	a := newTestDataset(t, 20, 4, 42)
	b := newTestDataset(t, 20, 4, 42)
	for range 7 {
		ba, err := a.NextBatch(6)
		require.NoError(t, err)
		bb, err := b.NextBatch(6)
		require.NoError(t, err)
		require.Equal(t, ba.IDs, bb.IDs)
		require.Equal(t, ba.NewEpoch, bb.NewEpoch)
	}
}

// TestDecode_RoundTrip decodes batches back to the raw token text.
func TestDecode_RoundTrip(t *testing.T) {
	ds := newTestDataset(t, 9, 8, 7)

	b, err := ds.NextBatch(9)
	require.NoError(t, err)
	seqs := ds.Decode(b.Tokens, b.Lengths)
	require.Len(t, seqs, 9)
	for i := range seqs {
		assert.Equal(t, b.Raw[i], seqs[i])
	}
}

func TestDecode_IgnoresPaddingAndUnk(t *testing.T) {
	ds := newTestDataset(t, 1, 3, 8)

	seqs := ds.Decode([][]int{{1, 3, 0}, {2, 2, 2}}, []int{2, 0})
	assert.Equal(t, [][]string{{"a", "<unk>"}, {}}, seqs)

	// lengths longer than the row are clipped
	seqs = ds.Decode([][]int{{1, 2}}, []int{5})
	assert.Equal(t, [][]string{{"a", "b"}}, seqs)
}

func TestStats(t *testing.T) {
	cols := Columns{
		Tokens: [][]int{{1, 2, 9, 9}, {1}, {}, {2, 9}},
		Labels: []int{0, 1, 1, 4},
	}
	ds, err := NewSeqDataset("stats", cols, abVocab(t), Options{MaxLen: 3, Precision: Standard})
	require.NoError(t, err)

	s := ds.Stats()
	assert.Equal(t, "stats", s.Name)
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 0, s.MinLength)
	assert.Equal(t, 3, s.MaxLength)
	assert.InDelta(t, 1.5, s.MeanLength, 1e-9)
	assert.Equal(t, 1, s.AtMaxLen)
	assert.Equal(t, 2, s.Unknown)
	assert.Equal(t, map[int]int{0: 1, 1: 2, 4: 1}, s.Labels)
	assert.Equal(t, []int{0, 1, 4}, s.SortedLabels())
	assert.Equal(t, []float64{3, 1, 0, 2}, s.LengthValues())
}
