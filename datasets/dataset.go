package datasets

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// Columns holds one split's raw parallel columns before encoding.
type Columns struct {
	// Tokens are the variable-length token-id sequences.
	Tokens [][]int

	// Labels are the class ids, one per sequence.
	Labels []int

	// Raw is the original token text per sequence. A nil Raw means raw text
	// is unavailable for every row.
	Raw [][]string

	// IDs are stable example identifiers. A nil IDs means 0..N-1.
	IDs []int
}

// Options configures NewSeqDataset.
type Options struct {
	// MaxLen is the fixed row length.
	MaxLen int

	// Precision selects the tensor widths. Stored values must fit its
	// integer width.
	Precision Precision

	// Rand drives epoch permutations. If nil, a time-based source is used.
	Rand *rand.Rand
}

// Example is a copy of a single encoded row.
type Example struct {
	Tokens []int
	Label  int
	Length int
	ID     int
	Raw    []string
}

// SeqDataset holds one encoded split and serves shuffled mini-batches.
type SeqDataset struct {
	name      string
	vocab     Vocabulary
	maxLen    int
	precision Precision

	// tokens is row-major, size*maxLen ids.
	tokens  []int
	labels  []int
	lengths []int
	ids     []int
	raw     [][]string
	size    int

	// epoch lists the indices not yet drawn in the current epoch.
	epoch []int

	rand *rand.Rand
}

// NewSeqDataset validates cols, encodes every sequence with v and opts.MaxLen,
// and starts the first epoch.
func NewSeqDataset(name string, cols Columns, v Vocabulary, opts Options) (*SeqDataset, error) {
	if !opts.Precision.Valid() {
		return nil, errors.Wrapf(ErrPrecision, "dataset %s: got %d", name, int(opts.Precision))
	}
	enc, err := NewEncoder(opts.MaxLen, v)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset %s", name)
	}

	n := len(cols.Tokens)
	if len(cols.Labels) != n {
		return nil, errors.Wrapf(ErrLengthMismatch, "dataset %s: tokens=%d labels=%d", name, n, len(cols.Labels))
	}
	if cols.Raw != nil && len(cols.Raw) != n {
		return nil, errors.Wrapf(ErrLengthMismatch, "dataset %s: tokens=%d raw=%d", name, n, len(cols.Raw))
	}
	if cols.IDs != nil && len(cols.IDs) != n {
		return nil, errors.Wrapf(ErrLengthMismatch, "dataset %s: tokens=%d ids=%d", name, n, len(cols.IDs))
	}
	if err := checkFits(opts.Precision, "token id", v.Size(), v.UnkID(), v.PadID()); err != nil {
		return nil, errors.Wrapf(err, "dataset %s", name)
	}
	if err := checkFits(opts.Precision, "max length", opts.MaxLen); err != nil {
		return nil, errors.Wrapf(err, "dataset %s", name)
	}
	if err := checkFits(opts.Precision, "label", cols.Labels...); err != nil {
		return nil, errors.Wrapf(err, "dataset %s", name)
	}
	if err := checkFits(opts.Precision, "id", cols.IDs...); err != nil {
		return nil, errors.Wrapf(err, "dataset %s", name)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	d := &SeqDataset{
		name:      name,
		vocab:     v,
		maxLen:    opts.MaxLen,
		precision: opts.Precision,
		tokens:    make([]int, n*opts.MaxLen),
		labels:    cloneInts(cols.Labels),
		lengths:   make([]int, n),
		ids:       make([]int, n),
		raw:       make([][]string, n),
		size:      n,
		rand:      rng,
	}
	for i, x := range cols.Tokens {
		d.lengths[i] = enc.EncodeInto(d.tokens[i*d.maxLen:(i+1)*d.maxLen], x)
		if cols.IDs != nil {
			d.ids[i] = cols.IDs[i]
		} else {
			d.ids[i] = i
		}
		if cols.Raw != nil {
			d.raw[i] = cloneStrings(cols.Raw[i])
		}
	}

	d.ResetEpoch()
	return d, nil
}

// Name returns the split name given at construction.
func (d *SeqDataset) Name() string {
	return d.name
}

// Len returns the number of examples in the split.
func (d *SeqDataset) Len() int {
	return d.size
}

// MaxLen returns the fixed row length.
func (d *SeqDataset) MaxLen() int {
	return d.maxLen
}

// Precision returns the tensor precision of the split.
func (d *SeqDataset) Precision() Precision {
	return d.precision
}

// RemainingInEpoch returns how many indices are still undrawn in the
// current epoch.
func (d *SeqDataset) RemainingInEpoch() int {
	return len(d.epoch)
}

// ResetEpoch replaces the cursor with a fresh permutation of all indices.
func (d *SeqDataset) ResetEpoch() {
	d.epoch = d.rand.Perm(d.size)
}

// NextBatch draws batchSize examples from the current epoch. If fewer than
// batchSize remain, the remainder is discarded, a new epoch starts and the
// returned batch has NewEpoch set. Batches are always full-sized.
func (d *SeqDataset) NextBatch(batchSize int) (*Batch, error) {
	if batchSize < 1 {
		return nil, errors.Wrapf(ErrBatchSize, "dataset %s: got %d", d.name, batchSize)
	}
	if batchSize > d.size {
		return nil, errors.Wrapf(ErrBatchTooLarge, "dataset %s: batch %d, size %d", d.name, batchSize, d.size)
	}

	b := &Batch{Precision: d.precision, MaxLen: d.maxLen}
	if len(d.epoch) < batchSize {
		b.NewEpoch = true
		d.ResetEpoch()
	}
	idxs := d.epoch[:batchSize]
	d.epoch = d.epoch[batchSize:]

	b.Tokens = make([][]int, batchSize)
	b.Labels = make([]int, batchSize)
	b.Lengths = make([]int, batchSize)
	b.IDs = make([]int, batchSize)
	b.Raw = make([][]string, batchSize)
	for i, idx := range idxs {
		b.Tokens[i] = d.row(idx)
		b.Labels[i] = d.labels[idx]
		b.Lengths[i] = d.lengths[idx]
		b.IDs[i] = d.ids[idx]
		b.Raw[i] = cloneStrings(d.raw[idx])
	}
	return b, nil
}

// Example returns a copy of row i.
func (d *SeqDataset) Example(i int) (Example, error) {
	if i < 0 || i >= d.size {
		return Example{}, errors.Wrapf(ErrIndexOutOfRange, "dataset %s: index %d, size %d", d.name, i, d.size)
	}
	return Example{
		Tokens: d.row(i),
		Label:  d.labels[i],
		Length: d.lengths[i],
		ID:     d.ids[i],
		Raw:    cloneStrings(d.raw[i]),
	}, nil
}

// Decode maps the first lengths[i] ids of every row back to token strings.
// Padding past the length is ignored.
func (d *SeqDataset) Decode(tokens [][]int, lengths []int) [][]string {
	return DecodeRows(d.vocab, tokens, lengths)
}

// DecodeRows decodes id rows with v, keeping lengths[i] ids of row i.
func DecodeRows(v Vocabulary, tokens [][]int, lengths []int) [][]string {
	n := min(len(tokens), len(lengths))
	seqs := make([][]string, n)
	for i := range n {
		l := max(0, min(lengths[i], len(tokens[i])))
		seqs[i] = make([]string, l)
		for j, t := range tokens[i][:l] {
			seqs[i][j] = v.Decode(t)
		}
	}
	return seqs
}

func (d *SeqDataset) row(i int) []int {
	return cloneInts(d.tokens[i*d.maxLen : (i+1)*d.maxLen])
}
