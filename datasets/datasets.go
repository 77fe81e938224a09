package datasets

import "github.com/gomlx/gomlx/pkg/core/tensors"

// This file describes the sequence datasets used for training code
// classifiers on tokenized source files.
//
// A split (train, dev or test) is held fully in memory as parallel columns:
// fixed-length token rows, labels, true lengths, stable ids and optional raw
// token text. Rows are encoded once at construction time; after that the
// only mutable state is the epoch cursor used by NextBatch.
//
// Layout and intended usage:
//
// SeqDataset
//   - Built from Columns by NewSeqDataset, which validates and encodes them.
//   - NextBatch draws full-sized batches without replacement. When the
//     current epoch cannot fill a batch the remainder is dropped, a fresh
//     permutation is drawn and the batch reports NewEpoch.
//   - Decode maps id rows back to token strings through the vocabulary.
//
// Batch
//   - Plain Go slices, copied out of the dataset.
//   - ToGomlxTensors converts it using the dataset's Precision.
//
// TensorDataset
//   - Wraps a SeqDataset in the method set of gomlx's train.Dataset.
//
// A SeqDataset is not safe for concurrent use; callers sharing one across
// goroutines must serialize NextBatch and ResetEpoch themselves.

// Vocabulary is what a dataset needs from a vocabulary table.
// *vocab.Table implements it.
type Vocabulary interface {
	Size() int
	PadID() int
	UnkID() int
	Decode(id int) string
}

// Sampler is the batch-serving surface shared by every split.
type Sampler interface {
	Len() int
	RemainingInEpoch() int
	ResetEpoch()
	NextBatch(batchSize int) (*Batch, error)
	Decode(tokens [][]int, lengths []int) [][]string
}

// Yielder matches gomlx's train.Dataset interface.
type Yielder interface {
	Name() string
	Yield() (spec any, inputs []*tensors.Tensor, labels []*tensors.Tensor, err error)
	Reset()
}

var (
	_ Sampler = (*SeqDataset)(nil)
	_ Yielder = (*TensorDataset)(nil)
)
