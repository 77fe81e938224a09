package datasets

import (
	"io"

	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"
)

// TensorDataset adapts a SeqDataset to gomlx's train.Dataset interface.
type TensorDataset struct {
	DS *SeqDataset

	// BatchSize for yielding batches.
	BatchSize int

	// EpochOnly makes Yield return io.EOF at the end of an epoch instead of
	// silently starting the next one. Reset starts the next epoch.
	EpochOnly bool
}

// NewTensorDataset returns a TensorDataset yielding batchSize rows per call.
func NewTensorDataset(ds *SeqDataset, batchSize int, epochOnly bool) (*TensorDataset, error) {
	if ds == nil {
		return nil, errors.New("datasets: nil dataset")
	}
	if batchSize < 1 {
		return nil, errors.Wrapf(ErrBatchSize, "got %d", batchSize)
	}
	if batchSize > ds.Len() {
		return nil, errors.Wrapf(ErrBatchTooLarge, "batch %d, size %d", batchSize, ds.Len())
	}
	return &TensorDataset{DS: ds, BatchSize: batchSize, EpochOnly: epochOnly}, nil
}

// Name returns the name of the underlying split.
func (t *TensorDataset) Name() string {
	return t.DS.Name()
}

// Yield returns the next batch as gomlx tensors. spec is the *Batch the
// tensors were built from, so callers can recover ids and raw text.
func (t *TensorDataset) Yield() (spec any, inputs []*tensors.Tensor, labels []*tensors.Tensor, err error) {
	if t.EpochOnly && t.DS.RemainingInEpoch() < t.BatchSize {
		return nil, nil, nil, io.EOF
	}
	b, err := t.DS.NextBatch(t.BatchSize)
	if err != nil {
		return nil, nil, nil, err
	}
	inputs, la, err := b.ToGomlxTensors()
	if err != nil {
		return nil, nil, nil, err
	}
	return b, inputs, []*tensors.Tensor{la}, nil
}

// Reset starts a new epoch.
func (t *TensorDataset) Reset() {
	t.DS.ResetEpoch()
}
