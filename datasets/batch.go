package datasets

import (
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// Batch is one mini-batch copied out of a SeqDataset. Rows line up across
// all slices.
type Batch struct {
	Tokens  [][]int
	Labels  []int
	Lengths []int
	IDs     []int
	// Raw holds independent copies of the raw token text; entries are nil
	// when the split carries no raw text.
	Raw [][]string

	// NewEpoch is set when drawing this batch started a new epoch.
	NewEpoch bool

	Precision Precision
	MaxLen    int
}

// Size returns the number of rows in the batch.
func (b *Batch) Size() int {
	return len(b.Tokens)
}

// Mask returns 1 for every non-padding position and 0 elsewhere.
func (b *Batch) Mask() [][]float32 {
	mask := make([][]float32, len(b.Tokens))
	for i, row := range b.Tokens {
		mask[i] = make([]float32, len(row))
		if i >= len(b.Lengths) {
			continue
		}
		for j := range max(0, min(b.Lengths[i], len(row))) {
			mask[i][j] = 1
		}
	}
	return mask
}

// ToGomlxTensors converts the batch to gomlx tensors at b.Precision.
// inputs holds tokens [B, MaxLen], lengths [B] and mask [B, MaxLen];
// labels is [B].
func (b *Batch) ToGomlxTensors() (inputs []*tensors.Tensor, labels *tensors.Tensor, err error) {
	if b.Size() == 0 {
		return nil, nil, errors.Wrap(ErrBatchSize, "empty batch")
	}
	if len(b.Labels) != b.Size() || len(b.Lengths) != b.Size() {
		return nil, nil, errors.Wrapf(ErrLengthMismatch, "tokens=%d labels=%d lengths=%d",
			b.Size(), len(b.Labels), len(b.Lengths))
	}
	for i, row := range b.Tokens {
		if len(row) != len(b.Tokens[0]) {
			return nil, nil, errors.Wrapf(ErrLengthMismatch, "row %d has %d ids, row 0 has %d",
				i, len(row), len(b.Tokens[0]))
		}
	}

	mask := b.Mask()
	switch b.Precision {
	case Narrow:
		one, zero := float16.Fromfloat32(1), float16.Fromfloat32(0)
		inputs = []*tensors.Tensor{
			tensors.FromAnyValue(intMatrix[int16](b.Tokens)),
			tensors.FromAnyValue(intVector[int16](b.Lengths)),
			tensors.FromAnyValue(floatMatrix(mask, one, zero)),
		}
		labels = tensors.FromAnyValue(intVector[int16](b.Labels))
	case Standard:
		inputs = []*tensors.Tensor{
			tensors.FromAnyValue(intMatrix[int32](b.Tokens)),
			tensors.FromAnyValue(intVector[int32](b.Lengths)),
			tensors.FromAnyValue(mask),
		}
		labels = tensors.FromAnyValue(intVector[int32](b.Labels))
	case Wide:
		inputs = []*tensors.Tensor{
			tensors.FromAnyValue(intMatrix[int64](b.Tokens)),
			tensors.FromAnyValue(intVector[int64](b.Lengths)),
			tensors.FromAnyValue(floatMatrix(mask, float64(1), float64(0))),
		}
		labels = tensors.FromAnyValue(intVector[int64](b.Labels))
	default:
		return nil, nil, errors.Wrapf(ErrPrecision, "got %d", int(b.Precision))
	}
	return inputs, labels, nil
}

type integer interface {
	~int16 | ~int32 | ~int64
}

func intVector[T integer](v []int) []T {
	out := make([]T, len(v))
	for i, x := range v {
		out[i] = T(x)
	}
	return out
}

func intMatrix[T integer](rows [][]int) [][]T {
	out := make([][]T, len(rows))
	for i, row := range rows {
		out[i] = intVector[T](row)
	}
	return out
}

// floatMatrix re-expresses a 0/1 mask in another float type.
func floatMatrix[F any](mask [][]float32, one, zero F) [][]F {
	out := make([][]F, len(mask))
	for i, row := range mask {
		out[i] = make([]F, len(row))
		for j, m := range row {
			if m != 0 {
				out[i][j] = one
			} else {
				out[i][j] = zero
			}
		}
	}
	return out
}
