package datasets

import "github.com/pkg/errors"

var (
	// ErrLengthMismatch indicates the parallel columns of a split differ in length.
	ErrLengthMismatch = errors.New("datasets: parallel columns must have equal length")
	// ErrPrecision indicates a precision outside narrow, standard and wide.
	ErrPrecision = errors.New("datasets: precision must be one of 16, 32 or 64")
	// ErrValueOverflow indicates a value does not fit the precision's integer width.
	ErrValueOverflow = errors.New("datasets: value overflows precision integer width")
	// ErrInvalidMaxLen indicates a non-positive maximum sequence length.
	ErrInvalidMaxLen = errors.New("datasets: max length must be positive")
	// ErrBatchTooLarge indicates a batch larger than the whole split was requested.
	ErrBatchTooLarge = errors.New("datasets: batch size exceeds dataset size")
	// ErrBatchSize indicates a non-positive batch size.
	ErrBatchSize = errors.New("datasets: batch size must be positive")
	// ErrIndexOutOfRange indicates an example index outside [0, Len()).
	ErrIndexOutOfRange = errors.New("datasets: example index out of range")
)
