package corpus

import "github.com/pkg/errors"

var (
	// ErrConfig indicates an invalid loader configuration.
	ErrConfig = errors.New("corpus: invalid configuration")
	// ErrMalformedCorpus indicates a serialized corpus whose columns disagree.
	ErrMalformedCorpus = errors.New("corpus: malformed corpus")
	// ErrMalformedAuxiliary indicates auxiliary examples whose columns disagree.
	ErrMalformedAuxiliary = errors.New("corpus: malformed auxiliary examples")
)
