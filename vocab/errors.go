package vocab

import "github.com/pkg/errors"

var (
	// ErrVocabSize indicates the requested size is not backed by enough tokens.
	ErrVocabSize = errors.New("vocab: size must be positive and not exceed the token list")
	// ErrVocabMismatch indicates the rebuilt table disagrees with the reference mapping.
	ErrVocabMismatch = errors.New("vocab: token id disagrees with reference mapping")
)
