package datasets

import "github.com/pkg/errors"

// Encoded is one fixed-length row and the count of its non-padding positions.
type Encoded struct {
	Tokens []int
	Length int
}

// Encoder fits raw token-id sequences to MaxLen ids under a vocabulary of
// VocabSize ids. Encoding is pure and deterministic.
type Encoder struct {
	MaxLen    int
	VocabSize int
	PadID     int
	UnkID     int
}

// NewEncoder returns an Encoder for maxLen positions over v.
func NewEncoder(maxLen int, v Vocabulary) (Encoder, error) {
	if maxLen < 1 {
		return Encoder{}, errors.Wrapf(ErrInvalidMaxLen, "got %d", maxLen)
	}
	return Encoder{
		MaxLen:    maxLen,
		VocabSize: v.Size(),
		PadID:     v.PadID(),
		UnkID:     v.UnkID(),
	}, nil
}

// Encode truncates x to MaxLen, replaces ids outside [0, VocabSize) with
// UnkID and right-pads with PadID.
func (e Encoder) Encode(x []int) Encoded {
	row := make([]int, e.MaxLen)
	n := e.EncodeInto(row, x)
	return Encoded{Tokens: row, Length: n}
}

// EncodeInto writes the encoded row of x into dst, which must hold MaxLen
// ids, and returns the kept length.
func (e Encoder) EncodeInto(dst []int, x []int) int {
	n := min(len(x), e.MaxLen)
	for i, t := range x[:n] {
		if t < 0 || t >= e.VocabSize {
			t = e.UnkID
		}
		dst[i] = t
	}
	for i := n; i < e.MaxLen; i++ {
		dst[i] = e.PadID
	}
	return n
}
