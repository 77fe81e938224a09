// Package vocab maps source-code tokens to bounded integer ids and back.
//
// A Table keeps the first Size() entries of an ordered token list. Id 0 is
// always the padding token. Tokens outside the table encode to the <unk> id
// and ids outside the table decode to the literal "<unk>", so neither
// direction ever fails once the table is built.
package vocab

import (
	"github.com/pkg/errors"
)

const (
	// PadToken is the padding sentinel; it always maps to PadID.
	PadToken = "<pad>"
	// UnkToken is the out-of-vocabulary sentinel.
	UnkToken = "<unk>"
	// PadID is the id of PadToken.
	PadID = 0
)

// Table is a bidirectional token/id mapping bounded to a fixed size.
type Table struct {
	idToToken []string
	tokenToID map[string]int
	unkID     int
}

// New builds a table from the first size entries of idToToken and checks
// every kept token against reference. A token missing from reference, or
// mapped to a different id there, means the vocabulary and the corpus were
// produced by different versions.
func New(idToToken []string, size int, reference map[string]int) (*Table, error) {
	t, err := build(idToToken, size, func(i int, tok string) error {
		want, ok := reference[tok]
		if !ok {
			return errors.Wrapf(ErrVocabMismatch, "token %q (id %d) missing from reference", tok, i)
		}
		if want != i {
			return errors.Wrapf(ErrVocabMismatch, "token %q: table id %d, reference id %d", tok, i, want)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// FromTokens builds a table from the first size entries of idToToken
// without a reference check.
func FromTokens(idToToken []string, size int) (*Table, error) {
	return build(idToToken, size, nil)
}

func build(idToToken []string, size int, check func(int, string) error) (*Table, error) {
	if size < 1 || size > len(idToToken) {
		return nil, errors.Wrapf(ErrVocabSize, "size %d, %d tokens available", size, len(idToToken))
	}

	kept := make([]string, size)
	copy(kept, idToToken[:size])

	m := make(map[string]int, size+2)
	m[PadToken] = PadID
	for i, tok := range kept {
		m[tok] = i
		if check != nil {
			if err := check(i, tok); err != nil {
				return nil, err
			}
		}
	}

	// <unk> keeps its own slot when the vocabulary lists it, otherwise it
	// takes the first id past the table.
	unk, ok := m[UnkToken]
	if !ok {
		unk = size
		m[UnkToken] = unk
	}

	return &Table{
		idToToken: kept,
		tokenToID: m,
		unkID:     unk,
	}, nil
}

// Size returns the number of ids in the table, excluding an appended <unk>.
func (t *Table) Size() int {
	return len(t.idToToken)
}

// PadID returns the padding id.
func (t *Table) PadID() int {
	return t.tokenToID[PadToken]
}

// UnkID returns the out-of-vocabulary id.
func (t *Table) UnkID() int {
	return t.unkID
}

// Encode returns the id of token, or UnkID when the table does not hold it.
func (t *Table) Encode(token string) int {
	if id, ok := t.tokenToID[token]; ok {
		return id
	}
	return t.unkID
}

// Decode returns the token at id, or UnkToken for ids outside the table.
func (t *Table) Decode(id int) string {
	if id >= 0 && id < len(t.idToToken) {
		return t.idToToken[id]
	}
	return UnkToken
}

// EncodeAll encodes every token in order.
func (t *Table) EncodeAll(tokens []string) []int {
	ids := make([]int, len(tokens))
	for i, tok := range tokens {
		ids[i] = t.Encode(tok)
	}
	return ids
}

// DecodeAll decodes every id in order.
func (t *Table) DecodeAll(ids []int) []string {
	tokens := make([]string, len(ids))
	for i, id := range ids {
		tokens[i] = t.Decode(id)
	}
	return tokens
}

// Tokens returns a copy of the ordered token list.
func (t *Table) Tokens() []string {
	out := make([]string, len(t.idToToken))
	copy(out, t.idToToken)
	return out
}

// Mapping returns a copy of the token to id mapping, sentinels included.
func (t *Table) Mapping() map[string]int {
	out := make(map[string]int, len(t.tokenToID))
	for k, v := range t.tokenToID {
		out[k] = v
	}
	return out
}
