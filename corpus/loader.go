// Package corpus loads a packaged source-code classification corpus and
// builds its train, dev and test splits.
//
// A load deserializes the corpus, rebuilds the vocabulary truncated to
// VocabSize and checks it against the corpus's own mapping, partitions the
// training pool into train and dev, optionally merges auxiliary
// (adversarially generated) examples into train, and encodes every split
// with the shared MaxLen and vocabulary.
//
// Errors:
//
//   - ErrConfig: unrecognized precision or out-of-range options.
//   - ErrMalformedCorpus, ErrMalformedAuxiliary: serialized columns disagree.
//   - vocab.ErrVocabMismatch: the corpus and its vocabulary do not match.
//   - datasets errors from split construction.
package corpus

import (
	"math/rand"

	"github.com/lwch/logging"
	"github.com/pkg/errors"

	"github.com/Noofbiz/seqBowl/datasets"
	"github.com/Noofbiz/seqBowl/vocab"
)

// Corpus holds the three splits and the settings they share.
type Corpus struct {
	Train *datasets.SeqDataset
	Dev   *datasets.SeqDataset
	Test  *datasets.SeqDataset

	vocab     *vocab.Table
	maxLen    int
	precision datasets.Precision
}

// Load reads cfg.Path, and cfg.AdvTrainPath when set, and builds the corpus.
func Load(cfg Config) (*Corpus, error) {
	if _, err := cfg.Validate(); err != nil {
		return nil, err
	}
	raw, err := ReadCorpus(cfg.Path)
	if err != nil {
		return nil, err
	}
	var aux *Auxiliary
	if cfg.AdvTrainPath != "" {
		logging.Info("loading auxiliary training examples from %s", cfg.AdvTrainPath)
		if aux, err = ReadAuxiliary(cfg.AdvTrainPath); err != nil {
			return nil, err
		}
	}
	return New(raw, aux, cfg)
}

// New builds the corpus from already deserialized data. aux may be nil.
func New(raw *RawCorpus, aux *Auxiliary, cfg Config) (*Corpus, error) {
	precision, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	if err := raw.Validate(); err != nil {
		return nil, err
	}
	if aux != nil {
		if err := aux.Validate(); err != nil {
			return nil, err
		}
	}

	table, err := vocab.New(raw.IdxToTxt, cfg.VocabSize, raw.TxtToIdx)
	if err != nil {
		return nil, err
	}

	rng := newSource(cfg)
	validIdx, trainIdx := Partition(len(raw.XTrain), cfg.ValidRatio, rng)
	devCols := poolColumns(raw, validIdx)
	trainCols := poolColumns(raw, trainIdx)
	if aux != nil {
		x, y := resample(aux, cfg.AdvTrainSize, rng)
		mergeAuxiliary(&trainCols, x, y)
	}
	testCols := datasets.Columns{
		Tokens: raw.XTest,
		Labels: raw.YTest,
		Raw:    raw.RawTest,
		IDs:    raw.IDTest,
	}

	c := &Corpus{vocab: table, maxLen: cfg.MaxLen, precision: precision}
	opts := func() datasets.Options {
		return datasets.Options{
			MaxLen:    cfg.MaxLen,
			Precision: precision,
			Rand:      rand.New(rand.NewSource(rng.Int63())),
		}
	}
	if c.Dev, err = datasets.NewSeqDataset("dev", devCols, table, opts()); err != nil {
		return nil, errors.Wrap(err, "build dev split")
	}
	if c.Train, err = datasets.NewSeqDataset("train", trainCols, table, opts()); err != nil {
		return nil, errors.Wrap(err, "build train split")
	}
	if c.Test, err = datasets.NewSeqDataset("test", testCols, table, opts()); err != nil {
		return nil, errors.Wrap(err, "build test split")
	}

	logging.Info("corpus loaded: vocab=%d max_len=%d precision=%s train=%d dev=%d test=%d",
		table.Size(), cfg.MaxLen, precision, c.Train.Len(), c.Dev.Len(), c.Test.Len())
	return c, nil
}

// poolColumns gathers the training-pool rows at idxs; ids are the pool indices.
func poolColumns(raw *RawCorpus, idxs []int) datasets.Columns {
	cols := datasets.Columns{
		Tokens: make([][]int, len(idxs)),
		Labels: make([]int, len(idxs)),
		IDs:    make([]int, len(idxs)),
	}
	if raw.RawTrain != nil {
		cols.Raw = make([][]string, len(idxs))
	}
	for k, i := range idxs {
		cols.Tokens[k] = raw.XTrain[i]
		cols.Labels[k] = raw.YTrain[i]
		cols.IDs[k] = i
		if cols.Raw != nil {
			cols.Raw[k] = raw.RawTrain[i]
		}
	}
	return cols
}

// MaxLen returns the fixed row length.
func (c *Corpus) MaxLen() int {
	return c.maxLen
}

// VocabSize returns the number of vocabulary ids.
func (c *Corpus) VocabSize() int {
	return c.vocab.Size()
}

// Vocab returns the shared vocabulary table.
func (c *Corpus) Vocab() *vocab.Table {
	return c.vocab
}

// Precision returns the numeric precision of every split.
func (c *Corpus) Precision() datasets.Precision {
	return c.precision
}

// Splits returns train, dev and test in that order.
func (c *Corpus) Splits() []*datasets.SeqDataset {
	return []*datasets.SeqDataset{c.Train, c.Dev, c.Test}
}

// TokenToID encodes a token, falling back to the <unk> id.
func (c *Corpus) TokenToID(token string) int {
	return c.vocab.Encode(token)
}

// IDToToken decodes an id, falling back to "<unk>".
func (c *Corpus) IDToToken(id int) string {
	return c.vocab.Decode(id)
}

// Decode maps the first lengths[i] ids of each row back to tokens.
func (c *Corpus) Decode(tokens [][]int, lengths []int) [][]string {
	return datasets.DecodeRows(c.vocab, tokens, lengths)
}

// IdxToTxt returns a copy of the vocabulary list.
func (c *Corpus) IdxToTxt() []string {
	return c.vocab.Tokens()
}

// TxtToIdx returns a copy of the token to id mapping.
func (c *Corpus) TxtToIdx() map[string]int {
	return c.vocab.Mapping()
}
