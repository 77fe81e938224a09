package corpus

import (
	"bufio"
	"compress/gzip"
	"encoding/gob"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// RawCorpus is the packaged corpus as stored on disk: the vocabulary, the
// training pool and the held-out test pool.
type RawCorpus struct {
	IdxToTxt []string       `json:"idx2txt"`
	TxtToIdx map[string]int `json:"txt2idx"`

	XTrain   [][]int    `json:"x_tr"`
	YTrain   []int      `json:"y_tr"`
	RawTrain [][]string `json:"raw_tr"`

	XTest   [][]int    `json:"x_te"`
	YTest   []int      `json:"y_te"`
	RawTest [][]string `json:"raw_te"`
	// IDTest is optional; when absent test ids follow pool order.
	IDTest []int `json:"id_te,omitempty"`
}

// Auxiliary holds externally generated training examples. Sequences may
// carry trailing padding with id 0.
type Auxiliary struct {
	AdvX     [][]int `json:"adv_x"`
	AdvLabel []int   `json:"adv_label"`
}

// Validate checks that the columns of both pools line up.
func (c *RawCorpus) Validate() error {
	if len(c.IdxToTxt) == 0 {
		return errors.Wrap(ErrMalformedCorpus, "empty idx2txt")
	}
	if len(c.XTrain) != len(c.YTrain) {
		return errors.Wrapf(ErrMalformedCorpus, "x_tr=%d y_tr=%d", len(c.XTrain), len(c.YTrain))
	}
	if c.RawTrain != nil && len(c.RawTrain) != len(c.XTrain) {
		return errors.Wrapf(ErrMalformedCorpus, "x_tr=%d raw_tr=%d", len(c.XTrain), len(c.RawTrain))
	}
	if len(c.XTest) != len(c.YTest) {
		return errors.Wrapf(ErrMalformedCorpus, "x_te=%d y_te=%d", len(c.XTest), len(c.YTest))
	}
	if c.RawTest != nil && len(c.RawTest) != len(c.XTest) {
		return errors.Wrapf(ErrMalformedCorpus, "x_te=%d raw_te=%d", len(c.XTest), len(c.RawTest))
	}
	if c.IDTest != nil && len(c.IDTest) != len(c.XTest) {
		return errors.Wrapf(ErrMalformedCorpus, "x_te=%d id_te=%d", len(c.XTest), len(c.IDTest))
	}
	return nil
}

// Validate checks that every auxiliary sequence has a label.
func (a *Auxiliary) Validate() error {
	if len(a.AdvX) != len(a.AdvLabel) {
		return errors.Wrapf(ErrMalformedAuxiliary, "adv_x=%d adv_label=%d", len(a.AdvX), len(a.AdvLabel))
	}
	return nil
}

// ReadCorpus reads a corpus written by WriteCorpus.
func ReadCorpus(path string) (*RawCorpus, error) {
	var c RawCorpus
	if err := readFile(path, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// WriteCorpus writes c to path, gzip-compressed. The encoding is JSON for
// paths ending in .json or .json.gz and gob otherwise.
func WriteCorpus(path string, c *RawCorpus) error {
	return writeFile(path, c)
}

// ReadAuxiliary reads auxiliary examples written by WriteAuxiliary.
func ReadAuxiliary(path string) (*Auxiliary, error) {
	var a Auxiliary
	if err := readFile(path, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// WriteAuxiliary writes a to path using the same encoding rules as WriteCorpus.
func WriteAuxiliary(path string, a *Auxiliary) error {
	return writeFile(path, a)
}

func isJSON(path string) bool {
	p := strings.TrimSuffix(strings.ToLower(path), ".gz")
	return strings.HasSuffix(p, ".json")
}

// Decode reads v from r. Gzip input is detected by its magic bytes, so
// uncompressed files are accepted too.
func Decode(r io.Reader, asJSON bool, v any) error {
	br := bufio.NewReader(r)
	var src io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return errors.Wrap(err, "open gzip stream")
		}
		defer zr.Close()
		src = zr
	}
	if asJSON {
		return errors.Wrap(json.NewDecoder(src).Decode(v), "decode json")
	}
	return errors.Wrap(gob.NewDecoder(src).Decode(v), "decode gob")
}

// Encode writes v to w, gzip-compressed.
func Encode(w io.Writer, asJSON bool, v any) error {
	zw := gzip.NewWriter(w)
	var err error
	if asJSON {
		err = json.NewEncoder(zw).Encode(v)
	} else {
		err = gob.NewEncoder(zw).Encode(v)
	}
	if err != nil {
		zw.Close()
		return errors.Wrap(err, "encode")
	}
	return errors.Wrap(zw.Close(), "flush gzip stream")
}

func readFile(path string, v any) error {
	fh, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer fh.Close()
	return errors.Wrapf(Decode(fh, isJSON(path), v), "read %s", path)
}

// writeFile performs an atomic write: encode into a temp file in the same
// directory, then rename it over path.
func writeFile(path string, v any) error {
	if path == "" {
		return errors.New("corpus: empty output path")
	}
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "mkdir %s", dir)
		}
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpName := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		_ = os.Remove(tmpName)
	}()

	if err := Encode(tmpFile, isJSON(path), v); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	if err := tmpFile.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	return errors.Wrap(os.Rename(tmpName, path), "rename temp file")
}
