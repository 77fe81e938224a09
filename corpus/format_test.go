package corpus

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCorpusFileRoundTrip writes and reads a corpus in both encodings.
func TestCorpusFileRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	c := sampleCorpus(t, 12, 5)
	c.IDTest = []int{50, 51, 52, 53, 54}

	for _, name := range []string{"oj.gob.gz", "oj.json.gz", "nested/dir/oj.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(tmp, name)
			require.NoError(t, WriteCorpus(path, c))

			got, err := ReadCorpus(path)
			require.NoError(t, err)
			assert.Equal(t, c, got)

			// no temp files left behind
			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			for _, e := range entries {
				assert.False(t, strings.Contains(e.Name(), ".tmp."), "leftover %s", e.Name())
			}
		})
	}
}

func TestAuxiliaryFileRoundTrip(t *testing.T) {
	aux := &Auxiliary{
		AdvX:     [][]int{{1, 2, 0, 0}, {0, 0}, {3}},
		AdvLabel: []int{1, 0, 2},
	}
	path := filepath.Join(t.TempDir(), "adv.gob.gz")
	require.NoError(t, WriteAuxiliary(path, aux))

	got, err := ReadAuxiliary(path)
	require.NoError(t, err)
	assert.Equal(t, aux.AdvLabel, got.AdvLabel)
	require.Len(t, got.AdvX, 3)
	assert.Equal(t, []int{1, 2, 0, 0}, got.AdvX[0])
	assert.Equal(t, []int{3}, got.AdvX[2])
}

// TestDecode_Uncompressed accepts plain JSON without a gzip header.
func TestDecode_Uncompressed(t *testing.T) {
	in := `{"adv_x": [[1, 2, 0]], "adv_label": [4]}`
	var aux Auxiliary
	require.NoError(t, Decode(strings.NewReader(in), true, &aux))
	assert.Equal(t, [][]int{{1, 2, 0}}, aux.AdvX)
	assert.Equal(t, []int{4}, aux.AdvLabel)
}

func TestEncodeDecode_Gzip(t *testing.T) {
	var buf bytes.Buffer
	aux := &Auxiliary{AdvX: [][]int{{7}}, AdvLabel: []int{1}}
	require.NoError(t, Encode(&buf, false, aux))
	require.Equal(t, []byte{0x1f, 0x8b}, buf.Bytes()[:2])

	var got Auxiliary
	require.NoError(t, Decode(&buf, false, &got))
	assert.Equal(t, *aux, got)
}

func TestReadCorpus_Errors(t *testing.T) {
	_, err := ReadCorpus(filepath.Join(t.TempDir(), "missing.gob.gz"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "garbage.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))
	_, err = ReadCorpus(path)
	require.Error(t, err)

	require.Error(t, WriteCorpus("", &RawCorpus{}))
}

func TestRawCorpusValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *RawCorpus)
	}{
		{"NoVocab", func(c *RawCorpus) { c.IdxToTxt = nil }},
		{"TrainLabels", func(c *RawCorpus) { c.YTrain = c.YTrain[1:] }},
		{"TrainRaw", func(c *RawCorpus) { c.RawTrain = c.RawTrain[1:] }},
		{"TestLabels", func(c *RawCorpus) { c.YTest = append(c.YTest, 1) }},
		{"TestRaw", func(c *RawCorpus) { c.RawTest = c.RawTest[:1] }},
		{"TestIDs", func(c *RawCorpus) { c.IDTest = []int{1} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := sampleCorpus(t, 6, 3)
			tc.mutate(c)
			require.True(t, errors.Is(c.Validate(), ErrMalformedCorpus))
		})
	}

	aux := &Auxiliary{AdvX: [][]int{{1}}, AdvLabel: nil}
	require.True(t, errors.Is(aux.Validate(), ErrMalformedAuxiliary))
}
