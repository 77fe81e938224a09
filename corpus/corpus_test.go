package corpus

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// sampleCorpus builds a corpus of nTrain pool rows and nTest test rows over
// the vocabulary <pad>, t1..t9. Row i of the pool has i%6+1 tokens.
func sampleCorpus(t *testing.T, nTrain, nTest int) *RawCorpus {
	t.Helper()
	idx2txt := []string{"<pad>"}
	for i := 1; i < 10; i++ {
		idx2txt = append(idx2txt, fmt.Sprintf("t%d", i))
	}
	txt2idx := map[string]int{"<unk>": len(idx2txt)}
	for i, tok := range idx2txt {
		txt2idx[tok] = i
	}

	row := func(i int) ([]int, []string) {
		x := make([]int, i%6+1)
		r := make([]string, len(x))
		for j := range x {
			x[j] = 1 + (i+j)%9
			r[j] = idx2txt[x[j]]
		}
		return x, r
	}

	c := &RawCorpus{IdxToTxt: idx2txt, TxtToIdx: txt2idx}
	for i := range nTrain {
		x, r := row(i)
		c.XTrain = append(c.XTrain, x)
		c.YTrain = append(c.YTrain, i%4)
		c.RawTrain = append(c.RawTrain, r)
	}
	for i := range nTest {
		x, r := row(i + 1000)
		c.XTest = append(c.XTest, x)
		c.YTest = append(c.YTest, i%4)
		c.RawTest = append(c.RawTest, r)
	}
	require.NoError(t, c.Validate())
	return c
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxLen = 4
	cfg.VocabSize = 10
	cfg.ValidRatio = 0.25
	cfg.Seed = Int64(1)
	return cfg
}
