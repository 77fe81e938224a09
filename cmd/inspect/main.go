package main

// inspect loads a packaged corpus, reports its splits and draws a few
// batches from each of them.
//
// Usage:
//
//	go run ./cmd/inspect -path data/oj.gob.gz -batch-size 32 -batches 2
//	go run ./cmd/inspect -config oj.yaml -plot-out plots
//	go run ./cmd/inspect -synth 500 -path /tmp/demo.gob.gz
//
// Options from -config are applied first; flags given explicitly on the
// command line override them.

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lwch/logging"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Noofbiz/seqBowl/corpus"
	"github.com/Noofbiz/seqBowl/datasets"
)

func main() {
	configFlag := flag.String("config", "", "path to a YAML config file (optional)")
	pathFlag := flag.String("path", "data/oj.gob.gz", "path to the serialized corpus")
	maxLenFlag := flag.Int("max-len", 500, "fixed row length")
	vocabSizeFlag := flag.Int("vocab-size", 5000, "number of vocabulary entries kept")
	validRatioFlag := flag.Float64("valid-ratio", 0.2, "fraction of the training pool routed to dev")
	precisionFlag := flag.String("precision", "32", "numeric precision: 16, 32 or 64")
	advPathFlag := flag.String("adv-path", "", "path to serialized auxiliary training examples (optional)")
	advSizeFlag := flag.Int("adv-size", -1, "resample auxiliary examples to this count (-1 keeps all)")
	seedFlag := flag.Int64("seed", 0, "seed the load (the historical fixed seed is used unless -exact-seed)")
	exactSeedFlag := flag.Bool("exact-seed", false, "use the -seed value itself instead of the historical fixed seed")

	batchSize := flag.Int("batch-size", 32, "batch size for sample draws")
	batches := flag.Int("batches", 1, "number of batches drawn from each split")
	plotOut := flag.String("plot-out", "", "if set, write a length histogram per split into this directory")
	outCSV := flag.String("out-csv", "", "if set, write per-split statistics to this CSV file")
	synth := flag.Int("synth", 0, "if > 0, write a synthetic corpus with this many examples to -path first")

	flag.Parse()

	cfg := corpus.DefaultConfig()
	if *configFlag != "" {
		var err error
		if cfg, err = corpus.LoadConfig(*configFlag); err != nil {
			fatal(err)
		}
		logging.Info("loaded config from %s", *configFlag)
	}

	// Explicit flags override the config file.
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["path"] || cfg.Path == "" {
		cfg.Path = *pathFlag
	}
	if set["max-len"] {
		cfg.MaxLen = *maxLenFlag
	}
	if set["vocab-size"] {
		cfg.VocabSize = *vocabSizeFlag
	}
	if set["valid-ratio"] {
		cfg.ValidRatio = *validRatioFlag
	}
	if set["precision"] {
		cfg.Precision = *precisionFlag
	}
	if set["adv-path"] {
		cfg.AdvTrainPath = *advPathFlag
	}
	if set["adv-size"] && *advSizeFlag >= 0 {
		cfg.AdvTrainSize = corpus.Int(*advSizeFlag)
	}
	if set["seed"] {
		cfg.Seed = corpus.Int64(*seedFlag)
	}
	if set["exact-seed"] {
		cfg.ExactSeed = *exactSeedFlag
	}

	if *synth > 0 {
		vocabSize := cfg.VocabSize
		if !set["vocab-size"] && *configFlag == "" {
			vocabSize = 64
			cfg.VocabSize = vocabSize
		}
		raw, err := synthCorpus(*synth, vocabSize)
		if err != nil {
			fatal(err)
		}
		if err := corpus.WriteCorpus(cfg.Path, raw); err != nil {
			fatal(err)
		}
		logging.Info("wrote synthetic corpus with %d examples to %s", *synth, cfg.Path)
	}

	c, err := corpus.Load(cfg)
	if err != nil {
		fatal(err)
	}

	for _, ds := range c.Splits() {
		if err := sample(c, ds, *batchSize, *batches); err != nil {
			fatal(err)
		}
	}

	if *plotOut != "" {
		for _, ds := range c.Splits() {
			if err := plotLengths(*plotOut, ds.Stats(), c.MaxLen()); err != nil {
				fatal(err)
			}
		}
		logging.Info("wrote length histograms to %s", *plotOut)
	}
	if *outCSV != "" {
		if err := writeStatsCSV(*outCSV, c); err != nil {
			fatal(err)
		}
		logging.Info("wrote statistics to %s", *outCSV)
	}
}

func fatal(err error) {
	logging.Error("%v", err)
	os.Exit(1)
}

// sample draws n batches from ds and prints the first row of each, both as
// raw text and as decoded ids.
func sample(c *corpus.Corpus, ds *datasets.SeqDataset, batchSize, n int) error {
	bs := min(batchSize, ds.Len())
	if bs < 1 {
		logging.Info("[%s] empty split, nothing to draw", ds.Name())
		return nil
	}
	for i := range n {
		b, err := ds.NextBatch(bs)
		if err != nil {
			return errors.Wrapf(err, "draw %s batch %d", ds.Name(), i)
		}
		if _, _, err := b.ToGomlxTensors(); err != nil {
			return errors.Wrapf(err, "convert %s batch %d", ds.Name(), i)
		}
		decoded := c.Decode(b.Tokens[:1], b.Lengths[:1])[0]
		fmt.Printf("[%s] batch %d: size=%d new_epoch=%v remaining=%d\n",
			ds.Name(), i, b.Size(), b.NewEpoch, ds.RemainingInEpoch())
		fmt.Printf("  id=%d label=%d length=%d\n", b.IDs[0], b.Labels[0], b.Lengths[0])
		if b.Raw[0] != nil {
			fmt.Printf("  raw:     %s\n", strings.Join(b.Raw[0], " "))
		}
		fmt.Printf("  decoded: %s\n", strings.Join(decoded, " "))
	}
	return nil
}

func plotLengths(outDir string, s datasets.Stats, maxLen int) error {
	if s.Count == 0 {
		return nil
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return errors.Wrapf(err, "mkdir %s", outDir)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: kept sequence length (max_len=%d)", s.Name, maxLen)
	p.X.Label.Text = "length"
	p.Y.Label.Text = "examples"

	bins := max(1, min(50, s.MaxLength-s.MinLength+1))
	h, err := plotter.NewHist(plotter.Values(s.LengthValues()), bins)
	if err != nil {
		return errors.Wrap(err, "build histogram")
	}
	p.Add(h)
	p.Add(plotter.NewGrid())

	outPath := filepath.Join(outDir, s.Name+"_lengths.png")
	if err := p.Save(8*vg.Inch, 5*vg.Inch, outPath); err != nil {
		return errors.Wrapf(err, "save plot %s", outPath)
	}
	return nil
}

func writeStatsCSV(path string, c *corpus.Corpus) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "mkdir %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"split", "count", "min_length", "max_length", "mean_length", "at_max_len", "unknown", "labels"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, ds := range c.Splits() {
		s := ds.Stats()
		var labels []string
		for _, l := range s.SortedLabels() {
			labels = append(labels, fmt.Sprintf("%d:%d", l, s.Labels[l]))
		}
		rec := []string{
			s.Name,
			strconv.Itoa(s.Count),
			strconv.Itoa(s.MinLength),
			strconv.Itoa(s.MaxLength),
			strconv.FormatFloat(s.MeanLength, 'f', 3, 64),
			strconv.Itoa(s.AtMaxLen),
			strconv.Itoa(s.Unknown),
			strings.Join(labels, " "),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "flush csv")
}

// synthCorpus builds a small random corpus: n pool examples, n/4 test
// examples, four labels. Some ids fall past vocabSize to exercise <unk>.
func synthCorpus(n, vocabSize int) (*corpus.RawCorpus, error) {
	if vocabSize < 2 {
		return nil, errors.Errorf("synthetic corpus needs vocab size >= 2, got %d", vocabSize)
	}
	rng := rand.New(rand.NewSource(1))
	idx2txt := make([]string, vocabSize+vocabSize/4)
	idx2txt[0] = "<pad>"
	for i := 1; i < len(idx2txt); i++ {
		idx2txt[i] = fmt.Sprintf("tok%d", i)
	}
	txt2idx := make(map[string]int, len(idx2txt)+1)
	for i, t := range idx2txt {
		txt2idx[t] = i
	}
	txt2idx["<unk>"] = len(idx2txt)

	gen := func() ([]int, []string, int) {
		l := 1 + rng.Intn(2*40)
		x := make([]int, l)
		raw := make([]string, l)
		for j := range x {
			x[j] = 1 + rng.Intn(len(idx2txt)-1)
			raw[j] = idx2txt[x[j]]
		}
		return x, raw, rng.Intn(4)
	}

	c := &corpus.RawCorpus{IdxToTxt: idx2txt, TxtToIdx: txt2idx}
	for range n {
		x, raw, y := gen()
		c.XTrain = append(c.XTrain, x)
		c.RawTrain = append(c.RawTrain, raw)
		c.YTrain = append(c.YTrain, y)
	}
	for range max(1, n/4) {
		x, raw, y := gen()
		c.XTest = append(c.XTest, x)
		c.RawTest = append(c.RawTest, raw)
		c.YTest = append(c.YTest, y)
	}
	return c, nil
}
