package corpus

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Noofbiz/seqBowl/datasets"
)

// Config holds the options recognized by Load.
type Config struct {
	// Path is the location of the serialized corpus.
	Path string `yaml:"path"`

	// MaxLen is the fixed row length shared by every split.
	MaxLen int `yaml:"max_len"`

	// VocabSize is the number of vocabulary entries kept.
	VocabSize int `yaml:"vocab_size"`

	// ValidRatio is the fraction of the training pool routed to dev, in [0, 1).
	ValidRatio float64 `yaml:"valid_ratio"`

	// Precision is one of "16", "32", "64" (or "narrow", "standard", "wide").
	Precision string `yaml:"precision"`

	// AdvTrainPath optionally names serialized auxiliary examples merged
	// into the training split.
	AdvTrainPath string `yaml:"adv_train_path,omitempty"`

	// AdvTrainSize optionally resamples the auxiliary examples to this count.
	AdvTrainSize *int `yaml:"adv_train_size,omitempty"`

	// Seed, when present, makes the load reproducible. By default the
	// historical fixed seed is used regardless of its value.
	Seed *int64 `yaml:"seed,omitempty"`

	// ExactSeed uses the value of Seed instead of the historical fixed seed.
	ExactSeed bool `yaml:"exact_seed,omitempty"`
}

// DefaultConfig returns the defaults of the original OJ loader.
func DefaultConfig() Config {
	return Config{
		MaxLen:     500,
		VocabSize:  5000,
		ValidRatio: 0.2,
		Precision:  "32",
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// Validate checks the options and returns the parsed precision.
func (c Config) Validate() (datasets.Precision, error) {
	p, err := datasets.ParsePrecision(c.Precision)
	if err != nil {
		return 0, errors.Wrapf(ErrConfig, "precision: %v", err)
	}
	if c.MaxLen < 1 {
		return 0, errors.Wrapf(ErrConfig, "max_len must be positive, got %d", c.MaxLen)
	}
	if c.VocabSize < 1 {
		return 0, errors.Wrapf(ErrConfig, "vocab_size must be positive, got %d", c.VocabSize)
	}
	// the <unk> id sits one past the table
	if !p.Fits(c.VocabSize) || !p.Fits(c.MaxLen) {
		return 0, errors.Wrapf(ErrConfig, "vocab_size %d or max_len %d does not fit %s precision",
			c.VocabSize, c.MaxLen, p)
	}
	if c.ValidRatio < 0 || c.ValidRatio >= 1 {
		return 0, errors.Wrapf(ErrConfig, "valid_ratio must be in [0, 1), got %g", c.ValidRatio)
	}
	if c.AdvTrainSize != nil && *c.AdvTrainSize < 0 {
		return 0, errors.Wrapf(ErrConfig, "adv_train_size must not be negative, got %d", *c.AdvTrainSize)
	}
	return p, nil
}

// Int returns a pointer to v, for optional Config fields.
func Int(v int) *int { return &v }

// Int64 returns a pointer to v, for optional Config fields.
func Int64(v int64) *int64 { return &v }
