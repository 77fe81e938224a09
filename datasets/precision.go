package datasets

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Precision selects the integer/float widths used when a batch is turned
// into tensors. Its value is the bit width shared by both.
type Precision int

const (
	// Narrow pairs int16 with float16.
	Narrow Precision = 16
	// Standard pairs int32 with float32.
	Standard Precision = 32
	// Wide pairs int64 with float64.
	Wide Precision = 64
)

// ParsePrecision accepts "16", "32", "64" or "narrow", "standard", "wide".
func ParsePrecision(s string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "16", "narrow":
		return Narrow, nil
	case "32", "standard":
		return Standard, nil
	case "64", "wide":
		return Wide, nil
	}
	return 0, errors.Wrapf(ErrPrecision, "got %q", s)
}

// Valid reports whether p is one of the three recognized widths.
func (p Precision) Valid() bool {
	switch p {
	case Narrow, Standard, Wide:
		return true
	}
	return false
}

func (p Precision) String() string {
	switch p {
	case Narrow:
		return "narrow"
	case Standard:
		return "standard"
	case Wide:
		return "wide"
	}
	return "invalid"
}

// Bits returns the bit width of both the integer and the float type.
func (p Precision) Bits() int {
	return int(p)
}

// MaxInt returns the largest integer representable at this precision.
func (p Precision) MaxInt() int64 {
	switch p {
	case Narrow:
		return math.MaxInt16
	case Standard:
		return math.MaxInt32
	}
	return math.MaxInt64
}

// MinInt returns the smallest integer representable at this precision.
func (p Precision) MinInt() int64 {
	switch p {
	case Narrow:
		return math.MinInt16
	case Standard:
		return math.MinInt32
	}
	return math.MinInt64
}

// Fits reports whether v is representable at this precision.
func (p Precision) Fits(v int) bool {
	return int64(v) >= p.MinInt() && int64(v) <= p.MaxInt()
}
