package corpus

import (
	"math/rand"

	"github.com/lwch/logging"

	"github.com/Noofbiz/seqBowl/datasets"
)

// auxPadID marks padding in serialized auxiliary sequences.
const auxPadID = 0

// StripTailPadding returns a copy of x without its trailing run of pad ids.
// Pad ids before the last non-pad id are kept. An all-pad sequence becomes
// empty.
func StripTailPadding(x []int, pad int) []int {
	end := len(x)
	for end > 0 && x[end-1] == pad {
		end--
	}
	out := make([]int, end)
	copy(out, x[:end])
	return out
}

// resample shuffles the auxiliary examples and keeps the first size of
// them. A nil size keeps the serialized order and count.
func resample(aux *Auxiliary, size *int, rng *rand.Rand) ([][]int, []int) {
	if size == nil {
		return aux.AdvX, aux.AdvLabel
	}
	n := min(*size, len(aux.AdvX))
	x := make([][]int, n)
	y := make([]int, n)
	for i, j := range rng.Perm(len(aux.AdvX))[:n] {
		x[i] = aux.AdvX[j]
		y[i] = aux.AdvLabel[j]
	}
	return x, y
}

// mergeAuxiliary appends the auxiliary examples to the training columns.
// New ids continue from the largest existing id and the raw column is
// dropped, since auxiliary examples carry no raw text.
func mergeAuxiliary(cols *datasets.Columns, x [][]int, y []int) {
	next := 0
	for i, id := range cols.IDs {
		if i == 0 || id >= next {
			next = id + 1
		}
	}
	for i := range x {
		cols.Tokens = append(cols.Tokens, StripTailPadding(x[i], auxPadID))
		cols.Labels = append(cols.Labels, y[i])
		cols.IDs = append(cols.IDs, next)
		next++
	}
	cols.Raw = nil
	logging.Info("[Adversarial Training] adversarial sample number: %d", len(x))
}
