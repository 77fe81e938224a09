package datasets

import "github.com/pkg/errors"

func cloneInts(s []int) []int {
	if s == nil {
		return nil
	}
	out := make([]int, len(s))
	copy(out, s)
	return out
}

// cloneStrings keeps nil as nil so an absent raw row stays absent.
func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// checkFits returns ErrValueOverflow for the first value p cannot hold.
func checkFits(p Precision, what string, values ...int) error {
	for _, v := range values {
		if !p.Fits(v) {
			return errors.Wrapf(ErrValueOverflow, "%s %d at %s precision", what, v, p)
		}
	}
	return nil
}
