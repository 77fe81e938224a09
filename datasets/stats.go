package datasets

import "sort"

// Stats summarizes the encoded rows of a split.
type Stats struct {
	Name  string
	Count int

	MinLength  int
	MaxLength  int
	MeanLength float64

	// AtMaxLen counts rows that fill every position, truncated ones included.
	AtMaxLen int
	// Unknown counts <unk> ids over all kept positions.
	Unknown int

	// Labels maps class id to number of rows.
	Labels map[int]int

	lengths []int
}

// Stats computes length, label and out-of-vocabulary statistics.
func (d *SeqDataset) Stats() Stats {
	s := Stats{
		Name:    d.name,
		Count:   d.size,
		Labels:  make(map[int]int),
		lengths: cloneInts(d.lengths),
	}
	if d.size == 0 {
		return s
	}

	unk := d.vocab.UnkID()
	s.MinLength = d.maxLen
	total := 0
	for i, l := range d.lengths {
		s.MinLength = min(s.MinLength, l)
		s.MaxLength = max(s.MaxLength, l)
		total += l
		if l == d.maxLen {
			s.AtMaxLen++
		}
		for _, t := range d.tokens[i*d.maxLen : i*d.maxLen+l] {
			if t == unk {
				s.Unknown++
			}
		}
		s.Labels[d.labels[i]]++
	}
	s.MeanLength = float64(total) / float64(d.size)
	return s
}

// LengthValues returns the kept length of every row, for plotting.
func (s Stats) LengthValues() []float64 {
	out := make([]float64, len(s.lengths))
	for i, l := range s.lengths {
		out[i] = float64(l)
	}
	return out
}

// SortedLabels returns the label ids present in the split in ascending order.
func (s Stats) SortedLabels() []int {
	keys := make([]int, 0, len(s.Labels))
	for k := range s.Labels {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
