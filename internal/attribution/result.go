package attribution

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary condenses an attribution vector into a handful of statistics for
// quick inspection: spread of the values plus the patches at the extremes.
type Summary struct {
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	MinPatch int     `json:"min_patch"` // index of the most suppressive patch
	MaxPatch int     `json:"max_patch"` // index of the most supportive patch
}

// Summarize computes summary statistics over the attribution values.
// The result is zero-valued for an empty vector.
func (a *Attribution) Summarize() Summary {
	if len(a.Values) == 0 {
		return Summary{}
	}

	return Summary{
		Mean:     stat.Mean(a.Values, nil),
		StdDev:   sampleStdDev(a.Values),
		Min:      floats.Min(a.Values),
		Max:      floats.Max(a.Values),
		MinPatch: floats.MinIdx(a.Values),
		MaxPatch: floats.MaxIdx(a.Values),
	}
}

// sampleStdDev guards the single-value case, where stat.StdDev returns NaN.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}

// Ranking orders patch indices from most supportive to most suppressive.
type Ranking []int

// Rank returns patch indices sorted by descending attribution value. Ties
// keep their patch-index order, so the ranking is deterministic.
func (a *Attribution) Rank() Ranking {
	idx := make(Ranking, len(a.Values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return a.Values[idx[i]] > a.Values[idx[j]]
	})
	return idx
}
