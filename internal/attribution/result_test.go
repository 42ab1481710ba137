package attribution

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	a := &Attribution{Values: []float64{0.4, -0.2, 0.1, -0.5}}

	s := a.Summarize()

	if math.Abs(s.Mean-(-0.05)) > 1e-12 {
		t.Errorf("Mean: got %v, want -0.05", s.Mean)
	}
	if s.Min != -0.5 || s.MinPatch != 3 {
		t.Errorf("Min: got %v at %d, want -0.5 at 3", s.Min, s.MinPatch)
	}
	if s.Max != 0.4 || s.MaxPatch != 0 {
		t.Errorf("Max: got %v at %d, want 0.4 at 0", s.Max, s.MaxPatch)
	}
	if s.StdDev <= 0 {
		t.Errorf("StdDev: got %v, want > 0", s.StdDev)
	}
}

func TestSummarize_Empty(t *testing.T) {
	a := &Attribution{}

	s := a.Summarize()
	if s != (Summary{}) {
		t.Errorf("empty vector: got %+v, want zero Summary", s)
	}
}

func TestSummarize_SingleValue(t *testing.T) {
	a := &Attribution{Values: []float64{0.3}}

	s := a.Summarize()
	if s.StdDev != 0 {
		t.Errorf("StdDev of single value: got %v, want 0", s.StdDev)
	}
	if s.Mean != 0.3 || s.Min != 0.3 || s.Max != 0.3 {
		t.Errorf("single value stats wrong: %+v", s)
	}
}

func TestRank(t *testing.T) {
	a := &Attribution{Values: []float64{0.1, 0.5, -0.3, 0.5}}

	got := a.Rank()
	// Ties (indices 1 and 3) keep index order
	want := Ranking{1, 3, 0, 2}

	if len(got) != len(want) {
		t.Fatalf("length: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Rank[%d]: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestRank_Empty(t *testing.T) {
	a := &Attribution{}
	if got := a.Rank(); len(got) != 0 {
		t.Errorf("Rank of empty vector: got %v", got)
	}
}
