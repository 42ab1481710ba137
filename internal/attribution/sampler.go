package attribution

import "math/rand"

// Sampler produces patch-inclusion masks. Sample(n) returns exactly n
// entries; entry i tells whether patch i is kept (true) or perturbed away
// (false) in one trial.
type Sampler interface {
	Sample(n int) []bool
}

// BernoulliSampler draws every mask entry independently from an unbiased
// Bernoulli(0.5) distribution.
//
// The random stream is injected explicitly so runs are reproducible; there
// is no hidden global generator. A BernoulliSampler is not safe for
// concurrent use; give each worker its own.
type BernoulliSampler struct {
	rng *rand.Rand
}

// NewBernoulliSampler creates a sampler seeded with the given value.
// Identical seeds produce identical mask sequences.
func NewBernoulliSampler(seed int64) *BernoulliSampler {
	return &BernoulliSampler{rng: rand.New(rand.NewSource(seed))}
}

// Sample returns a fresh mask of length n. All-true and all-false masks are
// rare but valid outcomes; nothing is special-cased.
func (s *BernoulliSampler) Sample(n int) []bool {
	mask := make([]bool, n)
	for i := range mask {
		mask[i] = s.rng.Intn(2) == 1
	}
	return mask
}
