// Package attribution estimates how much each spatial patch of an image
// contributes to a classifier's confidence in a target class.
//
// The estimator is a simplified KernelSHAP variant. The image is tiled into
// a row-major patch grid; each Monte-Carlo trial draws an independent
// Bernoulli(0.5) inclusion mask over the patches, blanks the excluded ones
// with a constant fill, classifies the perturbed image, and credits
// (included) or debits (excluded) every patch with the target class score.
// Averaging over the trials yields the attribution vector, index-aligned
// with the patch grid.
//
// # Accuracy
//
// The +/- score contribution rule is a crude contrast estimator, not a
// kernel-weighted Shapley computation: it carries a known bias relative to
// exact Shapley values that more samples do not remove. More samples do
// shrink its variance, which is usually what matters in practice.
//
// # Determinism and concurrency
//
// The mask stream is seeded explicitly. With a fixed seed, worker count,
// and a deterministic classifier, two runs produce identical vectors. With
// Workers > 1 the trials run on an errgroup pool; each worker owns a
// derived seed and a partial accumulator, and the partials are merged in a
// single reduction, so no trial ever observes another trial's output.
package attribution
