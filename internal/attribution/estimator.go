package attribution

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/sync/errgroup"

	"github.com/trinity/shap-mcp/internal/classifier"
	"github.com/trinity/shap-mcp/internal/imaging"
)

// Configuration errors, rejected before any sampling begins.
var (
	ErrInvalidPatchSize   = errors.New("patch size must be positive")
	ErrInvalidSampleCount = errors.New("sample count must be positive")
	ErrInvalidWorkerCount = errors.New("worker count must be positive")
)

// Estimator approximates per-patch attributions for a classifier's
// prediction via Monte-Carlo perturbation sampling.
//
// Each trial draws a random inclusion mask over the patch grid, blanks the
// excluded patches with the fill color, classifies the perturbed image, and
// adds the target-class score to every included patch's accumulator entry
// (subtracting it from the excluded ones). The final vector is the
// accumulator divided by Samples: an estimate of "expected score with the
// patch present" minus "expected score with it absent". This contrast is a
// deliberately crude surrogate for exact Shapley values; raising Samples
// shrinks its variance, not its bias.
type Estimator struct {
	// Classifier scores the perturbed images. Required.
	Classifier classifier.Classifier

	// PatchSize is the grid cell edge length in pixels. Required, > 0.
	PatchSize int

	// Samples is the number of Monte-Carlo trials. Required, > 0.
	Samples int

	// Seed feeds the mask samplers. Two runs with equal Seed, Workers,
	// and classifier behavior produce identical results.
	Seed int64

	// Workers is the number of concurrent trial workers. Zero means 1
	// (the sequential reference loop); negative is rejected.
	Workers int

	// Fill is the color written over excluded patches. Nil means black.
	Fill color.Color

	// TargetClass fixes the class whose score is tracked. Empty means
	// the baseline prediction's top class.
	TargetClass string

	// Sampler overrides the Bernoulli mask source. Intended for tests;
	// a custom sampler is a single stream, so it forces Workers to 1.
	Sampler Sampler
}

// Attribution is the result of one estimation run. Values is index-aligned
// with Patches: Values[i] is the estimated contribution of Patches[i] to
// the target class score.
type Attribution struct {
	// TargetClass is the class label the run tracked.
	TargetClass string `json:"target_class"`

	// BaselineScore is the target class probability on the unperturbed
	// image.
	BaselineScore float64 `json:"baseline_score"`

	// Baseline is the full prediction list for the unperturbed image.
	Baseline []classifier.Prediction `json:"baseline"`

	// PatchSize is the grid cell size the run used.
	PatchSize int `json:"patch_size"`

	// Samples is the number of trials that contributed.
	Samples int `json:"samples"`

	// Patches is the grid in row-major order.
	Patches []imaging.Patch `json:"patches"`

	// Values holds one attribution value per patch.
	Values []float64 `json:"values"`
}

// Estimate runs the full sampling loop against img and returns the
// attribution vector over its patch grid.
//
// The run aborts on the first classifier error with no partial result: a
// missing trial would bias every patch's running sum differently, so a
// degraded vector is worse than none. Cancellation of ctx is honored
// between trials; a trial (mask, perturb, classify) is the atomic unit of
// work and is never interrupted midway.
func (e *Estimator) Estimate(ctx context.Context, img image.Image) (*Attribution, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	patches, err := imaging.BuildPatchGrid(bounds.Dx(), bounds.Dy(), e.PatchSize)
	if err != nil {
		return nil, err
	}

	// Baseline: full image prediction fixes the target class for every trial
	baseline, err := e.Classifier.Predict(img)
	if err != nil {
		return nil, fmt.Errorf("baseline prediction failed: %w", err)
	}
	if len(baseline) == 0 {
		return nil, errors.New("classifier returned no predictions for baseline image")
	}

	target := e.TargetClass
	if target == "" {
		target = classifier.Top(baseline).Label
	}
	baselineScore, ok := classifier.ScoreFor(baseline, target)
	if !ok {
		return nil, fmt.Errorf("target class %q not among baseline predictions", target)
	}

	perturber := &imaging.Perturber{Fill: e.Fill}

	workers := e.Workers
	if workers == 0 {
		workers = 1
	}
	if e.Sampler != nil {
		// A caller-supplied sampler is one stream; sharing it across
		// workers would race and correlate the masks.
		workers = 1
	}
	if workers > e.Samples {
		workers = e.Samples
	}

	var sums []float64
	if workers == 1 {
		sampler := e.Sampler
		if sampler == nil {
			sampler = NewBernoulliSampler(e.Seed)
		}
		sums, err = e.runTrials(ctx, img, patches, perturber, sampler, target, e.Samples)
	} else {
		sums, err = e.runTrialsParallel(ctx, img, patches, perturber, target, workers)
	}
	if err != nil {
		return nil, err
	}

	values := make([]float64, len(sums))
	for i, s := range sums {
		values[i] = s / float64(e.Samples)
	}

	return &Attribution{
		TargetClass:   target,
		BaselineScore: baselineScore,
		Baseline:      baseline,
		PatchSize:     e.PatchSize,
		Samples:       e.Samples,
		Patches:       patches,
		Values:        values,
	}, nil
}

func (e *Estimator) validate() error {
	if e.Classifier == nil {
		return errors.New("estimator has no classifier")
	}
	if e.PatchSize < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPatchSize, e.PatchSize)
	}
	if e.Samples < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSampleCount, e.Samples)
	}
	if e.Workers < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkerCount, e.Workers)
	}
	return nil
}

// runTrials executes n trials sequentially and returns the raw per-patch
// contribution sums.
func (e *Estimator) runTrials(ctx context.Context, img image.Image, patches []imaging.Patch,
	perturber *imaging.Perturber, sampler Sampler, target string, n int) ([]float64, error) {

	sums := make([]float64, len(patches))

	for trial := 0; trial < n; trial++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		mask := sampler.Sample(len(patches))
		if len(mask) != len(patches) {
			return nil, fmt.Errorf("sampler returned %d entries for %d patches: %w",
				len(mask), len(patches), imaging.ErrDimensionMismatch)
		}

		perturbed, err := perturber.Apply(img, patches, mask)
		if err != nil {
			return nil, err
		}

		preds, err := e.Classifier.Predict(perturbed)
		if err != nil {
			return nil, fmt.Errorf("trial %d: classifier failed: %w", trial, err)
		}
		score, ok := classifier.ScoreFor(preds, target)
		if !ok {
			return nil, fmt.Errorf("trial %d: target class %q missing from prediction", trial, target)
		}

		for i, kept := range mask {
			if kept {
				sums[i] += score
			} else {
				sums[i] -= score
			}
		}
	}

	return sums, nil
}

// runTrialsParallel fans the trials out over a worker pool. Each worker
// gets a fixed contiguous slice of the trial budget, its own seeded random
// stream, and its own partial accumulator; the partials are merged in one
// reduction at the end. The fixed partition keeps a given (Seed, Workers)
// pair deterministic.
func (e *Estimator) runTrialsParallel(ctx context.Context, img image.Image, patches []imaging.Patch,
	perturber *imaging.Perturber, target string, workers int) ([]float64, error) {

	partials := make([][]float64, workers)

	g, ctx := errgroup.WithContext(ctx)
	base := e.Samples / workers
	extra := e.Samples % workers

	for w := 0; w < workers; w++ {
		w := w
		n := base
		if w < extra {
			n++
		}
		g.Go(func() error {
			sampler := NewBernoulliSampler(e.Seed + int64(w))
			sums, err := e.runTrials(ctx, img, patches, perturber, sampler, target, n)
			if err != nil {
				return err
			}
			partials[w] = sums
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sums := make([]float64, len(patches))
	for _, partial := range partials {
		for i, v := range partial {
			sums[i] += v
		}
	}
	return sums, nil
}
