package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/clone"
)

// ErrDimensionMismatch reports a mask whose length disagrees with the patch
// slice it is applied to. It indicates a bug in the caller, never an input
// condition, and is not recovered from.
var ErrDimensionMismatch = errors.New("patch/mask dimension mismatch")

// Perturber produces perturbed copies of a base image by overwriting
// excluded patches with a constant fill color.
//
// A Perturber is stateless apart from its fill color and is safe for
// concurrent use: every Apply call works on its own copy of the base image.
type Perturber struct {
	// Fill is the color written over excluded patches. A nil Fill means
	// opaque black.
	Fill color.Color
}

// Apply returns a copy of base in which every patch whose mask entry is
// false has been overwritten with the fill color. Patches whose mask entry
// is true are left bytewise identical to base. The base image is never
// mutated.
//
// Writes are pixel-exact: the filled region is exactly the patch rectangle,
// with no blending or feathering. Patch rectangles are expected to lie
// within the image bounds (BuildPatchGrid guarantees this); coordinates
// outside the image are a programming error, not a recoverable condition.
//
// Returns an error if the mask length does not match the patch count.
func (p *Perturber) Apply(base image.Image, patches []Patch, mask []bool) (*image.RGBA, error) {
	if len(mask) != len(patches) {
		return nil, fmt.Errorf("mask length %d does not match patch count %d: %w",
			len(mask), len(patches), ErrDimensionMismatch)
	}

	out := clone.AsRGBA(base)

	fill := p.Fill
	if fill == nil {
		fill = color.RGBA{0, 0, 0, 255}
	}
	src := image.NewUniform(fill)

	for i, patch := range patches {
		if mask[i] {
			continue
		}
		draw.Draw(out, patch.Rect(), src, image.Point{}, draw.Src)
	}

	return out, nil
}
