package imaging

import (
	"fmt"
	"image"
)

// Patch is a rectangular sub-region of an image, in pixel coordinates with
// (0,0) at the top-left corner. W and H are always >= 1.
//
// The index of a patch within the slice returned by BuildPatchGrid is its
// identity for the lifetime of an attribution run: masks and attribution
// values are aligned with the patch slice by index.
type Patch struct {
	X int `json:"x"` // Left edge (0-based)
	Y int `json:"y"` // Top edge (0-based)
	W int `json:"w"` // Width in pixels (>= 1)
	H int `json:"h"` // Height in pixels (>= 1)
}

// Rect returns the patch as a standard image.Rectangle.
func (p Patch) Rect() image.Rectangle {
	return image.Rect(p.X, p.Y, p.X+p.W, p.Y+p.H)
}

// BuildPatchGrid partitions a width x height pixel extent into a
// deterministic, non-overlapping grid of patches.
//
// The sweep is row-major (y outer, x inner) with step patchSize along both
// axes. Patches on the right and bottom edges are clipped to the image
// extent, so they may be smaller than patchSize but never overflow it. If
// patchSize exceeds both dimensions the result is a single patch covering
// the whole image.
//
// The returned patches tile the rectangle [0,width) x [0,height) exactly:
// no overlaps, no gaps. Identical inputs always produce the identical
// slice, in the identical order.
//
// Returns an error if width, height, or patchSize is not positive.
func BuildPatchGrid(width, height, patchSize int) ([]Patch, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid image extent %dx%d: dimensions must be positive", width, height)
	}
	if patchSize < 1 {
		return nil, fmt.Errorf("invalid patch size %d: must be positive", patchSize)
	}

	cols := (width + patchSize - 1) / patchSize
	rows := (height + patchSize - 1) / patchSize
	patches := make([]Patch, 0, cols*rows)

	for y := 0; y < height; y += patchSize {
		for x := 0; x < width; x += patchSize {
			patches = append(patches, Patch{
				X: x,
				Y: y,
				W: min(patchSize, width-x),
				H: min(patchSize, height-y),
			})
		}
	}

	return patches, nil
}
