// Package imaging provides the image plumbing for patch attribution:
// loading and caching images, partitioning them into patch grids, producing
// perturbed copies, and extracting individual patches for inspection.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner:
// X increases rightward, Y increases downward. A Patch covers the
// half-open rectangle [X, X+W) x [Y, Y+H).
//
// # Patch Grids
//
// BuildPatchGrid tiles the image extent exactly once, row-major, clipping
// the right and bottom edge patches when the patch size does not evenly
// divide the dimensions. The index of a patch in the returned slice is its
// identity: masks and attribution vectors are aligned with it positionally.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Perturber.Apply never mutates its
// input and may be called concurrently against the same base image; every
// call returns an independent copy.
package imaging
