package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// PatchCropResult contains one extracted patch as an encoded image.
type PatchCropResult struct {
	Index       int    `json:"index"`
	Patch       Patch  `json:"patch"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// ExtractPatch crops a single patch out of an image and returns it as a
// base64-encoded PNG. Use this to inspect the region behind a particular
// attribution value.
//
// The patch index refers to the slice returned by BuildPatchGrid for the
// same image dimensions and patch size. A scale factor > 1 enlarges the
// crop (small edge patches are hard to eyeball at 1:1); scale <= 0 is
// treated as 1.0.
func ExtractPatch(img image.Image, patches []Patch, index int, scale float64) (*PatchCropResult, error) {
	if index < 0 || index >= len(patches) {
		return nil, fmt.Errorf("patch index %d out of range [0,%d)", index, len(patches))
	}

	p := patches[index]
	bounds := img.Bounds()
	rect := p.Rect().Add(bounds.Min)
	if !rect.In(bounds) {
		return nil, fmt.Errorf("patch %d rect %v outside image bounds %v", index, rect, bounds)
	}

	cropped := imaging.Crop(img, rect)

	if scale > 0 && scale != 1.0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropped); err != nil {
		return nil, fmt.Errorf("failed to encode patch image: %w", err)
	}

	return &PatchCropResult{
		Index:       index,
		Patch:       p,
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
