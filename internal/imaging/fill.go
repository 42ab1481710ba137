package imaging

import (
	"fmt"
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseFillColor parses a hex color string like "#000000" or "#7F7F7F" into
// an opaque fill color for the perturber.
func ParseFillColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid fill color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// MeanColor computes the average color of an image, useful as a neutral
// fill value that perturbs patches toward the image's own baseline rather
// than toward black.
//
// The average is computed per channel over every pixel. Alpha is ignored;
// the result is always opaque.
func MeanColor(img image.Image) color.Color {
	bounds := img.Bounds()
	totalPixels := bounds.Dx() * bounds.Dy()
	if totalPixels == 0 {
		return color.RGBA{0, 0, 0, 255}
	}

	var sumR, sumG, sumB uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// Convert from 16-bit to 8-bit
			sumR += uint64(r >> 8)
			sumG += uint64(g >> 8)
			sumB += uint64(b >> 8)
		}
	}

	n := uint64(totalPixels)
	return color.RGBA{
		R: uint8(sumR / n),
		G: uint8(sumG / n),
		B: uint8(sumB / n),
		A: 255,
	}
}
