package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestParseFillColor(t *testing.T) {
	tests := []struct {
		hex     string
		want    color.RGBA
		wantErr bool
	}{
		{"#000000", color.RGBA{0, 0, 0, 255}, false},
		{"#FFFFFF", color.RGBA{255, 255, 255, 255}, false},
		{"#ff0000", color.RGBA{255, 0, 0, 255}, false},
		{"#7F7F7F", color.RGBA{127, 127, 127, 255}, false},
		{"", color.RGBA{}, true},
		{"not-a-color", color.RGBA{}, true},
		{"123456", color.RGBA{}, true}, // missing leading #
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			c, err := ParseFillColor(tt.hex)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c != tt.want {
				t.Errorf("got %v, want %v", c, tt.want)
			}
		})
	}
}

func TestMeanColor_Solid(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{40, 80, 120, 255})

	got := MeanColor(img)
	want := color.RGBA{40, 80, 120, 255}
	if got != want {
		t.Errorf("MeanColor: got %v, want %v", got, want)
	}
}

func TestMeanColor_TwoHalves(t *testing.T) {
	// Left half black, right half white: mean is mid gray
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if x < 5 {
				img.Set(x, y, color.RGBA{0, 0, 0, 255})
			} else {
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			}
		}
	}

	got := MeanColor(img)
	want := color.RGBA{127, 127, 127, 255}
	if got != want {
		t.Errorf("MeanColor: got %v, want %v", got, want)
	}
}

func TestMeanColor_EmptyImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))

	got := MeanColor(img)
	want := color.RGBA{0, 0, 0, 255}
	if got != want {
		t.Errorf("MeanColor on empty image: got %v, want %v", got, want)
	}
}
