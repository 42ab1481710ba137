package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createInMemoryImage creates a solid-color image for testing
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestBuildPatchGrid(t *testing.T) {
	patches, err := BuildPatchGrid(64, 64, 32)
	if err != nil {
		t.Fatalf("BuildPatchGrid failed: %v", err)
	}

	want := []Patch{
		{X: 0, Y: 0, W: 32, H: 32},
		{X: 32, Y: 0, W: 32, H: 32},
		{X: 0, Y: 32, W: 32, H: 32},
		{X: 32, Y: 32, W: 32, H: 32},
	}

	if len(patches) != len(want) {
		t.Fatalf("patch count: got %d, want %d", len(patches), len(want))
	}
	for i, p := range patches {
		if p != want[i] {
			t.Errorf("patch %d: got %+v, want %+v", i, p, want[i])
		}
	}
}

func TestBuildPatchGrid_ClippedEdges(t *testing.T) {
	patches, err := BuildPatchGrid(33, 33, 32)
	if err != nil {
		t.Fatalf("BuildPatchGrid failed: %v", err)
	}

	want := []Patch{
		{X: 0, Y: 0, W: 32, H: 32},
		{X: 32, Y: 0, W: 1, H: 32},
		{X: 0, Y: 32, W: 32, H: 1},
		{X: 32, Y: 32, W: 1, H: 1},
	}

	if len(patches) != len(want) {
		t.Fatalf("patch count: got %d, want %d", len(patches), len(want))
	}
	for i, p := range patches {
		if p != want[i] {
			t.Errorf("patch %d: got %+v, want %+v", i, p, want[i])
		}
	}
}

func TestBuildPatchGrid_OversizedPatch(t *testing.T) {
	patches, err := BuildPatchGrid(40, 30, 100)
	if err != nil {
		t.Fatalf("BuildPatchGrid failed: %v", err)
	}

	if len(patches) != 1 {
		t.Fatalf("patch count: got %d, want 1", len(patches))
	}
	if patches[0] != (Patch{X: 0, Y: 0, W: 40, H: 30}) {
		t.Errorf("single patch: got %+v, want full image", patches[0])
	}
}

func TestBuildPatchGrid_Partition(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		height    int
		patchSize int
	}{
		{"even split", 64, 64, 16},
		{"uneven both", 33, 33, 32},
		{"uneven width", 100, 64, 32},
		{"uneven height", 64, 100, 32},
		{"unit patches", 7, 5, 1},
		{"single row", 50, 8, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patches, err := BuildPatchGrid(tt.width, tt.height, tt.patchSize)
			if err != nil {
				t.Fatalf("BuildPatchGrid failed: %v", err)
			}

			// Every pixel must be covered exactly once
			covered := make([]int, tt.width*tt.height)
			area := 0
			for _, p := range patches {
				if p.W < 1 || p.H < 1 {
					t.Fatalf("degenerate patch %+v", p)
				}
				area += p.W * p.H
				for y := p.Y; y < p.Y+p.H; y++ {
					for x := p.X; x < p.X+p.W; x++ {
						if x < 0 || x >= tt.width || y < 0 || y >= tt.height {
							t.Fatalf("patch %+v overflows %dx%d", p, tt.width, tt.height)
						}
						covered[y*tt.width+x]++
					}
				}
			}

			if area != tt.width*tt.height {
				t.Errorf("total patch area: got %d, want %d", area, tt.width*tt.height)
			}
			for i, n := range covered {
				if n != 1 {
					t.Fatalf("pixel (%d,%d) covered %d times", i%tt.width, i/tt.width, n)
				}
			}
		})
	}
}

func TestBuildPatchGrid_RowMajorOrder(t *testing.T) {
	patches, err := BuildPatchGrid(96, 64, 32)
	if err != nil {
		t.Fatalf("BuildPatchGrid failed: %v", err)
	}

	// y outer, x inner: indices advance along a row before dropping down
	for i := 1; i < len(patches); i++ {
		prev, cur := patches[i-1], patches[i]
		if cur.Y < prev.Y || (cur.Y == prev.Y && cur.X <= prev.X) {
			t.Errorf("patches out of row-major order at %d: %+v then %+v", i, prev, cur)
		}
	}
}

func TestBuildPatchGrid_Deterministic(t *testing.T) {
	a, err := BuildPatchGrid(50, 70, 16)
	if err != nil {
		t.Fatalf("BuildPatchGrid failed: %v", err)
	}
	b, err := BuildPatchGrid(50, 70, 16)
	if err != nil {
		t.Fatalf("BuildPatchGrid failed: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("patch counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("patch %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestBuildPatchGrid_InvalidInputs(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		height    int
		patchSize int
	}{
		{"zero width", 0, 10, 4},
		{"zero height", 10, 0, 4},
		{"negative width", -5, 10, 4},
		{"zero patch size", 10, 10, 0},
		{"negative patch size", 10, 10, -32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildPatchGrid(tt.width, tt.height, tt.patchSize); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestPatch_Rect(t *testing.T) {
	p := Patch{X: 8, Y: 16, W: 4, H: 2}
	want := image.Rect(8, 16, 12, 18)
	if p.Rect() != want {
		t.Errorf("Rect: got %v, want %v", p.Rect(), want)
	}
}
