package overlay

import (
	"image"
	"image/color"
	"testing"

	"go-lens-inspector/internal/analyzer"
)

func grayImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{128, 128, 128, 255})
		}
	}
	return img
}

func TestTileOverlay(t *testing.T) {
	tile := grayImage(200, 150)
	scores := map[analyzer.Method]float64{
		analyzer.MethodLaplacian: 42.5,
		analyzer.MethodSobel:     17.0,
	}

	out := TileOverlay(tile, "B3", []analyzer.Method{analyzer.MethodLaplacian, analyzer.MethodSobel}, scores)

	if out == nil {
		t.Fatal("Expected non-nil image")
	}
	if out.Bounds() != tile.Bounds() {
		t.Errorf("Overlay changed bounds: %v vs %v", out.Bounds(), tile.Bounds())
	}

	// The annotation backing boxes darken pixels near the bottom-left corner.
	changed := false
	for y := 100; y < 150 && !changed; y++ {
		for x := 0; x < 100; x++ {
			if out.At(x, y) != tile.At(x, y) {
				changed = true
				break
			}
		}
	}
	if !changed {
		t.Error("Expected annotation to modify pixels near the baseline")
	}
}

func TestOverview_GridLines(t *testing.T) {
	img := grayImage(400, 200)
	annotations := []Annotation{
		{Coordinate: "A1", Row: 0, Col: 0, Scores: map[analyzer.Method]float64{analyzer.MethodSobel: 10}},
		{Coordinate: "A2", Row: 0, Col: 1, Scores: map[analyzer.Method]float64{analyzer.MethodSobel: 20}},
	}

	out := Overview(img, annotations, 2, 1, []analyzer.Method{analyzer.MethodSobel})

	if out.Bounds() != img.Bounds() {
		t.Fatalf("Overview changed bounds: %v", out.Bounds())
	}

	// The vertical grid line at the section boundary is white.
	r, g, b, _ := out.At(200, 100).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("Expected white grid line at x=200, got (%d, %d, %d)", r>>8, g>>8, b>>8)
	}

	// The right and bottom edges carry section lines too.
	r, g, b, _ = out.At(399, 100).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("Expected white edge line at x=399, got (%d, %d, %d)", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = out.At(100, 199).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("Expected white edge line at y=199, got (%d, %d, %d)", r>>8, g>>8, b>>8)
	}
}
