package grid

import (
	"image"
	"image/color"
	"testing"

	apperrors "go-lens-inspector/internal/errors"
)

func createTestImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestNewTiling(t *testing.T) {
	// 1000x500, 5 sections: aspect 2.0, rows = floor(5/2) = 2.
	tiling, err := NewTiling(1000, 500, 5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if tiling.Cols != 5 {
		t.Errorf("Expected 5 columns, got %d", tiling.Cols)
	}
	if tiling.Rows != 2 {
		t.Errorf("Expected 2 rows, got %d", tiling.Rows)
	}
	if tiling.TileWidth != 200 {
		t.Errorf("Expected tile width 200, got %d", tiling.TileWidth)
	}
	if tiling.TileHeight != 250 {
		t.Errorf("Expected tile height 250, got %d", tiling.TileHeight)
	}
}

func TestNewTiling_TallImage(t *testing.T) {
	// Portrait orientation: aspect < 1 gives more rows than columns.
	tiling, err := NewTiling(500, 1000, 4)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if tiling.Rows != 8 {
		t.Errorf("Expected 8 rows, got %d", tiling.Rows)
	}
}

func TestNewTiling_AtLeastOneRow(t *testing.T) {
	// A very wide image must still produce one row.
	tiling, err := NewTiling(4000, 100, 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if tiling.Rows != 1 {
		t.Errorf("Expected 1 row, got %d", tiling.Rows)
	}
}

func TestNewTiling_InvalidInput(t *testing.T) {
	if _, err := NewTiling(100, 100, 0); err == nil {
		t.Error("Expected error for zero sections")
	}
	if _, err := NewTiling(0, 100, 5); err == nil {
		t.Error("Expected error for zero width")
	}
}

func TestTiles_RowMajorOrder(t *testing.T) {
	tiling, err := NewTiling(1000, 500, 5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tiles := tiling.Tiles()
	if len(tiles) != 10 {
		t.Fatalf("Expected 10 tiles, got %d", len(tiles))
	}

	expected := []string{"A1", "A2", "A3", "A4", "A5", "B1", "B2", "B3", "B4", "B5"}
	for i, tile := range tiles {
		if tile.Coordinate != expected[i] {
			t.Errorf("Tile %d: expected coordinate %s, got %s", i, expected[i], tile.Coordinate)
		}
	}

	// First tile anchors at the origin, last ends at the full grid extent.
	if tiles[0].Rect != image.Rect(0, 0, 200, 250) {
		t.Errorf("Unexpected first tile rect: %v", tiles[0].Rect)
	}
	if tiles[9].Rect != image.Rect(800, 250, 1000, 500) {
		t.Errorf("Unexpected last tile rect: %v", tiles[9].Rect)
	}
}

func TestTiles_RemainderDropped(t *testing.T) {
	// 103x53 with 5 sections: cells 20x26, rightmost 3 and bottom 1 pixels
	// are not covered by any tile.
	tiling, err := NewTiling(103, 53, 5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, tile := range tiling.Tiles() {
		if tile.Rect.Max.X > 100 {
			t.Errorf("Tile %s extends past covered width: %v", tile.Coordinate, tile.Rect)
		}
		if tile.Rect.Max.Y > 52 {
			t.Errorf("Tile %s extends past covered height: %v", tile.Coordinate, tile.Rect)
		}
	}
}

func TestCrop(t *testing.T) {
	img := createTestImage(200, 100, color.RGBA{128, 128, 128, 255})

	cropped, err := Crop(img, 0.1, 0.1, 0.25, 0.25)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	bounds := cropped.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 80 {
		t.Errorf("Expected 100x80 crop, got %dx%d", bounds.Dx(), bounds.Dy())
	}
	if bounds.Min.X != 0 || bounds.Min.Y != 0 {
		t.Errorf("Expected origin-based crop, got min %v", bounds.Min)
	}
}

func TestCrop_NoMargins(t *testing.T) {
	img := createTestImage(50, 40, color.RGBA{10, 20, 30, 255})

	cropped, err := Crop(img, 0, 0, 0, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cropped.Bounds().Dx() != 50 || cropped.Bounds().Dy() != 40 {
		t.Errorf("Expected full image, got %v", cropped.Bounds())
	}
}

func TestCrop_TruncatesOffsets(t *testing.T) {
	// 15% of 101 pixels is 15.15; offsets truncate, never round.
	img := createTestImage(101, 101, color.RGBA{0, 0, 0, 255})

	cropped, err := Crop(img, 0.15, 0, 0, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cropped.Bounds().Dy() != 101-15 {
		t.Errorf("Expected height %d, got %d", 101-15, cropped.Bounds().Dy())
	}
}

func TestCrop_DegenerateRegion(t *testing.T) {
	img := createTestImage(100, 100, color.RGBA{0, 0, 0, 255})

	_, err := Crop(img, 0.6, 0.6, 0, 0)
	if err == nil {
		t.Fatal("Expected error for margins covering the whole image")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeDegenerateRegion) {
		t.Errorf("Expected degenerate region error, got %v", err)
	}
}
