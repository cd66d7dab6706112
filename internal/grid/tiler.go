package grid

import (
	"fmt"
	"image"

	"go-lens-inspector/pkg/models"
)

// Tile is one cell of the analysis grid: a coordinate label like "B3" and the
// pixel region it covers within the cropped image.
type Tile struct {
	Coordinate string
	Row        int
	Col        int
	Rect       image.Rectangle
}

// Tiling describes how a cropped image is partitioned. The vertical section
// count is derived from the aspect ratio so cells stay near-square:
// rows = max(1, floor(cols/aspect)). Integer division sizes the cells, and
// remainder pixels on the right and bottom edges are dropped. The partition
// is deliberately lossy; the remainder is smaller than one cell in each
// direction.
type Tiling struct {
	Cols       int
	Rows       int
	TileWidth  int
	TileHeight int
}

// NewTiling computes the grid geometry for a cropped image of the given size
// and the configured horizontal section count.
func NewTiling(width, height, sections int) (Tiling, error) {
	if sections < 1 {
		return Tiling{}, fmt.Errorf("horizontal sections must be >= 1, got %d", sections)
	}
	if width <= 0 || height <= 0 {
		return Tiling{}, fmt.Errorf("cannot tile a %dx%d image", width, height)
	}

	aspect := float64(width) / float64(height)
	rows := int(float64(sections) / aspect)
	if rows < 1 {
		rows = 1
	}

	return Tiling{
		Cols:       sections,
		Rows:       rows,
		TileWidth:  width / sections,
		TileHeight: height / rows,
	}, nil
}

// Tiles enumerates the cells row-major: A1..A<cols>, then B1... Coordinates
// are unique within the grid.
func (t Tiling) Tiles() []Tile {
	tiles := make([]Tile, 0, t.Rows*t.Cols)
	for i := 0; i < t.Rows; i++ {
		for j := 0; j < t.Cols; j++ {
			tiles = append(tiles, Tile{
				Coordinate: fmt.Sprintf("%s%d", models.RowLabel(i), j+1),
				Row:        i,
				Col:        j,
				Rect: image.Rect(
					j*t.TileWidth, i*t.TileHeight,
					(j+1)*t.TileWidth, (i+1)*t.TileHeight,
				),
			})
		}
	}
	return tiles
}
