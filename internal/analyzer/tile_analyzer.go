package analyzer

import (
	"image"
)

// TileAnalyzer scores individual tile regions. It holds no mutable state, so
// one instance is safe to share across tiles and goroutines.
type TileAnalyzer struct{}

// NewTileAnalyzer creates a tile analyzer.
func NewTileAnalyzer() *TileAnalyzer {
	return &TileAnalyzer{}
}

// Analyze runs each enabled method, in the configured order, over one tile
// and returns the normalized score per method. The tile is converted to
// grayscale once and shared by all estimators.
func (a *TileAnalyzer) Analyze(tile image.Image, methods []Method) map[Method]float64 {
	scores := make(map[Method]float64, len(methods))
	if len(methods) == 0 {
		return scores
	}

	bounds := tile.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		// Degenerate region: report the floor for every method rather
		// than fault.
		for _, m := range methods {
			scores[m] = MinScore
		}
		return scores
	}

	gray := toGrayscale(tile)
	for _, m := range methods {
		scores[m] = estimate(m, gray)
	}
	return scores
}
