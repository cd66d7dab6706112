package service

import (
	"image"
	"image/draw"

	"go-lens-inspector/internal/analyzer"
	"go-lens-inspector/internal/grid"
	"go-lens-inspector/internal/overlay"
)

type overlayAnnotation = overlay.Annotation

func overlayOverview(img image.Image, annotations []overlayAnnotation, tiling grid.Tiling, methods []analyzer.Method) image.Image {
	return overlay.Overview(img, annotations, tiling.Cols, tiling.Rows, methods)
}

// writeTileOverlay renders and persists one annotated tile. Zero-area tiles
// (possible when the cropped image is narrower than the section count) have
// nothing to draw on and are skipped; their scores still enter the report.
func (p *Pipeline) writeTileOverlay(region image.Image, tile grid.Tile, scores map[analyzer.Method]float64, methods []analyzer.Method, path string) error {
	b := region.Bounds()
	if b.Empty() {
		return nil
	}

	// Re-base the sub-region at the origin; the drawing context expects
	// origin-anchored bounds.
	tileImg := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(tileImg, tileImg.Bounds(), region, b.Min, draw.Src)

	annotated := overlay.TileOverlay(tileImg, tile.Coordinate, methods, scores)
	return p.writer.WriteImage(annotated, path)
}
