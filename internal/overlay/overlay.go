package overlay

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"

	"go-lens-inspector/internal/analyzer"
)

// Text layout constants for the annotation paths. Positions anchor at the
// text baseline, with score lines stacked upward from a fixed baseline near
// the bottom edge.
const (
	textPadding  = 5.0
	lineStep     = 24.0
	tileBaseline = 20.0
	tileInset    = 12.0
)

// ShadowText draws text with a half-opaque black backing box so annotations
// stay readable over any tile content. (x, y) is the bottom-left corner of
// the text, matching the baseline convention of the callers.
func ShadowText(dc *gg.Context, text string, x, y float64) {
	w, h := dc.MeasureString(text)

	dc.SetRGBA(0, 0, 0, 0.5)
	dc.DrawRectangle(x-textPadding, y-h-textPadding, w+2*textPadding, h+2*textPadding)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.DrawString(text, x, y)
}

// TileOverlay copies one tile and annotates it with its coordinate and
// scores: the coordinate sits at the bottom baseline, and each method's score
// stacks upward from it in configured order.
func TileOverlay(tile image.Image, coordinate string, methods []analyzer.Method, scores map[analyzer.Method]float64) image.Image {
	dc := gg.NewContextForImage(tile)
	y := float64(dc.Height()) - tileBaseline

	ShadowText(dc, fmt.Sprintf("Coordinate: %s", coordinate), tileInset, y)
	y -= lineStep

	for _, m := range methods {
		if score, ok := scores[m]; ok {
			ShadowText(dc, fmt.Sprintf("%s: %.1f", m, score), tileInset, y)
			y -= lineStep
		}
	}

	return dc.Image()
}

// Annotation carries one tile's placement and scores into the overview
// rendering.
type Annotation struct {
	Coordinate string
	Row        int
	Col        int
	Scores     map[analyzer.Method]float64
}

// Overview draws the full cropped image with white grid lines at every
// section boundary and a coordinate plus score block in each cell.
func Overview(img image.Image, annotations []Annotation, cols, rows int, methods []analyzer.Method) image.Image {
	dc := gg.NewContextForImage(img)
	w := float64(dc.Width())
	h := float64(dc.Height())

	// Section lines run through the right and bottom edges as well as the
	// cell boundaries, framing the last row and column.
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(2)
	for j := 1; j <= cols; j++ {
		x := w * float64(j) / float64(cols)
		dc.DrawLine(x, 0, x, h)
	}
	for i := 1; i <= rows; i++ {
		y := h * float64(i) / float64(rows)
		dc.DrawLine(0, y, w, y)
	}
	dc.Stroke()

	for _, a := range annotations {
		x := w*float64(a.Col)/float64(cols) + tileInset
		y := h*float64(a.Row)/float64(rows) + h/(2*float64(rows))

		ShadowText(dc, a.Coordinate, x, y)

		offset := lineStep
		for _, m := range methods {
			if score, ok := a.Scores[m]; ok {
				ShadowText(dc, fmt.Sprintf("%s: %.1f", m, score), x, y+offset)
				offset += lineStep
			}
		}
	}

	return dc.Image()
}
