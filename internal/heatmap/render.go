package heatmap

import (
	"fmt"
	"image"
	"strings"

	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Canvas geometry. The output keeps a fixed 3:2 aspect ratio regardless of
// the grid shape.
const (
	canvasWidth  = 1200
	canvasHeight = 800

	marginLeft   = 110.0
	marginTop    = 70.0
	marginBottom = 90.0
	marginRight  = 150.0

	colorbarWidth = 28.0
	colorbarGap   = 26.0
)

// Blue ramp endpoints, light to dark.
var (
	rampLow  = colorful.Color{R: 0.968, G: 0.984, B: 1.0}
	rampHigh = colorful.Color{R: 0.031, G: 0.188, B: 0.420}
)

// Render draws the annotated heatmap for one metric: colored cells with value
// annotations, row/column labels, axis titles, a colorbar, and a min/max/mean
// caption. The output is a deterministic function of the grid content.
func Render(g *ScoreGrid, metric, sourceName string) image.Image {
	dc := gg.NewContext(canvasWidth, canvasHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	plotW := float64(canvasWidth) - marginLeft - marginRight
	plotH := float64(canvasHeight) - marginTop - marginBottom
	cellW := plotW / float64(g.Cols())
	cellH := plotH / float64(g.Rows())

	min, max := g.Min(), g.Max()

	// Cells with value annotations.
	for i, row := range g.Values {
		for j, v := range row {
			x := marginLeft + float64(j)*cellW
			y := marginTop + float64(i)*cellH

			c := cellColor(v, min, max)
			dc.SetColor(c)
			dc.DrawRectangle(x, y, cellW, cellH)
			dc.Fill()

			if luminance(c) > 0.55 {
				dc.SetRGB(0.1, 0.1, 0.1)
			} else {
				dc.SetRGB(1, 1, 1)
			}
			dc.DrawStringAnchored(fmt.Sprintf("%.1f", v), x+cellW/2, y+cellH/2, 0.5, 0.5)
		}
	}

	// Cell borders.
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(1)
	for i := 0; i <= g.Rows(); i++ {
		y := marginTop + float64(i)*cellH
		dc.DrawLine(marginLeft, y, marginLeft+plotW, y)
	}
	for j := 0; j <= g.Cols(); j++ {
		x := marginLeft + float64(j)*cellW
		dc.DrawLine(x, marginTop, x, marginTop+plotH)
	}
	dc.Stroke()

	dc.SetRGB(0, 0, 0)

	// Axis tick labels: letters down the left, numbers along the bottom.
	for i, label := range g.RowLabels {
		y := marginTop + (float64(i)+0.5)*cellH
		dc.DrawStringAnchored(label, marginLeft-14, y, 1, 0.5)
	}
	for j, n := range g.ColNumbers {
		x := marginLeft + (float64(j)+0.5)*cellW
		dc.DrawStringAnchored(fmt.Sprintf("%d", n), x, marginTop+plotH+16, 0.5, 0.5)
	}

	// Title and axis titles.
	title := fmt.Sprintf("Lens Sharpness Analysis - %s", capitalize(metric))
	dc.DrawStringAnchored(title, marginLeft+plotW/2, marginTop/2, 0.5, 0.5)
	dc.DrawStringAnchored("Horizontal Position (Left to Right)",
		marginLeft+plotW/2, marginTop+plotH+44, 0.5, 0.5)
	dc.Push()
	dc.RotateAbout(-gg.Radians(90), 30, marginTop+plotH/2)
	dc.DrawStringAnchored("Vertical Position (Center to Edge)", 30, marginTop+plotH/2, 0.5, 0.5)
	dc.Pop()

	drawColorbar(dc, g, metric, min, max, plotH)

	// Captions: source name bottom-left, summary statistics bottom-right.
	dc.DrawStringAnchored(sourceName, 10, float64(canvasHeight)-12, 0, 0.5)
	stats := fmt.Sprintf("Min: %.1f  Max: %.1f  Mean: %.1f", min, max, g.Mean())
	dc.DrawStringAnchored(stats, float64(canvasWidth)-10, float64(canvasHeight)-12, 1, 0.5)

	return dc.Image()
}

func drawColorbar(dc *gg.Context, g *ScoreGrid, metric string, min, max, plotH float64) {
	x := float64(canvasWidth) - marginRight + colorbarGap
	steps := 100
	stepH := plotH / float64(steps)

	// High values at the top.
	for s := 0; s < steps; s++ {
		t := 1 - float64(s)/float64(steps-1)
		dc.SetColor(rampLow.BlendLab(rampHigh, t).Clamped())
		dc.DrawRectangle(x, marginTop+float64(s)*stepH, colorbarWidth, stepH+1)
		dc.Fill()
	}

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x, marginTop, colorbarWidth, plotH)
	dc.Stroke()

	dc.DrawStringAnchored(fmt.Sprintf("%.1f", max), x+colorbarWidth+6, marginTop+6, 0, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.1f", min), x+colorbarWidth+6, marginTop+plotH-6, 0, 0.5)

	dc.Push()
	cx := x + colorbarWidth + 52
	cy := marginTop + plotH/2
	dc.RotateAbout(gg.Radians(90), cx, cy)
	dc.DrawStringAnchored(fmt.Sprintf("%s Score", capitalize(metric)), cx, cy, 0.5, 0.5)
	dc.Pop()
}

// cellColor maps a score onto the blue ramp, scaled to the grid's own value
// range so the full ramp is always used. A flat grid sits mid-ramp.
func cellColor(v, min, max float64) colorful.Color {
	t := 0.5
	if max > min {
		t = (v - min) / (max - min)
	}
	return rampLow.BlendLab(rampHigh, t).Clamped()
}

func luminance(c colorful.Color) float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
