package heatmap

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"

	apperrors "go-lens-inspector/internal/errors"
	"go-lens-inspector/pkg/models"
	"go-lens-inspector/pkg/validation"
)

// ScoreGrid is one metric's scores arranged on the tile grid: values indexed
// [row][column], with row = letter rank and column = number - 1, plus the
// sorted label lists for each axis.
type ScoreGrid struct {
	Values     [][]float64
	RowLabels  []string
	ColNumbers []int
}

// BuildGrid reconstructs the score grid for one metric from a stored report.
// The report must cover the full Cartesian product of its row and column
// labels exactly once per cell; anything else fails as a malformed report.
func BuildGrid(r *models.AnalysisReport, metric string) (*ScoreGrid, error) {
	validator := validation.NewReportValidator()
	issues, cov := validator.ValidateMetric(r, metric)
	if len(issues) > 0 {
		msgs := validator.ConvertIssuesToMessages(issues)
		return nil, apperrors.NewMalformedReportError(
			fmt.Sprintf("report cannot back a %s heatmap: %s", metric, strings.Join(msgs, "; ")), nil)
	}

	rowAt := make(map[string]int, len(cov.RowLabels))
	for i, label := range cov.RowLabels {
		rowAt[label] = i
	}
	colAt := make(map[int]int, len(cov.ColNumbers))
	for i, n := range cov.ColNumbers {
		colAt[n] = i
	}

	values := make([][]float64, len(cov.RowLabels))
	for i := range values {
		values[i] = make([]float64, len(cov.ColNumbers))
	}
	for _, t := range r.Tiles {
		label, col, _ := models.SplitCoordinate(t.Coordinate)
		values[rowAt[label]][colAt[col]] = t.Scores[metric]
	}

	return &ScoreGrid{
		Values:     values,
		RowLabels:  cov.RowLabels,
		ColNumbers: cov.ColNumbers,
	}, nil
}

// Rows returns the grid height.
func (g *ScoreGrid) Rows() int { return len(g.Values) }

// Cols returns the grid width.
func (g *ScoreGrid) Cols() int {
	if len(g.Values) == 0 {
		return 0
	}
	return len(g.Values[0])
}

// Min returns the smallest score in the grid.
func (g *ScoreGrid) Min() float64 {
	min := g.Values[0][0]
	for _, row := range g.Values {
		for _, v := range row {
			if v < min {
				min = v
			}
		}
	}
	return min
}

// Max returns the largest score in the grid.
func (g *ScoreGrid) Max() float64 {
	max := g.Values[0][0]
	for _, row := range g.Values {
		for _, v := range row {
			if v > max {
				max = v
			}
		}
	}
	return max
}

// Mean returns the arithmetic mean of every cell.
func (g *ScoreGrid) Mean() float64 {
	flat := make([]float64, 0, g.Rows()*g.Cols())
	for _, row := range g.Values {
		flat = append(flat, row...)
	}
	return stat.Mean(flat, nil)
}
