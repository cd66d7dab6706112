package validation

import (
	"fmt"
	"sort"

	"go-lens-inspector/pkg/models"
)

// Issue is one problem found while validating a stored report. Field names
// point at the offending part of the document so a bad report can be
// diagnosed without reading pipeline internals.
type Issue struct {
	Field   string
	Message string
}

// Coverage describes the grid implied by a report's tile coordinates: the
// distinct row labels sorted by rank and the distinct column numbers sorted
// ascending.
type Coverage struct {
	RowLabels  []string
	ColNumbers []int
}

// ReportValidator checks persisted reports before heatmap generation.
type ReportValidator struct{}

// NewReportValidator creates a report validator.
func NewReportValidator() *ReportValidator {
	return &ReportValidator{}
}

// ValidateMetric verifies that every tile of the report carries the given
// metric and that the tile coordinates cover the full Cartesian product of
// the observed rows and columns, with no duplicates and no gaps.
func (v *ReportValidator) ValidateMetric(r *models.AnalysisReport, metric string) ([]Issue, Coverage) {
	var issues []Issue

	if len(r.Tiles) == 0 {
		return append(issues, Issue{Field: "tiles", Message: "report contains no tiles"}), Coverage{}
	}

	type cell struct {
		row string
		col int
	}
	seen := make(map[cell]bool, len(r.Tiles))
	rowRank := make(map[string]int)
	colSet := make(map[int]bool)

	for _, t := range r.Tiles {
		if _, ok := t.Scores[metric]; !ok {
			issues = append(issues, Issue{
				Field:   "tiles." + t.Coordinate + ".scores",
				Message: fmt.Sprintf("missing metric %q", metric),
			})
		}

		row, col, err := models.SplitCoordinate(t.Coordinate)
		if err != nil {
			issues = append(issues, Issue{Field: "tiles", Message: err.Error()})
			continue
		}
		rank, err := models.RowIndex(row)
		if err != nil {
			issues = append(issues, Issue{Field: "tiles", Message: err.Error()})
			continue
		}

		c := cell{row, col}
		if seen[c] {
			issues = append(issues, Issue{
				Field:   "tiles",
				Message: fmt.Sprintf("duplicate tile coordinate %s", t.Coordinate),
			})
			continue
		}
		seen[c] = true
		rowRank[row] = rank
		colSet[col] = true
	}

	cov := Coverage{
		RowLabels:  make([]string, 0, len(rowRank)),
		ColNumbers: make([]int, 0, len(colSet)),
	}
	for row := range rowRank {
		cov.RowLabels = append(cov.RowLabels, row)
	}
	sort.Slice(cov.RowLabels, func(i, j int) bool {
		return rowRank[cov.RowLabels[i]] < rowRank[cov.RowLabels[j]]
	})
	for col := range colSet {
		cov.ColNumbers = append(cov.ColNumbers, col)
	}
	sort.Ints(cov.ColNumbers)

	// Every (row, column) pair implied by the observed labels must be filled
	// by exactly one tile.
	for _, row := range cov.RowLabels {
		for _, col := range cov.ColNumbers {
			if !seen[cell{row, col}] {
				issues = append(issues, Issue{
					Field:   "tiles",
					Message: fmt.Sprintf("grid cell %s%d has no tile", row, col),
				})
			}
		}
	}

	return issues, cov
}

// ConvertIssuesToMessages flattens issues into log-ready strings.
func (v *ReportValidator) ConvertIssuesToMessages(issues []Issue) []string {
	messages := make([]string, len(issues))
	for i, issue := range issues {
		messages[i] = fmt.Sprintf("%s: %s", issue.Field, issue.Message)
	}
	return messages
}
