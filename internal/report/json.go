package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	apperrors "go-lens-inspector/internal/errors"
	"go-lens-inspector/pkg/models"
)

// WriteJSON persists the structured form of a report.
func WriteJSON(r *models.AnalysisReport, path string) error {
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return apperrors.NewInternalError("cannot encode analysis report", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("cannot write report %s", path), err)
	}
	return nil
}

// Parse decodes a stored report, rejecting unknown fields and validating the
// schema. The report is the contract between the analysis pipeline and
// heatmap generation, so anything loosely shaped fails here with a
// malformed-report error rather than propagating downstream.
func Parse(data []byte) (*models.AnalysisReport, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var r models.AnalysisReport
	if err := dec.Decode(&r); err != nil {
		return nil, apperrors.NewMalformedReportError("invalid report JSON", err)
	}

	if r.OriginalFilename == "" {
		return nil, apperrors.NewMalformedReportError("report is missing original_filename", nil)
	}
	if len(r.Tiles) == 0 {
		return nil, apperrors.NewMalformedReportError("report contains no tiles", nil)
	}
	if len(r.Configuration.AnalysisMethods) == 0 {
		return nil, apperrors.NewMalformedReportError("report configuration lists no analysis methods", nil)
	}
	for _, t := range r.Tiles {
		if t.Coordinate == "" {
			return nil, apperrors.NewMalformedReportError("report tile is missing its coordinate", nil)
		}
		if len(t.Scores) == 0 {
			return nil, apperrors.NewMalformedReportError(
				fmt.Sprintf("tile %s has no scores", t.Coordinate), nil)
		}
	}
	return &r, nil
}

// ReadFile loads and validates a persisted report.
func ReadFile(path string) (*models.AnalysisReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewMalformedReportError(fmt.Sprintf("cannot read report %s", path), err)
	}
	return Parse(data)
}
