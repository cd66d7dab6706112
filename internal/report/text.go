package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go-lens-inspector/internal/analyzer"
	apperrors "go-lens-inspector/internal/errors"
	"go-lens-inspector/pkg/models"
)

// WriteText renders the human-readable form of a report. Section order is
// fixed: header, configuration, the static method and pre-processing
// descriptions, averages, then per-tile details in enumeration order.
func WriteText(r *models.AnalysisReport, w io.Writer) error {
	var b strings.Builder

	b.WriteString("Lens Test Analysis Report\n")
	b.WriteString("========================\n\n")

	b.WriteString(fmt.Sprintf("Original Image: %s\n", r.OriginalFilename))
	b.WriteString(fmt.Sprintf("Analysis Date: %s\n\n", r.Timestamp))

	cfg := r.Configuration
	b.WriteString("Configuration Settings\n")
	b.WriteString("---------------------\n")
	b.WriteString("Crop values:\n")
	b.WriteString(fmt.Sprintf("  - Top: %.1f%%\n", cfg.CropTop*100))
	b.WriteString(fmt.Sprintf("  - Bottom: %.1f%%\n", cfg.CropBottom*100))
	b.WriteString(fmt.Sprintf("  - Left: %.1f%%\n", cfg.CropLeft*100))
	b.WriteString(fmt.Sprintf("  - Right: %.1f%%\n", cfg.CropRight*100))
	b.WriteString(fmt.Sprintf("Horizontal sections: %d\n", cfg.HorizontalSections))
	b.WriteString(fmt.Sprintf("Analysis methods: %s\n\n", strings.Join(cfg.AnalysisMethods, ", ")))

	b.WriteString("Analysis Methods Description\n")
	b.WriteString("---------------------------\n")
	b.WriteString("Each analysis method produces a normalized score from 1-100:\n\n")
	for i, m := range analyzer.AllMethods() {
		b.WriteString(fmt.Sprintf("%d. %s:\n", i+1, m.Title()))
		b.WriteString(fmt.Sprintf("   %s\n\n", m.Description()))
	}

	b.WriteString("Pre-processing Steps\n")
	b.WriteString("-------------------\n")
	b.WriteString("1. Image Cropping:\n")
	b.WriteString("   Applied specified margin crops to focus on the relevant image area.\n\n")

	b.WriteString("Results Summary\n")
	b.WriteString("--------------\n")
	for _, name := range cfg.AnalysisMethods {
		if avg, ok := r.AverageScores[name]; ok {
			b.WriteString(fmt.Sprintf("%s - Average score: %.1f\n", capitalize(name), avg))
		}
	}

	b.WriteString("\nDetailed Results by Tile\n")
	b.WriteString("----------------------\n")
	for _, tile := range r.Tiles {
		b.WriteString(fmt.Sprintf("\nTile %s:\n", tile.Coordinate))
		for _, name := range cfg.AnalysisMethods {
			if score, ok := tile.Scores[name]; ok {
				b.WriteString(fmt.Sprintf("  - %s: %.1f\n", name, score))
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteTextFile persists the text form of a report.
func WriteTextFile(r *models.AnalysisReport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("cannot write report %s", path), err)
	}
	defer f.Close()
	return WriteText(r, f)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
