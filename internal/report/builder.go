package report

import (
	"go-lens-inspector/internal/analyzer"
	"go-lens-inspector/internal/config"
	"go-lens-inspector/pkg/models"
)

// ScoredTile is one analyzed grid cell on its way into a report: coordinate,
// the tile artifact's filename, and the per-method scores.
type ScoredTile struct {
	Coordinate string
	Filename   string
	Scores     map[analyzer.Method]float64
}

// Build assembles the report for one source image. The JSON and text
// serializations are both derived from the returned value, so every number
// agrees between the two forms; nothing is recomputed at write time.
func Build(originalFilename, timestamp string, settings config.AnalysisSettings, tiles []ScoredTile) *models.AnalysisReport {
	records := make([]models.TileRecord, len(tiles))
	scoreMaps := make([]map[analyzer.Method]float64, len(tiles))
	for i, t := range tiles {
		scores := make(map[string]float64, len(t.Scores))
		for m, s := range t.Scores {
			scores[string(m)] = s
		}
		records[i] = models.TileRecord{
			Coordinate: t.Coordinate,
			Filename:   t.Filename,
			Scores:     scores,
		}
		scoreMaps[i] = t.Scores
	}

	averages := make(map[string]float64)
	for m, avg := range analyzer.AverageScores(scoreMaps) {
		averages[string(m)] = avg
	}

	return &models.AnalysisReport{
		OriginalFilename: originalFilename,
		Timestamp:        timestamp,
		Configuration:    settings.Snapshot(),
		Tiles:            records,
		AverageScores:    averages,
	}
}
