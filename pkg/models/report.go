package models

// Configuration is the serialized snapshot of the analysis settings embedded
// in every report. Crop values are stored as decimal fractions, exactly as
// used for cropping; they are never re-derived from percentages at read time.
type Configuration struct {
	CropTop            float64  `json:"crop_top" yaml:"crop_top"`
	CropBottom         float64  `json:"crop_bottom" yaml:"crop_bottom"`
	CropLeft           float64  `json:"crop_left" yaml:"crop_left"`
	CropRight          float64  `json:"crop_right" yaml:"crop_right"`
	HorizontalSections int      `json:"horizontal_sections" yaml:"horizontal_sections"`
	AnalysisMethods    []string `json:"analysis_methods" yaml:"analysis_methods"`
}

// TileRecord is one scored grid cell as persisted in a report.
type TileRecord struct {
	Coordinate string             `json:"coordinate"`
	Filename   string             `json:"filename"`
	Scores     map[string]float64 `json:"scores"`
}

// AnalysisReport is the persisted record for one source image. It is written
// once by the pipeline and read back, unmodified, by heatmap generation.
type AnalysisReport struct {
	OriginalFilename string             `json:"original_filename"`
	Timestamp        string             `json:"timestamp"`
	Configuration    Configuration      `json:"configuration"`
	Tiles            []TileRecord       `json:"tiles"`
	AverageScores    map[string]float64 `json:"average_scores"`
}

// Metrics lists the score keys present in the report's tiles, in the
// configured method order.
func (r *AnalysisReport) Metrics() []string {
	return r.Configuration.AnalysisMethods
}
