package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-lens-inspector/internal/analyzer"
	"go-lens-inspector/internal/config"
	apperrors "go-lens-inspector/internal/errors"
)

func testSettings(t *testing.T) config.AnalysisSettings {
	t.Helper()
	s, err := config.NewAnalysisSettings(10, 0, 0, 0, 2, []string{"laplacian", "sobel"})
	require.NoError(t, err)
	return s
}

func testTiles() []ScoredTile {
	return []ScoredTile{
		{Coordinate: "A1", Filename: "sample_A1_20240101120000.jpg",
			Scores: map[analyzer.Method]float64{analyzer.MethodLaplacian: 10, analyzer.MethodSobel: 30}},
		{Coordinate: "A2", Filename: "sample_A2_20240101120000.jpg",
			Scores: map[analyzer.Method]float64{analyzer.MethodLaplacian: 30, analyzer.MethodSobel: 50}},
	}
}

func TestBuild(t *testing.T) {
	r := Build("sample.jpg", "20240101120000", testSettings(t), testTiles())

	assert.Equal(t, "sample.jpg", r.OriginalFilename)
	assert.Equal(t, "20240101120000", r.Timestamp)
	assert.Equal(t, 0.10, r.Configuration.CropTop)
	assert.Equal(t, []string{"laplacian", "sobel"}, r.Configuration.AnalysisMethods)
	require.Len(t, r.Tiles, 2)
	assert.Equal(t, "A1", r.Tiles[0].Coordinate)
	assert.Equal(t, 10.0, r.Tiles[0].Scores["laplacian"])
	assert.Equal(t, 20.0, r.AverageScores["laplacian"])
	assert.Equal(t, 40.0, r.AverageScores["sobel"])
}

func TestWriteAndReadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample_analysis_20240101120000.json")
	r := Build("sample.jpg", "20240101120000", testSettings(t), testTiles())

	require.NoError(t, WriteJSON(r, path))

	parsed, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, r.OriginalFilename, parsed.OriginalFilename)
	assert.Equal(t, r.Configuration, parsed.Configuration)
	assert.Equal(t, r.AverageScores, parsed.AverageScores)
	require.Len(t, parsed.Tiles, 2)
	assert.Equal(t, r.Tiles[1].Scores, parsed.Tiles[1].Scores)
}

func TestParse_UnknownField(t *testing.T) {
	data := []byte(`{
        "original_filename": "x.jpg",
        "timestamp": "20240101120000",
        "configuration": {"horizontal_sections": 2, "analysis_methods": ["sobel"]},
        "tiles": [{"coordinate": "A1", "scores": {"sobel": 5}}],
        "average_scores": {"sobel": 5},
        "extra_field": true
    }`)

	_, err := Parse(data)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeMalformedReport))
}

func TestParse_SchemaViolations(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"not json", `{"original_filename":`},
		{"missing filename", `{"timestamp": "t", "configuration": {"analysis_methods": ["sobel"]}, "tiles": [{"coordinate": "A1", "scores": {"sobel": 1}}]}`},
		{"no tiles", `{"original_filename": "x.jpg", "configuration": {"analysis_methods": ["sobel"]}, "tiles": []}`},
		{"no methods", `{"original_filename": "x.jpg", "configuration": {"analysis_methods": []}, "tiles": [{"coordinate": "A1", "scores": {"sobel": 1}}]}`},
		{"tile without coordinate", `{"original_filename": "x.jpg", "configuration": {"analysis_methods": ["sobel"]}, "tiles": [{"scores": {"sobel": 1}}]}`},
		{"tile without scores", `{"original_filename": "x.jpg", "configuration": {"analysis_methods": ["sobel"]}, "tiles": [{"coordinate": "A1", "scores": {}}]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeMalformedReport))
		})
	}
}

func TestWriteText(t *testing.T) {
	var sb strings.Builder
	r := Build("sample.jpg", "20240101120000", testSettings(t), testTiles())

	require.NoError(t, WriteText(r, &sb))
	text := sb.String()

	assert.Contains(t, text, "Lens Test Analysis Report")
	assert.Contains(t, text, "sample.jpg")
	assert.Contains(t, text, "Laplacian Variance Method")
	assert.Contains(t, text, "Sobel Gradient Method")
	assert.Contains(t, text, "Results Summary")
	assert.Contains(t, text, "Detailed Results by Tile")
	assert.Contains(t, text, "A1")
	assert.Contains(t, text, "Laplacian - Average score: 20.0")
	assert.Contains(t, text, "Sobel - Average score: 40.0")

	// Section order is fixed.
	assert.Less(t, strings.Index(text, "Results Summary"), strings.Index(text, "Detailed Results by Tile"))
}

func TestWriteTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample_report_20240101120000.txt")
	r := Build("sample.jpg", "20240101120000", testSettings(t), testTiles())

	require.NoError(t, WriteTextFile(r, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Lens Test Analysis Report")
}
