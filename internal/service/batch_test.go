package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-lens-inspector/internal/config"
	"go-lens-inspector/internal/observer"
)

func TestBatchRunner_Run(t *testing.T) {
	root := t.TempDir()

	lensDir := filepath.Join(root, "50mm_f1.8")
	require.NoError(t, os.MkdirAll(lensDir, 0o755))
	writeSampleJPEG(t, filepath.Join(lensDir, "sample_f2.8.jpg"), 200, 100)
	writeSampleJPEG(t, filepath.Join(lensDir, "sample_f4.jpg"), 200, 100)
	// Non-JPEG files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(lensDir, "notes.txt"), []byte("x"), 0o644))

	// Output directories from an earlier run must not be mistaken for lenses.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "reports"), 0o755))

	settings, err := config.NewAnalysisSettings(0, 0, 0, 0, 2, []string{"laplacian"})
	require.NoError(t, err)

	events := observer.NewEventBus()
	metrics := observer.NewMetricsObserver()
	events.Subscribe(metrics)

	p := newTestPipeline()
	defer p.Close()
	run := NewRunContext(settings, true, events)
	runner := NewBatchRunner(p, 2)

	require.NoError(t, runner.Run(context.Background(), run, root))

	reportsDir := filepath.Join(root, "reports", "50mm_f1.8")
	jsonReports, err := filepath.Glob(filepath.Join(reportsDir, "*_analysis_*.json"))
	require.NoError(t, err)
	assert.Len(t, jsonReports, 2)
	textReports, err := filepath.Glob(filepath.Join(reportsDir, "*_report_*.txt"))
	require.NoError(t, err)
	assert.Len(t, textReports, 2)

	heatmaps, err := filepath.Glob(filepath.Join(root, "heatmaps", "50mm_f1.8", "*_heatmap.png"))
	require.NoError(t, err)
	assert.Len(t, heatmaps, 2)

	croppedFiles, err := filepath.Glob(filepath.Join(root, "working_files", "50mm_f1.8", "*_cropped.jpg"))
	require.NoError(t, err)
	assert.Len(t, croppedFiles, 2)
	tiles, err := filepath.Glob(filepath.Join(root, "working_files", "50mm_f1.8", "tiles", "*.jpg"))
	require.NoError(t, err)
	assert.NotEmpty(t, tiles)

	processed, failed, _, _ := metrics.Summary()
	assert.Equal(t, int64(2), processed)
	assert.Equal(t, int64(0), failed)
}

func TestBatchRunner_FailedImageDoesNotAbort(t *testing.T) {
	root := t.TempDir()

	lensDir := filepath.Join(root, "35mm")
	require.NoError(t, os.MkdirAll(lensDir, 0o755))
	writeSampleJPEG(t, filepath.Join(lensDir, "good_f2.jpg"), 200, 100)
	require.NoError(t, os.WriteFile(filepath.Join(lensDir, "corrupt_f2.8.jpg"), []byte("not a jpeg"), 0o644))

	settings, err := config.NewAnalysisSettings(0, 0, 0, 0, 2, []string{"sobel"})
	require.NoError(t, err)

	events := observer.NewEventBus()
	metrics := observer.NewMetricsObserver()
	events.Subscribe(metrics)

	p := newTestPipeline()
	defer p.Close()
	run := NewRunContext(settings, false, events)
	runner := NewBatchRunner(p, 1)

	require.NoError(t, runner.Run(context.Background(), run, root))

	processed, failed, _, _ := metrics.Summary()
	assert.Equal(t, int64(1), processed)
	assert.Equal(t, int64(1), failed)
}

func TestBatchRunner_EmptyRoot(t *testing.T) {
	settings, err := config.NewAnalysisSettings(0, 0, 0, 0, 2, []string{"sobel"})
	require.NoError(t, err)

	p := newTestPipeline()
	defer p.Close()
	run := NewRunContext(settings, false, nil)
	runner := NewBatchRunner(p, 1)

	require.Error(t, runner.Run(context.Background(), run, t.TempDir()))
}
