package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"go-lens-inspector/internal/logger"
	"go-lens-inspector/internal/observer"
)

// Output directory names created under the analysis root. Directories with
// these names are never treated as lens sample directories.
const (
	reportsDirName  = "reports"
	heatmapsDirName = "heatmaps"
	workingDirName  = "working_files"
)

// BatchRunner walks an analysis root of per-lens sample directories and runs
// the pipeline over every image. Images are independent, so the batch fans
// out across them; a failed image is logged and skipped while the rest of
// the batch proceeds.
type BatchRunner struct {
	pipeline *Pipeline
	workers  int
}

// NewBatchRunner creates a batch runner. A non-positive worker count is
// sized from the machine's logical CPU count; the work is compute-bound.
func NewBatchRunner(pipeline *Pipeline, workers int) *BatchRunner {
	if workers <= 0 {
		workers = logicalCPUs()
	}
	return &BatchRunner{pipeline: pipeline, workers: workers}
}

func logicalCPUs() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Run processes every lens directory under root. Reports, heatmaps, and
// working files land in per-lens subdirectories of the root's output
// directories.
func (b *BatchRunner) Run(ctx context.Context, run *RunContext, root string) error {
	lensDirs, err := b.findLensDirs(root)
	if err != nil {
		return err
	}
	if len(lensDirs) == 0 {
		return fmt.Errorf("no lens directories found in %s", root)
	}

	logger.WithFields(logrus.Fields{
		"root":    root,
		"lenses":  len(lensDirs),
		"workers": b.workers,
	}).Info("Starting lens analysis run")

	for _, dir := range []string{reportsDirName, heatmapsDirName, workingDirName} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return err
		}
	}

	for _, lensDir := range lensDirs {
		if err := b.processLensDir(ctx, run, root, lensDir); err != nil {
			return err
		}
	}
	return nil
}

// findLensDirs lists the sample directories under root, excluding the output
// directories, sorted by name.
func (b *BatchRunner) findLensDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("cannot read analysis root %s: %w", root, err)
	}

	excluded := map[string]bool{
		reportsDirName:  true,
		heatmapsDirName: true,
		workingDirName:  true,
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() && !excluded[e.Name()] {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func (b *BatchRunner) processLensDir(ctx context.Context, run *RunContext, root, lensName string) error {
	logger.WithField("lens", lensName).Info("Processing lens directory")

	lensReportsDir := filepath.Join(root, reportsDirName, lensName)
	lensHeatmapsDir := filepath.Join(root, heatmapsDirName, lensName)
	lensWorkingDir := filepath.Join(root, workingDirName, lensName)

	dirs := []string{lensReportsDir, lensWorkingDir, filepath.Join(lensWorkingDir, "tiles")}
	if run.GenerateHeatmaps {
		dirs = append(dirs, lensHeatmapsDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	images, err := findSampleImages(filepath.Join(root, lensName))
	if err != nil {
		return err
	}
	if len(images) == 0 {
		logger.WithField("lens", lensName).Warn("No JPEG files found")
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for _, imagePath := range images {
		imagePath := imagePath
		g.Go(func() error {
			b.processOne(gctx, run, imagePath, lensWorkingDir, lensReportsDir, lensHeatmapsDir)
			// Per-image failures are reported through the event bus and
			// never abort the batch.
			return nil
		})
	}
	return g.Wait()
}

// processOne runs the pipeline for one image, then heatmap generation once
// the JSON report is fully written. The heatmap step reads the persisted
// report back, so the ordering is a strict producer/consumer handoff.
func (b *BatchRunner) processOne(ctx context.Context, run *RunContext, imagePath, workingDir, reportsDir, heatmapsDir string) {
	result, err := b.pipeline.ProcessImage(ctx, run, imagePath, workingDir, reportsDir)
	if err != nil {
		// Already published as an ImageFailed event; nothing else to do.
		return
	}

	if run.GenerateHeatmaps {
		if err := b.pipeline.GenerateHeatmaps(ctx, run, result.JSONPath, heatmapsDir); err != nil {
			run.Events.NotifyObservers(ctx, observer.PipelineEvent{
				EventType:    observer.HeatmapFailed,
				Timestamp:    time.Now(),
				Image:        imagePath,
				ErrorMessage: err.Error(),
			})
		}
	}
}

// findSampleImages lists the lens directory's JPEG files sorted by name, the
// order samples are shot in (aperture encoded in the filename).
func findSampleImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read lens directory %s: %w", dir, err)
	}

	var images []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".jpg" || ext == ".jpeg" {
			images = append(images, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(images)
	return images, nil
}
