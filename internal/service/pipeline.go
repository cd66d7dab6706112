package service

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go-lens-inspector/internal/analyzer"
	"go-lens-inspector/internal/grid"
	"go-lens-inspector/internal/heatmap"
	"go-lens-inspector/internal/logger"
	"go-lens-inspector/internal/observer"
	"go-lens-inspector/internal/report"
	"go-lens-inspector/internal/repository"
	"go-lens-inspector/internal/storage"
	"go-lens-inspector/pkg/models"
)

// Pipeline runs the full analysis for single images: crop, tile, score,
// annotate, report. One Pipeline is shared by a whole batch; it holds no
// per-image state.
type Pipeline struct {
	repo     repository.ImageRepository
	writer   storage.ImageWriter
	analyzer *analyzer.TileAnalyzer
	pool     *analyzer.WorkerPool
}

// NewPipeline creates a pipeline over the given image source and artifact
// writer. The worker pool fans tile scoring out across CPUs.
func NewPipeline(repo repository.ImageRepository, writer storage.ImageWriter, pool *analyzer.WorkerPool) *Pipeline {
	pool.Start()
	return &Pipeline{
		repo:     repo,
		writer:   writer,
		analyzer: analyzer.NewTileAnalyzer(),
		pool:     pool,
	}
}

// Close shuts down the tile-scoring workers.
func (p *Pipeline) Close() {
	p.pool.Close()
}

// ImageResult is the outcome of one processed image: the in-memory report
// and the path of its persisted JSON form, which the heatmap step reads back.
type ImageResult struct {
	Report   *models.AnalysisReport
	JSONPath string
}

// ProcessImage analyzes one source image and writes all of its artifacts:
// the cropped working copy, per-tile overlays, the grid overview, and the
// JSON and text reports. The JSON write completes before this returns, so a
// caller may immediately hand the path to GenerateHeatmaps.
func (p *Pipeline) ProcessImage(ctx context.Context, run *RunContext, imagePath, workingDir, reportsDir string) (*ImageResult, error) {
	start := time.Now()
	stem := stemOf(imagePath)

	run.Events.NotifyObservers(ctx, observer.PipelineEvent{
		EventType: observer.ImageStarted,
		Timestamp: start,
		Image:     imagePath,
	})

	result, err := p.processImage(ctx, run, imagePath, stem, workingDir, reportsDir)

	event := observer.PipelineEvent{
		Timestamp:      time.Now(),
		Image:          imagePath,
		ProcessingTime: time.Since(start),
		Success:        err == nil,
	}
	if err != nil {
		event.EventType = observer.ImageFailed
		event.ErrorMessage = err.Error()
	} else {
		event.EventType = observer.ImageCompleted
	}
	run.Events.NotifyObservers(ctx, event)

	return result, err
}

func (p *Pipeline) processImage(ctx context.Context, run *RunContext, imagePath, stem, workingDir, reportsDir string) (*ImageResult, error) {
	img, err := p.repo.FetchImage(ctx, imagePath)
	if err != nil {
		return nil, err
	}

	s := run.Settings
	cropped, err := grid.Crop(img, s.CropTop, s.CropBottom, s.CropLeft, s.CropRight)
	if err != nil {
		return nil, err
	}

	if err := p.writer.WriteImage(cropped, filepath.Join(workingDir, stem+"_cropped.jpg")); err != nil {
		return nil, err
	}

	tiling, err := grid.NewTiling(cropped.Bounds().Dx(), cropped.Bounds().Dy(), s.HorizontalSections)
	if err != nil {
		return nil, err
	}
	tiles := tiling.Tiles()

	scored, annotations, err := p.scoreTiles(run, cropped, tiles, stem, filepath.Join(workingDir, "tiles"))
	if err != nil {
		return nil, err
	}

	overview := overlayOverview(cropped, annotations, tiling, s.Methods)
	if err := p.writer.WriteImage(overview, filepath.Join(workingDir, fmt.Sprintf("%s_overview_%s.jpg", stem, run.Timestamp))); err != nil {
		return nil, err
	}

	r := report.Build(filepath.Base(imagePath), run.Timestamp, s, scored)

	jsonPath := filepath.Join(reportsDir, fmt.Sprintf("%s_analysis_%s.json", stem, run.Timestamp))
	if err := report.WriteJSON(r, jsonPath); err != nil {
		return nil, err
	}
	textPath := filepath.Join(reportsDir, fmt.Sprintf("%s_report_%s.txt", stem, run.Timestamp))
	if err := report.WriteTextFile(r, textPath); err != nil {
		return nil, err
	}

	return &ImageResult{Report: r, JSONPath: jsonPath}, nil
}

// scoreTiles fans the per-tile work out over the worker pool: each job scores
// its tile, renders the annotated copy, and writes the tile artifact. Tiles
// are disjoint sub-regions of the cropped image, so jobs share nothing but
// the result slices, which are index-addressed.
func (p *Pipeline) scoreTiles(run *RunContext, cropped *image.RGBA, tiles []grid.Tile, stem, tilesDir string) ([]report.ScoredTile, []overlayAnnotation, error) {
	scored := make([]report.ScoredTile, len(tiles))
	annotations := make([]overlayAnnotation, len(tiles))
	writeErrs := make([]error, len(tiles))

	var wg sync.WaitGroup
	for i, tile := range tiles {
		wg.Add(1)
		i, tile := i, tile
		p.pool.Submit(func() {
			defer wg.Done()

			region := cropped.SubImage(tile.Rect)
			scores := p.analyzer.Analyze(region, run.Settings.Methods)

			filename := fmt.Sprintf("%s_%s_%s.jpg", stem, tile.Coordinate, run.Timestamp)
			writeErrs[i] = p.writeTileOverlay(region, tile, scores, run.Settings.Methods, filepath.Join(tilesDir, filename))

			scored[i] = report.ScoredTile{
				Coordinate: tile.Coordinate,
				Filename:   filename,
				Scores:     scores,
			}
			annotations[i] = overlayAnnotation{
				Coordinate: tile.Coordinate,
				Row:        tile.Row,
				Col:        tile.Col,
				Scores:     scores,
			}
		})
	}
	wg.Wait()

	for _, err := range writeErrs {
		if err != nil {
			return nil, nil, err
		}
	}
	return scored, annotations, nil
}

// GenerateHeatmaps reads a persisted report back through its strict schema
// and renders one heatmap per metric. It is called only after the report
// write has completed; failure here fails the heatmap step for that image,
// not the image itself.
func (p *Pipeline) GenerateHeatmaps(ctx context.Context, run *RunContext, jsonPath, heatmapsDir string) error {
	r, err := report.ReadFile(jsonPath)
	if err != nil {
		return err
	}

	base := stemOf(jsonPath)
	if i := strings.Index(base, "_analysis_"); i >= 0 {
		base = base[:i]
	}

	for _, metric := range r.Metrics() {
		g, err := heatmap.BuildGrid(r, metric)
		if err != nil {
			return err
		}

		outPath := filepath.Join(heatmapsDir, fmt.Sprintf("%s_%s_heatmap.png", base, metric))
		if err := p.writer.WriteImage(heatmap.Render(g, metric, base), outPath); err != nil {
			return err
		}
		logger.WithFields(map[string]interface{}{
			"metric": metric,
			"path":   outPath,
		}).Debug("Heatmap written")
	}
	return nil
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
