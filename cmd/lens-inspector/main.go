package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"go-lens-inspector/internal/analyzer"
	"go-lens-inspector/internal/config"
	"go-lens-inspector/internal/logger"
	"go-lens-inspector/internal/observer"
	"go-lens-inspector/internal/repository"
	"go-lens-inspector/internal/service"
	"go-lens-inspector/internal/storage"
)

func main() {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	var (
		rootDir      = flag.String("dir", ".", "analysis root containing one directory of JPEG samples per lens")
		settingsPath = flag.String("settings", "", "optional YAML settings file")
		cropTop      = flag.Float64("crop-top", 0, "percentage to crop from the top (0-100)")
		cropBottom   = flag.Float64("crop-bottom", 0, "percentage to crop from the bottom (0-100)")
		cropLeft     = flag.Float64("crop-left", 0, "percentage to crop from the left (0-100)")
		cropRight    = flag.Float64("crop-right", 0, "percentage to crop from the right (0-100)")
		sections     = flag.Int("sections", 5, "number of horizontal sections in the tile grid (1-20)")
		methodsCSV   = flag.String("methods", "", "comma-separated analysis methods (laplacian, sobel, tenengrad); default is all")
		heatmaps     = flag.Bool("heatmaps", false, "render per-metric heatmaps after analysis")
		workers      = flag.Int("workers", 0, "images processed in parallel; 0 sizes from CPU count")
	)
	flag.Parse()

	settings, err := loadSettings(*settingsPath, *cropTop, *cropBottom, *cropLeft, *cropRight, *sections, *methodsCSV)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid settings: %v\n", err)
		os.Exit(1)
	}

	// Mirror the console log into a file next to the samples.
	logFile, err := logger.TeeToFile(filepath.Join(*rootDir, "lens_analysis.log"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	events := observer.NewEventBus()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	metrics := observer.NewMetricsObserver()
	events.Subscribe(metrics)

	repo := repository.NewImageRepository(storage.NewLocalImageFetcher(), nil, nil)
	pipeline := service.NewPipeline(repo, storage.NewImageWriter(), analyzer.NewWorkerPool(0))
	defer pipeline.Close()

	run := service.NewRunContext(settings, *heatmaps, events)
	runner := service.NewBatchRunner(pipeline, *workers)

	if err := runner.Run(context.Background(), run, *rootDir); err != nil {
		logger.WithError(err).Error("Analysis run failed")
		os.Exit(1)
	}

	processed, failed, failedHeatmaps, totalTime := metrics.Summary()
	logger.WithFields(logrus.Fields{
		"processed":       processed,
		"failed":          failed,
		"failed_heatmaps": failedHeatmaps,
		"total_time":      totalTime.String(),
	}).Info("Analysis run complete")

	if failed > 0 {
		os.Exit(1)
	}
}

// loadSettings builds run settings from the YAML file when one is given,
// otherwise from the command-line values.
func loadSettings(path string, top, bottom, left, right float64, sections int, methodsCSV string) (config.AnalysisSettings, error) {
	if path != "" {
		return config.LoadSettingsFile(path)
	}

	methods := defaultMethodNames()
	if methodsCSV != "" {
		methods = nil
		for _, name := range strings.Split(methodsCSV, ",") {
			methods = append(methods, strings.TrimSpace(name))
		}
	}
	return config.NewAnalysisSettings(top, bottom, left, right, sections, methods)
}

func defaultMethodNames() []string {
	var names []string
	for _, m := range analyzer.AllMethods() {
		names = append(names, string(m))
	}
	return names
}
