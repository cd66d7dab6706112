package service

import (
	"time"

	"go-lens-inspector/internal/config"
	"go-lens-inspector/internal/observer"
)

// RunContext carries the per-run state that every pipeline stage needs: the
// validated settings, the run timestamp stamped into every artifact name and
// report, and the event bus. It is created once at batch start and passed
// explicitly; nothing about a run is ambient or global.
type RunContext struct {
	Timestamp        string
	Settings         config.AnalysisSettings
	GenerateHeatmaps bool
	Events           *observer.EventBus
}

// NewRunContext starts a run at the current wall clock.
func NewRunContext(settings config.AnalysisSettings, generateHeatmaps bool, events *observer.EventBus) *RunContext {
	if events == nil {
		events = observer.NewEventBus()
	}
	return &RunContext{
		Timestamp:        time.Now().Format("20060102150405"),
		Settings:         settings,
		GenerateHeatmaps: generateHeatmaps,
		Events:           events,
	}
}
