package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// PipelineEvent is one notification from the analysis pipeline.
type PipelineEvent struct {
	EventType      EventType     `json:"event_type"`
	Timestamp      time.Time     `json:"timestamp"`
	Image          string        `json:"image"`
	ProcessingTime time.Duration `json:"processing_time"`
	Success        bool          `json:"success"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}

// EventType represents the type of pipeline event
type EventType string

const (
	// ImageStarted when per-image processing begins
	ImageStarted EventType = "image_started"
	// ImageCompleted when an image's reports and artifacts are written
	ImageCompleted EventType = "image_completed"
	// ImageFailed when an image is skipped after an error
	ImageFailed EventType = "image_failed"
	// HeatmapFailed when heatmap generation fails for an otherwise processed image
	HeatmapFailed EventType = "heatmap_failed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event PipelineEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	NotifyObservers(ctx context.Context, event PipelineEvent)
}

// EventBus is a simple synchronous Subject shared by one run.
type EventBus struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventBus creates an empty event bus.
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers an observer.
func (b *EventBus) Subscribe(observer Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, observer)
}

// NotifyObservers delivers the event to every observer in subscription order.
func (b *EventBus) NotifyObservers(ctx context.Context, event PipelineEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, o := range b.observers {
		o.OnEvent(ctx, event)
	}
}

// LoggingObserver logs pipeline events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{logger: logger}
}

// OnEvent handles pipeline events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event PipelineEvent) {
	fields := logrus.Fields{
		"image":           event.Image,
		"processing_time": event.ProcessingTime,
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}

	switch event.EventType {
	case ImageStarted:
		o.logger.WithFields(fields).Debug("Image analysis started")
	case ImageCompleted:
		o.logger.WithFields(fields).Info("Image analysis completed")
	case ImageFailed:
		o.logger.WithFields(fields).Error("Image analysis failed, skipping")
	case HeatmapFailed:
		o.logger.WithFields(fields).Error("Heatmap generation failed")
	default:
		o.logger.WithFields(fields).Info("Pipeline event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver accumulates run counters from pipeline events.
type MetricsObserver struct {
	mu                  sync.RWMutex
	processedImages     int64
	failedImages        int64
	failedHeatmaps      int64
	totalProcessingTime time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnEvent handles pipeline events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event PipelineEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case ImageCompleted:
		o.processedImages++
		o.totalProcessingTime += event.ProcessingTime
	case ImageFailed:
		o.failedImages++
	case HeatmapFailed:
		o.failedHeatmaps++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// Summary reports the accumulated counters.
func (o *MetricsObserver) Summary() (processed, failed, failedHeatmaps int64, totalTime time.Duration) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.processedImages, o.failedImages, o.failedHeatmaps, o.totalProcessingTime
}
