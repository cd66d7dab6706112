package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-lens-inspector/internal/analyzer"
	"go-lens-inspector/internal/config"
	apperrors "go-lens-inspector/internal/errors"
	"go-lens-inspector/internal/grid"
	"go-lens-inspector/internal/logger"
	"go-lens-inspector/internal/report"
	"go-lens-inspector/internal/repository"
	"go-lens-inspector/pkg/models"
)

// NewHandler builds the HTTP surface: a health probe and on-demand analysis
// of a single remote image. The analysis endpoint returns the same report
// document the batch pipeline persists, without writing any artifacts.
func NewHandler(repo repository.ImageRepository, tileAnalyzer *analyzer.TileAnalyzer, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(errorHandler())

	r.GET("/health", healthCheck)
	r.POST("/analyze", analyzeImage(repo, tileAnalyzer, cfg))

	return r
}

func analyzeImage(repo repository.ImageRepository, tileAnalyzer *analyzer.TileAnalyzer, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing image analysis request")

		var req models.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		if err := repo.ValidateRef(req.ImageURL); err != nil {
			respondError(c, apperrors.GetStatusCode(err), "invalid image URL", err)
			return
		}

		settings := config.DefaultAnalysisSettings()
		if req.Configuration != nil {
			var err error
			settings, err = config.FromConfiguration(*req.Configuration)
			if err != nil {
				respondError(c, apperrors.GetStatusCode(err), "invalid configuration", err)
				return
			}
		}

		img, err := repo.FetchImage(ctx, req.ImageURL)
		if err != nil {
			var fetchErr error
			if errors.Is(err, context.DeadlineExceeded) {
				fetchErr = apperrors.NewNetworkError("Image fetch timeout", err)
			} else {
				fetchErr = err
			}
			respondError(c, apperrors.GetStatusCode(fetchErr), "failed to fetch image", fetchErr)
			return
		}

		cropped, err := grid.Crop(img, settings.CropTop, settings.CropBottom, settings.CropLeft, settings.CropRight)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "crop produced an empty region", err)
			return
		}

		bounds := cropped.Bounds()
		tiling, err := grid.NewTiling(bounds.Dx(), bounds.Dy(), settings.HorizontalSections)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "cannot tile cropped image", err)
			return
		}

		scored := make([]report.ScoredTile, 0, tiling.Cols*tiling.Rows)
		for _, tile := range tiling.Tiles() {
			region := cropped.SubImage(tile.Rect)
			scored = append(scored, report.ScoredTile{
				Coordinate: tile.Coordinate,
				Scores:     tileAnalyzer.Analyze(region, settings.Methods),
			})
		}

		timestamp := time.Now().Format("20060102150405")
		doc := report.Build(req.ImageURL, timestamp, settings, scored)

		logger.WithFields(logrus.Fields{
			"url":                req.ImageURL,
			"tiles":              len(scored),
			"methods":            settings.MethodNames(),
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Image analysis completed successfully")

		c.JSON(http.StatusOK, doc)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	errType := "internal"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		errType = string(appErr.Type)
	}

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Type:    errType,
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
