package container

import (
	"fmt"
	"net/http"

	"go-lens-inspector/internal/analyzer"
	"go-lens-inspector/internal/config"
	"go-lens-inspector/internal/repository"
	"go-lens-inspector/internal/storage"
	"go-lens-inspector/internal/transport"
)

// Container holds the serve mode's dependencies. The batch CLI wires its own
// pipeline directly; the HTTP surface analyzes in-memory and writes no
// artifacts, so no pipeline or artifact writer lives here.
type Container struct {
	config  *config.Config
	handler http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Build dependency graph. The Azure fetcher is optional; blob URLs are
	// rejected by the repository when no credentials are configured.
	local := storage.NewLocalImageFetcher()
	httpFetcher := storage.NewHTTPImageFetcher(cfg.ImageFetchTimeout)
	var azure storage.ImageFetcher
	if cfg.AzureAccountName != "" && cfg.AzureAccountKey != "" {
		azure, err = storage.NewAzureImageFetcher(cfg.AzureAccountName, cfg.AzureAccountKey)
		if err != nil {
			return nil, fmt.Errorf("failed to build azure fetcher: %w", err)
		}
	}

	imageRepository := repository.NewImageRepository(local, httpFetcher, azure)
	handler := transport.NewHandler(imageRepository, analyzer.NewTileAnalyzer(), cfg)

	return &Container{
		config:  cfg,
		handler: handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}
