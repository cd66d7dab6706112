package repository

import (
	"context"
	"fmt"
	"image"
	"net/url"
	"strings"

	apperrors "go-lens-inspector/internal/errors"
	"go-lens-inspector/internal/storage"
)

// ImageRepository resolves an image reference to decoded pixels, routing by
// reference shape: HTTP(S) URLs go to the HTTP fetcher, Azure blob URLs to
// the blob fetcher when one is configured, and everything else is treated as
// a local file path.
type ImageRepository interface {
	FetchImage(ctx context.Context, ref string) (image.Image, error)
	ValidateRef(ref string) error
}

type imageRepository struct {
	local storage.ImageFetcher
	http  storage.ImageFetcher
	azure storage.ImageFetcher
}

// NewImageRepository creates a repository over the available fetchers. The
// azure fetcher may be nil when no credentials are configured.
func NewImageRepository(local, httpFetcher, azure storage.ImageFetcher) ImageRepository {
	return &imageRepository{
		local: local,
		http:  httpFetcher,
		azure: azure,
	}
}

func (r *imageRepository) FetchImage(ctx context.Context, ref string) (image.Image, error) {
	if err := r.ValidateRef(ref); err != nil {
		return nil, err
	}

	switch {
	case isBlobURL(ref):
		return r.azure.FetchImage(ctx, ref)
	case isHTTPURL(ref):
		return r.http.FetchImage(ctx, ref)
	default:
		return r.local.FetchImage(ctx, ref)
	}
}

func (r *imageRepository) ValidateRef(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return apperrors.NewValidationError("empty image reference", nil)
	}
	if isBlobURL(ref) {
		if r.azure == nil {
			return apperrors.NewValidationError(
				fmt.Sprintf("blob reference %s requires Azure storage credentials", ref), nil)
		}
		return nil
	}
	if isHTTPURL(ref) && r.http == nil {
		return apperrors.NewValidationError(
			fmt.Sprintf("remote reference %s is not supported in this mode", ref), nil)
	}
	return nil
}

func isHTTPURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func isBlobURL(ref string) bool {
	if !isHTTPURL(ref) {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return strings.HasSuffix(u.Host, ".blob.core.windows.net")
}
