package storage

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	apperrors "go-lens-inspector/internal/errors"
)

// ImageFetcher turns an image reference (file path, URL, or blob reference)
// into decoded pixels.
type ImageFetcher interface {
	FetchImage(ctx context.Context, ref string) (image.Image, error)
}

// LocalImageFetcher reads images from the filesystem; the batch runner's
// default source.
type LocalImageFetcher struct{}

// NewLocalImageFetcher creates a filesystem image fetcher.
func NewLocalImageFetcher() ImageFetcher {
	return &LocalImageFetcher{}
}

func (l *LocalImageFetcher) FetchImage(ctx context.Context, ref string) (image.Image, error) {
	f, err := os.Open(ref)
	if err != nil {
		return nil, apperrors.NewUnreadableImageError(fmt.Sprintf("cannot open image %s", ref), err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, apperrors.NewUnreadableImageError(fmt.Sprintf("cannot decode image %s", ref), err)
	}
	return img, nil
}
