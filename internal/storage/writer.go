package storage

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	apperrors "go-lens-inspector/internal/errors"
)

// ImageWriter persists rendered artifacts (cropped copies, tile overlays,
// overviews, heatmaps). The format follows the file extension.
type ImageWriter interface {
	WriteImage(img image.Image, path string) error
}

type fileImageWriter struct {
	jpegQuality int
}

// NewImageWriter creates a filesystem image writer.
func NewImageWriter() ImageWriter {
	return &fileImageWriter{jpegQuality: 90}
}

func (w *fileImageWriter) WriteImage(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("cannot create %s", path), err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: w.jpegQuality})
	default:
		err = fmt.Errorf("unsupported image extension %q", filepath.Ext(path))
	}
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("cannot encode %s", path), err)
	}
	return nil
}
