package grid

import (
	"fmt"
	"image"
	"image/draw"

	apperrors "go-lens-inspector/internal/errors"
)

// Crop removes the configured margins from the source image. Margins are
// decimal fractions of the image dimensions; offsets use truncating integer
// conversion, matching the tile geometry below. The result is re-based at the
// origin so downstream coordinates are simple.
//
// A crop that leaves no pixels is a settings problem, not an empty image: it
// is rejected here so tiling never sees a degenerate region.
func Crop(img image.Image, top, bottom, left, right float64) (*image.RGBA, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	y0 := int(float64(h) * top)
	y1 := int(float64(h) * (1 - bottom))
	x0 := int(float64(w) * left)
	x1 := int(float64(w) * (1 - right))

	if x1-x0 <= 0 || y1-y0 <= 0 {
		return nil, apperrors.NewDegenerateRegionError(
			fmt.Sprintf("crop margins leave a %dx%d region for a %dx%d image", x1-x0, y1-y0, w, h), nil)
	}

	region := image.Rect(bounds.Min.X+x0, bounds.Min.Y+y0, bounds.Min.X+x1, bounds.Min.Y+y1)
	cropped := image.NewRGBA(image.Rect(0, 0, x1-x0, y1-y0))
	draw.Draw(cropped, cropped.Bounds(), img, region.Min, draw.Src)
	return cropped, nil
}
