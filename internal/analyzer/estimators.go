package analyzer

import (
	"image"
	"image/draw"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Score bounds of the normalized sharpness scale.
const (
	MinScore = 1.0
	MaxScore = 100.0
)

// Calibration ranges are fixed, empirically chosen raw-value windows per
// method. They keep the 1-100 scale comparable between images and lenses;
// they are not percentiles of the data.
type calibration struct {
	min, max float64
}

type estimatorFunc func(gray *image.Gray) float64

var estimators = map[Method]estimatorFunc{
	MethodLaplacian: laplacianVariance,
	MethodSobel:     sobelGradient,
	MethodTenengrad: tenengrad,
}

var calibrations = map[Method]calibration{
	MethodLaplacian: {0, 500},
	MethodSobel:     {0, 50},
	MethodTenengrad: {0, 100},
}

// normalizeScore maps a raw metric onto the 1-100 scale using the method's
// calibration range, saturating rather than erroring outside it.
func normalizeScore(value, min, max float64) float64 {
	normalized := ((value-min)/(max-min))*99 + 1
	if math.IsNaN(normalized) || normalized < MinScore {
		return MinScore
	}
	if normalized > MaxScore {
		return MaxScore
	}
	return normalized
}

// toGrayscale renders any image into an 8-bit grayscale buffer sharing the
// source bounds.
func toGrayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}

// estimate runs a single method against a tile. A tile too small to convolve
// (or empty) scores the minimum rather than faulting.
func estimate(m Method, gray *image.Gray) float64 {
	fn, ok := estimators[m]
	if !ok {
		return MinScore
	}
	cal := calibrations[m]
	bounds := gray.Bounds()
	if bounds.Dx() < 3 || bounds.Dy() < 3 {
		return MinScore
	}
	return normalizeScore(fn(gray), cal.min, cal.max)
}

// laplacianVariance measures the variance of the discrete Laplacian response.
// Variance rather than mean: the mean response is near zero for balanced
// edges, while its spread tracks high-frequency edge energy.
func laplacianVariance(gray *image.Gray) float64 {
	bounds := gray.Bounds()
	data := make([]float64, 0, (bounds.Dx()-2)*(bounds.Dy()-2))

	// Laplacian kernel: [0, 1, 0; 1, -4, 1; 0, 1, 0]
	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		for x := bounds.Min.X + 1; x < bounds.Max.X-1; x++ {
			center := float64(gray.GrayAt(x, y).Y)
			top := float64(gray.GrayAt(x, y-1).Y)
			bottom := float64(gray.GrayAt(x, y+1).Y)
			left := float64(gray.GrayAt(x-1, y).Y)
			right := float64(gray.GrayAt(x+1, y).Y)

			data = append(data, -4*center+top+bottom+left+right)
		}
	}

	// Variance needs at least two samples; a 3x3 tile has a one-pixel
	// interior and must score the floor, not NaN.
	if len(data) < 2 {
		return 0
	}
	return stat.Variance(data, nil)
}

// sobelGradient measures the mean gradient magnitude over the tile interior.
func sobelGradient(gray *image.Gray) float64 {
	mags := gradientMagnitudes(gray)
	if len(mags) == 0 {
		return 0
	}
	return stat.Mean(mags, nil)
}

// tenengrad measures the mean gradient magnitude over pixels whose magnitude
// exceeds 0.1x the maximum, suppressing sensor noise. A flat tile where no
// pixel clears the threshold scores zero raw (the minimum after
// normalization) instead of averaging an empty selection.
func tenengrad(gray *image.Gray) float64 {
	mags := gradientMagnitudes(gray)
	if len(mags) == 0 {
		return 0
	}

	max := 0.0
	for _, m := range mags {
		if m > max {
			max = m
		}
	}
	threshold := 0.1 * max

	var sum float64
	var n int
	for _, m := range mags {
		if m > threshold {
			sum += m
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// gradientMagnitudes computes sqrt(gx^2+gy^2) of the 3x3 Sobel responses for
// every interior pixel, row-major.
func gradientMagnitudes(gray *image.Gray) []float64 {
	bounds := gray.Bounds()
	if bounds.Dx() < 3 || bounds.Dy() < 3 {
		return nil
	}

	mags := make([]float64, 0, (bounds.Dx()-2)*(bounds.Dy()-2))
	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		for x := bounds.Min.X + 1; x < bounds.Max.X-1; x++ {
			gx := sobelX(gray, x, y)
			gy := sobelY(gray, x, y)
			mags = append(mags, math.Sqrt(float64(gx*gx+gy*gy)))
		}
	}
	return mags
}

func sobelX(gray *image.Gray, x, y int) int {
	return -1*int(gray.GrayAt(x-1, y-1).Y) + 1*int(gray.GrayAt(x+1, y-1).Y) +
		-2*int(gray.GrayAt(x-1, y).Y) + 2*int(gray.GrayAt(x+1, y).Y) +
		-1*int(gray.GrayAt(x-1, y+1).Y) + 1*int(gray.GrayAt(x+1, y+1).Y)
}

func sobelY(gray *image.Gray, x, y int) int {
	return -1*int(gray.GrayAt(x-1, y-1).Y) - 2*int(gray.GrayAt(x, y-1).Y) - 1*int(gray.GrayAt(x+1, y-1).Y) +
		1*int(gray.GrayAt(x-1, y+1).Y) + 2*int(gray.GrayAt(x, y+1).Y) + 1*int(gray.GrayAt(x+1, y+1).Y)
}
