package analyzer

import (
	"gonum.org/v1/gonum/stat"
)

// AverageScores computes the per-method arithmetic mean across all tiles of
// one image. A method missing from some tiles is averaged only over the tiles
// that report it; tiles share one configuration so that should not happen,
// but inconsistent input must not fault.
func AverageScores(tiles []map[Method]float64) map[Method]float64 {
	byMethod := make(map[Method][]float64)
	for _, scores := range tiles {
		for m, s := range scores {
			byMethod[m] = append(byMethod[m], s)
		}
	}

	averages := make(map[Method]float64, len(byMethod))
	for m, values := range byMethod {
		averages[m] = stat.Mean(values, nil)
	}
	return averages
}
