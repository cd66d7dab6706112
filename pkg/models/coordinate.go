package models

import (
	"fmt"
	"strconv"
)

// Tile coordinates pair a row letter label with a 1-based column number,
// e.g. "B3". Row labels run A..Z and continue AA, AB, ... in spreadsheet
// style, so tall grids past 26 rows stay well-defined.

// RowLabel converts a zero-based row index to its letter label.
func RowLabel(i int) string {
	label := ""
	for i >= 0 {
		label = string(rune('A'+i%26)) + label
		i = i/26 - 1
	}
	return label
}

// RowIndex is the inverse of RowLabel. Grids rebuilt from stored reports sort
// rows by this rank ("Z" before "AA"), not lexicographically.
func RowIndex(label string) (int, error) {
	if label == "" {
		return 0, fmt.Errorf("empty row label")
	}
	idx := 0
	for _, r := range label {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid row label %q", label)
		}
		idx = idx*26 + int(r-'A') + 1
	}
	return idx - 1, nil
}

// SplitCoordinate separates a tile coordinate like "B12" into its row label
// and 1-based column number.
func SplitCoordinate(coord string) (string, int, error) {
	i := 0
	for i < len(coord) && coord[i] >= 'A' && coord[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(coord) {
		return "", 0, fmt.Errorf("malformed tile coordinate %q", coord)
	}
	col, err := strconv.Atoi(coord[i:])
	if err != nil || col < 1 {
		return "", 0, fmt.Errorf("malformed tile coordinate %q", coord)
	}
	return coord[:i], col, nil
}
