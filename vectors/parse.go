package vectors

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads a vector written as three numbers separated by commas
// and/or whitespace, e.g. "-294.32, 4265.1, 5986.7".
func Parse(s string) (Vec3, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 3 {
		return Vec3{}, fmt.Errorf("expected 3 components, got %d in %q", len(fields), s)
	}

	var c [3]float64
	for i, f := range fields {
		val, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Vec3{}, fmt.Errorf("component %d: %w", i+1, err)
		}
		c[i] = val
	}
	return Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}
