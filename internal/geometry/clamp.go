package geometry

import "math"

// Clamp bounds a candidate pointer position to the outputs.
//
// Outputs are treated as one horizontal row starting at x = 0: x is clamped
// to [0, sum of widths]. The clamped x then selects the first output whose
// rectangle contains (x, 0), right edge excluded, and y is clamped to
// [0, that output's height]. At the far right edge the output ending there
// is used. If no output contains x, y is left as is. With no outputs the
// point is returned unchanged.
func Clamp(p Point, outputs []Rect) Point {
	if len(outputs) == 0 {
		return p
	}

	maxX := 0
	for _, o := range outputs {
		maxX += o.W
	}
	x := math.Min(math.Max(p.X, 0), float64(maxX))

	for _, o := range outputs {
		if o.Contains(Point{X: x, Y: 0}) {
			return Point{X: x, Y: clampY(p.Y, o)}
		}
	}
	if x == float64(maxX) {
		for _, o := range outputs {
			if o.Right() == maxX && o.ContainsInclusive(maxX, 0) {
				return Point{X: x, Y: clampY(p.Y, o)}
			}
		}
	}
	return Point{X: x, Y: p.Y}
}

func clampY(y float64, o Rect) float64 {
	return math.Min(math.Max(y, 0), float64(o.H))
}
