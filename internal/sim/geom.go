package sim

import "math"

// RectF is an axis-aligned rectangle in playfield space.
type RectF struct {
	X0, Y0 float64
	X1, Y1 float64
}

// Playfield is the full gameplay rectangle.
var Playfield = RectF{X0: 0, Y0: 0, X1: Width, Y1: Height}

// ContainsPoint reports whether (x, y) lies inside r, edges included.
func (r RectF) ContainsPoint(x, y float64) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// Inset shrinks r by m on every side.
func (r RectF) Inset(m float64) RectF {
	return RectF{X0: r.X0 + m, Y0: r.Y0 + m, X1: r.X1 - m, Y1: r.Y1 - m}
}

// Clamp pulls (x, y) into r.
func (r RectF) Clamp(x, y float64) (float64, float64) {
	return clampF(x, r.X0, r.X1), clampF(y, r.Y0, r.Y1)
}

// Dist is the euclidean distance between two points.
func Dist(ax, ay, bx, by float64) float64 {
	return math.Hypot(bx-ax, by-ay)
}

// Angle returns the heading from (ax, ay) toward (bx, by).
func Angle(ax, ay, bx, by float64) float64 {
	return math.Atan2(by-ay, bx-ax)
}

// Normalize returns the unit vector of (dx, dy) and its original length.
// A zero vector stays zero.
func Normalize(dx, dy float64) (float64, float64, float64) {
	d := math.Sqrt(dx*dx + dy*dy)
	if d == 0 {
		return 0, 0, 0
	}
	return dx / d, dy / d, d
}

// Colliding is the shared strict-threshold contact test.
func Colliding(ax, ay, bx, by, threshold float64) bool {
	return Dist(ax, ay, bx, by) < threshold
}
