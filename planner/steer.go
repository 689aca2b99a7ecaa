package planner

import "math"

// Steer returns the point at the given distance from `from` along the ray
// toward `to`. It is the shared geometry helper behind both full-radius
// steering and the fractional-distance interpolation the collision checker
// relies on, so it must accept arbitrary radii.
//
// Two wrinkles drive the implementation:
//   - grid rows grow downward while the trig runs in a standard
//     mathematically-oriented frame, so both row coordinates are flipped
//     (flippedY = height - y) before the angle is computed and the result is
//     flipped back;
//   - atan's principal range only covers two quadrants, so when dx is
//     negative the angle is corrected by ±π (sign chosen by the sign of dy)
//     to recover the full 360 degrees of direction.
//
// Final coordinates are truncated to integers.
func Steer(from, to Point, radius float64, height int) Point {
	y1 := height - from.Y
	y2 := height - to.Y
	realDY := to.Y - from.Y

	dx := float64(to.X - from.X)
	dy := float64(y2 - y1)

	if dx == 0 {
		// Target is directly above or below; no angle needed.
		y := float64(y1) - float64(sign(realDY))*radius
		return Point{X: from.X, Y: int(float64(height) - y)}
	}

	theta := math.Atan(dy / dx)
	if dx < 0 {
		theta = math.Atan(dy / -dx)
		if dy < 0 {
			theta = -math.Pi - theta
		} else {
			theta = math.Pi - theta
		}
	}

	x := int(float64(from.X) + math.Cos(theta)*radius)
	y := int(float64(y1) + math.Sin(theta)*radius)
	return Point{X: x, Y: height - y}
}

// SteerToward caps a step at maxRadius: if `to` is already within maxRadius
// of `from` it is returned exactly; otherwise the result lies on the ray from
// `from` through `to` at distance maxRadius.
func SteerToward(from, to Point, maxRadius float64, height int) Point {
	if from.Distance(to) <= maxRadius {
		return to
	}
	return Steer(from, to, maxRadius, height)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
