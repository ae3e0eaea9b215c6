package refreshrate

import (
	"fmt"
	"math"
)

// Fps is a refresh rate expressed in frames per second. Zero is the
// sentinel for "unconstrained" wherever Fps is used as a range endpoint.
type Fps float64

// fpsRelTolerance is the relative tolerance ApproxEqual uses to treat two
// rates as the same. It is deliberately smaller than the ~0.1% gap
// between an NTSC-scaled rate and its nominal counterpart (e.g. 59.94 vs
// 60), so those remain distinct, while still absorbing ordinary
// floating-point noise.
const fpsRelTolerance = 0.0009

// maxFractionalMultiple bounds the search for a fractional-pair multiple
// relationship. Panels beyond this ratio of the base NTSC rates are not
// something this package needs to reason about.
const maxFractionalMultiple = 8

// Zero reports whether f is the unconstrained sentinel.
func (f Fps) Zero() bool { return f == 0 }

// Value returns f as a plain float64.
func (f Fps) Value() float64 { return float64(f) }

// PeriodNanos returns the frame period in nanoseconds, or 0 if f is zero
// or negative.
func (f Fps) PeriodNanos() int64 {
	if f <= 0 {
		return 0
	}
	return int64(1e9 / float64(f))
}

func (f Fps) String() string {
	return fmt.Sprintf("%.3fHz", float64(f))
}

// ApproxEqual reports whether a and b are within tolerance of one
// another. Identical values are always equal; otherwise a non-positive
// rate is never equal to anything.
func ApproxEqual(a, b Fps) bool {
	if a == b {
		return true
	}
	if a <= 0 || b <= 0 {
		return false
	}
	diff := math.Abs(float64(a) - float64(b))
	return diff/math.Max(float64(a), float64(b)) < fpsRelTolerance
}

// InRange reports whether f lies within [lo, hi], tolerant at the
// boundaries. A zero lo means no lower bound; a zero hi means no upper
// bound.
func (f Fps) InRange(lo, hi Fps) bool {
	if !lo.Zero() && float64(f) < float64(lo) && !ApproxEqual(f, lo) {
		return false
	}
	if !hi.Zero() && float64(f) > float64(hi) && !ApproxEqual(f, hi) {
		return false
	}
	return true
}

// IsFractionalPairOrMultiple reports whether a and b are related by the
// canonical NTSC 1000/1001 scaling, directly (23.976↔24, 29.97↔30,
// 59.94↔60) or through an integer multiple of that scaling (e.g.
// 29.97↔60, 59.94↔30). It is never true for a == b and is symmetric in
// its arguments.
func IsFractionalPairOrMultiple(a, b Fps) bool {
	if a <= 0 || b <= 0 || a == b {
		return false
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	const scaleUp = 1001.0 / 1000.0
	const scaleDown = 1000.0 / 1001.0
	for k := 1; k <= maxFractionalMultiple; k++ {
		if ApproxEqual(hi, Fps(float64(lo)*float64(k)*scaleUp)) {
			return true
		}
		if ApproxEqual(hi, Fps(float64(lo)*float64(k)*scaleDown)) {
			return true
		}
	}
	return false
}

// FrameRateDivider returns the integer k >= 1 such that
// displayFps ≈ k · contentFps, or 0 when no such integer exists or the
// pair is a fractional NTSC pair. NTSC fractional pairs never count as
// integer dividers even though they are numerically close.
func FrameRateDivider(displayFps, contentFps Fps) int {
	if displayFps <= 0 || contentFps <= 0 {
		return 0
	}
	if IsFractionalPairOrMultiple(displayFps, contentFps) {
		return 0
	}
	ratio := float64(displayFps) / float64(contentFps)
	k := int(math.Round(ratio))
	if k < 1 {
		return 0
	}
	if !ApproxEqual(displayFps, Fps(float64(contentFps)*float64(k))) {
		return 0
	}
	return k
}
