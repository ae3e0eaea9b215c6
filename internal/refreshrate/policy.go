package refreshrate

import (
	"fmt"
	"math"
)

// Range is a closed Fps interval. A zero Lo means no lower bound; a zero
// Hi means no upper bound.
type Range struct {
	Lo Fps `json:"lo"`
	Hi Fps `json:"hi"`
}

// Contains reports whether f lies within the range.
func (r Range) Contains(f Fps) bool {
	return f.InRange(r.Lo, r.Hi)
}

// Single reports whether the range has collapsed to exactly one rate,
// returning that rate.
func (r Range) Single() (Fps, bool) {
	if r.Lo.Zero() || r.Hi.Zero() {
		return 0, false
	}
	return r.Lo, ApproxEqual(r.Lo, r.Hi)
}

// Superset reports whether r fully contains o: r's lower bound is at or
// below o's, and r's upper bound is at or above o's. A zero endpoint on
// r is fully permissive on that side.
func (r Range) Superset(o Range) bool {
	if !r.Lo.Zero() {
		if o.Lo.Zero() {
			return false
		}
		if float64(o.Lo) < float64(r.Lo) && !ApproxEqual(o.Lo, r.Lo) {
			return false
		}
	}
	if !r.Hi.Zero() {
		if o.Hi.Zero() {
			return false
		}
		if float64(o.Hi) > float64(r.Hi) && !ApproxEqual(o.Hi, r.Hi) {
			return false
		}
	}
	return true
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s]", r.Lo, r.Hi)
}

// Policy is the display-manager-installed configuration governing
// arbitration: the mode to fall back to, the primary and app ranges, and
// whether group switching is permitted.
type Policy struct {
	DefaultMode         ModeID `json:"defaultMode"`
	PrimaryRange        Range  `json:"primaryRange"`
	AppRange            Range  `json:"appRange"`
	AllowGroupSwitching bool   `json:"allowGroupSwitching"`
}

// Validate checks the policy against a catalog: the default mode must
// exist, its rate must lie within the primary range, and the app range
// must be a superset of the primary range.
func (p Policy) Validate(catalog Catalog) error {
	mode, ok := catalog.ByID(p.DefaultMode)
	if !ok {
		return fmt.Errorf("refreshrate: default mode %d not in catalog: %w", p.DefaultMode, ErrInvalidPolicy)
	}
	if !p.PrimaryRange.Contains(mode.Rate) {
		return fmt.Errorf("refreshrate: default mode rate %s outside primary range %s: %w", mode.Rate, p.PrimaryRange, ErrInvalidPolicy)
	}
	if !p.AppRange.Superset(p.PrimaryRange) {
		return fmt.Errorf("refreshrate: app range %s does not contain primary range %s: %w", p.AppRange, p.PrimaryRange, ErrInvalidPolicy)
	}
	return nil
}

// primaryRangeBonus is added to a candidate's aggregate score when its
// rate lies within the primary range, so a competitive primary-range
// winner is always preferred over an app-range-only mode. Chosen so it
// dominates any single-layer score gap smaller than 5% but never
// overturns a landslide app-range winner.
const primaryRangeBonus = 0.05

// clampScore keeps aggregate scores within a sane range for logging and
// comparison; ranking is unaffected since the clamp is monotone.
func clampScore(s float64) float64 {
	if math.IsNaN(s) {
		return 0
	}
	if s < 0 {
		return 0
	}
	return s
}
