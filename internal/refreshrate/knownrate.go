package refreshrate

import "math"

// knownFrameRates is the ladder of common content frame rates that
// Heuristic votes snap to before scoring. Ordered ascending; ties in
// FindClosestKnownFrameRate break toward the lower entry.
var knownFrameRates = []Fps{24, 30, 45, 60, 72, 90}

// FindClosestKnownFrameRate snaps x to the nearest entry in the known
// frame-rate ladder, breaking ties toward the lower rate.
func FindClosestKnownFrameRate(x Fps) Fps {
	best := knownFrameRates[0]
	bestDiff := math.Abs(float64(x) - float64(best))
	for _, r := range knownFrameRates[1:] {
		d := math.Abs(float64(x) - float64(r))
		if d < bestDiff {
			best, bestDiff = r, d
		}
	}
	return best
}
