package refreshrate

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// multipleScoreSteepness (C) controls how sharply multipleScore falls
// off as the candidate departs from an exact integer multiple of the
// desired rate. A 1% mismatch scoring ~0.95 and a 10% mismatch scoring
// ~0.5 are not simultaneously satisfiable by 1/(1+err*C) for a single C;
// this value is picked against the second anchor, which is the one that
// determines ranking among the widely-spaced candidates in the ladder
// scenarios this package is tested against.
const multipleScoreSteepness = 10.0

// multipleScore scores how well cand fits as an integer multiple of
// desired: 1.0 for an exact multiple, decaying as the ratio drifts from
// the nearest integer.
func multipleScore(desired, cand Fps) float64 {
	if desired <= 0 || cand <= 0 {
		return 0
	}
	ratio := float64(cand) / float64(desired)
	k := math.Round(ratio)
	if k < 1 {
		return 0
	}
	err := math.Abs(ratio - k)
	return 1 / (1 + err*multipleScoreSteepness)
}

// explicitDefaultBonus rewards candidates at or above the desired rate:
// ExplicitDefault strongly prefers the nearest rate at or above desired,
// then nearest below.
const explicitDefaultBonus = 0.02

// explicitDefaultScore scores cand against a directly-desired rate,
// without ladder snapping.
func explicitDefaultScore(desired, cand Fps) float64 {
	if desired <= 0 || cand <= 0 {
		return 0
	}
	score := 1 - math.Min(1, math.Abs(float64(cand)-float64(desired))/float64(desired))
	if cand >= desired {
		score += explicitDefaultBonus
	}
	return score
}

// exactScore is the ExplicitExact rule: 1 if cand is an integer multiple
// of desired, else 0.
func exactScore(desired, cand Fps) float64 {
	if FrameRateDivider(cand, desired) >= 1 {
		return 1
	}
	return 0
}

// layerScore computes a single layer's score for a candidate mode among
// the eligible set. minRate/maxRate describe the eligible set's bounds
// for Min/Max votes.
func layerScore(l LayerRequirement, cand DisplayMode, minRate, maxRate Fps, frameRateMultipleThreshold Fps) float64 {
	switch l.Vote {
	case NoVote:
		return 0
	case Min:
		if ApproxEqual(cand.Rate, minRate) {
			return 1
		}
		return 0
	case Max:
		if ApproxEqual(cand.Rate, maxRate) {
			return 1
		}
		return 0
	case Heuristic:
		snapped := FindClosestKnownFrameRate(l.DesiredRefreshRate)
		return multipleScore(snapped, cand.Rate)
	case ExplicitDefault:
		return explicitDefaultScore(l.DesiredRefreshRate, cand.Rate)
	case ExplicitExactOrMultiple:
		if !frameRateMultipleThreshold.Zero() && cand.Rate < frameRateMultipleThreshold {
			return 0
		}
		return multipleScore(l.DesiredRefreshRate, cand.Rate)
	case ExplicitExact:
		return exactScore(l.DesiredRefreshRate, cand.Rate)
	default:
		return 0
	}
}

// aggregateScore combines every layer's score for a candidate mode into
// a single weighted figure. NoVote layers contribute nothing and are
// excluded entirely rather than scored 0 with a live weight, which would
// otherwise dilute the mean. Weighted mean is used rather than weighted
// sum: since every candidate is scored against the same set of layers,
// the sum of weights is constant across candidates, so the two
// aggregations produce the same ranking.
func aggregateScore(layers []LayerRequirement, cand DisplayMode, minRate, maxRate Fps, frameRateMultipleThreshold Fps, inPrimaryRange bool) float64 {
	scores := make([]float64, 0, len(layers))
	weights := make([]float64, 0, len(layers))
	for _, l := range layers {
		if l.Vote == NoVote {
			continue
		}
		w := l.Weight
		if w <= 0 {
			w = 1
		}
		scores = append(scores, layerScore(l, cand, minRate, maxRate, frameRateMultipleThreshold))
		weights = append(weights, w)
	}
	var agg float64
	if len(scores) > 0 {
		agg = stat.Mean(scores, weights)
	}
	if inPrimaryRange {
		agg += primaryRangeBonus
	}
	return clampScore(agg)
}
