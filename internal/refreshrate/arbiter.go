package refreshrate

// scoreEpsilon is the margin within which two aggregate scores are
// treated as tied, so the tie-break order in step 9 decides instead of
// floating-point noise.
const scoreEpsilon = 1e-9

// arbitrate implements the mode-selection algorithm of §4.5: memoization
// is handled by the caller (engine.go), this function is a pure
// computation over its inputs.
func arbitrate(catalog Catalog, policy Policy, current DisplayMode, layers []LayerRequirement, signals GlobalSignals, frameRateMultipleThreshold Fps) (DisplayMode, SignalsConsidered) {
	var considered SignalsConsidered

	if len(catalog) == 1 {
		return catalog[0], considered
	}

	defaultMode, hasDefault := catalog.ByID(policy.DefaultMode)

	primaryModes := catalog.InRange(policy.PrimaryRange.Lo, policy.PrimaryRange.Hi)
	if len(primaryModes) == 0 {
		if hasDefault {
			return defaultMode, considered
		}
		return current, considered
	}

	if len(layers) == 0 {
		return maxRateMode(primaryModes), considered
	}

	if rate, single := policy.PrimaryRange.Single(); single {
		if steered, ok := focusedExplicitSteer(layers, catalog, policy); ok {
			return steered, considered
		}
		return uniqueModeAtRate(primaryModes, rate), considered
	}

	if signals.Touch && !touchSuppressedByFocusedExplicit(layers) && anyTouchBoostable(layers) {
		considered.Touch = true
		return maxRateMode(primaryModes), considered
	}

	if signals.Idle && !hasFocusedExplicitVote(layers) {
		considered.Idle = true
		return minRateMode(primaryModes), considered
	}

	candidates := buildCandidateSet(catalog, policy, current, layers)
	if len(candidates) == 0 {
		if hasDefault {
			return defaultMode, considered
		}
		return current, considered
	}
	minRate, maxRate := rateBounds(candidates)
	best := scoreAndPick(candidates, layers, minRate, maxRate, frameRateMultipleThreshold, policy, current)
	return best, considered
}

func buildCandidateSet(catalog Catalog, policy Policy, current DisplayMode, layers []LayerRequirement) []DisplayMode {
	appModes := catalog.InRange(policy.AppRange.Lo, policy.AppRange.Hi)
	defaultGroup := current.Group
	if defaultMode, ok := catalog.ByID(policy.DefaultMode); ok {
		defaultGroup = defaultMode.Group
	}
	focusedSeamedElsewhere := anyFocusedSeamedAtDifferentRate(layers, current)
	out := make([]DisplayMode, 0, len(appModes))
	for _, m := range appModes {
		if !policy.AllowGroupSwitching && m.Group != current.Group {
			continue
		}
		if !modeAdmissibleForAllLayers(m, current, layers, focusedSeamedElsewhere, defaultGroup) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// seamlessFromCurrent reports whether m can be reached from current
// without a visible mode-switch: same group and same resolution.
func seamlessFromCurrent(m, current DisplayMode) bool {
	return m.Group == current.Group && m.Resolution == current.Resolution
}

func anyFocusedSeamedAtDifferentRate(layers []LayerRequirement, current DisplayMode) bool {
	for _, l := range layers {
		if l.Focused && l.Seamlessness == SeamedAndSeamless && !ApproxEqual(l.DesiredRefreshRate, current.Rate) {
			return true
		}
	}
	return false
}

// hasFocusedSeamedAndSeamless reports whether any focused layer carries a
// SeamedAndSeamless vote, regardless of its desired rate.
func hasFocusedSeamedAndSeamless(layers []LayerRequirement) bool {
	for _, l := range layers {
		if l.Focused && l.Seamlessness == SeamedAndSeamless {
			return true
		}
	}
	return false
}

// modeAdmissibleForAllLayers applies §4.6's per-layer seamlessness rule:
// a Default layer accepts seamless modes, accepts a seamed move back to
// the default group unless a focused layer holds a SeamedAndSeamless
// vote, and accepts any seamed mode once a focused layer has requested a
// seamed switch to a rate other than the current one.
func modeAdmissibleForAllLayers(m, current DisplayMode, layers []LayerRequirement, focusedSeamedElsewhere bool, defaultGroup int) bool {
	for _, l := range layers {
		switch l.Seamlessness {
		case OnlySeamless:
			if !seamlessFromCurrent(m, current) {
				return false
			}
		case SeamedAndSeamless:
			// no restriction
		default: // SeamDefault
			if seamlessFromCurrent(m, current) {
				continue
			}
			// Moving toward the default group is a permitted seamed
			// transition, unless a focused peer layer holds a
			// SeamedAndSeamless vote: that peer's own seamed request
			// takes priority and a Default layer must not be pulled
			// back to the default group out from under it. Moving to
			// any other non-current group requires a focused peer
			// layer to have already requested a seamed switch away
			// from current.
			if m.Group == defaultGroup && !hasFocusedSeamedAndSeamless(layers) {
				continue
			}
			if focusedSeamedElsewhere {
				continue
			}
			return false
		}
	}
	return true
}

func anyTouchBoostable(layers []LayerRequirement) bool {
	for _, l := range layers {
		if l.Vote.touchBoostable() {
			return true
		}
	}
	return false
}

// touchSuppressedByFocusedExplicit reports whether a focused
// ExplicitDefault or ExplicitExact layer is present, which suppresses
// the touch boost per §4.5 step 6.
func touchSuppressedByFocusedExplicit(layers []LayerRequirement) bool {
	for _, l := range layers {
		if l.Focused && (l.Vote == ExplicitDefault || l.Vote == ExplicitExact) {
			return true
		}
	}
	return false
}

// hasFocusedExplicitVote reports whether any focused layer carries an
// Explicit* vote; used to gate the idle rule off when an app has
// expressed a concrete rate preference.
func hasFocusedExplicitVote(layers []LayerRequirement) bool {
	for _, l := range layers {
		if l.Focused && l.Vote.explicitVote() {
			return true
		}
	}
	return false
}

// focusedExplicitSteer implements the step-4 exception: a focused
// ExplicitDefault layer whose desired rate lies within the app range may
// still steer the result away from the collapsed primary rate.
func focusedExplicitSteer(layers []LayerRequirement, catalog Catalog, policy Policy) (DisplayMode, bool) {
	for _, l := range layers {
		if !l.Focused || l.Vote != ExplicitDefault {
			continue
		}
		if !policy.AppRange.Contains(l.DesiredRefreshRate) {
			continue
		}
		for _, m := range catalog {
			if ApproxEqual(m.Rate, l.DesiredRefreshRate) {
				return m, true
			}
		}
	}
	return DisplayMode{}, false
}

func maxRateMode(modes []DisplayMode) DisplayMode {
	best := modes[0]
	for _, m := range modes[1:] {
		if (RefreshRate{Mode: best}).Less(RefreshRate{Mode: m}) {
			best = m
		}
	}
	return best
}

func minRateMode(modes []DisplayMode) DisplayMode {
	best := modes[0]
	for _, m := range modes[1:] {
		if (RefreshRate{Mode: m}).Less(RefreshRate{Mode: best}) {
			best = m
		}
	}
	return best
}

func uniqueModeAtRate(modes []DisplayMode, rate Fps) DisplayMode {
	var best DisplayMode
	found := false
	for _, m := range modes {
		if !ApproxEqual(m.Rate, rate) {
			continue
		}
		if !found || m.ID < best.ID {
			best, found = m, true
		}
	}
	return best
}

func rateBounds(modes []DisplayMode) (Fps, Fps) {
	lo, hi := modes[0].Rate, modes[0].Rate
	for _, m := range modes[1:] {
		if m.Rate < lo {
			lo = m.Rate
		}
		if m.Rate > hi {
			hi = m.Rate
		}
	}
	return lo, hi
}

// scoreAndPick computes the aggregate score for every candidate and
// applies the §4.5 step 9 tie-break: current mode, then higher rate,
// then smaller resolution area, then lower id.
func scoreAndPick(candidates []DisplayMode, layers []LayerRequirement, minRate, maxRate, threshold Fps, policy Policy, current DisplayMode) DisplayMode {
	var best DisplayMode
	bestScore := 0.0
	first := true
	for _, m := range candidates {
		inPrimary := policy.PrimaryRange.Contains(m.Rate)
		s := aggregateScore(layers, m, minRate, maxRate, threshold, inPrimary)
		switch {
		case first:
			best, bestScore, first = m, s, false
		case s > bestScore+scoreEpsilon:
			best, bestScore = m, s
		case s > bestScore-scoreEpsilon && tieBreakPrefers(m, best, current):
			best, bestScore = m, s
		}
	}
	return best
}

func tieBreakPrefers(candidate, incumbent, current DisplayMode) bool {
	if candidate.ID == current.ID && incumbent.ID != current.ID {
		return true
	}
	if incumbent.ID == current.ID && candidate.ID != current.ID {
		return false
	}
	if candidate.Rate != incumbent.Rate {
		return candidate.Rate > incumbent.Rate
	}
	if candidate.Resolution.Area() != incumbent.Resolution.Area() {
		return candidate.Resolution.Area() < incumbent.Resolution.Area()
	}
	return candidate.ID < incumbent.ID
}
