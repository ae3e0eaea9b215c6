package refreshrate

// VoteKind is the kind of refresh-rate request a layer contributes to
// arbitration.
type VoteKind int

const (
	// NoVote contributes no preference but still participates in
	// touch-boost eligibility.
	NoVote VoteKind = iota
	// Min requests the minimum rate of the eligible set.
	Min
	// Max requests the maximum rate of the eligible set.
	Max
	// Heuristic requests DesiredRefreshRate, snapped to the known
	// frame-rate ladder before scoring.
	Heuristic
	// ExplicitDefault requests DesiredRefreshRate directly, preferring
	// the nearest candidate at or above it.
	ExplicitDefault
	// ExplicitExactOrMultiple requests a rate that is an exact multiple
	// of DesiredRefreshRate, subject to the frame-rate-multiple
	// threshold gate.
	ExplicitExactOrMultiple
	// ExplicitExact requests a rate that is an exact integer multiple of
	// DesiredRefreshRate, scored as a hard pass/fail.
	ExplicitExact
)

func (v VoteKind) String() string {
	switch v {
	case NoVote:
		return "NoVote"
	case Min:
		return "Min"
	case Max:
		return "Max"
	case Heuristic:
		return "Heuristic"
	case ExplicitDefault:
		return "ExplicitDefault"
	case ExplicitExactOrMultiple:
		return "ExplicitExactOrMultiple"
	case ExplicitExact:
		return "ExplicitExact"
	default:
		return "Unknown"
	}
}

// touchBoostable reports whether a layer with this vote kind can be
// touch-boosted to the primary range's maximum rate.
func (v VoteKind) touchBoostable() bool {
	switch v {
	case Heuristic, Min, Max, ExplicitExactOrMultiple, NoVote:
		return true
	default:
		return false
	}
}

// explicitVote reports whether this vote kind is one of the Explicit*
// kinds that can contribute a frame-rate override.
func (v VoteKind) explicitVote() bool {
	switch v {
	case ExplicitDefault, ExplicitExactOrMultiple, ExplicitExact:
		return true
	default:
		return false
	}
}

// Seamlessness constrains whether a layer's vote can be satisfied by a
// mode switch that is visible to the user (seamed) or must be
// imperceptible (seamless).
type Seamlessness int

const (
	// SeamDefault accepts seamless modes; a seamed switch is accepted
	// only back to the default group or after a focused layer has
	// requested one (see modeAdmissibleForAllLayers).
	SeamDefault Seamlessness = iota
	// OnlySeamless requires the candidate mode to be seamlessly
	// reachable from the current mode (same group and resolution).
	OnlySeamless
	// SeamedAndSeamless permits either a seamless or a seamed switch.
	SeamedAndSeamless
)

// LayerRequirement is a single layer's contribution to arbitration.
type LayerRequirement struct {
	Name               string       `json:"name"`
	OwnerUID           int32        `json:"ownerUid"`
	Vote               VoteKind     `json:"vote"`
	DesiredRefreshRate Fps          `json:"desiredRefreshRate"`
	Seamlessness       Seamlessness `json:"seamlessness"`
	Weight             float64      `json:"weight"`
	Focused            bool         `json:"focused"`
}
