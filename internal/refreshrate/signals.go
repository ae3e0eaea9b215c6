package refreshrate

// GlobalSignals carries display-wide hints that influence arbitration
// independent of any single layer's vote.
type GlobalSignals struct {
	Touch bool `json:"touch"`
	Idle  bool `json:"idle"`
}

// SignalsConsidered reports which of the input GlobalSignals actually
// affected the arbitration outcome, so callers can distinguish "touch was
// set but had no effect" from "touch drove the decision".
type SignalsConsidered struct {
	Touch bool `json:"touch"`
	Idle  bool `json:"idle"`
}
