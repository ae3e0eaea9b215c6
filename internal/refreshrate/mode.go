package refreshrate

import "fmt"

// ModeID identifies a DisplayMode within a Catalog.
type ModeID int64

// Resolution is a display mode's pixel dimensions.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns width * height, used to break ties between same-rate
// modes.
func (r Resolution) Area() int64 {
	return int64(r.Width) * int64(r.Height)
}

// DisplayMode is a single hardware-supported mode: a rate, a seamless
// group, a resolution, and the vsync period the kernel reports for it.
type DisplayMode struct {
	ID            ModeID     `json:"id"`
	Rate          Fps        `json:"rate"`
	Group         int        `json:"group"`
	Resolution    Resolution `json:"resolution"`
	VsyncPeriodNs int64      `json:"vsyncPeriodNs"`
}

// RefreshRate is a handle over a DisplayMode used for ordering and
// tie-breaking during arbitration.
type RefreshRate struct {
	Mode DisplayMode `json:"mode"`
}

// Less orders RefreshRates by rate, then resolution area, then id — the
// ordering exercised even when two distinct modes share a rate (e.g. the
// same panel rate at two different group/resolution combinations).
func (r RefreshRate) Less(other RefreshRate) bool {
	if r.Mode.Rate != other.Mode.Rate {
		return r.Mode.Rate < other.Mode.Rate
	}
	if ra, oa := r.Mode.Resolution.Area(), other.Mode.Resolution.Area(); ra != oa {
		return ra < oa
	}
	return r.Mode.ID < other.Mode.ID
}

// Catalog is the immutable set of modes a display supports.
type Catalog []DisplayMode

// NewCatalog validates and returns a Catalog. It fails on an empty mode
// list or duplicate mode ids.
func NewCatalog(modes []DisplayMode) (Catalog, error) {
	if len(modes) == 0 {
		return nil, ErrEmptyCatalog
	}
	seen := make(map[ModeID]struct{}, len(modes))
	for _, m := range modes {
		if _, dup := seen[m.ID]; dup {
			return nil, fmt.Errorf("refreshrate: mode id %d: %w", m.ID, ErrDuplicateModeID)
		}
		seen[m.ID] = struct{}{}
	}
	out := make(Catalog, len(modes))
	copy(out, modes)
	return out, nil
}

// ByID looks up a mode by id.
func (c Catalog) ByID(id ModeID) (DisplayMode, bool) {
	for _, m := range c {
		if m.ID == id {
			return m, true
		}
	}
	return DisplayMode{}, false
}

// InRange returns the modes whose rate lies within [lo, hi].
func (c Catalog) InRange(lo, hi Fps) []DisplayMode {
	out := make([]DisplayMode, 0, len(c))
	for _, m := range c {
		if m.Rate.InRange(lo, hi) {
			out = append(out, m)
		}
	}
	return out
}

// SameGroup returns the modes in the given group.
func (c Catalog) SameGroup(group int) []DisplayMode {
	out := make([]DisplayMode, 0, len(c))
	for _, m := range c {
		if m.Group == group {
			out = append(out, m)
		}
	}
	return out
}
