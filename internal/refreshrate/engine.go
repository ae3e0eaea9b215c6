package refreshrate

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/griffincancode/refreshrated/internal/shared/id"
)

// Options configures optional Engine behavior at construction time.
type Options struct {
	// FrameRateMultipleThreshold gates ExplicitExactOrMultiple votes: a
	// candidate below this rate scores 0 for that vote. Zero disables
	// the gate.
	FrameRateMultipleThreshold Fps
	// EnableFrameRateOverride gates FrameRateOverrides; when false the
	// engine always returns an empty override map.
	EnableFrameRateOverride bool
	// Logger receives structured logs for policy installs and mode
	// switches. A no-op logger is used if nil.
	Logger *zap.Logger
}

// state is the engine's mutable, lock-guarded data. Matches spec.md
// §3's EngineState: current mode, active policies, and the last-call
// memo.
type state struct {
	currentModeID  ModeID
	displayPolicy  Policy
	overridePolicy *Policy
	memo           *memoEntry
}

// Engine is the refresh-rate selection policy engine. It performs no
// I/O; every operation is synchronous and CPU-bound over a small
// candidate set. All mutable state is guarded by a single mutex — see
// spec.md §5.
type Engine struct {
	catalog Catalog
	opts    Options
	log     *zap.Logger

	mu sync.Mutex
	st state
}

// New constructs an Engine over catalog with the given initial current
// mode and options. It panics if catalog is empty — an empty catalog is
// a programming error, not a runtime condition callers should recover
// from.
func New(catalog Catalog, currentModeID ModeID, opts Options) *Engine {
	if len(catalog) == 0 {
		panic("refreshrate: New called with empty catalog")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	defaultMode := catalog[0]
	e := &Engine{
		catalog: catalog,
		opts:    opts,
		log:     logger,
		st: state{
			currentModeID: currentModeID,
			displayPolicy: Policy{
				DefaultMode:  defaultMode.ID,
				PrimaryRange: Range{Lo: defaultMode.Rate, Hi: defaultMode.Rate},
				AppRange:     Range{Lo: defaultMode.Rate, Hi: defaultMode.Rate},
			},
		},
	}
	return e
}

// SetDisplayManagerPolicy validates and installs the display-manager
// policy. On validation failure the engine's state is left unchanged.
func (e *Engine) SetDisplayManagerPolicy(p Policy) error {
	if err := p.Validate(e.catalog); err != nil {
		e.log.Warn("rejected display manager policy", zap.Error(err))
		return err
	}
	e.mu.Lock()
	e.st.displayPolicy = p
	e.st.memo = nil
	e.mu.Unlock()
	e.log.Info("installed display manager policy",
		zap.Int64("defaultMode", int64(p.DefaultMode)),
		zap.String("primaryRange", p.PrimaryRange.String()),
		zap.String("appRange", p.AppRange.String()),
	)
	return nil
}

// SetOverridePolicy installs or clears (nil) a temporary policy that
// takes priority over the display-manager policy.
func (e *Engine) SetOverridePolicy(p *Policy) error {
	if p != nil {
		if err := p.Validate(e.catalog); err != nil {
			e.log.Warn("rejected override policy", zap.Error(err))
			return err
		}
	}
	e.mu.Lock()
	e.st.overridePolicy = p
	e.st.memo = nil
	e.mu.Unlock()
	e.log.Info("updated override policy", zap.Bool("cleared", p == nil))
	return nil
}

// SetCurrentModeID records the mode the display is actually running.
// Returns ErrUnknownModeID and leaves state unchanged if id is not in
// the catalog.
func (e *Engine) SetCurrentModeID(modeID ModeID) error {
	if _, ok := e.catalog.ByID(modeID); !ok {
		return fmt.Errorf("refreshrate: mode %d: %w", modeID, ErrUnknownModeID)
	}
	e.mu.Lock()
	e.st.currentModeID = modeID
	e.st.memo = nil
	e.mu.Unlock()
	e.log.Info("current mode changed", zap.Int64("modeId", int64(modeID)))
	return nil
}

// CurrentRefreshRate returns the RefreshRate handle for the current
// mode.
func (e *Engine) CurrentRefreshRate() RefreshRate {
	e.mu.Lock()
	id := e.st.currentModeID
	e.mu.Unlock()
	mode, _ := e.catalog.ByID(id)
	return RefreshRate{Mode: mode}
}

// activePolicyLocked returns the override policy if set, otherwise the
// display-manager policy, and the current mode. Must be called with the
// lock held.
func (e *Engine) activePolicyLocked() (Policy, DisplayMode) {
	current, _ := e.catalog.ByID(e.st.currentModeID)
	if e.st.overridePolicy != nil {
		return *e.st.overridePolicy, current
	}
	return e.st.displayPolicy, current
}

// BestRefreshRate runs the scoring/arbitration algorithm of §4.5 over
// layers and globalSignals, returning the chosen RefreshRate, the
// signals that actually influenced the outcome, and whether the result
// was served from the memo rather than freshly computed.
func (e *Engine) BestRefreshRate(layers []LayerRequirement, signals GlobalSignals) (RefreshRate, SignalsConsidered, bool) {
	key := fingerprint(layers, signals)

	e.mu.Lock()
	if key != "" && e.st.memo != nil && e.st.memo.fingerprint == key {
		result, considered := e.st.memo.result, e.st.memo.considered
		e.mu.Unlock()
		return RefreshRate{Mode: result}, considered, true
	}
	policy, current := e.activePolicyLocked()
	e.mu.Unlock()

	result, considered := arbitrate(e.catalog, policy, current, layers, signals, e.opts.FrameRateMultipleThreshold)

	e.mu.Lock()
	e.st.memo = &memoEntry{fingerprint: key, result: result, considered: considered}
	e.mu.Unlock()

	decision := id.NewDecisionID()
	e.log.Debug("arbitration decision",
		zap.String("decisionId", decision.String()),
		zap.Int64("chosenMode", int64(result.ID)),
		zap.Bool("touch", considered.Touch),
		zap.Bool("idle", considered.Idle),
	)
	return RefreshRate{Mode: result}, considered, false
}

// FrameRateOverrides resolves per-owner frame-rate overrides for the
// given layers against displayFps.
func (e *Engine) FrameRateOverrides(layers []LayerRequirement, displayFps Fps, signals GlobalSignals) map[int32]Fps {
	return FrameRateOverrides(layers, displayFps, signals, e.opts.EnableFrameRateOverride)
}

// IdleTimerAction reports whether the kernel idle timer should be
// enabled given the current primary range and catalog.
func (e *Engine) IdleTimerAction() IdleTimerAction {
	e.mu.Lock()
	policy, _ := e.activePolicyLocked()
	e.mu.Unlock()
	return idleTimerAction(e.catalog, policy.PrimaryRange)
}

// CanSwitch reports whether the catalog has more than one mode.
func (e *Engine) CanSwitch() bool {
	return len(e.catalog) >= 2
}

// Catalog returns the engine's immutable mode catalog.
func (e *Engine) Catalog() Catalog {
	return e.catalog
}
