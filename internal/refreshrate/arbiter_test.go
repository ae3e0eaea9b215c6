package refreshrate

import "testing"

func mustCatalog(t *testing.T, modes []DisplayMode) Catalog {
	t.Helper()
	cat, err := NewCatalog(modes)
	if err != nil {
		t.Fatalf("unexpected error building catalog: %v", err)
	}
	return cat
}

// S2 — Ladder {60, 90}, single Heuristic layer at 45 Hz. Returns 90.
func TestArbitrateS2HeuristicSnap(t *testing.T) {
	cat := mustCatalog(t, []DisplayMode{{ID: 1, Rate: 60}, {ID: 2, Rate: 90}})
	policy := Policy{DefaultMode: 1, PrimaryRange: Range{Lo: 60, Hi: 90}, AppRange: Range{Lo: 60, Hi: 90}}
	current, _ := cat.ByID(1)
	layers := []LayerRequirement{{Name: "l", Vote: Heuristic, DesiredRefreshRate: 45, Weight: 1}}

	got, _ := arbitrate(cat, policy, current, layers, GlobalSignals{}, 0)
	if got.Rate != 90 {
		t.Errorf("expected 90, got %v", got.Rate)
	}
}

// S3 — Ladder {60, 72, 90}, Heuristic 24 Hz. Returns 72.
func TestArbitrateS3HeuristicExactMultiple(t *testing.T) {
	cat := mustCatalog(t, []DisplayMode{{ID: 1, Rate: 60}, {ID: 2, Rate: 72}, {ID: 3, Rate: 90}})
	policy := Policy{DefaultMode: 1, PrimaryRange: Range{Lo: 60, Hi: 90}, AppRange: Range{Lo: 60, Hi: 90}}
	current, _ := cat.ByID(1)
	layers := []LayerRequirement{{Name: "l", Vote: Heuristic, DesiredRefreshRate: 24, Weight: 1}}

	got, _ := arbitrate(cat, policy, current, layers, GlobalSignals{}, 0)
	if got.Rate != 72 {
		t.Errorf("expected 72, got %v", got.Rate)
	}
}

// S4 — Ladder {30, 60, 72, 90, 120}, two Heuristic layers 24 Hz and 60 Hz,
// equal weight. Returns 120.
func TestArbitrateS4TwoHeuristicLayers(t *testing.T) {
	cat := mustCatalog(t, []DisplayMode{
		{ID: 1, Rate: 30}, {ID: 2, Rate: 60}, {ID: 3, Rate: 72}, {ID: 4, Rate: 90}, {ID: 5, Rate: 120},
	})
	policy := Policy{DefaultMode: 2, PrimaryRange: Range{Lo: 30, Hi: 120}, AppRange: Range{Lo: 30, Hi: 120}}
	current, _ := cat.ByID(2)
	layers := []LayerRequirement{
		{Name: "a", Vote: Heuristic, DesiredRefreshRate: 24, Weight: 1},
		{Name: "b", Vote: Heuristic, DesiredRefreshRate: 60, Weight: 1},
	}

	got, _ := arbitrate(cat, policy, current, layers, GlobalSignals{}, 0)
	if got.Rate != 120 {
		t.Errorf("expected 120, got %v", got.Rate)
	}
}

// S5 — modes 60 (group 0) and 90 (group 1), current 60, allowGroupSwitching
// false, one layer ExplicitDefault 90 Hz seamlessness=OnlySeamless. Returns
// 60 (90 is not seamless and group switching is disallowed).
func TestArbitrateS5SeamlessGroupConstraint(t *testing.T) {
	cat := mustCatalog(t, []DisplayMode{
		{ID: 1, Rate: 60, Group: 0, Resolution: Resolution{1920, 1080}},
		{ID: 2, Rate: 90, Group: 1, Resolution: Resolution{1920, 1080}},
	})
	policy := Policy{
		DefaultMode: 1, PrimaryRange: Range{Lo: 60, Hi: 90}, AppRange: Range{Lo: 60, Hi: 90},
		AllowGroupSwitching: false,
	}
	current, _ := cat.ByID(1)
	layers := []LayerRequirement{
		{Name: "l", Vote: ExplicitDefault, DesiredRefreshRate: 90, Weight: 1, Seamlessness: OnlySeamless},
	}

	got, _ := arbitrate(cat, policy, current, layers, GlobalSignals{}, 0)
	if got.Rate != 60 {
		t.Errorf("expected 60, got %v", got.Rate)
	}
}

// S6 — Ladder {60 (default group 0), 90 (group 1)}, allowGroupSwitching
// true, current 90; single Default-seamlessness ExplicitDefault layer at
// 60 Hz, focused. Returns 60 (seamless return to the default group is
// permitted).
func TestArbitrateS6ReturnToDefaultGroup(t *testing.T) {
	cat := mustCatalog(t, []DisplayMode{
		{ID: 1, Rate: 60, Group: 0, Resolution: Resolution{1920, 1080}},
		{ID: 2, Rate: 90, Group: 1, Resolution: Resolution{1920, 1080}},
	})
	policy := Policy{
		DefaultMode: 1, PrimaryRange: Range{Lo: 60, Hi: 90}, AppRange: Range{Lo: 60, Hi: 90},
		AllowGroupSwitching: true,
	}
	current, _ := cat.ByID(2)
	layers := []LayerRequirement{
		{Name: "l", Vote: ExplicitDefault, DesiredRefreshRate: 60, Weight: 1, Focused: true},
	}

	got, _ := arbitrate(cat, policy, current, layers, GlobalSignals{}, 0)
	if got.Rate != 60 {
		t.Errorf("expected 60, got %v", got.Rate)
	}
}

// S7 — Ladder {60, 120}, touch=true, no layers. Returns 120. With
// primary=[60,60], returns 60 and signalsConsidered.touch = false.
func TestArbitrateS7TouchWithNoLayers(t *testing.T) {
	cat := mustCatalog(t, []DisplayMode{{ID: 1, Rate: 60}, {ID: 2, Rate: 120}})
	current, _ := cat.ByID(1)

	wide := Policy{DefaultMode: 1, PrimaryRange: Range{Lo: 60, Hi: 120}, AppRange: Range{Lo: 60, Hi: 120}}
	got, considered := arbitrate(cat, wide, current, nil, GlobalSignals{Touch: true}, 0)
	if got.Rate != 120 {
		t.Errorf("expected 120, got %v", got.Rate)
	}
	if considered.Touch {
		t.Error("no-layers rule should not report touch as considered")
	}

	single := Policy{DefaultMode: 1, PrimaryRange: Range{Lo: 60, Hi: 60}, AppRange: Range{Lo: 60, Hi: 120}}
	got, considered = arbitrate(cat, single, current, nil, GlobalSignals{Touch: true}, 0)
	if got.Rate != 60 {
		t.Errorf("expected 60, got %v", got.Rate)
	}
	if considered.Touch {
		t.Error("signalsConsidered.touch should be false when primary range is collapsed")
	}
}

// S8 — Fractional catalog including 60 and 59.94; layer
// ExplicitExactOrMultiple at 29.97 Hz. Returns 59.94 (prefers the
// fractional multiple over 60 and 30).
func TestArbitrateS8FractionalPreference(t *testing.T) {
	cat := mustCatalog(t, []DisplayMode{
		{ID: 1, Rate: 30}, {ID: 2, Rate: 59.94}, {ID: 3, Rate: 60},
	})
	policy := Policy{DefaultMode: 3, PrimaryRange: Range{Lo: 30, Hi: 60}, AppRange: Range{Lo: 30, Hi: 60}}
	current, _ := cat.ByID(3)
	layers := []LayerRequirement{
		{Name: "l", Vote: ExplicitExactOrMultiple, DesiredRefreshRate: 29.97, Weight: 1},
	}

	got, _ := arbitrate(cat, policy, current, layers, GlobalSignals{}, 0)
	if got.Rate != 59.94 {
		t.Errorf("expected 59.94, got %v", got.Rate)
	}
}

// Invariant 2: narrowing the primary range to a single rate returns the
// unique mode at that rate regardless of layers or global signals.
func TestArbitratePolicyMonotonicity(t *testing.T) {
	cat := mustCatalog(t, []DisplayMode{{ID: 1, Rate: 60}, {ID: 2, Rate: 90}, {ID: 3, Rate: 120}})
	policy := Policy{DefaultMode: 1, PrimaryRange: Range{Lo: 90, Hi: 90}, AppRange: Range{Lo: 60, Hi: 120}}
	current, _ := cat.ByID(1)
	layers := []LayerRequirement{{Name: "l", Vote: Max, Weight: 1}}

	got, _ := arbitrate(cat, policy, current, layers, GlobalSignals{Idle: true}, 0)
	if got.Rate != 90 {
		t.Errorf("expected the collapsed primary rate 90, got %v", got.Rate)
	}
}

// Invariant 5: idle without touch and without a focused explicit vote
// returns the minimum-rate mode in the primary range.
func TestArbitrateIdleDominance(t *testing.T) {
	cat := mustCatalog(t, []DisplayMode{{ID: 1, Rate: 60}, {ID: 2, Rate: 90}, {ID: 3, Rate: 120}})
	policy := Policy{DefaultMode: 1, PrimaryRange: Range{Lo: 60, Hi: 120}, AppRange: Range{Lo: 60, Hi: 120}}
	current, _ := cat.ByID(1)
	layers := []LayerRequirement{{Name: "l", Vote: Heuristic, DesiredRefreshRate: 90, Weight: 1}}

	got, considered := arbitrate(cat, policy, current, layers, GlobalSignals{Idle: true}, 0)
	if got.Rate != 60 {
		t.Errorf("expected the minimum primary rate 60, got %v", got.Rate)
	}
	if !considered.Idle {
		t.Error("expected signalsConsidered.idle = true")
	}
}

// Two layers share the candidate set: one carries a SeamDefault vote
// that would otherwise be free to return to the default group, the
// other is focused with a SeamedAndSeamless vote. The focused seamed
// layer's own request takes priority, so the SeamDefault layer is not
// permitted to pull the result back to the default group.
func TestArbitrateFocusedSeamedBlocksReturnToDefaultGroup(t *testing.T) {
	cat := mustCatalog(t, []DisplayMode{
		{ID: 1, Rate: 60, Group: 0, Resolution: Resolution{1920, 1080}},
		{ID: 2, Rate: 90, Group: 1, Resolution: Resolution{1920, 1080}},
	})
	policy := Policy{
		DefaultMode: 1, PrimaryRange: Range{Lo: 60, Hi: 90}, AppRange: Range{Lo: 60, Hi: 90},
		AllowGroupSwitching: true,
	}
	current, _ := cat.ByID(2)
	layers := []LayerRequirement{
		{Name: "default-layer", Vote: ExplicitDefault, DesiredRefreshRate: 60, Weight: 1},
		{Name: "focused-seamed", Vote: NoVote, DesiredRefreshRate: 90, Weight: 1, Focused: true, Seamlessness: SeamedAndSeamless},
	}

	got, _ := arbitrate(cat, policy, current, layers, GlobalSignals{}, 0)
	if got.Rate != 90 {
		t.Errorf("expected 90 (stay off the default group), got %v", got.Rate)
	}
}

// Same layer shapes, but the SeamedAndSeamless layer is not focused: the
// SeamDefault layer is free to return to the default group, and scoring
// picks the default-group mode.
func TestArbitrateNonFocusedSeamedPermitsReturnToDefaultGroup(t *testing.T) {
	cat := mustCatalog(t, []DisplayMode{
		{ID: 1, Rate: 60, Group: 0, Resolution: Resolution{1920, 1080}},
		{ID: 2, Rate: 90, Group: 1, Resolution: Resolution{1920, 1080}},
	})
	policy := Policy{
		DefaultMode: 1, PrimaryRange: Range{Lo: 60, Hi: 90}, AppRange: Range{Lo: 60, Hi: 90},
		AllowGroupSwitching: true,
	}
	current, _ := cat.ByID(2)
	layers := []LayerRequirement{
		{Name: "default-layer", Vote: ExplicitDefault, DesiredRefreshRate: 60, Weight: 1},
		{Name: "seamed-not-focused", Vote: NoVote, DesiredRefreshRate: 90, Weight: 1, Seamlessness: SeamedAndSeamless},
	}

	got, _ := arbitrate(cat, policy, current, layers, GlobalSignals{}, 0)
	if got.Rate != 60 {
		t.Errorf("expected 60 (default group reachable again), got %v", got.Rate)
	}
}

func TestArbitrateTouchSuppressedByFocusedExplicitDefault(t *testing.T) {
	cat := mustCatalog(t, []DisplayMode{{ID: 1, Rate: 60}, {ID: 2, Rate: 90}, {ID: 3, Rate: 120}})
	policy := Policy{DefaultMode: 1, PrimaryRange: Range{Lo: 60, Hi: 120}, AppRange: Range{Lo: 60, Hi: 120}}
	current, _ := cat.ByID(1)
	layers := []LayerRequirement{
		{Name: "l", Vote: ExplicitDefault, DesiredRefreshRate: 60, Weight: 1, Focused: true},
	}

	got, considered := arbitrate(cat, policy, current, layers, GlobalSignals{Touch: true}, 0)
	if considered.Touch {
		t.Error("a focused ExplicitDefault layer should suppress the touch boost")
	}
	if got.Rate != 60 {
		t.Errorf("expected 60, got %v", got.Rate)
	}
}
