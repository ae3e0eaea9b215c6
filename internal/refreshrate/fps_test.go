package refreshrate

import "testing"

func TestApproxEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b Fps
		want bool
	}{
		{"identical", 60, 60, true},
		{"noise", 59.999, 60, true},
		{"ntsc pair distinct", 59.94, 60, false},
		{"far apart", 30, 60, false},
		{"zero vs positive", 0, 60, false},
		{"both zero not special-cased by callers", 0, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ApproxEqual(c.a, c.b); got != c.want {
				t.Errorf("ApproxEqual(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
			if got := ApproxEqual(c.b, c.a); got != c.want {
				t.Errorf("ApproxEqual not symmetric for (%v, %v)", c.b, c.a)
			}
		})
	}
}

func TestIsFractionalPairOrMultiple(t *testing.T) {
	cases := []struct {
		name string
		a, b Fps
		want bool
	}{
		{"23.976 vs 24", 23.976, 24, true},
		{"29.97 vs 30", 29.97, 30, true},
		{"59.94 vs 60", 59.94, 60, true},
		{"29.97 vs 60 cross multiple", 29.97, 60, true},
		{"59.94 vs 30 cross multiple", 59.94, 30, true},
		{"plain multiple not fractional", 30, 60, false},
		{"equal rates never fractional", 60, 60, false},
		{"unrelated rates", 24, 50, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsFractionalPairOrMultiple(c.a, c.b); got != c.want {
				t.Errorf("IsFractionalPairOrMultiple(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
			if got := IsFractionalPairOrMultiple(c.b, c.a); got != c.want {
				t.Errorf("IsFractionalPairOrMultiple not symmetric for (%v, %v)", c.b, c.a)
			}
		})
	}
}

func TestFrameRateDivider(t *testing.T) {
	cases := []struct {
		name             string
		display, content Fps
		want             int
	}{
		{"exact double", 60, 30, 2},
		{"exact triple", 72, 24, 3},
		{"identity", 60, 60, 1},
		{"no relation", 60, 25, 0},
		{"ntsc pair never a divider", 60, 29.97, 0},
		{"ntsc pair reverse never a divider", 59.94, 30, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := FrameRateDivider(c.display, c.content); got != c.want {
				t.Errorf("FrameRateDivider(%v, %v) = %d, want %d", c.display, c.content, got, c.want)
			}
		})
	}
}

func TestFpsInRange(t *testing.T) {
	if !Fps(60).InRange(60, 90) {
		t.Error("60 should be in [60, 90]")
	}
	if Fps(59).InRange(60, 90) {
		t.Error("59 should not be in [60, 90]")
	}
	if !Fps(120).InRange(0, 0) {
		t.Error("any rate should be in the fully unconstrained range")
	}
	if !Fps(120).InRange(60, 0) {
		t.Error("120 should be in [60, unconstrained]")
	}
}
