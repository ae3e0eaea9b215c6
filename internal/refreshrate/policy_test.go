package refreshrate

import "testing"

func testCatalog(t *testing.T) Catalog {
	t.Helper()
	cat, err := NewCatalog([]DisplayMode{
		{ID: 1, Rate: 60, Group: 0},
		{ID: 2, Rate: 90, Group: 0},
		{ID: 3, Rate: 120, Group: 0},
	})
	if err != nil {
		t.Fatalf("unexpected error building catalog: %v", err)
	}
	return cat
}

func TestPolicyValidateSuccess(t *testing.T) {
	cat := testCatalog(t)
	p := Policy{
		DefaultMode:  1,
		PrimaryRange: Range{Lo: 60, Hi: 90},
		AppRange:     Range{Lo: 60, Hi: 120},
	}
	if err := p.Validate(cat); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestPolicyValidateUnknownDefault(t *testing.T) {
	cat := testCatalog(t)
	p := Policy{DefaultMode: 99, PrimaryRange: Range{Lo: 60, Hi: 90}, AppRange: Range{Lo: 60, Hi: 120}}
	if err := p.Validate(cat); err == nil {
		t.Error("expected error for unknown default mode")
	}
}

func TestPolicyValidateDefaultOutsidePrimary(t *testing.T) {
	cat := testCatalog(t)
	p := Policy{DefaultMode: 3, PrimaryRange: Range{Lo: 60, Hi: 90}, AppRange: Range{Lo: 60, Hi: 120}}
	if err := p.Validate(cat); err == nil {
		t.Error("expected error: default mode (120) outside primary range [60,90]")
	}
}

func TestPolicyValidateAppRangeNotSuperset(t *testing.T) {
	cat := testCatalog(t)
	p := Policy{DefaultMode: 1, PrimaryRange: Range{Lo: 60, Hi: 120}, AppRange: Range{Lo: 60, Hi: 90}}
	if err := p.Validate(cat); err == nil {
		t.Error("expected error: app range narrower than primary range")
	}
}

func TestRangeSuperset(t *testing.T) {
	full := Range{Lo: 0, Hi: 0}
	narrow := Range{Lo: 60, Hi: 90}
	if !full.Superset(narrow) {
		t.Error("an unconstrained range must be a superset of any narrower range")
	}
	if narrow.Superset(full) {
		t.Error("a narrow range cannot be a superset of an unconstrained range")
	}
	if !narrow.Superset(Range{Lo: 60, Hi: 90}) {
		t.Error("a range must be a superset of itself")
	}
}

func TestRangeSingle(t *testing.T) {
	if rate, single := (Range{Lo: 60, Hi: 60}).Single(); !single || rate != 60 {
		t.Errorf("expected single rate 60, got rate=%v single=%v", rate, single)
	}
	if _, single := (Range{Lo: 60, Hi: 90}).Single(); single {
		t.Error("a wide range should not collapse to a single rate")
	}
}
