package term

import "testing"

func TestShiftCLeavesLowIndicesAlone(t *testing.T) {
	in := Inf{Term: Bound{Index: 0}}
	got := ShiftC(1, 1, in)
	if got.(Inf).Term.(Bound).Index != 0 {
		t.Errorf("expected Bound 0 below cutoff to be untouched, got %s", got)
	}
}

func TestShiftCMovesIndicesAtOrAboveCutoff(t *testing.T) {
	in := Inf{Term: Bound{Index: 1}}
	got := ShiftC(1, 2, in)
	if got.(Inf).Term.(Bound).Index != 3 {
		t.Errorf("expected Bound 1 to shift to 3, got %s", got)
	}
}

func TestShiftCDescendsThroughBinders(t *testing.T) {
	// \x. #1 refers to something one level outside the Lam; shifting by
	// 1 at cutoff 0 should turn it into \x. #2, tracking the extra
	// binder the Lam itself introduces.
	in := Lam{Body: Inf{Term: Bound{Index: 1}}}
	got := ShiftC(0, 1, in).(Lam)
	if got.Body.(Inf).Term.(Bound).Index != 2 {
		t.Errorf("expected inner Bound 1 to shift to 2, got %s", got.Body)
	}
}
