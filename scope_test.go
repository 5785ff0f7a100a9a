package brep

import "testing"

func TestScopeReleasesTracked(t *testing.T) {
	a, b := &countedShape{}, &countedShape{}
	sc := newScope()
	sc.track(a)
	sc.track(b)
	sc.Close()

	if a.released != 1 || b.released != 1 {
		t.Errorf("releases = %d, %d, want 1, 1", a.released, b.released)
	}
}

func TestScopeDetachTransfersOwnership(t *testing.T) {
	a, b := &countedShape{}, &countedShape{}
	sc := newScope()
	sc.track(a)
	sc.track(b)
	out := sc.detach(b)
	sc.Close()

	if a.released != 1 {
		t.Errorf("tracked handle released %d times, want 1", a.released)
	}
	if b.released != 0 {
		t.Errorf("detached handle released %d times, want 0", b.released)
	}
	if out != b {
		t.Errorf("detach returned a different handle")
	}
}

func TestScopeTracksNilSafely(t *testing.T) {
	sc := newScope()
	sc.track(nil)
	sc.Close() // must not panic
}
