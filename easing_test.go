package bough

import (
	"errors"
	"math"
	"testing"
)

func TestEasingCatalogEndpoints(t *testing.T) {
	for _, name := range EasingNames() {
		fn, err := LookupEasing(name)
		if err != nil {
			t.Fatalf("LookupEasing(%q): %v", name, err)
		}
		if got := fn(0); math.Abs(got) > 1e-4 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := fn(1); math.Abs(got-1) > 1e-4 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
	}
}

func TestEasingFamiliesHaveVariants(t *testing.T) {
	families := []string{"linear", "quad", "cubic", "poly", "quart", "quint", "sin", "exp", "circle", "bounce", "back", "elastic"}
	for _, f := range families {
		for _, suffix := range []string{"", "In", "Out", "InOut"} {
			if _, err := EasingFunc(f + suffix); err != nil {
				t.Errorf("EasingFunc(%q): %v", f+suffix, err)
			}
		}
	}
}

func TestEasingDefault(t *testing.T) {
	fn, err := LookupEasing("")
	if err != nil {
		t.Fatal(err)
	}
	// quadInOut is symmetric about the midpoint.
	if got := fn(0.5); math.Abs(got-0.5) > 1e-6 {
		t.Errorf("default(0.5) = %v, want 0.5", got)
	}
	if got := fn(0.25); math.Abs(got-0.125) > 1e-6 {
		t.Errorf("default(0.25) = %v, want 0.125", got)
	}
}

func TestEasingUnknown(t *testing.T) {
	_, err := EasingFunc("wobble")
	if !errors.Is(err, ErrUnknownEasing) {
		t.Fatalf("err = %v, want ErrUnknownEasing", err)
	}
	if _, err := LookupEasing("quadSideways"); !errors.Is(err, ErrUnknownEasing) {
		t.Errorf("LookupEasing err = %v, want ErrUnknownEasing", err)
	}
}

func TestEasingFunctionsProduceDifferentCurves(t *testing.T) {
	lin, _ := LookupEasing("linear")
	in, _ := LookupEasing("cubicIn")
	out, _ := LookupEasing("cubicOut")
	if !(in(0.5) < lin(0.5) && lin(0.5) < out(0.5)) {
		t.Errorf("expected cubicIn < linear < cubicOut at 0.5, got %v %v %v", in(0.5), lin(0.5), out(0.5))
	}
}
