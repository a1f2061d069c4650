package bough

import "testing"

type point struct {
	X     int
	Y     float64
	Label string `bough:"key"`
}

func TestDecodeValue(t *testing.T) {
	var p point
	// Tweened values arrive as float64.
	if err := DecodeValue(Datum{"x": 2.0, "y": 3.5, "key": "a"}, &p); err != nil {
		t.Fatal(err)
	}
	if p.X != 2 || p.Y != 3.5 || p.Label != "a" {
		t.Errorf("decoded = %+v", p)
	}

	var pts []point
	if err := DecodeValue([]any{Datum{"x": 1}, Datum{"x": "4"}}, &pts); err != nil {
		t.Fatal(err)
	}
	if len(pts) != 2 || pts[1].X != 4 {
		t.Errorf("decoded = %+v", pts)
	}

	if err := DecodeValue(Datum{"x": "nope"}, &p); err == nil {
		t.Error("expected an error for a non-numeric x")
	}
}
