package bough

import (
	"testing"
	"time"
)

func keyed(keys ...string) []Datum {
	out := make([]Datum, len(keys))
	for i, k := range keys {
		out[i] = Datum{"key": k}
	}
	return out
}

func TestRemainingWidth(t *testing.T) {
	data := keyed("a", "b", "c", "d", "e")
	tests := []struct {
		nodes KeySet
		want  float64
	}{
		{nil, 100},
		{NewKeySet("a"), 75},
		{NewKeySet("a", "b"), 50},
		{NewKeySet("a", "b", "c", "d"), 0},
	}
	for _, tt := range tests {
		if got := remainingWidth(data, tt.nodes, 100); got != tt.want {
			t.Errorf("remainingWidth(%v) = %v, want %v", tt.nodes.Keys(), got, tt.want)
		}
	}
	if got := remainingWidth(keyed("a"), nil, 100); got != 0 {
		t.Errorf("single point = %v, want 0", got)
	}
}

func TestLeadingKeys(t *testing.T) {
	data := keyed("a", "b", "c")
	if !leadingKeys(data, NewKeySet("a", "b")) {
		t.Error("a,b lead the series")
	}
	if leadingKeys(data, NewKeySet("b")) {
		t.Error("b does not lead")
	}
	if leadingKeys(data, NewKeySet("a", "b", "c")) {
		t.Error("the whole series is not a prefix")
	}
	if leadingKeys(data, nil) {
		t.Error("an empty set is not a prefix")
	}
}

func TestMergePhaseEarlierLayersWin(t *testing.T) {
	before := func(Datum, int, []Datum) Datum { return Datum{"y": 0} }
	got := mergePhase(
		&PhaseConfig{Duration: 10 * time.Millisecond},
		nil,
		&PhaseConfig{Duration: 99 * time.Millisecond, Delay: 5 * time.Millisecond, Before: before},
	)
	if got.Duration != 10*time.Millisecond {
		t.Errorf("Duration = %v, want 10ms", got.Duration)
	}
	if got.Delay != 5*time.Millisecond {
		t.Errorf("Delay = %v, want 5ms", got.Delay)
	}
	if got.Before == nil || got.After != nil {
		t.Error("Before comes from the last layer, After stays nil")
	}
}

func TestApplyPhaseOnlyTouchesNodes(t *testing.T) {
	data := []Datum{{"key": "a", "y": 3}, {"key": "b", "y": 4}}
	hide := func(Datum, int, []Datum) Datum { return Datum{"y": 0} }

	out := applyPhase(data, NewKeySet("b"), hide)
	if out[0]["y"] != 3 || out[1]["y"] != 0 {
		t.Errorf("applyPhase = %v", out)
	}
	if data[1]["y"] != 4 {
		t.Error("input data modified")
	}
	if all := applyPhase(data, nil, hide); all[0]["y"] != 0 || all[1]["y"] != 0 {
		t.Errorf("nil nodes applies to all: %v", all)
	}
	if same := applyPhase(data, nil, nil); &same[0] != &data[0] {
		t.Error("nil fn returns the data as is")
	}
}

func TestPropsAnimationConfig(t *testing.T) {
	called := false
	p := TransitionProps{Animate: AnimateConfig{
		Duration: 40 * time.Millisecond,
		Delay:    10 * time.Millisecond,
		Easing:   "sineOut",
		OnEnd:    func() { t.Error("user OnEnd must be replaced") },
	}}
	cfg := p.AnimationConfig(func() { called = true })
	if cfg.Duration != 40*time.Millisecond || cfg.Delay != 10*time.Millisecond || cfg.Easing != "sineOut" {
		t.Errorf("config = %+v", cfg)
	}
	cfg.OnEnd()
	if !called {
		t.Error("onEnd not wired")
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseExitClip.String() != "exit-clip" || PhaseSettled.String() != "settled" {
		t.Error("unexpected phase names")
	}
	if EventEnterBeforeDone.String() != "enter-before-done" {
		t.Error("unexpected event name")
	}
}
