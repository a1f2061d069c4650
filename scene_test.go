package bough

import (
	"io"
	"log/slog"
	"math"
	"testing"
	"time"
)

const frameDT = 16 * time.Millisecond

func quietScene(cfg SceneConfig) *Scene {
	s := NewScene(cfg)
	s.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return s
}

// settle runs Update until the scene settles or max frames pass.
func settle(t *testing.T, s *Scene, max int) {
	t.Helper()
	for range max {
		if s.Settled() {
			return
		}
		s.Update(frameDT)
	}
	if !s.Settled() {
		t.Fatalf("scene did not settle within %d frames", max)
	}
}

func near(t *testing.T, label string, got any, want, tol float64) {
	t.Helper()
	n, ok := toNumber(got)
	if !ok {
		t.Fatalf("%s: got %T %v, want a number", label, got, got)
	}
	if math.Abs(n-want) > tol {
		t.Errorf("%s = %v, want %v", label, n, want)
	}
}

func TestSceneLoadTweensAndCallsOnEndOnce(t *testing.T) {
	desc := &Descriptor{
		Kind: "growing",
		DefaultTransitions: &Transitions{
			OnLoad: &PhaseConfig{Before: func(Datum, int, []Datum) Datum { return Datum{"y": 0} }},
		},
	}
	ends := 0
	s := quietScene(SceneConfig{Animate: AnimateConfig{
		Duration: 300 * time.Millisecond,
		OnEnd:    func() { ends++ },
	}})
	root := NewLeaf("series", desc, []Datum{{"x": 1, "y": 2}})
	if err := s.Mount(root); err != nil {
		t.Fatal(err)
	}
	if got := s.Frames()[0].Data()[0]["y"]; got != 0 {
		t.Fatalf("first frame y = %v, want the load before state 0", got)
	}

	s.Update(150 * time.Millisecond)
	f := s.Frames()[0]
	if f.Phase != PhaseLoad {
		t.Errorf("phase = %v, want load", f.Phase)
	}
	near(t, "y at 150ms", f.Data()[0]["y"], 1, 1e-3)
	if ends != 0 {
		t.Errorf("OnEnd fired mid-tween")
	}

	s.Update(150 * time.Millisecond)
	near(t, "y at 300ms", s.Frames()[0].Data()[0]["y"], 2, 1e-9)
	if ends != 1 {
		t.Errorf("OnEnd fired %d times, want 1", ends)
	}
	if !s.Settled() {
		t.Error("scene should be settled")
	}

	for range 10 {
		s.Update(frameDT)
	}
	if ends != 1 {
		t.Errorf("OnEnd fired %d times after idling, want 1", ends)
	}
}

func TestSceneExitCompletesBeforeEnter(t *testing.T) {
	s := quietScene(SceneConfig{})
	if err := s.Mount(barTree("a", "b")); err != nil {
		t.Fatal(err)
	}
	settle(t, s, 300)

	var order []PhaseEventKind
	s.Transition().OnEvent(func(ev PhaseEvent, st TransitionState) {
		order = append(order, ev.Kind)
	})
	var phases []Phase
	s.OnFrame(func(f Frame) {
		if len(phases) == 0 || phases[len(phases)-1] != f.Phase {
			phases = append(phases, f.Phase)
		}
	})

	if err := s.SetData(barTree("b", "c")); err != nil {
		t.Fatal(err)
	}
	if got := s.Frames()[0].Leaf.Data[0]["key"]; got != "a" {
		t.Errorf("rendered leaf starts with %v, want the pre-exit tree", got)
	}
	settle(t, s, 300)

	want := []PhaseEventKind{EventExitDone, EventEnterBeforeDone, EventEnterDone}
	if len(order) != len(want) {
		t.Fatalf("events = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("events = %v, want %v", order, want)
		}
	}
	wantPhases := []Phase{PhaseExit, PhaseBeforeEnter, PhaseEnter}
	for i, p := range wantPhases {
		if i >= len(phases) || phases[i] != p {
			t.Fatalf("phases = %v, want %v", phases, wantPhases)
		}
	}

	data := s.Frames()[0].Data()
	if len(data) != 2 || data[0]["key"] != "b" || data[1]["key"] != "c" {
		t.Fatalf("final data = %v", data)
	}
	near(t, "b.y", data[0]["y"], 1, 1e-9)
	near(t, "c.y", data[1]["y"], 2, 1e-9)
}

func TestSceneSurvivorsMoveDuringEnter(t *testing.T) {
	s := quietScene(SceneConfig{Animate: AnimateConfig{Easing: "linear"}})
	if err := s.Mount(barTree("a")); err != nil {
		t.Fatal(err)
	}
	settle(t, s, 300)

	var hidden []Datum
	var moving []float64
	s.OnFrame(func(f Frame) {
		switch f.Phase {
		case PhaseBeforeEnter:
			hidden = f.Data()
		case PhaseEnter:
			if y, ok := toNumber(f.Data()[0]["y"]); ok {
				moving = append(moving, y)
			}
		}
	})

	// a keeps its key and moves from y 1 to 7 while b enters.
	next := NewLeaf("bars", BarDescriptor, []Datum{{"key": "a", "x": 0, "y": 7}, {"key": "b", "x": 1, "y": 2}})
	if err := s.SetData(next); err != nil {
		t.Fatal(err)
	}
	settle(t, s, 300)

	if len(hidden) != 2 {
		t.Fatalf("before-enter data = %v, want 2 datums", hidden)
	}
	near(t, "before-enter a.y", hidden[0]["y"], 1, 1e-9)
	near(t, "before-enter b.y", hidden[1]["y"], 0, 1e-9)
	if len(moving) < 3 {
		t.Fatalf("enter frames = %v, want a tween", moving)
	}
	mid := moving[len(moving)/2]
	if mid <= 1 || mid >= 7 {
		t.Errorf("a.y mid-enter = %v, want between 1 and 7", mid)
	}
	near(t, "final a.y", moving[len(moving)-1], 7, 1e-9)
}

func TestSceneMoveWithoutPhases(t *testing.T) {
	s := quietScene(SceneConfig{Animate: AnimateConfig{Move: 200 * time.Millisecond}})
	if err := s.Mount(barTree("a")); err != nil {
		t.Fatal(err)
	}
	settle(t, s, 300)

	var events int
	s.Transition().OnEvent(func(PhaseEvent, TransitionState) { events++ })
	next := NewLeaf("bars", BarDescriptor, []Datum{{"key": "a", "x": 0, "y": 5}})
	if err := s.SetData(next); err != nil {
		t.Fatal(err)
	}
	s.Update(100 * time.Millisecond)
	if s.Settled() {
		t.Error("move should still be running")
	}
	s.Update(100 * time.Millisecond)
	if !s.Settled() {
		t.Error("move should be done after 200ms")
	}
	near(t, "y", s.Frames()[0].Data()[0]["y"], 5, 1e-9)
	if events != 0 {
		t.Errorf("a plain move dispatched %d phase events", events)
	}
}

func TestSceneWhitelistPassesOtherPropsThrough(t *testing.T) {
	s := quietScene(SceneConfig{AnimationWhitelist: []string{"opacity"}})
	leaf := barTree("a")
	leaf.Props = map[string]any{"label": "first", "opacity": 0.5}
	if err := s.Mount(leaf); err != nil {
		t.Fatal(err)
	}
	settle(t, s, 300)

	next := barTree("a")
	next.Props = map[string]any{"label": "second", "opacity": 1.0}
	if err := s.SetData(next); err != nil {
		t.Fatal(err)
	}
	s.Update(frameDT)
	f := s.Frames()[0]
	if f.Props["label"] != "second" {
		t.Errorf("label = %v, want the new value without tweening", f.Props["label"])
	}
	if o, _ := toNumber(f.Props["opacity"]); o <= 0.5 || o >= 1 {
		t.Errorf("opacity = %v, want a value between 0.5 and 1", o)
	}

	// Only pass-through props change: the new value is shown at once.
	label := barTree("a")
	label.Props = map[string]any{"label": "third", "opacity": 1.0}
	settle(t, s, 300)
	if err := s.SetData(label); err != nil {
		t.Fatal(err)
	}
	if got := s.Frames()[0].Props["label"]; got != "third" {
		t.Errorf("label = %v, want third", got)
	}
}

func TestSceneContinuousLeafCarriesClip(t *testing.T) {
	s := quietScene(SceneConfig{})
	line := NewLeaf("line", LineDescriptor, []Datum{{"x": 0, "y": 0}, {"x": 1, "y": 1}})
	line.Width = 100
	if err := s.Mount(line); err != nil {
		t.Fatal(err)
	}
	f := s.Frames()[0]
	if w, ok := f.ClipWidth(); !ok || w != 0 {
		t.Errorf("clip = %v %v, want 0 before load", w, ok)
	}
	if f.TranslateX() != 0 {
		t.Errorf("translateX = %v, want 0", f.TranslateX())
	}
	settle(t, s, 300)
	if w, _ := s.Frames()[0].ClipWidth(); w != 100 {
		t.Errorf("clip = %v, want 100 after load", w)
	}
	if d := s.Frames()[0].Domain(AxisY); d != (Domain{0, 1}) {
		t.Errorf("y domain = %v, want [0 1]", d)
	}
}

func TestSceneInvalidLeafEasingDoesNotStall(t *testing.T) {
	s := quietScene(SceneConfig{})
	bad := barTree("a")
	bad.Animate = &AnimateConfig{Easing: "bogus"}
	good := NewLeaf("good", ScatterDescriptor, []Datum{{"x": 0, "y": 0}})
	if err := s.Mount(NewGroup("root", bad, good)); err != nil {
		t.Fatal(err)
	}
	if s.LeafError(0) == nil {
		t.Error("the bogus easing should be reported")
	}
	if s.LeafError(1) != nil {
		t.Error("the sibling should animate normally")
	}
	settle(t, s, 300)
	near(t, "bad leaf y", s.Frames()[0].Data()[0]["y"], 1, 0)
	if got := s.Stats().Errors.Load(); got != 1 {
		t.Errorf("errors = %d, want 1", got)
	}
}

func TestSceneMountRejectsUnknownEasing(t *testing.T) {
	s := quietScene(SceneConfig{Animate: AnimateConfig{Easing: "wobble"}})
	if err := s.Mount(barTree("a")); err == nil {
		t.Fatal("expected an error")
	}
	if s.Mounted() {
		t.Error("scene should not be mounted")
	}
}

func TestSceneUnmountStopsFrames(t *testing.T) {
	s := quietScene(SceneConfig{})
	if err := s.Mount(barTree("a")); err != nil {
		t.Fatal(err)
	}
	frames := 0
	s.OnFrame(func(Frame) { frames++ })
	s.Update(frameDT)
	if frames == 0 {
		t.Fatal("expected frames while loading")
	}
	s.Unmount()
	before := frames
	for range 10 {
		s.Update(frameDT)
	}
	if frames != before {
		t.Errorf("%d frames emitted after Unmount", frames-before)
	}
	if s.Mounted() {
		t.Error("scene still mounted")
	}
}

func TestSceneSetDataMountsFirstTree(t *testing.T) {
	s := quietScene(SceneConfig{})
	if err := s.SetData(barTree("a")); err != nil {
		t.Fatal(err)
	}
	if !s.Mounted() {
		t.Fatal("SetData should mount")
	}
	if got := s.Stats().DataUpdates.Load(); got != 0 {
		t.Errorf("data updates = %d, want 0 for the mount", got)
	}
}

func TestSceneEmptyTreeSettles(t *testing.T) {
	s := quietScene(SceneConfig{})
	if err := s.Mount(NewGroup("root")); err != nil {
		t.Fatal(err)
	}
	if !s.Settled() {
		t.Error("a tree without leaves has nothing to animate")
	}
}

func TestSceneEntityStoreReceivesEvents(t *testing.T) {
	s := quietScene(SceneConfig{})
	store := &recordingStore{}
	s.SetEntityStore(store)
	if err := s.Mount(barTree("a")); err != nil {
		t.Fatal(err)
	}
	settle(t, s, 300)
	if len(store.events) != 2 || store.events[0].Kind != EventMounted || store.events[1].Kind != EventLoadDone {
		t.Errorf("events = %v, want mounted then load-done", store.events)
	}
}

type recordingStore struct {
	events []PhaseEvent
}

func (r *recordingStore) EmitEvent(ev PhaseEvent) {
	r.events = append(r.events, ev)
}

func TestSceneSetDebugMode(t *testing.T) {
	s := NewScene(SceneConfig{})
	s.SetDebugMode(true)
	if !s.debug || !globalDebug {
		t.Error("debug should be true")
	}
	s.SetDebugMode(false)
	if s.debug || globalDebug {
		t.Error("debug should be false")
	}
}
