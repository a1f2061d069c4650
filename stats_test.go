package bough

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestStatsCountSceneActivity(t *testing.T) {
	s := quietScene(SceneConfig{})
	if err := s.Mount(barTree("a")); err != nil {
		t.Fatal(err)
	}
	settle(t, s, 300)
	if err := s.SetData(barTree("b")); err != nil {
		t.Fatal(err)
	}
	snap := s.Stats().Snapshot()
	if snap.Frames == 0 || snap.FramesEmitted == 0 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.PhaseEvents != 2 {
		t.Errorf("phase events = %d, want mounted and load-done", snap.PhaseEvents)
	}
	if snap.DataUpdates != 1 {
		t.Errorf("data updates = %d, want 1", snap.DataUpdates)
	}
}

func TestCollector(t *testing.T) {
	stats := &Stats{}
	stats.Frames.Add(3)
	stats.Errors.Inc()
	c := NewCollector(stats)

	if n := testutil.CollectAndCount(c); n != 5 {
		t.Errorf("metrics = %d, want 5", n)
	}
	want := `
# HELP bough_scene_updates_total Scene.Update calls.
# TYPE bough_scene_updates_total counter
bough_scene_updates_total 3
# HELP bough_scene_errors_total Leaves rendered without animation after a configuration error.
# TYPE bough_scene_errors_total counter
bough_scene_errors_total 1
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(want),
		"bough_scene_updates_total", "bough_scene_errors_total"); err != nil {
		t.Error(err)
	}
}
