package bough

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"bad json", `{`},
		{"no steps", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "click"}]}`},
		{"data without source", `{"steps": [{"action": "data"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTestScript([]byte(tt.script)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func runScript(t *testing.T, s *Scene, r *TestRunner, max int) {
	t.Helper()
	s.SetTestRunner(r)
	for range max {
		if r.Done() {
			return
		}
		s.Update(frameDT)
	}
	t.Fatalf("script not done after %d frames", max)
}

func TestTestRunnerSeriesAndSnapshot(t *testing.T) {
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "settle"},
		{"action": "snapshot", "label": "loaded"},
		{"action": "data", "series": "bars", "data": [{"key": "a", "x": 0, "y": 5}]},
		{"action": "settle"},
		{"action": "snapshot", "label": "moved"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s := quietScene(SceneConfig{})
	if err := s.Mount(barTree("a")); err != nil {
		t.Fatal(err)
	}
	runScript(t, s, r, 1000)
	if r.Err() != nil {
		t.Fatal(r.Err())
	}

	snaps := s.Snapshots()
	if len(snaps) != 2 || snaps[0].Label != "loaded" || snaps[1].Label != "moved" {
		t.Fatalf("snapshots = %+v", snaps)
	}
	near(t, "loaded y", snaps[0].Frames[0].Data()[0]["y"], 1, 1e-9)
	near(t, "moved y", snaps[1].Frames[0].Data()[0]["y"], 5, 1e-9)
	if snaps[1].Frame <= snaps[0].Frame {
		t.Error("snapshot frames should increase")
	}
}

func TestTestRunnerWait(t *testing.T) {
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 5},
		{"action": "snapshot", "label": "after-wait"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s := quietScene(SceneConfig{})
	if err := s.Mount(barTree("a")); err != nil {
		t.Fatal(err)
	}
	runScript(t, s, r, 20)
	if snaps := s.Snapshots(); len(snaps) != 1 || snaps[0].Frame != 6 {
		t.Errorf("snapshots = %+v, want one at frame 6", snaps)
	}
}

func TestTestRunnerDataFile(t *testing.T) {
	dir := t.TempDir()
	spec := `
root:
  kind: bar
  name: bars
  data:
    - {key: a, x: 0, y: 1}
    - {key: b, x: 1, y: 3}
`
	if err := os.WriteFile(filepath.Join(dir, "next.yaml"), []byte(spec), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "data", "file": "next.yaml"},
		{"action": "data", "file": "missing.yaml"},
		{"action": "settle"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	r.SetBaseDir(dir)
	s := quietScene(SceneConfig{})
	if err := s.Mount(barTree("a")); err != nil {
		t.Fatal(err)
	}
	runScript(t, s, r, 1000)

	if r.Err() == nil {
		t.Error("the missing file should be reported")
	}
	data := s.Frames()[0].Data()
	if len(data) != 2 || data[1]["key"] != "b" {
		t.Errorf("data = %v, want the spec file's series", data)
	}
}
