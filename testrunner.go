package bough

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Frames int     `json:"frames,omitempty"`
	File   string  `json:"file,omitempty"`
	Series string  `json:"series,omitempty"`
	Data   []Datum `json:"data,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// defaultSettleFrames bounds a "settle" step without an explicit frame count.
const defaultSettleFrames = 600

// Snapshot is the set of leaf frames captured by a "snapshot" step.
type Snapshot struct {
	Label  string
	Frame  uint64
	Frames []Frame
}

// TestRunner sequences data changes and snapshots across frames for
// deterministic, headless playback of a chart. Attach to a Scene via
// SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	settling  int
	baseDir   string
	done      bool
	err       error
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner.
//
// Steps:
//
//	{"action": "wait", "frames": 30}
//	{"action": "data", "file": "next.yaml"}
//	{"action": "data", "series": "sales", "data": [{"key": "a", "y": 3}]}
//	{"action": "settle", "frames": 600}
//	{"action": "snapshot", "label": "after-enter"}
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "wait", "settle", "snapshot":
		case "data":
			if st.File == "" && st.Series == "" {
				return nil, fmt.Errorf("parse test script: step %d: data needs a file or a series", i)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetBaseDir sets the directory relative "file" paths are resolved against.
func (r *TestRunner) SetBaseDir(dir string) {
	r.baseDir = dir
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Update before injections are applied each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Snapshot records the latest frame of every leaf under label.
func (s *Scene) Snapshot(label string) {
	s.snapshots = append(s.snapshots, Snapshot{Label: label, Frame: s.frame, Frames: s.Frames()})
}

// Snapshots returns the snapshots recorded so far.
func (s *Scene) Snapshots() []Snapshot {
	return s.snapshots
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Err returns the first step error, such as an unreadable data file. The
// failing step is skipped.
func (r *TestRunner) Err() error {
	return r.err
}

// step advances the test runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.settling > 0 {
		if !s.Settled() {
			r.settling--
			return
		}
		r.settling = 0
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "snapshot":
		s.Snapshot(st.Label)
	case "data":
		r.applyData(s, st)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "settle":
		r.settling = st.Frames
		if r.settling <= 0 {
			r.settling = defaultSettleFrames
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.settling == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) applyData(s *Scene, st testStep) {
	if st.File != "" {
		path := st.File
		if r.baseDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(r.baseDir, path)
		}
		spec, err := LoadChartSpec(path)
		if err == nil {
			var root *Node
			root, err = spec.BuildRoot()
			if err == nil {
				s.InjectData(root)
				return
			}
		}
		r.fail(fmt.Errorf("test script data %s: %w", st.File, err))
		return
	}
	if !s.InjectSeries(st.Series, st.Data) {
		r.fail(fmt.Errorf("test script data: no series %q", st.Series))
	}
}

func (r *TestRunner) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}
