package bough

import (
	"log/slog"
	"os"
)

// globalDebug enables tree sanity checks on every AddChild. Set through
// Scene.SetDebugMode.
var globalDebug bool

// debugLogger receives the tree warnings. Replaced by Scene.SetLogger.
var debugLogger = NewLogger(slog.LevelDebug)

// NewLogger returns a text logger on stderr. Error attributes are emitted
// under the "err" key.
func NewLogger(level slog.Level) *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	})
	return slog.New(h).With("component", "bough")
}

// debugMaxTreeDepth is the depth past which debugCheckTreeDepth warns.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger.Warn("tree depth exceeds threshold",
			"node", n.Name, "depth", depth, "threshold", debugMaxTreeDepth)
	}
}

// debugMaxChildCount is the fan-out past which debugCheckChildCount warns.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		debugLogger.Warn("node has too many children",
			"node", n.Name, "children", len(n.children), "threshold", debugMaxChildCount)
	}
}

// debugLog writes per-frame stats when the scene is in debug mode.
func (s *Scene) debugLog(frame uint64, advanced, events int) {
	if !s.debug {
		return
	}
	st := s.transition.State()
	s.logger.Debug("frame",
		"frame", frame,
		"advanced", advanced,
		"events", events,
		"exiting", st.NodesWillExit,
		"entering", st.NodesWillEnter,
		"loaded", st.NodesDoneLoad,
	)
}
