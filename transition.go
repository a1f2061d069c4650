package bough

// PhaseEventKind identifies which sub-phase reported completion.
type PhaseEventKind uint8

const (
	EventMounted         PhaseEventKind = iota // the tree was first committed
	EventLoadBefore                            // hidden load state committed
	EventLoadDone                              // load tween finished
	EventExitClipDone                          // exit clip-path shrink finished
	EventExitDone                              // exiting nodes faded out
	EventEnterBeforeDone                       // entering nodes committed hidden
	EventEnterClipDone                         // enter clip-path reveal finished
	EventEnterDone                             // entering nodes reached their after state
)

func (k PhaseEventKind) String() string {
	switch k {
	case EventMounted:
		return "mounted"
	case EventLoadBefore:
		return "load-before"
	case EventLoadDone:
		return "load-done"
	case EventExitClipDone:
		return "exit-clip-done"
	case EventExitDone:
		return "exit-done"
	case EventEnterBeforeDone:
		return "enter-before-done"
	case EventEnterClipDone:
		return "enter-clip-done"
	case EventEnterDone:
		return "enter-done"
	}
	return "unknown"
}

// PhaseEvent is a sub-phase completion. Generation ties it to the SetChildren
// call whose render produced it; exit and enter events from an older
// generation are dropped.
type PhaseEvent struct {
	Kind       PhaseEventKind
	Leaf       int // index of the reporting leaf, -1 when not leaf-specific
	Generation uint64
}

// TransitionState is the root state of a Transition. It only changes through
// SetChildren and Reduce.
type TransitionState struct {
	NodesWillExit  bool
	NodesWillEnter bool
	// ChildrenTransitions holds one entry per top-level child of the tree (a
	// single entry when the root is a leaf).
	ChildrenTransitions []ChildTransition

	NodesShouldEnter       bool
	NodesShouldLoad        bool
	NodesDoneLoad          bool
	NodesDoneClipPathLoad  bool
	NodesDoneClipPathEnter bool
	NodesDoneClipPathExit  bool

	// OldProps is the tree rendered while exiting nodes animate out.
	OldProps *Node

	// Leaf diffs by node: oldDiffs for the leaves of OldProps, newDiffs for
	// the leaves of the latest tree. Trees of different shape index their
	// leaves differently, so the rendered leaf is looked up by identity.
	oldDiffs map[*Node]*Diff
	newDiffs map[*Node]*Diff
	// prevLeaf maps a leaf of the latest tree to its diffed counterpart.
	prevLeaf map[*Node]*Node
}

// Animating reports whether a phase is pending or any child carries a diff.
func (s TransitionState) Animating() bool {
	if s.NodesWillExit || s.NodesWillEnter || s.NodesShouldEnter || s.NodesShouldLoad {
		return true
	}
	for _, c := range s.ChildrenTransitions {
		if c.Changed() {
			return true
		}
	}
	return false
}

// LeafTransitions flattens ChildrenTransitions to one diff per leaf of the
// tree that was on screen when the change arrived.
func (s TransitionState) LeafTransitions() []*Diff {
	var out []*Diff
	for _, c := range s.ChildrenTransitions {
		c.appendLeaves(&out)
	}
	return out
}

// Reduce applies one phase completion. Each event flips the guard that lets
// the next render pick the following sub-phase; events that do not apply to
// the current state leave it unchanged.
func Reduce(s TransitionState, ev PhaseEvent) TransitionState {
	switch ev.Kind {
	case EventMounted, EventLoadBefore:
		if !s.NodesDoneLoad {
			s.NodesShouldLoad = true
		}
	case EventLoadDone:
		if !s.NodesDoneLoad {
			s.NodesShouldLoad = false
			s.NodesDoneLoad = true
			s.NodesDoneClipPathLoad = true
		}
	case EventExitClipDone:
		if s.NodesWillExit {
			s.NodesDoneClipPathExit = true
		}
	case EventExitDone:
		if s.NodesWillExit {
			s.NodesWillExit = false
			s.NodesDoneClipPathExit = false
			s.OldProps = nil
			s.oldDiffs = nil
			if !s.NodesWillEnter {
				s.ChildrenTransitions = nil
				s.newDiffs = nil
				s.prevLeaf = nil
			}
		}
	case EventEnterBeforeDone:
		if s.NodesWillEnter && !s.NodesWillExit {
			s.NodesShouldEnter = true
		}
	case EventEnterClipDone:
		if s.NodesShouldEnter {
			s.NodesDoneClipPathEnter = true
		}
	case EventEnterDone:
		if s.NodesShouldEnter {
			s.NodesWillEnter = false
			s.NodesShouldEnter = false
			s.NodesDoneClipPathEnter = false
			s.ChildrenTransitions = nil
			s.oldDiffs = nil
			s.newDiffs = nil
			s.prevLeaf = nil
		}
	}
	return s
}

// Transition sequences the load, exit, enter and move phases of a chart tree.
// It owns the TransitionState; phase completions reach it only as PhaseEvents
// through Dispatch.
type Transition struct {
	animate   AnimateConfig
	current   *Node
	state     TransitionState
	gen       uint64
	rev       uint64
	listeners []func(PhaseEvent, TransitionState)
}

// NewTransition creates a transition for an initial tree. The tree starts in
// the before-load phase; dispatch EventMounted once it has been committed.
func NewTransition(root *Node, animate AnimateConfig) *Transition {
	return &Transition{animate: animate, current: root}
}

// Animate returns the scene-level animate settings.
func (t *Transition) Animate() AnimateConfig {
	return t.animate
}

// SetAnimate replaces the scene-level animate settings.
func (t *Transition) SetAnimate(cfg AnimateConfig) {
	t.animate = cfg
}

// State returns a copy of the current state.
func (t *Transition) State() TransitionState {
	return t.state
}

// Generation counts SetChildren calls.
func (t *Transition) Generation() uint64 {
	return t.gen
}

// Current returns the latest tree passed in, whether or not it is rendered.
func (t *Transition) Current() *Node {
	return t.current
}

// Rendered returns the tree to draw: the pre-exit snapshot while exiting
// nodes animate out, the latest tree otherwise.
func (t *Transition) Rendered() *Node {
	if t.state.NodesWillExit && t.state.OldProps != nil {
		return t.state.OldProps
	}
	return t.current
}

// SetChildren receives a new tree. The keyed diff is taken against the tree
// on screen, so a change arriving mid-exit diffs from the snapshot the user
// is looking at. Load flags survive; every exit and enter flag is recomputed.
func (t *Transition) SetChildren(next *Node) {
	base := t.Rendered()
	acc := treeDiff{
		prevLeaves: make(map[*Node]*Diff),
		nextLeaves: make(map[*Node]*Diff),
		pairs:      make(map[*Node]*Node),
	}
	ct := acc.node(base, next)
	entering, exiting := acc.entering, acc.exiting

	s := t.state
	s.NodesWillExit = exiting
	s.NodesWillEnter = entering
	s.NodesShouldEnter = false
	s.NodesDoneClipPathEnter = false
	s.NodesDoneClipPathExit = false
	s.ChildrenTransitions = topLevel(ct, base)
	s.newDiffs = acc.nextLeaves
	s.prevLeaf = acc.pairs
	s.oldDiffs = nil
	s.OldProps = nil
	if exiting {
		s.OldProps = base
		s.oldDiffs = acc.prevLeaves
	}

	t.gen++
	t.rev++
	t.state = s
	t.current = next
}

// Revision increases on every SetChildren and every applied event.
func (t *Transition) Revision() uint64 {
	return t.rev
}

// topLevel splits the root transition into per-child entries.
func topLevel(ct ChildTransition, root *Node) []ChildTransition {
	if root == nil {
		return nil
	}
	if root.Type == NodeTypeGroup {
		return ct.Children
	}
	return []ChildTransition{ct}
}

// OnEvent registers fn to observe every applied event and the state it
// produced.
func (t *Transition) OnEvent(fn func(PhaseEvent, TransitionState)) {
	t.listeners = append(t.listeners, fn)
}

// Dispatch reduces ev into the state. It reports whether the state changed.
// Exit and enter events from an older generation are ignored.
func (t *Transition) Dispatch(ev PhaseEvent) bool {
	if ev.Generation != t.gen && generational(ev.Kind) {
		return false
	}
	next := Reduce(t.state, ev)
	if stateEqual(next, t.state) {
		return false
	}
	t.state = next
	t.rev++
	for _, fn := range t.listeners {
		fn(ev, next)
	}
	return true
}

// Advance dispatches the event that completes the pending sub-phase. The
// scene uses it when no rendered leaf takes part in a phase, for example
// right after mount or when an entering series has no counterpart on screen.
func (t *Transition) Advance() bool {
	s := t.state
	var kind PhaseEventKind
	switch {
	case !s.NodesDoneLoad && !s.NodesShouldLoad:
		kind = EventMounted
	case !s.NodesDoneLoad:
		kind = EventLoadDone
	case s.NodesWillExit:
		kind = EventExitDone
	case s.NodesWillEnter && !s.NodesShouldEnter:
		kind = EventEnterBeforeDone
	case s.NodesWillEnter:
		kind = EventEnterDone
	default:
		return false
	}
	return t.Dispatch(PhaseEvent{Kind: kind, Leaf: -1, Generation: t.gen})
}

// Pending reports whether a sub-phase is waiting for completion.
func (t *Transition) Pending() bool {
	s := t.state
	return !s.NodesDoneLoad || s.NodesWillExit || s.NodesWillEnter
}

func generational(k PhaseEventKind) bool {
	switch k {
	case EventMounted, EventLoadBefore, EventLoadDone:
		return false
	}
	return true
}

func stateEqual(a, b TransitionState) bool {
	return a.NodesWillExit == b.NodesWillExit &&
		a.NodesWillEnter == b.NodesWillEnter &&
		a.NodesShouldEnter == b.NodesShouldEnter &&
		a.NodesShouldLoad == b.NodesShouldLoad &&
		a.NodesDoneLoad == b.NodesDoneLoad &&
		a.NodesDoneClipPathLoad == b.NodesDoneClipPathLoad &&
		a.NodesDoneClipPathEnter == b.NodesDoneClipPathEnter &&
		a.NodesDoneClipPathExit == b.NodesDoneClipPathExit &&
		a.OldProps == b.OldProps &&
		len(a.ChildrenTransitions) == len(b.ChildrenTransitions)
}

// leafDiff returns the diff of a rendered leaf, or nil when it had no
// comparable counterpart.
func (t *Transition) leafDiff(leaf *Node) *Diff {
	s := t.state
	if s.NodesWillExit && s.OldProps != nil {
		return s.oldDiffs[leaf]
	}
	return s.newDiffs[leaf]
}

// Domain returns the domain of the rendered tree along axis: the root's
// pinned domain, else the union of what the leaves report, else
// DefaultDomain.
func (t *Transition) Domain(axis Axis) Domain {
	return TreeDomain(t.Rendered(), axis)
}

// TreeDomain computes the domain of a tree along axis.
func TreeDomain(root *Node, axis Axis) Domain {
	if root == nil {
		return DefaultDomain
	}
	if d, ok := root.Domain[axis]; ok {
		return d
	}
	var (
		out   Domain
		found bool
	)
	for _, leaf := range root.Leaves() {
		d, ok := leaf.Domain[axis]
		if !ok && leaf.Descriptor != nil && leaf.Descriptor.GetDomain != nil {
			d, ok = leaf.Descriptor.GetDomain(leaf, axis)
		}
		if !ok {
			continue
		}
		if !found {
			out, found = d, true
			continue
		}
		out = out.Union(d)
	}
	if !found {
		return DefaultDomain
	}
	return out
}
