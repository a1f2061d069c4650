package bough

import "time"

// Phase is the sub-phase a leaf renders in.
type Phase uint8

const (
	PhaseSettled     Phase = iota // no transition pending; value changes move
	PhaseBeforeLoad               // first commit, load "before" state
	PhaseLoad                     // tweening to the load "after" state
	PhaseExitClip                 // continuous shapes shrink their clip rectangle
	PhaseExit                     // exiting data tween to their "before" state
	PhaseBeforeEnter              // entering data committed hidden
	PhaseEnterClip                // continuous shapes grow their clip rectangle
	PhaseEnter                    // entering data tween to their "after" state
)

func (p Phase) String() string {
	switch p {
	case PhaseBeforeLoad:
		return "before-load"
	case PhaseLoad:
		return "load"
	case PhaseExitClip:
		return "exit-clip"
	case PhaseExit:
		return "exit"
	case PhaseBeforeEnter:
		return "before-enter"
	case PhaseEnterClip:
		return "enter-clip"
	case PhaseEnter:
		return "enter"
	}
	return "settled"
}

// TransitionProps is the prop bag a leaf animates toward in its current
// sub-phase.
type TransitionProps struct {
	Phase Phase
	// Animate carries the resolved timing of the tween: Duration, Delay and
	// Easing are final; OnEnd is the user callback for settled tweens.
	Animate AnimateConfig
	Data    []Datum
	// ClipWidth is set for continuous shapes.
	ClipWidth *float64
	// TranslateX shifts the clip rectangle when leading data exit.
	TranslateX *float64
	// Callback reports the sub-phase complete. The renderer calls it once,
	// after the tween toward these props has finished.
	Callback func()
}

// AnimationConfig converts the resolved timing into an Animation config.
// onEnd replaces the user callback.
func (p TransitionProps) AnimationConfig(onEnd func()) AnimationConfig {
	return AnimationConfig{
		Duration: p.Animate.Duration,
		Delay:    p.Animate.Delay,
		Easing:   p.Animate.Easing,
		OnEnd:    onEnd,
	}
}

// childAnimate is the layered animate configuration of one leaf: node
// settings over scene settings over the descriptor's defaults.
type childAnimate struct {
	duration time.Duration
	delay    time.Duration
	move     time.Duration
	easing   string
	onEnd    func()

	load, exit, enter PhaseConfig
	hasLoad           bool
}

func (t *Transition) resolveAnimate(child *Node) childAnimate {
	scene := t.animate
	var node AnimateConfig
	if child.Animate != nil {
		node = *child.Animate
	}
	var def Transitions
	if dt := child.DefaultTransitions(); dt != nil {
		def = *dt
	}

	c := childAnimate{
		duration: firstDuration(node.Duration, scene.Duration),
		delay:    firstDuration(node.Delay, scene.Delay),
		easing:   node.Easing,
		onEnd:    node.OnEnd,
	}
	if c.easing == "" {
		c.easing = scene.Easing
	}
	if c.onEnd == nil {
		c.onEnd = scene.OnEnd
	}
	c.move = firstDuration(node.Move, scene.Move, c.duration)
	c.load = mergePhase(node.OnLoad, scene.OnLoad, def.OnLoad)
	c.exit = mergePhase(node.OnExit, scene.OnExit, def.OnExit)
	c.enter = mergePhase(node.OnEnter, scene.OnEnter, def.OnEnter)
	c.hasLoad = node.OnLoad != nil || scene.OnLoad != nil || def.OnLoad != nil
	return c
}

// phaseDuration falls back from the phase to the generic duration.
func (c childAnimate) phaseDuration(p PhaseConfig) time.Duration {
	return firstDuration(p.Duration, c.duration)
}

// loadDuration is Instant when no layer configures a load phase.
func (c childAnimate) loadDuration() time.Duration {
	if !c.hasLoad {
		return Instant
	}
	return c.phaseDuration(c.load)
}

func (c childAnimate) phaseDelay(p PhaseConfig) time.Duration {
	return firstDuration(p.Delay, c.delay)
}

func firstDuration(ds ...time.Duration) time.Duration {
	for _, d := range ds {
		if d != 0 {
			return d
		}
	}
	return 0
}

// mergePhase combines phase configs field by field; earlier layers win.
func mergePhase(layers ...*PhaseConfig) PhaseConfig {
	var out PhaseConfig
	for _, l := range layers {
		if l == nil {
			continue
		}
		if out.Duration == 0 {
			out.Duration = l.Duration
		}
		if out.Delay == 0 {
			out.Delay = l.Delay
		}
		if out.Before == nil {
			out.Before = l.Before
		}
		if out.After == nil {
			out.After = l.After
		}
		if out.BeforeClipPathWidth == nil {
			out.BeforeClipPathWidth = l.BeforeClipPathWidth
		}
		if out.AfterClipPathWidth == nil {
			out.AfterClipPathWidth = l.AfterClipPathWidth
		}
	}
	return out
}

// phaseOf picks the sub-phase of a leaf from the root flags.
func (t *Transition) phaseOf(child *Node, entering, exiting KeySet) Phase {
	s := t.state
	switch {
	case !s.NodesDoneLoad:
		if s.NodesShouldLoad {
			return PhaseLoad
		}
		return PhaseBeforeLoad
	case s.NodesWillExit:
		if child.Continuous() && !exiting.Empty() && !s.NodesDoneClipPathExit {
			return PhaseExitClip
		}
		return PhaseExit
	case s.NodesWillEnter:
		if !s.NodesShouldEnter {
			return PhaseBeforeEnter
		}
		if child.Continuous() && !entering.Empty() && !s.NodesDoneClipPathEnter {
			return PhaseEnterClip
		}
		return PhaseEnter
	}
	return PhaseSettled
}

// Props computes the props the rendered leaf at index animates toward. It
// does not change the transition; the returned Callback does, when called.
func (t *Transition) Props(child *Node, index int) TransitionProps {
	c := t.resolveAnimate(child)
	var entering, exiting KeySet
	if d := t.leafDiff(child); d != nil {
		entering, exiting = d.Entering, d.Exiting
	}
	data := child.ChildData()
	extent := child.ClipExtent()
	continuous := child.Continuous()

	p := TransitionProps{
		Phase: t.phaseOf(child, entering, exiting),
		Data:  data,
		Animate: AnimateConfig{
			Duration: c.move,
			Delay:    c.delay,
			Move:     c.move,
			Easing:   c.easing,
			OnEnd:    c.onEnd,
		},
	}
	if continuous {
		p.ClipWidth = floatPtr(extent)
	}

	switch p.Phase {
	case PhaseBeforeLoad:
		p.Animate.Duration = c.loadDuration()
		if c.hasLoad {
			p.Data = applyPhase(data, nil, c.load.Before)
		}
		if continuous {
			p.ClipWidth = clipWidth(c.load.BeforeClipPathWidth, p.Data, child, nil, 0)
		}

	case PhaseLoad:
		p.Animate.Duration = c.loadDuration()
		p.Animate.Delay = c.phaseDelay(c.load)
		if c.hasLoad {
			p.Data = applyPhase(data, nil, c.load.After)
		}
		if continuous {
			p.ClipWidth = clipWidth(c.load.AfterClipPathWidth, p.Data, child, nil, extent)
		}
		p.Callback = t.callback(EventLoadDone, index)

	case PhaseExitClip:
		p.Animate.Duration = c.phaseDuration(c.exit)
		p.Animate.Delay = c.phaseDelay(c.exit)
		p.ClipWidth, p.TranslateX = exitClip(c.exit, data, child, exiting)
		p.Callback = t.callback(EventExitClipDone, index)

	case PhaseExit:
		if exiting.Empty() {
			// Wait out the exit before moving anything.
			p.Animate.Delay = resolveDuration(c.phaseDuration(c.exit), DefaultDuration)
			break
		}
		p.Animate.Duration = c.phaseDuration(c.exit)
		p.Animate.Delay = c.phaseDelay(c.exit)
		p.Data = applyPhase(data, exiting, c.exit.Before)
		if continuous {
			p.ClipWidth, p.TranslateX = exitClip(c.exit, data, child, exiting)
		}
		p.Callback = t.callback(EventExitDone, index)

	case PhaseBeforeEnter:
		if entering.Empty() {
			break
		}
		// The hidden state is committed, not tweened. Surviving data hold
		// their previous values and move during the enter.
		p.Animate.Duration = Instant
		p.Data = applyPhase(t.survivors(child, data, entering), entering, c.enter.Before)
		if continuous {
			p.ClipWidth = clipWidth(c.enter.BeforeClipPathWidth, data, child, entering,
				remainingWidth(data, entering, extent))
		}
		p.Callback = t.callback(EventEnterBeforeDone, index)

	case PhaseEnterClip:
		p.Animate.Duration = c.phaseDuration(c.enter)
		p.Animate.Delay = c.phaseDelay(c.enter)
		p.Data = applyPhase(t.survivors(child, data, entering), entering, c.enter.Before)
		p.ClipWidth = clipWidth(c.enter.AfterClipPathWidth, data, child, entering, extent)
		p.Callback = t.callback(EventEnterClipDone, index)

	case PhaseEnter:
		if entering.Empty() {
			break
		}
		p.Animate.Duration = c.phaseDuration(c.enter)
		p.Animate.Delay = c.phaseDelay(c.enter)
		p.Data = applyPhase(data, entering, c.enter.After)
		p.Callback = t.callback(EventEnterDone, index)
	}
	return p
}

func (t *Transition) callback(kind PhaseEventKind, index int) func() {
	ev := PhaseEvent{Kind: kind, Leaf: index, Generation: t.gen}
	return func() { t.Dispatch(ev) }
}

// survivors returns data with every datum not in entering laid over by the
// values it had in the tree the change was diffed from.
func (t *Transition) survivors(child *Node, data []Datum, entering KeySet) []Datum {
	prev := t.state.prevLeaf[child]
	if prev == nil {
		return data
	}
	old := KeyedData(prev.ChildData())
	out := make([]Datum, len(data))
	for i, d := range data {
		k := KeyOf(d, i)
		od, ok := old[k]
		if !ok || entering.Has(k) {
			out[i] = d
			continue
		}
		out[i] = mergeDatum(d, od)
	}
	return out
}

// applyPhase merges fn's fields into every datum whose key is in nodes, or
// into every datum when nodes is nil. A nil fn leaves the data untouched.
func applyPhase(data []Datum, nodes KeySet, fn func(Datum, int, []Datum) Datum) []Datum {
	if fn == nil {
		return data
	}
	out := make([]Datum, len(data))
	for i, d := range data {
		if nodes != nil && !nodes.Has(KeyOf(d, i)) {
			out[i] = d
			continue
		}
		out[i] = mergeDatum(d, fn(d, i, data))
	}
	return out
}

func floatPtr(v float64) *float64 {
	return &v
}

func clipWidth(fn func([]Datum, *Node, KeySet) float64, data []Datum, child *Node, nodes KeySet, fallback float64) *float64 {
	if fn != nil {
		return floatPtr(fn(data, child, nodes))
	}
	return floatPtr(fallback)
}

// exitClip sizes the shrinking clip rectangle. When the exiting data lead the
// series the rectangle is shifted right so the tail stays in view.
func exitClip(cfg PhaseConfig, data []Datum, child *Node, exiting KeySet) (*float64, *float64) {
	extent := child.ClipExtent()
	w := clipWidth(cfg.BeforeClipPathWidth, data, child, exiting, remainingWidth(data, exiting, extent))
	if !leadingKeys(data, exiting) {
		return w, nil
	}
	return w, floatPtr(extent - *w)
}

// remainingWidth is the share of extent spanned by the data not in nodes,
// counted in segments between consecutive points.
func remainingWidth(data []Datum, nodes KeySet, extent float64) float64 {
	if len(data) < 2 {
		return 0
	}
	n := 0
	for i, d := range data {
		if nodes.Has(KeyOf(d, i)) {
			n++
		}
	}
	keep := len(data) - n - 1
	if keep <= 0 {
		return 0
	}
	return extent * float64(keep) / float64(len(data)-1)
}

// leadingKeys reports whether nodes is exactly a prefix of data's keys.
func leadingKeys(data []Datum, nodes KeySet) bool {
	if nodes.Empty() || nodes.Len() >= len(data) {
		return false
	}
	for i := 0; i < nodes.Len(); i++ {
		if !nodes.Has(KeyOf(data[i], i)) {
			return false
		}
	}
	return true
}
