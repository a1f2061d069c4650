package bough

import (
	"log/slog"
	"reflect"
	"time"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, applied phase events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event PhaseEvent)
}

// Prop keys the scene writes into every leaf's prop bag.
const (
	PropData       = "data"
	PropDomain     = "domain"
	PropClipWidth  = "clipWidth"
	PropTranslateX = "translateX"
)

// alwaysAnimated are tweened regardless of the whitelist.
var alwaysAnimated = []string{PropData, PropDomain, PropClipWidth, PropTranslateX}

// SceneConfig configures a Scene. The zero value animates every prop with a
// 1000ms quadInOut tween.
type SceneConfig struct {
	Animate AnimateConfig
	// AnimationWhitelist names the leaf props to tween besides data, domain
	// and the clip keys. Other props are passed through as-is. Empty means
	// every prop animates.
	AnimationWhitelist []string
}

// Frame is one emission for one rendered leaf.
type Frame struct {
	Leaf  *Node
	Index int
	Phase Phase
	Props map[string]any
	Info  AnimationInfo
}

// Data returns the interpolated data series of the frame.
func (f Frame) Data() []Datum {
	l, ok := toList(f.Props[PropData])
	if !ok {
		return nil
	}
	out := make([]Datum, 0, len(l))
	for _, v := range l {
		if d, ok := toRecord(v); ok {
			out = append(out, d)
		}
	}
	return out
}

// ClipWidth returns the clip rectangle width of a continuous leaf.
func (f Frame) ClipWidth() (float64, bool) {
	return toNumber(f.Props[PropClipWidth])
}

// TranslateX returns the clip rectangle offset, zero when unset.
func (f Frame) TranslateX() float64 {
	v, _ := toNumber(f.Props[PropTranslateX])
	return v
}

// Domain returns the interpolated domain along axis.
func (f Frame) Domain(axis Axis) Domain {
	m, ok := toRecord(f.Props[PropDomain])
	if !ok {
		return DefaultDomain
	}
	d, ok := domainFromValue(m[string(axis)])
	if !ok {
		return DefaultDomain
	}
	return d
}

// leafState is the per-leaf animation bookkeeping of a Scene.
type leafState struct {
	node        *Node
	anim        *Animation
	target      map[string]any
	passthrough map[string]any
	phase       Phase
	gen         uint64
	frame       Frame
	err         error
}

// endedTween is a finished tween whose callbacks run after the frame's
// animations have all advanced.
type endedTween struct {
	index    int
	callback func()
	onEnd    func()
}

// maxPhaseHops bounds the sub-phases skipped within one render.
const maxPhaseHops = 8

// Scene drives a Transition and one Animation per rendered leaf. Call Update
// once per frame from a single goroutine.
type Scene struct {
	cfg        SceneConfig
	whitelist  map[string]struct{}
	transition *Transition
	leaves     []*leafState
	ended      []endedTween
	mounted    bool
	frame      uint64

	onFrame []func(Frame)

	injectQueue []*Node
	testRunner  *TestRunner
	snapshots   []Snapshot

	store  EntityStore
	stats  *Stats
	logger *slog.Logger
	debug  bool
}

// NewScene creates an unmounted scene.
func NewScene(cfg SceneConfig) *Scene {
	s := &Scene{
		cfg:    cfg,
		stats:  &Stats{},
		logger: debugLogger,
	}
	if len(cfg.AnimationWhitelist) > 0 {
		s.whitelist = make(map[string]struct{}, len(cfg.AnimationWhitelist)+len(alwaysAnimated))
		for _, k := range alwaysAnimated {
			s.whitelist[k] = struct{}{}
		}
		for _, k := range cfg.AnimationWhitelist {
			s.whitelist[k] = struct{}{}
		}
	}
	return s
}

// Mount commits the first tree and starts its load phase. An unknown scene
// easing is returned as an error wrapping ErrUnknownEasing. Mounting again
// discards the previous tree and its animations.
func (s *Scene) Mount(root *Node) error {
	if _, err := EasingFunc(s.cfg.Animate.Easing); err != nil {
		return err
	}
	if s.mounted {
		s.Unmount()
	}
	s.transition = NewTransition(root, s.cfg.Animate)
	s.transition.OnEvent(s.onPhaseEvent)
	s.mounted = true
	s.render()
	return nil
}

// Mounted reports whether a tree is mounted.
func (s *Scene) Mounted() bool {
	return s.mounted
}

// SetData replaces the tree. Entering and exiting data are detected by key
// and animated through the exit and enter phases; a scene that is not yet
// mounted is mounted with root.
func (s *Scene) SetData(root *Node) error {
	if !s.mounted {
		return s.Mount(root)
	}
	s.stats.DataUpdates.Inc()
	s.transition.SetChildren(root)
	s.render()
	return nil
}

// Update advances every running animation by dt, then applies the phase
// completions they reported and re-renders once.
func (s *Scene) Update(dt time.Duration) {
	if !s.mounted {
		return
	}
	s.frame++
	s.stats.Frames.Inc()

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjections()

	advanced := 0
	for _, st := range s.leaves {
		if st.anim != nil && st.anim.Running() {
			st.anim.Update(dt)
			advanced++
		}
	}
	events := s.flushEnded()
	s.debugLog(s.frame, advanced, events)
}

// Unmount stops every animation. No further frames are emitted.
func (s *Scene) Unmount() {
	for _, st := range s.leaves {
		if st.anim != nil {
			st.anim.Stop()
		}
	}
	s.leaves = nil
	s.ended = nil
	s.mounted = false
}

// OnFrame registers fn to receive every frame a leaf emits.
func (s *Scene) OnFrame(fn func(Frame)) {
	s.onFrame = append(s.onFrame, fn)
}

// Frames returns the latest frame of every rendered leaf, tagged with the
// leaf's current phase.
func (s *Scene) Frames() []Frame {
	out := make([]Frame, len(s.leaves))
	for i, st := range s.leaves {
		out[i] = st.frame
		out[i].Phase = st.phase
	}
	return out
}

// Transition returns the scene's transition, or nil before Mount.
func (s *Scene) Transition() *Transition {
	return s.transition
}

// FrameCount returns the number of Update calls since NewScene.
func (s *Scene) FrameCount() uint64 {
	return s.frame
}

// Stats returns the scene's counters.
func (s *Scene) Stats() *Stats {
	return s.stats
}

// Idle reports whether no animation is running.
func (s *Scene) Idle() bool {
	for _, st := range s.leaves {
		if st.anim != nil && st.anim.Running() {
			return false
		}
	}
	return true
}

// Settled reports whether no phase is pending and no animation is running.
func (s *Scene) Settled() bool {
	return s.mounted && !s.transition.Pending() && s.Idle()
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, tree depth and
// child count warnings are logged and every frame and phase event is logged
// at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// SetLogger replaces the logger used in debug mode. A nil logger restores
// the default stderr logger.
func (s *Scene) SetLogger(l *slog.Logger) {
	if l == nil {
		l = NewLogger(slog.LevelDebug)
	}
	s.logger = l
	debugLogger = l
}

func (s *Scene) onPhaseEvent(ev PhaseEvent, st TransitionState) {
	s.stats.PhaseEvents.Inc()
	if s.store != nil {
		s.store.EmitEvent(ev)
	}
	if s.debug {
		s.logger.Debug("phase event",
			"event", ev.Kind.String(),
			"leaf", ev.Leaf,
			"generation", ev.Generation,
			"animating", st.Animating(),
		)
	}
}

// render pushes the current sub-phase's props to every rendered leaf. When
// no leaf takes part in a pending sub-phase, the phase is completed on the
// spot and the next one rendered.
func (s *Scene) render() {
	for range maxPhaseHops {
		if s.renderLeaves() {
			return
		}
		if !s.transition.Advance() {
			return
		}
	}
}

// renderLeaves reports whether the pending sub-phase has a participant, or
// no sub-phase is pending.
func (s *Scene) renderLeaves() bool {
	var leaves []*Node
	if root := s.transition.Rendered(); root != nil {
		leaves = root.Leaves()
	}
	for i := len(leaves); i < len(s.leaves); i++ {
		if st := s.leaves[i]; st.anim != nil {
			st.anim.Stop()
		}
	}
	if len(s.leaves) > len(leaves) {
		s.leaves = s.leaves[:len(leaves)]
	}

	x := s.transition.Domain(AxisX)
	y := s.transition.Domain(AxisY)
	gen := s.transition.Generation()
	participating := false
	for i, leaf := range leaves {
		props := s.transition.Props(leaf, i)
		if props.Callback != nil {
			participating = true
		}
		animated, pass := s.split(propBag(props, leaf, x, y))
		if i >= len(s.leaves) {
			s.mountLeaf(i, leaf, props, animated, pass, gen)
			continue
		}
		s.updateLeaf(i, leaf, props, animated, pass, gen)
	}
	return participating || !s.transition.Pending()
}

func (s *Scene) mountLeaf(i int, leaf *Node, props TransitionProps, animated, pass map[string]any, gen uint64) {
	st := &leafState{node: leaf, target: animated, passthrough: pass, phase: props.Phase, gen: gen}
	s.leaves = append(s.leaves, st)

	data := []any{animated}
	if props.Callback != nil {
		// A single value never tweens; queue it again so the phase reports.
		data = append(data, animated)
	}
	anim, err := NewAnimation(props.AnimationConfig(s.tweenEnd(i, props)), s.renderFunc(i), data...)
	if err != nil {
		s.failLeaf(i, st, props, err)
		return
	}
	st.anim = anim
	s.emit(i, animated, AnimationInfo{})
}

func (s *Scene) updateLeaf(i int, leaf *Node, props TransitionProps, animated, pass map[string]any, gen uint64) {
	st := s.leaves[i]
	st.node = leaf
	passChanged := !reflect.DeepEqual(pass, st.passthrough)
	st.passthrough = pass
	changed := !reflect.DeepEqual(animated, st.target)
	restart := props.Callback != nil && (props.Phase != st.phase || gen != st.gen)
	st.phase = props.Phase
	st.gen = gen
	if !changed && !restart {
		// A running tween carries new pass-through props on its next frame.
		if passChanged && (st.anim == nil || !st.anim.Running()) {
			s.emit(i, s.leafValue(st), AnimationInfo{Progress: 1})
		}
		return
	}
	st.target = animated

	if st.anim == nil {
		s.snap(i, props, animated)
		return
	}
	if err := st.anim.Configure(props.AnimationConfig(s.tweenEnd(i, props))); err != nil {
		st.anim.Stop()
		st.anim = nil
		s.failLeaf(i, st, props, err)
		return
	}
	st.anim.Set(animated)
}

// failLeaf renders a leaf without animation after a configuration error. The
// rest of the tree keeps animating.
func (s *Scene) failLeaf(i int, st *leafState, props TransitionProps, err error) {
	st.err = err
	s.stats.Errors.Inc()
	s.logger.Error("leaf animation disabled", "leaf", st.node.Name, "index", i, "error", err)
	s.snap(i, props, st.target)
}

// snap commits a target without tweening and reports the phase done at the
// end of the frame.
func (s *Scene) snap(i int, props TransitionProps, target map[string]any) {
	s.emit(i, target, AnimationInfo{Progress: 1, Terminating: true})
	if props.Callback != nil {
		s.ended = append(s.ended, endedTween{index: i, callback: props.Callback})
	}
}

// LeafError returns the configuration error that disabled animation of the
// rendered leaf at index, if any.
func (s *Scene) LeafError(index int) error {
	if index < 0 || index >= len(s.leaves) {
		return nil
	}
	return s.leaves[index].err
}

// leafValue is the animated prop bag a leaf currently shows.
func (s *Scene) leafValue(st *leafState) any {
	if st.anim != nil {
		return st.anim.Value()
	}
	return st.target
}

func (s *Scene) tweenEnd(i int, props TransitionProps) func() {
	callback, onEnd := props.Callback, props.Animate.OnEnd
	return func() {
		s.ended = append(s.ended, endedTween{index: i, callback: callback, onEnd: onEnd})
	}
}

func (s *Scene) renderFunc(i int) RenderFunc {
	return func(v any, info AnimationInfo) {
		s.emit(i, v, info)
	}
}

func (s *Scene) emit(i int, v any, info AnimationInfo) {
	st := s.leaves[i]
	props := make(map[string]any, len(st.passthrough)+len(st.target))
	for k, pv := range st.passthrough {
		props[k] = pv
	}
	if m, ok := toRecord(v); ok {
		for k, mv := range m {
			props[k] = mv
		}
	}
	st.frame = Frame{Leaf: st.node, Index: i, Phase: st.phase, Props: props, Info: info}
	s.stats.FramesEmitted.Inc()
	for _, fn := range s.onFrame {
		fn(st.frame)
	}
}

// flushEnded runs the callbacks of the tweens that finished this frame, then
// re-renders if the transition moved. It returns the number of callbacks run.
func (s *Scene) flushEnded() int {
	ended := s.ended
	s.ended = nil
	rev := s.transition.Revision()
	n := 0
	for _, e := range ended {
		if e.callback != nil {
			e.callback()
			n++
		}
	}
	switch {
	case s.transition.Revision() != rev:
		s.render()
	case s.transition.Pending() && s.Idle() && len(s.ended) == 0:
		// Nothing left that could report the pending phase.
		if s.transition.Advance() {
			s.render()
		}
	}
	if s.transition.Pending() {
		return n
	}
	for _, e := range ended {
		if e.onEnd == nil || e.index >= len(s.leaves) {
			continue
		}
		if st := s.leaves[e.index]; st.phase == PhaseSettled && (st.anim == nil || !st.anim.Running()) {
			e.onEnd()
		}
	}
	return n
}

// split separates the tweened props from the pass-through ones.
func (s *Scene) split(bag map[string]any) (animated, pass map[string]any) {
	if s.whitelist == nil {
		return bag, nil
	}
	animated = make(map[string]any, len(s.whitelist))
	pass = make(map[string]any)
	for k, v := range bag {
		if _, ok := s.whitelist[k]; ok {
			animated[k] = v
			continue
		}
		pass[k] = v
	}
	return animated, pass
}

// propBag assembles everything a leaf renders with.
func propBag(p TransitionProps, leaf *Node, x, y Domain) map[string]any {
	bag := make(map[string]any, len(leaf.Props)+len(alwaysAnimated))
	for k, v := range leaf.Props {
		bag[k] = v
	}
	data := make([]any, len(p.Data))
	for i, d := range p.Data {
		data[i] = d
	}
	bag[PropData] = data
	bag[PropDomain] = map[string]any{string(AxisX): x.list(), string(AxisY): y.list()}
	if p.ClipWidth != nil {
		bag[PropClipWidth] = *p.ClipWidth
		tx := 0.0
		if p.TranslateX != nil {
			tx = *p.TranslateX
		}
		bag[PropTranslateX] = tx
	}
	return bag
}
