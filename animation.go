package bough

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultDuration is the tween length used when a config leaves Duration at
// zero.
const DefaultDuration = 1000 * time.Millisecond

// Instant requests a zero-length tween or phase. A zero Duration means
// "inherit", so zero length has to be spelled out.
const Instant time.Duration = -1

// resolveDuration maps the zero/Instant conventions onto a concrete length.
func resolveDuration(d, fallback time.Duration) time.Duration {
	switch {
	case d < 0:
		return 0
	case d == 0:
		return fallback
	}
	return d
}

// AnimationInfo describes the frame being emitted to a RenderFunc.
type AnimationInfo struct {
	// Progress is the linear (un-eased) fraction of the current tween.
	Progress float64
	// Animating is false on the final frame of a tween.
	Animating bool
	// Terminating marks the final frame of a tween.
	Terminating bool
}

// TweenState is a snapshot of an Animation.
type TweenState struct {
	Value     any
	Progress  float64
	Animating bool
}

// RenderFunc receives every frame an Animation emits.
type RenderFunc func(value any, info AnimationInfo)

// AnimationConfig controls the timing of an Animation.
type AnimationConfig struct {
	// Duration of each tween. Zero uses DefaultDuration; Instant completes on
	// the next Update.
	Duration time.Duration
	// Delay before each tween starts advancing.
	Delay time.Duration
	// Easing is a catalog name; empty uses DefaultEasing.
	Easing string
	// OnEnd fires once each time the queue drains.
	OnEnd func()
}

// Animation tweens one subject through a FIFO of target values. Call Update
// each frame with the elapsed time; every call emits at most one frame to
// the RenderFunc.
//
// There is no global animation manager; callers run Update themselves.
type Animation struct {
	cfg    AnimationConfig
	easeFn ease.TweenFunc
	render RenderFunc

	current  any
	queue    Queue
	interp   Interpolator
	tween    *gween.Tween
	active   time.Duration // length of the in-flight tween
	elapsed  time.Duration
	wait     time.Duration
	progress float64
	running  bool
	stopped  bool
}

// NewAnimation mounts an animation. The first value in data is rendered
// as-is; any further values are queued and the first of them starts tweening
// immediately. An unknown easing name returns an error wrapping
// ErrUnknownEasing.
func NewAnimation(cfg AnimationConfig, render RenderFunc, data ...any) (*Animation, error) {
	a := &Animation{render: render}
	if err := a.Configure(cfg); err != nil {
		return nil, err
	}
	if len(data) > 0 {
		a.current = data[0]
		a.queue = NewQueue(data[1:]...)
	}
	if a.queue.Len() > 0 {
		a.begin()
	}
	return a, nil
}

// Configure replaces the timing used by tweens that begin after the call.
// The in-flight tween keeps its own duration, delay and easing; OnEnd is
// read when the queue drains.
func (a *Animation) Configure(cfg AnimationConfig) error {
	fn, err := EasingFunc(cfg.Easing)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.easeFn = fn
	return nil
}

// Config returns the active configuration.
func (a *Animation) Config() AnimationConfig {
	return a.cfg
}

// Set replaces everything pending with v. The in-flight tween is cancelled
// and a new one starts from the value currently rendered, so the subject
// never snaps back to the old start.
func (a *Animation) Set(v any) {
	if a.stopped {
		return
	}
	a.queue = NewQueue(v)
	a.begin()
}

// Enqueue appends a sequence of targets. An in-flight tween is left alone;
// an idle animation starts on the first of vs.
func (a *Animation) Enqueue(vs ...any) {
	if a.stopped || len(vs) == 0 {
		return
	}
	a.queue = a.queue.Enqueue(vs...)
	if !a.running {
		a.begin()
	}
}

// Update advances the active tween by dt and emits one frame.
func (a *Animation) Update(dt time.Duration) {
	if a.stopped || !a.running {
		return
	}
	if a.wait > 0 {
		if dt < a.wait {
			a.wait -= dt
			return
		}
		dt -= a.wait
		a.wait = 0
	}
	a.elapsed += dt

	step := 1.0
	if a.active > 0 {
		step = float64(a.elapsed) / float64(a.active)
	}

	if step >= 1 {
		a.current = a.interp(1)
		a.progress = 1
		a.running = false
		_, a.queue, _ = a.queue.DequeueFront()
		a.emit(AnimationInfo{Progress: 1, Terminating: true})
		// The render callback may have stopped or retargeted us.
		if a.stopped || a.running {
			return
		}
		if a.queue.Len() > 0 {
			a.begin()
		} else if a.cfg.OnEnd != nil {
			a.cfg.OnEnd()
		}
		return
	}

	eased, _ := a.tween.Set(float32(a.elapsed.Seconds()))
	a.current = a.interp(float64(eased))
	a.progress = step
	a.emit(AnimationInfo{Progress: step, Animating: true})
}

// Stop halts the animation. No further frames are emitted and OnEnd is not
// called. Stop is final.
func (a *Animation) Stop() {
	a.stopped = true
	a.running = false
	a.queue = Queue{}
}

// Stopped reports whether Stop has been called.
func (a *Animation) Stopped() bool {
	return a.stopped
}

// Running reports whether a tween is in flight (including its delay).
func (a *Animation) Running() bool {
	return a.running
}

// Value returns the value currently rendered.
func (a *Animation) Value() any {
	return a.current
}

// Target returns the value the in-flight tween is heading to.
func (a *Animation) Target() (any, bool) {
	if !a.running {
		return nil, false
	}
	return a.queue.Front()
}

// Pending returns the number of queued targets, including the active one.
func (a *Animation) Pending() int {
	return a.queue.Len()
}

// State returns a snapshot of the animation.
func (a *Animation) State() TweenState {
	return TweenState{Value: a.current, Progress: a.progress, Animating: a.running}
}

func (a *Animation) duration() time.Duration {
	return resolveDuration(a.cfg.Duration, DefaultDuration)
}

func (a *Animation) begin() {
	target, _ := a.queue.Front()
	a.interp = Interpolate(a.current, target)
	a.elapsed = 0
	a.wait = max(a.cfg.Delay, 0)
	a.progress = 0
	a.running = true
	a.active = a.duration()
	a.tween = nil
	if a.active > 0 {
		a.tween = gween.New(0, 1, float32(a.active.Seconds()), a.easeFn)
	}
}

func (a *Animation) emit(info AnimationInfo) {
	if a.render != nil {
		a.render(a.current, info)
	}
}
