// Package bough animates data-driven chart trees.
//
// A chart is a tree of [Node] values: groups of leaves, each leaf carrying a
// keyed data series and a [Descriptor] that says what shape it draws. When
// the tree is replaced, bough diffs every leaf by datum key and plays the
// change as a sequence of phases: exiting data animate out first, entering
// data are committed hidden and then animate in, and plain value changes
// move. The first tree plays a load phase.
//
// # Quick start
//
// The simplest way to get started is a [Scene], which owns the transition
// and one tween per leaf:
//
//	scene := bough.NewScene(bough.SceneConfig{
//		Animate: bough.AnimateConfig{Duration: 300 * time.Millisecond, Easing: "quadInOut"},
//	})
//	root := bough.NewLeaf("sales", bough.BarDescriptor, data)
//	if err := scene.Mount(root); err != nil {
//		return err
//	}
//	scene.OnFrame(func(f bough.Frame) { draw(f) })
//
//	// every tick
//	scene.Update(dt)
//
// Hand the scene a new tree with [Scene.SetData]. Trees are immutable
// snapshots; build a new one (or [Node.Clone]) rather than editing data in
// place.
//
// To open a window, use the display subpackage:
//
//	display.Run(scene, display.Config{Title: "Sales", Width: 640, Height: 480})
//
// # Transitions
//
// [Transition] holds the root [TransitionState] and only changes it through
// [Transition.SetChildren] and [Reduce]. Renderers report sub-phase
// completion by calling the Callback of the [TransitionProps] they animate
// toward; stale callbacks from an older tree are ignored.
//
// Animate settings layer: a node's Animate over the scene's over the
// descriptor's DefaultTransitions. Continuous shapes such as lines reveal
// entering data and hide exiting data with a clip rectangle.
//
// # Tweens
//
// [Animation] tweens any interpolatable value (numbers, colour strings,
// maps, slices) with a named easing from [EasingNames], powered by [gween].
// Values queued while a tween runs are played in order.
//
// # Specs, tooling and ECS
//
// Charts can be described in YAML or TOML and loaded with [LoadChartSpec];
// [SpecWatcher] reports edits. [TestRunner] scripts data changes and
// snapshots for headless playback, and [NewCollector] exposes [Stats] to
// Prometheus. The ecs subpackage publishes phase events into a [Donburi]
// world, and cmd/bough plays, traces and previews specs from the terminal.
//
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package bough
