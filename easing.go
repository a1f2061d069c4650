package bough

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"
)

// Easing remaps linear progress in [0, 1] to eased progress. Some curves
// (back, elastic) overshoot the unit range.
type Easing func(t float64) float64

// DefaultEasing is used when an animation does not name one.
const DefaultEasing = "quadInOut"

// ErrUnknownEasing is returned when an easing name is not in the catalog.
var ErrUnknownEasing = errors.New("bough: unknown easing")

// easings maps catalog names to gween curves. A bare family name is the
// symmetric InOut variant, except bounce and elastic which default to Out.
var easings = map[string]ease.TweenFunc{
	"linear":      ease.Linear,
	"linearIn":    ease.Linear,
	"linearOut":   ease.Linear,
	"linearInOut": ease.Linear,

	"quad":      ease.InOutQuad,
	"quadIn":    ease.InQuad,
	"quadOut":   ease.OutQuad,
	"quadInOut": ease.InOutQuad,

	"cubic":      ease.InOutCubic,
	"cubicIn":    ease.InCubic,
	"cubicOut":   ease.OutCubic,
	"cubicInOut": ease.InOutCubic,

	"poly":      ease.InOutCubic,
	"polyIn":    ease.InCubic,
	"polyOut":   ease.OutCubic,
	"polyInOut": ease.InOutCubic,

	"quart":      ease.InOutQuart,
	"quartIn":    ease.InQuart,
	"quartOut":   ease.OutQuart,
	"quartInOut": ease.InOutQuart,

	"quint":      ease.InOutQuint,
	"quintIn":    ease.InQuint,
	"quintOut":   ease.OutQuint,
	"quintInOut": ease.InOutQuint,

	"sin":      ease.InOutSine,
	"sinIn":    ease.InSine,
	"sinOut":   ease.OutSine,
	"sinInOut": ease.InOutSine,

	"exp":      ease.InOutExpo,
	"expIn":    ease.InExpo,
	"expOut":   ease.OutExpo,
	"expInOut": ease.InOutExpo,

	"circle":      ease.InOutCirc,
	"circleIn":    ease.InCirc,
	"circleOut":   ease.OutCirc,
	"circleInOut": ease.InOutCirc,

	"bounce":      ease.OutBounce,
	"bounceIn":    ease.InBounce,
	"bounceOut":   ease.OutBounce,
	"bounceInOut": ease.InOutBounce,

	"back":      ease.InOutBack,
	"backIn":    ease.InBack,
	"backOut":   ease.OutBack,
	"backInOut": ease.InOutBack,

	"elastic":      ease.OutElastic,
	"elasticIn":    ease.InElastic,
	"elasticOut":   ease.OutElastic,
	"elasticInOut": ease.InOutElastic,
}

// EasingFunc resolves a catalog name to its gween curve. An empty name
// resolves to DefaultEasing.
func EasingFunc(name string) (ease.TweenFunc, error) {
	if name == "" {
		name = DefaultEasing
	}
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}
	return fn, nil
}

// LookupEasing resolves a catalog name to a unit-range Easing.
func LookupEasing(name string) (Easing, error) {
	fn, err := EasingFunc(name)
	if err != nil {
		return nil, err
	}
	return func(t float64) float64 {
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		}
		return float64(fn(float32(t), 0, 1, 1))
	}, nil
}

// EasingNames lists the catalog in lexical order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
