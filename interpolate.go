package bough

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Interpolator maps progress t to an intermediate value. t is normally in
// [0, 1], but easing curves such as back and elastic overshoot, so any t is
// accepted. Interpolators are pure: each call returns freshly allocated
// containers.
type Interpolator func(t float64) any

// interpKind is the closed set of interpolation strategies. It is resolved
// once per (a, b) pair by resolveKind.
type interpKind uint8

const (
	kindStep interpKind = iota
	kindNumber
	kindString
	kindColor
	kindTemporal
	kindList
	kindRecord
	kindFunction
)

func (k interpKind) String() string {
	switch k {
	case kindNumber:
		return "number"
	case kindString:
		return "string"
	case kindColor:
		return "color"
	case kindTemporal:
		return "temporal"
	case kindList:
		return "list"
	case kindRecord:
		return "record"
	case kindFunction:
		return "function"
	default:
		return "step"
	}
}

var (
	numberPattern   = regexp.MustCompile(`[-+]?(?:\d+\.?\d*|\.?\d+)(?:[eE][-+]?\d+)?`)
	hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

func isHexColor(v any) bool {
	s, ok := toString(v)
	return ok && hexColorPattern.MatchString(s)
}

func resolveKind(a, b any) interpKind {
	if identical(a, b) || !IsInterpolatable(a) || !IsInterpolatable(b) {
		return kindStep
	}
	if isFunc(a) || isFunc(b) {
		return kindFunction
	}
	// The remaining strategies dispatch on b; an a of another shape steps.
	switch {
	case isRecord(b):
		if isRecord(a) {
			return kindRecord
		}
	case isString(b):
		if isHexColor(a) && isHexColor(b) {
			return kindColor
		}
		if isString(a) || isNumber(a) {
			return kindString
		}
	case isTime(b):
		if isTime(a) || isNumber(a) {
			return kindTemporal
		}
	case isNumber(b):
		if isNumber(a) {
			return kindNumber
		}
	case isList(b):
		if isList(a) {
			return kindList
		}
	}
	return kindStep
}

// Interpolate builds an interpolator from a to b. Values that cannot be
// interpolated, or whose shapes do not line up, produce a step interpolator
// that jumps straight to b. Interpolate never panics.
func Interpolate(a, b any) Interpolator {
	switch resolveKind(a, b) {
	case kindNumber:
		an, _ := toNumber(a)
		bn, _ := toNumber(b)
		return interpolateNumber(an, bn)
	case kindString:
		return interpolateString(stringOperand(a), stringOperand(b))
	case kindColor:
		as, _ := toString(a)
		bs, _ := toString(b)
		return interpolateColor(as, bs)
	case kindTemporal:
		bt, _ := toTime(b)
		at, ok := toTime(a)
		if !ok {
			ms, _ := toNumber(a)
			at = time.UnixMilli(int64(ms))
		}
		return interpolateTemporal(at, bt)
	case kindList:
		al, _ := toList(a)
		bl, _ := toList(b)
		return interpolateList(al, bl)
	case kindRecord:
		ar, _ := toRecord(a)
		br, _ := toRecord(b)
		return interpolateRecord(ar, br)
	case kindFunction:
		return interpolateFunction(a, b)
	}
	return InterpolateStep(a, b, 0)
}

// InterpolateStep returns an interpolator yielding a while t < threshold and
// b once t >= threshold.
func InterpolateStep(a, b any, threshold float64) Interpolator {
	return func(t float64) any {
		if t < threshold {
			return a
		}
		return b
	}
}

func stringOperand(v any) string {
	if s, ok := toString(v); ok {
		return s
	}
	return stringify(v)
}

func interpolateNumber(a, b float64) Interpolator {
	return func(t float64) any {
		return a*(1-t) + b*t
	}
}

func interpolateTemporal(a, b time.Time) Interpolator {
	span := b.Sub(a)
	return func(t float64) any {
		if t == 1 {
			return b
		}
		return a.Add(time.Duration(float64(span) * t))
	}
}

func interpolateColor(a, b string) Interpolator {
	ca, errA := colorful.Hex(normalizeHex(a))
	cb, errB := colorful.Hex(normalizeHex(b))
	if errA != nil || errB != nil {
		return InterpolateStep(a, b, 0)
	}
	return func(t float64) any {
		switch t {
		case 0:
			return a
		case 1:
			return b
		}
		return ca.BlendRgb(cb, t).Clamped().Hex()
	}
}

func normalizeHex(s string) string {
	return strings.ToLower(s)
}

// stringPart is either a literal run of b's text or an interpolated number.
type stringPart struct {
	literal string
	from    float64
	to      float64
	numeric bool
}

// interpolateString pairs the numeric substrings of a and b by position and
// interpolates them, keeping b's literal text. Numbers in b beyond the ones
// paired with a are kept verbatim.
func interpolateString(a, b string) Interpolator {
	am := numberPattern.FindAllStringIndex(a, -1)
	bm := numberPattern.FindAllStringIndex(b, -1)

	var parts []stringPart
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, stringPart{literal: lit.String()})
			lit.Reset()
		}
	}

	bi := 0
	numeric := 0
	for i := 0; i < len(am) && i < len(bm); i++ {
		bs, be := bm[i][0], bm[i][1]
		lit.WriteString(b[bi:bs])
		as := a[am[i][0]:am[i][1]]
		bn := b[bs:be]
		if as == bn {
			lit.WriteString(bn)
		} else {
			from, errA := strconv.ParseFloat(as, 64)
			to, errB := strconv.ParseFloat(bn, 64)
			if errA != nil || errB != nil {
				lit.WriteString(bn)
			} else {
				flush()
				parts = append(parts, stringPart{from: from, to: to, numeric: true})
				numeric++
			}
		}
		bi = be
	}
	lit.WriteString(b[bi:])
	flush()

	if numeric == 0 {
		return func(float64) any { return b }
	}
	return func(t float64) any {
		if t == 1 {
			return b
		}
		var sb strings.Builder
		for _, p := range parts {
			if p.numeric {
				sb.WriteString(strconv.FormatFloat(p.from*(1-t)+p.to*t, 'f', -1, 64))
				continue
			}
			sb.WriteString(p.literal)
		}
		return sb.String()
	}
}

// interpolateList pairs elements by index and takes its length from b.
func interpolateList(a, b []any) Interpolator {
	n := min(len(a), len(b))
	elems := make([]Interpolator, n)
	for i := 0; i < n; i++ {
		elems[i] = Interpolate(a[i], b[i])
	}
	return func(t float64) any {
		out := make([]any, len(b))
		for i := range b {
			if i < n {
				out[i] = elems[i](t)
				continue
			}
			out[i] = b[i]
		}
		return out
	}
}

type recordField struct {
	key    string
	interp Interpolator
	inB    bool
}

// interpolateRecord interpolates key-wise over the union of a's and b's keys.
// Keys new to b step in from nil; keys only in a step out and are omitted.
func interpolateRecord(a, b map[string]any) Interpolator {
	keys := sortedKeys(a, b)
	fields := make([]recordField, 0, len(keys))
	for _, k := range keys {
		av, inA := a[k]
		bv, inB := b[k]
		var fn Interpolator
		if inA {
			fn = Interpolate(av, bv)
		} else {
			fn = Interpolate(nil, bv)
		}
		fields = append(fields, recordField{key: k, interp: fn, inB: inB})
	}
	return func(t float64) any {
		out := make(map[string]any, len(fields))
		for _, f := range fields {
			v := f.interp(t)
			if v == nil && !f.inB {
				continue
			}
			out[f.key] = v
		}
		return out
	}
}

// interpolateFunction returns b once t reaches 1. Before that it yields a Func
// that evaluates both endpoints with its arguments and interpolates the
// results.
func interpolateFunction(a, b any) Interpolator {
	return func(t float64) any {
		if t >= 1 {
			return b
		}
		return Func(func(args ...any) any {
			return Interpolate(resolveValue(a, args), resolveValue(b, args))(t)
		})
	}
}

func resolveValue(v any, args []any) any {
	if f, ok := asFunc(v); ok {
		return f(args...)
	}
	return v
}
