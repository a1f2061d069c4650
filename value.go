package bough

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"

	"github.com/spf13/cast"
)

// Datum is one data point handed to a chart leaf. Keys are free-form; the
// "key" entry, when present, identifies the datum across renders.
type Datum = map[string]any

// Func is a function-valued Value, such as a per-datum style callback. When
// interpolated, the result is another Func that evaluates both endpoints with
// the caller's arguments.
type Func func(args ...any) any

var timeType = reflect.TypeOf(time.Time{})

// asFunc reports whether v is one of the function shapes treated as a Func.
func asFunc(v any) (Func, bool) {
	switch f := v.(type) {
	case Func:
		return f, f != nil
	case func(...any) any:
		return Func(f), f != nil
	case func() any:
		if f == nil {
			return nil, false
		}
		return func(...any) any { return f() }, true
	case func(any) any:
		if f == nil {
			return nil, false
		}
		return func(args ...any) any {
			var x any
			if len(args) > 0 {
				x = args[0]
			}
			return f(x)
		}, true
	}
	return nil, false
}

// IsInterpolatable reports whether v can take part in a smooth interpolation.
// nil, NaN, ±Inf and booleans are not interpolatable; finite numbers,
// strings, time.Time values, slices, string-keyed maps and functions are.
// Structs other than time.Time are treated as opaque instances.
func IsInterpolatable(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := asFunc(v); ok {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	case reflect.String:
		return true
	case reflect.Slice, reflect.Array:
		return true
	case reflect.Map:
		return rv.Type().Key().Kind() == reflect.String
	case reflect.Struct:
		return rv.Type() == timeType
	}
	return false
}

func isFunc(v any) bool {
	_, ok := asFunc(v)
	return ok
}

func toNumber(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func isNumber(v any) bool {
	_, ok := toNumber(v)
	return ok
}

func toString(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

func isString(v any) bool {
	_, ok := toString(v)
	return ok
}

// stringify renders a non-string operand for string interpolation.
func stringify(v any) string {
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}

func toTime(v any) (time.Time, bool) {
	t, ok := v.(time.Time)
	return t, ok
}

func isTime(v any) bool {
	_, ok := toTime(v)
	return ok
}

// toList normalizes any slice or array to []any.
func toList(v any) ([]any, bool) {
	if l, ok := v.([]any); ok {
		return l, true
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func isList(v any) bool {
	_, ok := toList(v)
	return ok
}

// toRecord normalizes any string-keyed map to map[string]any.
func toRecord(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func isRecord(v any) bool {
	_, ok := toRecord(v)
	return ok
}

// identical is the reference-identity check used to short-circuit
// interpolation: scalars compare by value, maps and slices by backing storage.
// Functions are never identical since closures share code pointers.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == timeType {
		return a.(time.Time).Equal(b.(time.Time))
	}
	switch ta.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return a == b
	case reflect.Map, reflect.Pointer:
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	case reflect.Slice:
		va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
		if va.Len() != vb.Len() {
			return false
		}
		return va.Len() == 0 || va.Pointer() == vb.Pointer()
	}
	return false
}

// sortedKeys returns the union of the keys of the given records in
// lexical order.
func sortedKeys(records ...map[string]any) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, r := range records {
		for k := range r {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
