package bough

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Stock descriptor kinds.
const (
	KindBar     = "bar"
	KindScatter = "scatter"
	KindLine    = "line"
)

// Field names the stock descriptors read from each datum.
const (
	FieldX       = "x"
	FieldY       = "y"
	FieldOpacity = "opacity"
)

// BarDescriptor draws one bar per datum from the y=0 baseline. Bars grow
// from the baseline on load and enter and collapse onto it on exit.
var BarDescriptor = &Descriptor{
	Kind: KindBar,
	GetDomain: func(n *Node, axis Axis) (Domain, bool) {
		d, ok := fieldDomain(n.ChildData(), string(axis))
		if ok && axis == AxisY {
			d = d.Union(Domain{0, 0})
		}
		return d, ok
	},
	DefaultTransitions: &Transitions{
		OnLoad: &PhaseConfig{
			Duration: 2000 * time.Millisecond,
			Before:   func(Datum, int, []Datum) Datum { return Datum{FieldY: 0} },
			After:    func(d Datum, _ int, _ []Datum) Datum { return Datum{FieldY: d[FieldY]} },
		},
		OnExit: &PhaseConfig{
			Duration: 500 * time.Millisecond,
			Before:   func(Datum, int, []Datum) Datum { return Datum{FieldY: 0} },
		},
		OnEnter: &PhaseConfig{
			Duration: 500 * time.Millisecond,
			Before:   func(Datum, int, []Datum) Datum { return Datum{FieldY: 0} },
			After:    func(d Datum, _ int, _ []Datum) Datum { return Datum{FieldY: d[FieldY]} },
		},
	},
}

// ScatterDescriptor draws one point per datum and fades points in and out.
var ScatterDescriptor = &Descriptor{
	Kind:      KindScatter,
	GetDomain: dataDomain,
	DefaultTransitions: &Transitions{
		OnLoad: &PhaseConfig{
			Duration: 2000 * time.Millisecond,
			Before:   hideDatum,
			After:    showDatum,
		},
		OnExit: &PhaseConfig{
			Duration: 600 * time.Millisecond,
			Before:   hideDatum,
		},
		OnEnter: &PhaseConfig{
			Duration: 600 * time.Millisecond,
			Before:   hideDatum,
			After:    showDatum,
		},
	},
}

// LineDescriptor draws a polyline through the data. Lines are continuous:
// they load, enter and exit by resizing a clip rectangle.
var LineDescriptor = &Descriptor{
	Kind:       KindLine,
	Continuous: true,
	GetDomain:  dataDomain,
	DefaultTransitions: &Transitions{
		OnLoad: &PhaseConfig{
			Duration:            2000 * time.Millisecond,
			BeforeClipPathWidth: func([]Datum, *Node, KeySet) float64 { return 0 },
			AfterClipPathWidth:  func(_ []Datum, n *Node, _ KeySet) float64 { return n.ClipExtent() },
		},
		OnExit:  &PhaseConfig{Duration: 500 * time.Millisecond},
		OnEnter: &PhaseConfig{Duration: 500 * time.Millisecond},
	},
}

var descriptors = map[string]*Descriptor{
	KindBar:     BarDescriptor,
	KindScatter: ScatterDescriptor,
	KindLine:    LineDescriptor,
}

// RegisterDescriptor makes d available to chart specs under d.Kind. It
// replaces any descriptor of the same kind.
func RegisterDescriptor(d *Descriptor) {
	if d == nil || d.Kind == "" {
		panic("bough: descriptor needs a kind")
	}
	descriptors[d.Kind] = d
}

// LookupDescriptor returns the registered descriptor for kind.
func LookupDescriptor(kind string) (*Descriptor, error) {
	d, ok := descriptors[kind]
	if !ok {
		return nil, fmt.Errorf("bough: unknown descriptor kind %q", kind)
	}
	return d, nil
}

// DescriptorKinds lists the registered kinds in lexical order.
func DescriptorKinds() []string {
	out := make([]string, 0, len(descriptors))
	for k := range descriptors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func hideDatum(Datum, int, []Datum) Datum {
	return Datum{FieldOpacity: 0.0}
}

func showDatum(d Datum, _ int, _ []Datum) Datum {
	if v, ok := toNumber(d[FieldOpacity]); ok {
		return Datum{FieldOpacity: v}
	}
	return Datum{FieldOpacity: 1.0}
}

func dataDomain(n *Node, axis Axis) (Domain, bool) {
	return fieldDomain(n.ChildData(), string(axis))
}

// fieldDomain is the min/max of a numeric field over data.
func fieldDomain(data []Datum, field string) (Domain, bool) {
	d := Domain{math.Inf(1), math.Inf(-1)}
	found := false
	for _, datum := range data {
		v, ok := toNumber(datum[field])
		if !ok || math.IsNaN(v) {
			continue
		}
		d.Min = math.Min(d.Min, v)
		d.Max = math.Max(d.Max, v)
		found = true
	}
	return d, found
}
