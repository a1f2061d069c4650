package bough

import (
	"sort"
	"strconv"

	"github.com/spf13/cast"
)

// KeySet is a set of datum keys. A nil KeySet means "no difference"; the diff
// functions never return an empty non-nil set, and every consumer goes through
// Empty, so the two are never told apart.
type KeySet map[string]struct{}

// NewKeySet returns a set holding keys, or nil when keys is empty.
func NewKeySet(keys ...string) KeySet {
	if len(keys) == 0 {
		return nil
	}
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether k is in the set. Safe on a nil set.
func (s KeySet) Has(k string) bool {
	_, ok := s[k]
	return ok
}

// Empty reports whether the set holds no keys.
func (s KeySet) Empty() bool {
	return len(s) == 0
}

// Len returns the number of keys.
func (s KeySet) Len() int {
	return len(s)
}

// Keys returns the keys in lexical order.
func (s KeySet) Keys() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Diff is the keyed difference between two data series.
type Diff struct {
	Entering KeySet // keys(next) − keys(prev)
	Exiting  KeySet // keys(prev) − keys(next)
}

// Changed reports whether any key enters or exits.
func (d *Diff) Changed() bool {
	return d != nil && (!d.Entering.Empty() || !d.Exiting.Empty())
}

// KeyOf returns the identity of datum d at position index: its "key" entry
// when present and non-empty, stringified, else the decimal index.
func KeyOf(d Datum, index int) string {
	if v, ok := d["key"]; ok && v != nil {
		if s, err := cast.ToStringE(v); err == nil && s != "" {
			return s
		}
	}
	return strconv.Itoa(index)
}

// KeyedData indexes a data series by datum key.
func KeyedData(data []Datum) map[string]Datum {
	out := make(map[string]Datum, len(data))
	for i, d := range data {
		out[KeyOf(d, i)] = d
	}
	return out
}

// keyDifference returns the keys of a missing from b, or nil.
func keyDifference(a, b map[string]Datum) KeySet {
	var out KeySet
	for k := range a {
		if _, ok := b[k]; ok {
			continue
		}
		if out == nil {
			out = make(KeySet)
		}
		out[k] = struct{}{}
	}
	return out
}

// DiffData compares two data series by key.
func DiffData(prev, next []Datum) Diff {
	pk := KeyedData(prev)
	nk := KeyedData(next)
	return Diff{
		Entering: keyDifference(nk, pk),
		Exiting:  keyDifference(pk, nk),
	}
}

// ChildTransition mirrors a node tree with the keyed diff of every leaf.
// A leaf entry with a nil Diff had no comparable counterpart and is replaced
// outright instead of animated.
type ChildTransition struct {
	Diff     *Diff
	Children []ChildTransition
}

// Leaves flattens the tree into one entry per leaf, in depth-first order.
func (c ChildTransition) Leaves() []*Diff {
	var out []*Diff
	c.appendLeaves(&out)
	return out
}

func (c ChildTransition) appendLeaves(out *[]*Diff) {
	if c.Children == nil {
		*out = append(*out, c.Diff)
		return
	}
	for _, cc := range c.Children {
		cc.appendLeaves(out)
	}
}

// Changed reports whether any leaf below c has entering or exiting keys.
func (c ChildTransition) Changed() bool {
	if c.Diff.Changed() {
		return true
	}
	for _, cc := range c.Children {
		if cc.Changed() {
			return true
		}
	}
	return false
}

// DiffChildren diffs two trees position by position. Groups recurse pairwise
// by child index over prev's children; leaves are diffed when next holds a
// leaf of the same kind at the same position.
func DiffChildren(prev, next *Node) (ct ChildTransition, anyEntering, anyExiting bool) {
	var acc treeDiff
	ct = acc.node(prev, next)
	return ct, acc.entering, acc.exiting
}

// treeDiff accumulates a DiffChildren walk. When the maps are set, every
// compared leaf pair is recorded under both of its nodes, and pairs maps
// the next leaf back to the prev leaf it was diffed against.
type treeDiff struct {
	entering, exiting bool
	prevLeaves        map[*Node]*Diff
	nextLeaves        map[*Node]*Diff
	pairs             map[*Node]*Node
}

func (acc *treeDiff) node(prev, next *Node) ChildTransition {
	if prev == nil {
		return ChildTransition{}
	}
	if prev.Type == NodeTypeGroup {
		children := make([]ChildTransition, len(prev.children))
		for i, c := range prev.children {
			var nc *Node
			if next != nil && next.Type == NodeTypeGroup && i < len(next.children) {
				nc = next.children[i]
			}
			children[i] = acc.node(c, nc)
		}
		return ChildTransition{Children: children}
	}
	if next == nil || next.Type != NodeTypeLeaf || next.Kind() != prev.Kind() {
		return ChildTransition{}
	}
	d := DiffData(prev.ChildData(), next.ChildData())
	if !d.Entering.Empty() {
		acc.entering = true
	}
	if !d.Exiting.Empty() {
		acc.exiting = true
	}
	if acc.prevLeaves != nil {
		acc.prevLeaves[prev] = &d
		acc.nextLeaves[next] = &d
		acc.pairs[next] = prev
	}
	return ChildTransition{Diff: &d}
}
