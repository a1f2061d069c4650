package bough

import "time"

// NodeType distinguishes data-bearing leaves from groups.
type NodeType uint8

const (
	NodeTypeGroup NodeType = iota // container of other nodes, no data of its own
	NodeTypeLeaf                  // renders a data series
)

func (t NodeType) String() string {
	if t == NodeTypeLeaf {
		return "leaf"
	}
	return "group"
}

// PhaseConfig configures one transition phase (load, exit or enter).
type PhaseConfig struct {
	// Duration of the phase. Zero inherits; Instant forces zero length.
	Duration time.Duration
	Delay    time.Duration

	// Before returns the fields merged into a datum before the phase runs,
	// typically hiding it (opacity 0, height 0).
	Before func(d Datum, index int, data []Datum) Datum
	// After returns the fields merged into a datum at the end of the phase.
	After func(d Datum, index int, data []Datum) Datum

	// BeforeClipPathWidth and AfterClipPathWidth size the clip rectangle of
	// continuous shapes at the start and end of a clip-path reveal. nodes is
	// the set of keys entering or exiting, nil during load.
	BeforeClipPathWidth func(data []Datum, child *Node, nodes KeySet) float64
	AfterClipPathWidth  func(data []Datum, child *Node, nodes KeySet) float64
}

// Transitions holds a child kind's per-phase defaults.
type Transitions struct {
	OnLoad  *PhaseConfig
	OnExit  *PhaseConfig
	OnEnter *PhaseConfig
}

// AnimateConfig is the animate setting of a scene or a node. Zero durations
// inherit; phase configs left nil fall back to the child's defaults.
type AnimateConfig struct {
	Duration time.Duration
	Delay    time.Duration
	// Move is the duration of plain value changes; zero uses Duration.
	Move   time.Duration
	Easing string

	OnLoad  *PhaseConfig
	OnExit  *PhaseConfig
	OnEnter *PhaseConfig

	// OnEnd is called when a settled (non-phase) tween finishes.
	OnEnd func()
}

// Axis names a chart dimension.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// Descriptor is the contract a visual child kind exposes to the transition
// engine. Only Kind is required.
type Descriptor struct {
	// Kind identifies the shape type. Leaves are only diffed against leaves of
	// the same Kind; anything else is a hard replace.
	Kind string
	// Continuous shapes (lines, areas) animate entering and exiting data with
	// a clip-path reveal instead of per-point transforms.
	Continuous bool

	GetData            func(n *Node) []Datum
	GetDomain          func(n *Node, axis Axis) (Domain, bool)
	DefaultTransitions *Transitions
}

// nodeIDCounter is a plain counter (no atomic; trees are built on one goroutine).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is an element of a chart tree: a Leaf carrying a data series or a
// Group of other nodes. Trees handed to a Transition or Scene are treated as
// immutable snapshots; build a new tree (or Clone) to change data.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Leaf fields
	Descriptor *Descriptor
	Data       []Datum
	// Width is the extent of the clip rectangle for continuous shapes.
	// Zero is treated as 1 (a unit-width clip).
	Width float64

	// Domain pins the domain per axis; otherwise the descriptor computes it.
	Domain map[Axis]Domain
	// Props carries additional renderer props (style, labels, ...). Keys in
	// the scene's animation whitelist are tweened, the rest pass through.
	Props map[string]any
	// Animate overrides the scene's animate settings for this node.
	Animate *AnimateConfig

	// Metadata
	UserData any
}

// NewGroup creates a group node holding children.
func NewGroup(name string, children ...*Node) *Node {
	n := &Node{Name: name, Type: NodeTypeGroup}
	n.ID = nextNodeID()
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}

// NewLeaf creates a data-bearing node of the given descriptor kind.
func NewLeaf(name string, desc *Descriptor, data []Datum) *Node {
	n := &Node{Name: name, Type: NodeTypeLeaf, Descriptor: desc, Data: data}
	n.ID = nextNodeID()
	return n
}

// Kind returns the descriptor kind, or "" for groups and bare leaves.
func (n *Node) Kind() string {
	if n.Descriptor == nil {
		return ""
	}
	return n.Descriptor.Kind
}

// Continuous reports whether the node renders a continuous shape.
func (n *Node) Continuous() bool {
	return n.Descriptor != nil && n.Descriptor.Continuous
}

// ChildData returns the node's data series through its descriptor, falling
// back to Data.
func (n *Node) ChildData() []Datum {
	if n == nil {
		return nil
	}
	if n.Descriptor != nil && n.Descriptor.GetData != nil {
		return n.Descriptor.GetData(n)
	}
	return n.Data
}

// DefaultTransitions returns the descriptor's per-phase defaults, or nil.
func (n *Node) DefaultTransitions() *Transitions {
	if n.Descriptor == nil {
		return nil
	}
	return n.Descriptor.DefaultTransitions
}

// ClipExtent is the full clip-rectangle width of a continuous node.
func (n *Node) ClipExtent() float64 {
	if n.Width > 0 {
		return n.Width
	}
	return 1
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil, n is a leaf, or child is an ancestor of n (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("bough: cannot add nil child")
	}
	if n.Type == NodeTypeLeaf {
		panic("bough: cannot add a child to a leaf")
	}
	if isAncestor(child, n) {
		panic("bough: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("bough: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Leaves returns the data-bearing nodes under n in depth-first order. A leaf
// returns itself.
func (n *Node) Leaves() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(c *Node) {
		if c == nil {
			return
		}
		if c.Type == NodeTypeLeaf {
			out = append(out, c)
			return
		}
		for _, cc := range c.children {
			walk(cc)
		}
	}
	walk(n)
	return out
}

// Clone returns a deep copy of the tree rooted at n. Data slices and datum
// maps are copied; descriptors, props values and user data are shared.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		ID:         n.ID,
		Name:       n.Name,
		Type:       n.Type,
		Descriptor: n.Descriptor,
		Width:      n.Width,
		Animate:    n.Animate,
		UserData:   n.UserData,
	}
	if n.Data != nil {
		c.Data = make([]Datum, len(n.Data))
		for i, d := range n.Data {
			c.Data[i] = mergeDatum(d, nil)
		}
	}
	if n.Domain != nil {
		c.Domain = make(map[Axis]Domain, len(n.Domain))
		for k, v := range n.Domain {
			c.Domain[k] = v
		}
	}
	if n.Props != nil {
		c.Props = make(map[string]any, len(n.Props))
		for k, v := range n.Props {
			c.Props[k] = v
		}
	}
	for _, child := range n.children {
		cc := child.Clone()
		cc.Parent = c
		c.children = append(c.children, cc)
	}
	return c
}

func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// mergeDatum returns a copy of d with the entries of patch laid over it.
func mergeDatum(d Datum, patch Datum) Datum {
	out := make(Datum, len(d)+len(patch))
	for k, v := range d {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}
