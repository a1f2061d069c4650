package bough

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrSpecFormat is returned for chart spec files that are neither YAML nor
// TOML.
var ErrSpecFormat = errors.New("bough: unsupported chart spec format")

// PhaseSpec is the file form of a PhaseConfig. Durations are milliseconds;
// a negative duration requests an instant phase.
type PhaseSpec struct {
	Duration int `yaml:"duration" toml:"duration"`
	Delay    int `yaml:"delay" toml:"delay"`
}

// AnimateSpec is the file form of an AnimateConfig.
type AnimateSpec struct {
	Duration int        `yaml:"duration" toml:"duration"`
	Delay    int        `yaml:"delay" toml:"delay"`
	Move     int        `yaml:"move" toml:"move"`
	Easing   string     `yaml:"easing" toml:"easing"`
	OnLoad   *PhaseSpec `yaml:"on_load" toml:"on_load"`
	OnExit   *PhaseSpec `yaml:"on_exit" toml:"on_exit"`
	OnEnter  *PhaseSpec `yaml:"on_enter" toml:"on_enter"`
}

// NodeSpec is the file form of a Node. A node with a kind is a leaf drawn by
// the registered descriptor of that kind; a node without one is a group.
type NodeSpec struct {
	Name     string               `yaml:"name" toml:"name"`
	Kind     string               `yaml:"kind" toml:"kind"`
	Width    float64              `yaml:"width" toml:"width"`
	Domain   map[string][]float64 `yaml:"domain" toml:"domain"`
	Props    map[string]any       `yaml:"props" toml:"props"`
	Animate  *AnimateSpec         `yaml:"animate" toml:"animate"`
	Data     []map[string]any     `yaml:"data" toml:"data"`
	Children []NodeSpec           `yaml:"children" toml:"children"`
}

// ChartSpec describes a chart scene: its animate settings, the animation
// whitelist, the canvas size and the node tree.
type ChartSpec struct {
	Title     string      `yaml:"title" toml:"title"`
	Width     int         `yaml:"width" toml:"width"`
	Height    int         `yaml:"height" toml:"height"`
	Animate   AnimateSpec `yaml:"animate" toml:"animate"`
	Whitelist []string    `yaml:"whitelist" toml:"whitelist"`
	Root      NodeSpec    `yaml:"root" toml:"root"`
}

// ParseChartSpec decodes a chart spec. format is "yaml", "yml" or "toml".
func ParseChartSpec(data []byte, format string) (*ChartSpec, error) {
	var spec ChartSpec
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("chartspec: unmarshal yaml: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("chartspec: unmarshal toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrSpecFormat, format)
	}
	return &spec, nil
}

// LoadChartSpec reads a chart spec file, picking the format from the
// extension.
func LoadChartSpec(path string) (*ChartSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("chartspec: load %s: %w", path, err)
	}
	spec, err := ParseChartSpec(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("chartspec: %s: %w", path, err)
	}
	return spec, nil
}

// IsChartSpecFile reports whether path has a chart spec extension.
func IsChartSpecFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".toml":
		return true
	}
	return false
}

// Build returns the scene config and the tree described by the spec.
func (c *ChartSpec) Build() (SceneConfig, *Node, error) {
	animate, err := c.Animate.config()
	if err != nil {
		return SceneConfig{}, nil, err
	}
	root, err := c.BuildRoot()
	if err != nil {
		return SceneConfig{}, nil, err
	}
	return SceneConfig{Animate: animate, AnimationWhitelist: c.Whitelist}, root, nil
}

// BuildRoot returns the tree described by the spec.
func (c *ChartSpec) BuildRoot() (*Node, error) {
	return c.Root.build("root")
}

func (n NodeSpec) build(path string) (*Node, error) {
	if n.Name != "" {
		path = n.Name
	}
	var node *Node
	if n.Kind == "" {
		if len(n.Data) > 0 {
			return nil, fmt.Errorf("chartspec: node %s: data needs a kind", path)
		}
		node = NewGroup(n.Name)
		for i, cs := range n.Children {
			child, err := cs.build(fmt.Sprintf("%s/%d", path, i))
			if err != nil {
				return nil, err
			}
			node.AddChild(child)
		}
	} else {
		if len(n.Children) > 0 {
			return nil, fmt.Errorf("chartspec: node %s: a %s leaf cannot have children", path, n.Kind)
		}
		desc, err := LookupDescriptor(n.Kind)
		if err != nil {
			return nil, fmt.Errorf("chartspec: node %s: %w", path, err)
		}
		data := make([]Datum, len(n.Data))
		for i, d := range n.Data {
			data[i] = Datum(d)
		}
		node = NewLeaf(n.Name, desc, data)
		node.Width = n.Width
	}

	for axis, pair := range n.Domain {
		if len(pair) != 2 {
			return nil, fmt.Errorf("chartspec: node %s: domain %s needs [min, max]", path, axis)
		}
		if node.Domain == nil {
			node.Domain = make(map[Axis]Domain, len(n.Domain))
		}
		node.Domain[Axis(axis)] = Domain{pair[0], pair[1]}
	}
	node.Props = n.Props
	if n.Animate != nil {
		cfg, err := n.Animate.config()
		if err != nil {
			return nil, fmt.Errorf("chartspec: node %s: %w", path, err)
		}
		node.Animate = &cfg
	}
	return node, nil
}

func (a AnimateSpec) config() (AnimateConfig, error) {
	if _, err := EasingFunc(a.Easing); err != nil {
		return AnimateConfig{}, fmt.Errorf("chartspec: %w", err)
	}
	return AnimateConfig{
		Duration: millis(a.Duration),
		Delay:    millis(a.Delay),
		Move:     millis(a.Move),
		Easing:   a.Easing,
		OnLoad:   a.OnLoad.config(),
		OnExit:   a.OnExit.config(),
		OnEnter:  a.OnEnter.config(),
	}, nil
}

func (p *PhaseSpec) config() *PhaseConfig {
	if p == nil {
		return nil
	}
	return &PhaseConfig{Duration: millis(p.Duration), Delay: millis(p.Delay)}
}

// millis converts a spec duration; negative values map to Instant.
func millis(ms int) time.Duration {
	if ms < 0 {
		return Instant
	}
	return time.Duration(ms) * time.Millisecond
}
