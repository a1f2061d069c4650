package bough

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const yamlSpec = `
title: sales
width: 640
height: 480
animate:
  duration: 300
  easing: cubicOut
  on_exit:
    duration: -1
whitelist: [opacity]
root:
  children:
    - name: bars
      kind: bar
      domain:
        y: [0, 10]
      props:
        color: "#ff0000"
      data:
        - {key: a, x: 0, y: 3}
        - {key: b, x: 1, y: 4}
    - name: trend
      kind: line
      width: 200
      animate:
        easing: linear
      data:
        - {x: 0, y: 3}
        - {x: 1, y: 4}
`

const tomlSpec = `
title = "sales"

[animate]
duration = 300

[root]
name = "dots"
kind = "scatter"

[[root.data]]
key = "a"
x = 0.0
y = 1.5
`

func TestParseChartSpecYAML(t *testing.T) {
	spec, err := ParseChartSpec([]byte(yamlSpec), "yaml")
	if err != nil {
		t.Fatal(err)
	}
	cfg, root, err := spec.Build()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Animate.Duration != 300*time.Millisecond || cfg.Animate.Easing != "cubicOut" {
		t.Errorf("animate = %+v", cfg.Animate)
	}
	if cfg.Animate.OnExit == nil || cfg.Animate.OnExit.Duration != Instant {
		t.Errorf("on_exit = %+v, want Instant", cfg.Animate.OnExit)
	}
	if len(cfg.AnimationWhitelist) != 1 || cfg.AnimationWhitelist[0] != "opacity" {
		t.Errorf("whitelist = %v", cfg.AnimationWhitelist)
	}

	if root.Type != NodeTypeGroup || root.NumChildren() != 2 {
		t.Fatalf("root = %v with %d children", root.Type, root.NumChildren())
	}
	bars, trend := root.ChildAt(0), root.ChildAt(1)
	if bars.Descriptor != BarDescriptor || len(bars.Data) != 2 || bars.Data[1]["key"] != "b" {
		t.Errorf("bars = %+v", bars)
	}
	if bars.Domain[AxisY] != (Domain{0, 10}) {
		t.Errorf("bars y domain = %v", bars.Domain[AxisY])
	}
	if bars.Props["color"] != "#ff0000" {
		t.Errorf("bars props = %v", bars.Props)
	}
	if !trend.Continuous() || trend.Width != 200 {
		t.Errorf("trend = %+v", trend)
	}
	if trend.Animate == nil || trend.Animate.Easing != "linear" {
		t.Errorf("trend animate = %+v", trend.Animate)
	}
}

func TestParseChartSpecTOML(t *testing.T) {
	spec, err := ParseChartSpec([]byte(tomlSpec), ".toml")
	if err != nil {
		t.Fatal(err)
	}
	root, err := spec.BuildRoot()
	if err != nil {
		t.Fatal(err)
	}
	if root.Kind() != KindScatter || root.Name != "dots" {
		t.Errorf("root = %s %q", root.Kind(), root.Name)
	}
	near(t, "y", root.Data[0]["y"], 1.5, 0)
	if spec.Title != "sales" || spec.Animate.Duration != 300 {
		t.Errorf("spec = %+v", spec)
	}
}

func TestParseChartSpecErrors(t *testing.T) {
	if _, err := ParseChartSpec([]byte("{}"), "json"); !errors.Is(err, ErrSpecFormat) {
		t.Errorf("err = %v, want ErrSpecFormat", err)
	}
	if _, err := ParseChartSpec([]byte("root: ["), "yaml"); err == nil {
		t.Error("expected a yaml error")
	}

	bad := []string{
		"root: {kind: pie}",
		"root: {data: [{y: 1}]}",
		"root: {kind: bar, children: [{kind: bar}]}",
		"root: {kind: bar, domain: {y: [1]}}",
		"animate: {easing: wobble}\nroot: {kind: bar}",
	}
	for _, src := range bad {
		spec, err := ParseChartSpec([]byte(src), "yml")
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		if _, _, err := spec.Build(); err == nil {
			t.Errorf("%q: expected a build error", src)
		}
	}
}

func TestLoadChartSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.yaml")
	if err := os.WriteFile(path, []byte(yamlSpec), 0o644); err != nil {
		t.Fatal(err)
	}
	spec, err := LoadChartSpec(path)
	if err != nil {
		t.Fatal(err)
	}
	if spec.Width != 640 || spec.Height != 480 {
		t.Errorf("size = %dx%d", spec.Width, spec.Height)
	}
	if _, err := LoadChartSpec(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestIsChartSpecFile(t *testing.T) {
	for path, want := range map[string]bool{
		"a.yaml": true, "b.YML": true, "c.toml": true, "d.json": false, "dir": false,
	} {
		if got := IsChartSpecFile(path); got != want {
			t.Errorf("IsChartSpecFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestDescriptorRegistry(t *testing.T) {
	if _, err := LookupDescriptor("pie"); err == nil {
		t.Error("pie is not registered")
	}
	pie := &Descriptor{Kind: "pie"}
	RegisterDescriptor(pie)
	defer delete(descriptors, "pie")
	if d, err := LookupDescriptor("pie"); err != nil || d != pie {
		t.Errorf("lookup = %v, %v", d, err)
	}
	kinds := DescriptorKinds()
	if len(kinds) != 4 || kinds[0] != KindBar {
		t.Errorf("kinds = %v", kinds)
	}
}
