package display

import (
	"image/color"
	"testing"
	"time"

	"github.com/phanxgames/bough"
)

var bg = color.RGBA{0x1e, 0x1e, 0x24, 0xff}

func settledFrames(t *testing.T, root *bough.Node) []bough.Frame {
	t.Helper()
	s := bough.NewScene(bough.SceneConfig{Animate: bough.AnimateConfig{
		OnLoad: &bough.PhaseConfig{Duration: bough.Instant},
	}})
	if err := s.Mount(root); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10 && !s.Settled(); i++ {
		s.Update(16 * time.Millisecond)
	}
	if !s.Settled() {
		t.Fatal("scene did not settle")
	}
	return s.Frames()
}

func TestRasterizeBar(t *testing.T) {
	root := bough.NewLeaf("bars", bough.BarDescriptor, []bough.Datum{{"x": 0, "y": 1}})
	img := Rasterize(settledFrames(t, root), 100, 100)

	got := img.RGBAAt(50, 50)
	if got == bg {
		t.Fatal("bar not drawn at the plot centre")
	}
	if got.R != 0x4e || got.G != 0x79 || got.B != 0xa7 {
		t.Errorf("bar colour = %v, want the first palette entry", got)
	}
	if img.RGBAAt(2, 2) != bg {
		t.Error("margin should stay background")
	}
}

func TestRasterizeColorProp(t *testing.T) {
	root := bough.NewLeaf("bars", bough.BarDescriptor, []bough.Datum{{"x": 0, "y": 1}})
	root.Props = map[string]any{PropColor: "#ff0000"}
	img := Rasterize(settledFrames(t, root), 100, 100)
	if got := img.RGBAAt(50, 50); got.R != 0xff || got.G != 0 {
		t.Errorf("bar colour = %v, want red", got)
	}
}

func TestRasterizeLineClip(t *testing.T) {
	line := bough.NewLeaf("line", bough.LineDescriptor, []bough.Datum{{"x": 0, "y": 0}, {"x": 1, "y": 1}})
	frames := settledFrames(t, line)
	img := Rasterize(frames, 100, 100)
	if img.RGBAAt(50, 50) == bg {
		t.Fatal("line should cross the plot centre")
	}

	// A zero clip hides the whole line.
	frames[0].Props[bough.PropClipWidth] = 0.0
	img = Rasterize(frames, 100, 100)
	for x := 0; x < 100; x++ {
		if img.RGBAAt(x, 100-x) != bg {
			t.Fatalf("pixel at x=%d drawn through a zero clip", x)
		}
	}
}

func TestPointColorOpacity(t *testing.T) {
	half := 0.5
	c := pointColor(point{Opacity: &half}, bough.Color{R: 1, A: 1})
	if c.A != 0.5 {
		t.Errorf("alpha = %v, want 0.5", c.A)
	}
	c = pointColor(point{Color: "#00ff00"}, bough.Color{R: 1, A: 1})
	if c.G != 1 || c.R != 0 {
		t.Errorf("colour = %+v, want green", c)
	}
}

func TestDecodePointsSkipsUnreadable(t *testing.T) {
	pts := decodePoints([]bough.Datum{{"x": 1, "y": 2}, {"x": "a", "y": 1}})
	if len(pts) != 1 || pts[0].Y != 2 {
		t.Errorf("points = %+v", pts)
	}
}
