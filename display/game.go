package display

import (
	"errors"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/bough"
)

// Default canvas size when a config leaves it zero.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// Config holds the window settings for Run.
type Config struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Updates delivers replacement trees. They are applied on the game
	// goroutine at the start of the next tick.
	Updates <-chan *bough.Node
	// Logger receives rejected updates. Nil uses the scene's default logger.
	Logger *slog.Logger
}

// ErrNotMounted is returned by Run for a scene without a tree.
var ErrNotMounted = errors.New("display: scene is not mounted")

// game adapts a Scene to ebiten.Game.
type game struct {
	scene  *bough.Scene
	cfg    Config
	canvas *Canvas
	screen *ebiten.Image
	fps    *fpsOverlay
	tick   time.Duration
}

// Run opens a window and drives scene until the window is closed. Every tick
// advances the scene by 1/TPS and redraws its frames.
func Run(scene *bough.Scene, cfg Config) error {
	if !scene.Mounted() {
		return ErrNotMounted
	}
	cfg.Width, cfg.Height = canvasSize(cfg.Width, cfg.Height)
	if cfg.Title == "" {
		cfg.Title = "bough"
	}
	if cfg.Logger == nil {
		cfg.Logger = bough.NewLogger(slog.LevelInfo)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(newGame(scene, cfg))
}

func newGame(scene *bough.Scene, cfg Config) *game {
	g := &game{
		scene:  scene,
		cfg:    cfg,
		canvas: NewCanvas(cfg.Width, cfg.Height),
		tick:   time.Second / time.Duration(ebiten.TPS()),
	}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	return g
}

func (g *game) Update() error {
	g.drainUpdates()
	g.scene.Update(g.tick)
	if g.fps != nil {
		g.fps.update(g.tick)
	}
	return nil
}

// drainUpdates applies every tree waiting on the Updates channel, in order.
func (g *game) drainUpdates() {
	if g.cfg.Updates == nil {
		return
	}
	for {
		select {
		case root, ok := <-g.cfg.Updates:
			if !ok {
				g.cfg.Updates = nil
				return
			}
			if err := g.scene.SetData(root); err != nil {
				g.cfg.Logger.Error("update rejected", "error", err)
			}
		default:
			return
		}
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	g.canvas.Draw(g.scene.Frames())
	screen.WritePixels(g.canvas.Image().Pix)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

func canvasSize(w, h int) (int, int) {
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}
