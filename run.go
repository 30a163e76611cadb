package bramble

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	// ShowFPS adds an FPS label in the top-left corner on its own layer.
	ShowFPS bool
	// Background fills the window before the UI draws. Zero leaves it black.
	Background Color
	// UpdateFunc, when set, runs once per tick before the screen updates.
	UpdateFunc func() error
}

// game adapts a Screen to ebiten.Game.
type game struct {
	screen *Screen
	cfg    RunConfig
}

func (g *game) Update() error {
	if g.cfg.UpdateFunc != nil {
		if err := g.cfg.UpdateFunc(); err != nil {
			return err
		}
	}
	return g.screen.Update()
}

func (g *game) Draw(target *ebiten.Image) {
	if g.cfg.Background.A > 0 {
		target.Fill(g.cfg.Background.toRGBA())
	}
	g.screen.Draw(target)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.cfg.Resizable {
		g.screen.Resize(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives screen until the window closes. It blocks.
func Run(screen *Screen, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	screen.Resize(cfg.Width, cfg.Height)
	if cfg.ShowFPS {
		fps := NewFPSLabel()
		fps.Positioning = Absolute(2, 2)
		if _, err := screen.PushLayer("fps", fps); err != nil {
			return err
		}
	}
	return ebiten.RunGame(&game{screen: screen, cfg: cfg})
}
