package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/taigrr/spincube/pkg/music"
	"github.com/taigrr/spincube/pkg/render"
	"github.com/taigrr/spincube/pkg/spin"
)

const windowTitle = "Spinning Cube"

// windowKeys maps key presses to loop commands.
var windowKeys = map[ebiten.Key]spin.Command{
	ebiten.KeyQ:      spin.Quit,
	ebiten.KeyEscape: spin.Quit,
	ebiten.KeyP:      spin.TogglePause,
	ebiten.KeyM:      spin.ToggleMute,
}

// windowCanvas draws onto the ebiten screen image handed to Draw. Ebiten
// presents the image itself once Draw returns.
type windowCanvas struct {
	screen *ebiten.Image
}

var _ render.Canvas = (*windowCanvas)(nil)

func (w *windowCanvas) Clear(c render.Color) {
	if w.screen != nil {
		w.screen.Fill(c)
	}
}

func (w *windowCanvas) DrawLine(x0, y0, x1, y1 float64, c render.Color) {
	if w.screen == nil {
		return
	}
	vector.StrokeLine(w.screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, c, false)
}

func (w *windowCanvas) Present() error { return nil }

// game adapts spin.Loop to ebiten's Update/Draw split. Ebiten calls Update
// once per displayed frame; after a frame was drawn Update waits on the
// loop's fixed delay and then advances the angle, so the cadence matches
// spin.Loop.Step.
type game struct {
	ctx    context.Context
	loop   *spin.Loop
	canvas *windowCanvas
	pacer  spin.Pacer
	poll   func() []spin.Command
	drawn  bool
}

func newGame(ctx context.Context, player *music.Player) *game {
	canvas := &windowCanvas{}
	return &game{
		ctx:    ctx,
		loop:   newLoop(canvas, player),
		canvas: canvas,
		pacer:  spin.NewFixedDelay(spin.DefaultFPS),
		poll:   pollWindow,
	}
}

// pollWindow collects the commands for this tick.
func pollWindow() []spin.Command {
	var cmds []spin.Command
	if ebiten.IsWindowBeingClosed() {
		cmds = append(cmds, spin.Quit)
	}
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if c, ok := windowKeys[k]; ok {
			cmds = append(cmds, c)
		}
	}
	return cmds
}

func (g *game) Update() error {
	if g.drawn {
		g.pacer.Wait(g.ctx)
		g.loop.Advance()
		g.drawn = false
	}

	if g.ctx.Err() != nil {
		g.loop.Stop()
	}
	g.loop.Dispatch(g.poll())

	if g.loop.State() == spin.Stopped {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.loop.State() == spin.Stopped {
		return
	}
	g.canvas.screen = screen
	g.loop.Render()
	g.drawn = true
}

func (g *game) Layout(_, _ int) (int, int) {
	vp := g.loop.Config().Viewport
	return vp.Width, vp.Height
}

// runWindow opens the 800×800 window and blocks until the loop stops or the
// window fails. Update runs once per vsynced frame and the fixed delay comes
// on top of it without compensating for render time.
func runWindow(ctx context.Context, player *music.Player) error {
	vp := render.NewViewport()
	ebiten.SetWindowSize(vp.Width, vp.Height)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	ebiten.SetVsyncEnabled(true)
	ebiten.SetWindowClosingHandled(true)

	g := newGame(ctx, player)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
