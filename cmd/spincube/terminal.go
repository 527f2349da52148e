package main

import (
	"context"
	"fmt"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/spincube/pkg/music"
	"github.com/taigrr/spincube/pkg/render"
	"github.com/taigrr/spincube/pkg/spin"
)

// terminalCommand maps a key press to a loop command.
func terminalCommand(ev uv.KeyPressEvent) (spin.Command, bool) {
	switch {
	case ev.MatchString("q", "escape", "ctrl+c"):
		return spin.Quit, true
	case ev.MatchString("p"):
		return spin.TogglePause, true
	case ev.MatchString("m"):
		return spin.ToggleMute, true
	}
	return 0, false
}

// runTerminal draws the cube with half-block characters until quit. The
// 800×800 viewport is scaled to the terminal size and rescaled on resize.
func runTerminal(ctx context.Context, player *music.Player, showHUD bool) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	canvas := render.NewTerminalCanvas(term, width, height, render.NewViewport(), term.Display)
	canvas.SetResizeHook(func(cols, rows int) {
		term.Erase()
		term.Resize(cols, rows)
	})
	loop := newLoop(canvas, player)

	if showHUD {
		hud := NewHUD(spin.DefaultFPS)
		canvas.SetOverlay(func(scr uv.Screen, area uv.Rectangle) {
			hud.Observe(time.Now())
			hud.Draw(scr, area, hud.Line(loop, player))
		})
	}

	queue := spin.NewCommandQueue(16)
	loop.SetEvents(queue)

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				canvas.Resize(ev.Width, ev.Height)
			case uv.KeyPressEvent:
				if c, ok := terminalCommand(ev); ok {
					queue.Push(c)
				}
			}
		}
	}()

	loop.Run(ctx)
	return nil
}
