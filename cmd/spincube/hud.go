package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/spincube/pkg/music"
	"github.com/taigrr/spincube/pkg/render"
	"github.com/taigrr/spincube/pkg/spin"
)

// HUD draws a status line over the terminal frame. The FPS reading follows
// the measured rate through a critically damped spring so it does not
// flicker from frame to frame.
type HUD struct {
	spring harmonica.Spring
	fps    float64
	vel    float64
	last   time.Time
}

// NewHUD creates a HUD whose spring is stepped at fps.
func NewHUD(fps int) *HUD {
	return &HUD{
		// Frequency 2.0 settles in about a second, damping 1.0 = no overshoot
		spring: harmonica.NewSpring(harmonica.FPS(fps), 2.0, 1.0),
	}
}

// Observe records a frame presented at now.
func (h *HUD) Observe(now time.Time) {
	if !h.last.IsZero() {
		if dt := now.Sub(h.last).Seconds(); dt > 0 {
			h.fps, h.vel = h.spring.Update(h.fps, h.vel, 1/dt)
		}
	}
	h.last = now
}

// FPS returns the smoothed frame rate.
func (h *HUD) FPS() float64 {
	return h.fps
}

// Line formats the status text for the current loop state.
func (h *HUD) Line(loop *spin.Loop, player *music.Player) string {
	return fmt.Sprintf(" %3.0f FPS  frame %d  angle %.2f rad  %s ",
		h.fps, loop.Frames(), loop.Angle(), audioStatus(player))
}

// Draw writes line on the top row of area.
func (h *HUD) Draw(scr uv.Screen, area uv.Rectangle, line string) {
	render.DrawText(scr, area, area.Min.X, area.Min.Y, line, hudForeground, hudBackground)
}

var (
	hudForeground = color.RGBA{R: 0x5f, G: 0xff, B: 0x87, A: 0xff}
	hudBackground = color.RGBA{A: 0xff}
)

func audioStatus(p *music.Player) string {
	switch {
	case !p.Loaded():
		return "no audio"
	case p.Paused():
		return "music paused"
	case p.Volume() == 0:
		return "music muted"
	default:
		return "music playing"
	}
}
