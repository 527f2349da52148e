package main

import (
	"bytes"
	"context"
	"image/gif"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/taigrr/spincube/pkg/music"
	"github.com/taigrr/spincube/pkg/render"
	"github.com/taigrr/spincube/pkg/spin"
)

func TestStopAfter(t *testing.T) {
	src := stopAfter(3)
	for i := range 3 {
		if cmds := src.Poll(); len(cmds) != 0 {
			t.Fatalf("poll %d = %v, want none", i, cmds)
		}
	}
	if cmds := src.Poll(); len(cmds) != 1 || cmds[0] != spin.Quit {
		t.Errorf("poll after limit = %v, want [quit]", cmds)
	}
}

func TestRunRecord(t *testing.T) {
	dir := t.TempDir()
	gifPath := filepath.Join(dir, "cube.gif")
	pngPath := filepath.Join(dir, "cube.png")

	if err := runRecord(context.Background(), gifPath, pngPath, 5); err != nil {
		t.Fatalf("runRecord: %v", err)
	}

	data, err := os.ReadFile(gifPath)
	if err != nil {
		t.Fatalf("read gif: %v", err)
	}
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode gif: %v", err)
	}
	if len(g.Image) != 5 {
		t.Errorf("recorded %d frames, want 5", len(g.Image))
	}
	total := 0
	for _, d := range g.Delay {
		total += d
	}
	// 5 frames at 60 FPS last 8.3cs, written as whole centiseconds
	if total != 8 {
		t.Errorf("total delay = %dcs, want 8cs", total)
	}

	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if b := img.Bounds(); b.Dx() != render.ScreenWidth || b.Dy() != render.ScreenHeight {
		t.Errorf("snapshot size = %v, want %dx%d", b, render.ScreenWidth, render.ScreenHeight)
	}
}

func TestRunRecordRejectsNoFrames(t *testing.T) {
	for _, n := range []int{0, -1} {
		if err := runRecord(context.Background(), "", "", n); err == nil {
			t.Errorf("runRecord(frames=%d) succeeded", n)
		}
	}
}

func TestExportCube(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.glb")
	if err := exportCube(path); err != nil {
		t.Fatalf("exportCube: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("export missing: %v", err)
	}
}

func TestExportCubeBadPath(t *testing.T) {
	if err := exportCube(filepath.Join(t.TempDir(), "missing", "cube.glb")); err == nil {
		t.Error("expected error for unwritable path")
	}
}

func TestNewLoopWithoutMusic(t *testing.T) {
	var player *music.Player
	loop := newLoop(render.NewFramebuffer(render.ScreenWidth, render.ScreenHeight), player)
	if loop.AudioAvailable() {
		t.Error("loop reports audio without a loaded track")
	}
}

func TestOpenMusicDisabled(t *testing.T) {
	if p := openMusic(music.DefaultTrack, true); p != nil {
		t.Error("openMusic returned a player with audio disabled")
	}
}

func TestWindowKeys(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want spin.Command
	}{
		{ebiten.KeyQ, spin.Quit},
		{ebiten.KeyEscape, spin.Quit},
		{ebiten.KeyP, spin.TogglePause},
		{ebiten.KeyM, spin.ToggleMute},
	}

	for _, tc := range tests {
		t.Run(tc.want.String(), func(t *testing.T) {
			if got, ok := windowKeys[tc.key]; !ok || got != tc.want {
				t.Errorf("windowKeys[%v] = %v, %v; want %v", tc.key, got, ok, tc.want)
			}
		})
	}
	if _, ok := windowKeys[ebiten.KeySpace]; ok {
		t.Error("space should not be bound")
	}
}

func TestTerminalCommand(t *testing.T) {
	tests := []struct {
		name string
		key  uv.KeyPressEvent
		want spin.Command
		ok   bool
	}{
		{"q", uv.KeyPressEvent{Code: 'q', Text: "q"}, spin.Quit, true},
		{"p", uv.KeyPressEvent{Code: 'p', Text: "p"}, spin.TogglePause, true},
		{"m", uv.KeyPressEvent{Code: 'm', Text: "m"}, spin.ToggleMute, true},
		{"x", uv.KeyPressEvent{Code: 'x', Text: "x"}, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := terminalCommand(tc.key)
			if got != tc.want || ok != tc.ok {
				t.Errorf("terminalCommand(%s) = %v, %v; want %v, %v", tc.name, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestWindowCanvasWithoutScreen(t *testing.T) {
	var c windowCanvas
	c.Clear(render.ColorBlack)
	c.DrawLine(0, 0, 10, 10, render.ColorRed)
	if err := c.Present(); err != nil {
		t.Errorf("Present() = %v", err)
	}
}

func TestHUDSettlesOnFrameRate(t *testing.T) {
	hud := NewHUD(spin.DefaultFPS)
	start := time.Unix(0, 0)
	step := time.Second / 60

	for i := range 600 {
		hud.Observe(start.Add(time.Duration(i) * step))
	}

	if got := hud.FPS(); math.Abs(got-60) > 0.5 {
		t.Errorf("FPS() = %v, want ~60", got)
	}
}

func TestHUDIgnoresFirstAndDuplicateFrames(t *testing.T) {
	hud := NewHUD(spin.DefaultFPS)
	now := time.Unix(10, 0)

	hud.Observe(now)
	hud.Observe(now)
	if hud.FPS() != 0 {
		t.Errorf("FPS() = %v before any measurable interval", hud.FPS())
	}
}

func TestHUDLine(t *testing.T) {
	hud := NewHUD(spin.DefaultFPS)
	loop := spin.NewLoop(spin.DefaultConfig(), render.NewFramebuffer(render.ScreenWidth, render.ScreenHeight))
	loop.SetPacer(spin.NopPacer{})
	for range 20 {
		loop.Step(context.Background())
	}

	got := hud.Line(loop, nil)
	want := "   0 FPS  frame 20  angle 1.00 rad  no audio "
	if got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}
