package render

import (
	"image"
	"image/color"
	"math"
	"sync"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the internal framebuffer to terminal cells and draws them on
// the screen.
// The framebuffer height should be 2x the terminal height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 framebuffer rows
	// We use ▀ (upper half block) with fg=top color and bg=bottom color

	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			topColor := fb.GetPixel(col, topY)
			botColor := fb.GetPixel(col, botY)

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(topColor),
					Bg: rgbaToColor(botColor),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// TerminalCanvas renders the logical viewport onto a terminal with
// half-block characters. The viewport is scaled uniformly to fit and centred,
// so the cube keeps its aspect ratio.
type TerminalCanvas struct {
	fb       *Framebuffer
	viewport Viewport
	scale    float64
	offX     float64
	offY     float64
	scr      uv.Screen
	display  func() error
	overlay  func(scr uv.Screen, area uv.Rectangle)
	onResize func(cols, rows int)

	mu      sync.Mutex
	pending *image.Point // terminal size waiting for the next Clear
}

var _ Canvas = (*TerminalCanvas)(nil)

// NewTerminalCanvas creates a canvas for a terminal of cols×rows cells
// showing a viewport of the given pixel size. display is called by Present
// after the cells have been written; it is usually the terminal's Display.
func NewTerminalCanvas(scr uv.Screen, cols, rows int, viewport Viewport, display func() error) *TerminalCanvas {
	t := &TerminalCanvas{
		viewport: viewport,
		scr:      scr,
		display:  display,
	}
	t.layout(cols, rows)
	return t
}

func (t *TerminalCanvas) layout(cols, rows int) {
	t.fb = NewFramebuffer(cols, rows*2)
	t.scale = math.Min(float64(t.fb.Width)/float64(t.viewport.Width), float64(t.fb.Height)/float64(t.viewport.Height))
	t.offX = (float64(t.fb.Width) - float64(t.viewport.Width)*t.scale) / 2
	t.offY = (float64(t.fb.Height) - float64(t.viewport.Height)*t.scale) / 2
}

// SetOverlay installs a function drawn over the frame on every Present.
func (t *TerminalCanvas) SetOverlay(fn func(scr uv.Screen, area uv.Rectangle)) {
	t.overlay = fn
}

// SetResizeHook installs a function run on the drawing goroutine when a
// pending resize is applied, before the new frame is drawn.
func (t *TerminalCanvas) SetResizeHook(fn func(cols, rows int)) {
	t.onResize = fn
}

// Resize records a new terminal size. It is safe to call from any goroutine;
// the layout changes at the start of the next frame.
func (t *TerminalCanvas) Resize(cols, rows int) {
	t.mu.Lock()
	t.pending = &image.Point{X: cols, Y: rows}
	t.mu.Unlock()
}

func (t *TerminalCanvas) applyResize() {
	t.mu.Lock()
	p := t.pending
	t.pending = nil
	t.mu.Unlock()

	if p == nil || p.X <= 0 || p.Y <= 0 {
		return
	}
	t.layout(p.X, p.Y)
	if t.onResize != nil {
		t.onResize(p.X, p.Y)
	}
}

// Clear applies any pending resize and fills the backing framebuffer.
func (t *TerminalCanvas) Clear(c Color) {
	t.applyResize()
	t.fb.Clear(c)
}

// DrawLine scales the line from viewport pixels to framebuffer pixels.
func (t *TerminalCanvas) DrawLine(x0, y0, x1, y1 float64, c Color) {
	t.fb.DrawLine(
		x0*t.scale+t.offX, y0*t.scale+t.offY,
		x1*t.scale+t.offX, y1*t.scale+t.offY,
		c,
	)
}

// Present copies the framebuffer into terminal cells and displays them.
func (t *TerminalCanvas) Present() error {
	if t.scr == nil {
		return nil
	}
	area := t.scr.Bounds()
	t.fb.Draw(t.scr, area)
	if t.overlay != nil {
		t.overlay(t.scr, area)
	}
	if t.display == nil {
		return nil
	}
	return t.display()
}

// DrawText writes a single line of text into terminal cells starting at
// (col, row). Runes past the right edge of area are dropped.
func DrawText(scr uv.Screen, area uv.Rectangle, col, row int, text string, fg, bg color.Color) {
	for _, r := range text {
		if col >= area.Max.X {
			return
		}
		scr.SetCell(col, row, &uv.Cell{
			Content: string(r),
			Width:   1,
			Style:   uv.Style{Fg: fg, Bg: bg},
		})
		col++
	}
}
