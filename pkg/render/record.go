package render

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"
)

// Recorder is a headless canvas that keeps every presented frame so the
// animation can be written out as a GIF.
type Recorder struct {
	*Framebuffer
	palette color.Palette
	frames  []*image.Paletted
}

var _ Canvas = (*Recorder)(nil)

// NewRecorder creates a recorder for a viewport. Frames are quantized to
// palette; the first entry is used for pixels matching no other entry.
func NewRecorder(viewport Viewport, palette color.Palette) *Recorder {
	return &Recorder{
		Framebuffer: NewFramebuffer(viewport.Width, viewport.Height),
		palette:     palette,
	}
}

// Present snapshots the framebuffer as a paletted frame.
func (r *Recorder) Present() error {
	img := image.NewPaletted(image.Rect(0, 0, r.Width, r.Height), r.palette)

	// Exact matches are the common case; only fall back to the nearest colour
	// search for pixels outside the palette.
	lookup := make(map[color.RGBA]uint8, len(r.palette))
	for i, c := range r.palette {
		cr, cg, cb, ca := c.RGBA()
		lookup[color.RGBA{uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8), uint8(ca >> 8)}] = uint8(i)
	}
	for i, p := range r.Pixels {
		idx, ok := lookup[p]
		if !ok {
			idx = uint8(r.palette.Index(p))
		}
		img.Pix[i] = idx
	}

	r.frames = append(r.frames, img)
	return nil
}

// Frames returns the number of frames captured so far.
func (r *Recorder) Frames() int {
	return len(r.frames)
}

// EncodeGIF writes the captured frames as a looping animation at fps.
// GIF delays are whole centiseconds, so the remainder of 100/fps is spread
// over the frames: at 60 FPS the delays run 1, 2, 2, ... and every 60 frames
// last exactly one second.
func (r *Recorder) EncodeGIF(w io.Writer, fps int) error {
	if len(r.frames) == 0 {
		return fmt.Errorf("no frames recorded")
	}
	if fps <= 0 {
		return fmt.Errorf("invalid frame rate %d", fps)
	}

	out := &gif.GIF{
		LoopCount: 0, // 0 means loop forever
	}
	for i, img := range r.frames {
		out.Image = append(out.Image, img)
		out.Delay = append(out.Delay, frameDelay(i, fps))
	}

	return gif.EncodeAll(w, out)
}

// frameDelay returns the delay of frame i in centiseconds such that the
// first n frames add up to n*100/fps rounded down.
func frameDelay(i, fps int) int {
	return (i+1)*100/fps - i*100/fps
}

// SaveGIF writes the captured frames to path.
func (r *Recorder) SaveGIF(path string, fps int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.EncodeGIF(f, fps); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
