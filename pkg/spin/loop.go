// Package spin drives the rotating cube: it owns the rotation angle, runs the
// per-frame transform, projection and drawing, and dispatches input commands.
package spin

import (
	"context"

	"fortio.org/log"
	"github.com/taigrr/spincube/pkg/math3d"
	"github.com/taigrr/spincube/pkg/models"
	"github.com/taigrr/spincube/pkg/render"
)

// Fixed runtime constants.
const (
	// DefaultFPS is the target frame rate.
	DefaultFPS = 60
	// RotationSpeed is the spin rate in radians per second.
	RotationSpeed = 3.0
	// CameraDistance pushes the cube along +z so every vertex has z >= 2.
	CameraDistance = 3.0
)

// State is the loop lifecycle.
type State int

const (
	// Running loops keep rendering frames.
	Running State = iota
	// Stopped is terminal.
	Stopped
)

// String returns the state name.
func (s State) String() string {
	if s == Stopped {
		return "stopped"
	}
	return "running"
}

// Config holds the loop parameters.
type Config struct {
	FPS            int
	RotationSpeed  float64 // radians per second
	CameraDistance float64
	Viewport       render.Viewport
	Background     render.Color
	Foreground     render.Color
}

// DefaultConfig returns the fixed 800×800, 60 FPS, 3 rad/s setup with red
// lines on black.
func DefaultConfig() Config {
	return Config{
		FPS:            DefaultFPS,
		RotationSpeed:  RotationSpeed,
		CameraDistance: CameraDistance,
		Viewport:       render.NewViewport(),
		Background:     render.ColorBlack,
		Foreground:     render.ColorRed,
	}
}

// Timestep returns the simulated seconds per frame.
func (c Config) Timestep() float64 {
	return 1.0 / float64(c.FPS)
}

// ProjectVertex runs one cube vertex through the frame pipeline: rotate about
// y, move away from the camera, perspective-divide and map to pixels.
func ProjectVertex(v math3d.Vec3, angle, cameraDistance float64, viewport render.Viewport) math3d.Vec2 {
	p := math3d.RotateY(v, angle)
	p.Z += cameraDistance
	return viewport.Project(p)
}

// Loop is the animation loop. It is not safe for concurrent use; a single
// goroutine calls Step (or Run) while other goroutines only feed the
// EventSource.
type Loop struct {
	cfg    Config
	cube   models.Cube
	canvas render.Canvas
	wire   *render.Wireframe
	events EventSource
	audio  AudioController
	pacer  Pacer

	audioAvailable bool

	state  State
	angle  float64
	frames uint64
	points [models.VertexCount]math3d.Vec2
}

// NewLoop creates a loop drawing onto canvas. It starts Running at angle 0
// with no input, no audio and a FixedDelay pacer for cfg.FPS.
func NewLoop(cfg Config, canvas render.Canvas) *Loop {
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	return &Loop{
		cfg:    cfg,
		cube:   models.NewCube(),
		canvas: canvas,
		wire:   render.NewWireframe(canvas, cfg.Foreground),
		events: EventFunc(func() []Command { return nil }),
		audio:  NoAudio{},
		pacer:  NewFixedDelay(cfg.FPS),
	}
}

// SetEvents sets the input source drained at the start of every Step.
func (l *Loop) SetEvents(src EventSource) {
	if src == nil {
		src = EventFunc(func() []Command { return nil })
	}
	l.events = src
}

// SetAudio installs the music controller. A nil controller disables the
// audio commands.
func (l *Loop) SetAudio(a AudioController) {
	if a == nil {
		l.audio = NoAudio{}
		l.audioAvailable = false
		return
	}
	l.audio = a
	l.audioAvailable = true
}

// SetPacer replaces the frame pacer.
func (l *Loop) SetPacer(p Pacer) {
	if p == nil {
		p = NopPacer{}
	}
	l.pacer = p
}

// Config returns the loop configuration.
func (l *Loop) Config() Config { return l.cfg }

// State returns the current lifecycle state.
func (l *Loop) State() State { return l.state }

// Angle returns the current rotation in radians.
func (l *Loop) Angle() float64 { return l.angle }

// Frames returns how many frames have been rendered and advanced.
func (l *Loop) Frames() uint64 { return l.frames }

// AudioAvailable reports whether audio commands are forwarded.
func (l *Loop) AudioAvailable() bool { return l.audioAvailable }

// Points returns the screen positions computed by the last Render.
func (l *Loop) Points() [models.VertexCount]math3d.Vec2 { return l.points }

// Stop moves the loop to Stopped.
func (l *Loop) Stop() {
	if l.state != Stopped {
		log.LogVf("loop stopped after %d frames", l.frames)
	}
	l.state = Stopped
}

// Dispatch applies commands in order. Quit stops the loop; the music
// toggles are forwarded only when audio is available.
func (l *Loop) Dispatch(cmds []Command) {
	for _, c := range cmds {
		switch c {
		case Quit:
			l.Stop()
		case TogglePause:
			if l.audioAvailable {
				l.audio.TogglePause()
			}
		case ToggleMute:
			if l.audioAvailable {
				l.audio.ToggleMute()
			}
		default:
			log.Warnf("ignoring unknown command %d", int(c))
		}
	}
}

// Render draws the cube at the current angle and presents the frame.
// A failed Present is logged and otherwise ignored.
func (l *Loop) Render() {
	l.canvas.Clear(l.cfg.Background)

	for i, v := range l.cube {
		l.points[i] = ProjectVertex(v, l.angle, l.cfg.CameraDistance, l.cfg.Viewport)
	}
	l.wire.DrawCube(&l.points)

	if err := l.canvas.Present(); err != nil {
		log.LogVf("present frame %d: %v", l.frames, err)
	}
}

// Advance moves the animation one fixed timestep forward, independent of
// wall-clock time.
func (l *Loop) Advance() {
	l.angle += l.cfg.RotationSpeed * l.cfg.Timestep()
	l.frames++
}

// Step runs one iteration: drain input, render, pace, advance.
// Once Quit is seen no further frame is drawn. A cancelled ctx counts as
// Quit.
func (l *Loop) Step(ctx context.Context) State {
	if l.state == Stopped {
		return Stopped
	}
	if ctx.Err() != nil {
		l.Stop()
		return Stopped
	}

	l.Dispatch(l.events.Poll())
	if l.state == Stopped {
		return Stopped
	}

	l.Render()
	l.pacer.Wait(ctx)
	l.Advance()

	return l.state
}

// Run steps until the loop stops.
func (l *Loop) Run(ctx context.Context) {
	for l.Step(ctx) == Running {
	}
}
