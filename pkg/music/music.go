// Package music plays a looping background track and exposes the pause and
// mute toggles the animation loop forwards to it.
package music

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"fortio.org/log"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
)

// Device parameters.
const (
	SampleRate    = 44100
	BufferSamples = 4096
	MaxVolume     = 1.0
)

// DefaultTrack is the music file looked up relative to the working directory.
const DefaultTrack = "freebird.ogg"

// ErrNoTrack is returned when an operation needs a loaded track.
var ErrNoTrack = errors.New("music: no track loaded")

// bufferSize is the playback buffer as a duration (~93ms).
var bufferSize = time.Duration(BufferSamples) * time.Second / SampleRate

// output is the part of *audio.Player the Player drives.
type output interface {
	Play()
	Pause()
	Volume() float64
	SetVolume(volume float64)
	Close() error
}

// Player controls one looping track. The zero value and a nil *Player have
// no track; every toggle on them is a no-op.
type Player struct {
	out    output
	src    io.Closer
	paused bool
	closed bool
}

// NewContext returns the process audio context at SampleRate, creating it on
// first use. It fails instead of panicking when a context with another
// sample rate already exists.
func NewContext() (ctx *audio.Context, err error) {
	if ctx = audio.CurrentContext(); ctx != nil {
		if ctx.SampleRate() != SampleRate {
			return nil, fmt.Errorf("audio context already running at %d Hz", ctx.SampleRate())
		}
		return ctx, nil
	}

	defer func() {
		if r := recover(); r != nil {
			ctx, err = nil, fmt.Errorf("init audio: %v", r)
		}
	}()
	return audio.NewContext(SampleRate), nil
}

// Open decodes an Ogg Vorbis file and prepares it for endless playback at
// full volume. Playback starts with Play.
func Open(ctx *audio.Context, path string) (*Player, error) {
	if ctx == nil {
		return nil, errors.New("music: nil audio context")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open track: %w", err)
	}

	stream, err := vorbis.DecodeWithSampleRate(SampleRate, f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	p, err := ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create player: %w", err)
	}
	p.SetBufferSize(bufferSize)
	p.SetVolume(MaxVolume)

	log.Infof("Loaded track %s", path)
	return newPlayer(p, f), nil
}

func newPlayer(out output, src io.Closer) *Player {
	return &Player{out: out, src: src, paused: true}
}

// Loaded reports whether a track is ready to play.
func (m *Player) Loaded() bool {
	return m != nil && m.out != nil && !m.closed
}

// Play starts or resumes playback.
func (m *Player) Play() error {
	if !m.Loaded() {
		return ErrNoTrack
	}
	m.out.Play()
	m.paused = false
	return nil
}

// Paused reports whether playback is paused. A player without a track is
// reported as paused.
func (m *Player) Paused() bool {
	if !m.Loaded() {
		return true
	}
	return m.paused
}

// Volume returns the current volume, 0 when nothing is loaded.
func (m *Player) Volume() float64 {
	if !m.Loaded() {
		return 0
	}
	return m.out.Volume()
}

// TogglePause pauses a playing track and resumes a paused one.
func (m *Player) TogglePause() {
	if !m.Loaded() {
		return
	}
	if m.paused {
		m.out.Play()
		m.paused = false
		log.LogVf("music resumed")
		return
	}
	m.out.Pause()
	m.paused = true
	log.LogVf("music paused")
}

// ToggleMute silences an audible track and restores MaxVolume otherwise.
func (m *Player) ToggleMute() {
	if !m.Loaded() {
		return
	}
	if m.out.Volume() > 0 {
		m.out.SetVolume(0)
		log.LogVf("music muted")
		return
	}
	m.out.SetVolume(MaxVolume)
	log.LogVf("music unmuted")
}

// Close halts playback and releases the player and the track file.
// Calling it more than once is safe.
func (m *Player) Close() error {
	if !m.Loaded() {
		return nil
	}
	m.closed = true
	m.out.Pause()

	var errs []error
	if err := m.out.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close player: %w", err))
	}
	if m.src != nil {
		if err := m.src.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close track: %w", err))
		}
	}
	return errors.Join(errs...)
}
