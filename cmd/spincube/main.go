// spincube - Spinning Wireframe Cube
// A red wireframe cube rotating about its vertical axis, drawn with a
// hand-written perspective projection at 60 FPS, with optional looping music.
//
// Controls:
//
//	Q/Esc - Quit
//	P     - Pause/resume music
//	M     - Mute/unmute music
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fortio.org/log"
	"github.com/taigrr/spincube/pkg/models"
	"github.com/taigrr/spincube/pkg/music"
	"github.com/taigrr/spincube/pkg/render"
	"github.com/taigrr/spincube/pkg/spin"
)

const (
	backendWindow   = "window"
	backendTerminal = "terminal"
	backendRecord   = "record"
)

var (
	backend      = flag.String("backend", backendWindow, "Output: window, terminal or record")
	noAudio      = flag.Bool("no-audio", false, "Run without music")
	trackPath    = flag.String("track", music.DefaultTrack, "Ogg Vorbis music file")
	showHUD      = flag.Bool("hud", false, "Show frame, angle and FPS overlay (terminal backend)")
	recordPath   = flag.String("record", "spincube.gif", "GIF output for the record backend")
	recordFrames = flag.Int("frames", 2*spin.DefaultFPS, "Frames to render with the record backend")
	snapshotPath = flag.String("snapshot", "", "Also write the last recorded frame as PNG")
	exportPath   = flag.String("export", "", "Write the cube as a glTF binary and exit")
	verbose      = flag.Bool("v", false, "Verbose logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "spincube - Spinning Wireframe Cube\n\n")
		fmt.Fprintf(os.Stderr, "Usage: spincube [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Q/Esc - Quit\n")
		fmt.Fprintf(os.Stderr, "  P     - Pause/resume music\n")
		fmt.Fprintf(os.Stderr, "  M     - Mute/unmute music\n")
	}
	flag.Parse()

	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(1)
	}

	log.SetDefaultsForClientTools()
	if *verbose {
		log.SetLogLevel(log.Verbose)
	}

	if err := run(); err != nil {
		log.Critf("spincube: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *exportPath != "" {
		return exportCube(*exportPath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("Backend: %s", *backend)

	switch *backend {
	case backendRecord:
		return runRecord(ctx, *recordPath, *snapshotPath, *recordFrames)
	case backendWindow, backendTerminal:
	default:
		return fmt.Errorf("unknown backend %q (use %s, %s or %s)", *backend, backendWindow, backendTerminal, backendRecord)
	}

	player := openMusic(*trackPath, *noAudio)
	if player != nil {
		defer player.Close()
	}

	if *backend == backendTerminal {
		return runTerminal(ctx, player, *showHUD)
	}
	return runWindow(ctx, player)
}

// exportCube writes the cube as glTF binary and reads it back to check the
// file holds the same corners and edges.
func exportCube(path string) error {
	cube := models.NewCube()
	if err := models.ExportCubeGLB(path, cube); err != nil {
		return err
	}

	got, err := models.ReadCubeGLB(path)
	if err != nil {
		return fmt.Errorf("verify %s: %w", path, err)
	}
	for i := range cube {
		// positions are stored as float32
		if !got[i].ApproxEqual(cube[i], 1e-6) {
			return fmt.Errorf("verify %s: vertex %d is %v, want %v", path, i, got[i], cube[i])
		}
	}

	log.Infof("Wrote %s (%d vertices, %d edges)", path, models.VertexCount, models.EdgeCount)
	return nil
}

// openMusic loads and starts the track. Any failure is logged and yields
// nil, which runs the cube without audio.
func openMusic(path string, disabled bool) *music.Player {
	if disabled {
		log.Infof("Audio disabled")
		return nil
	}

	ctx, err := music.NewContext()
	if err != nil {
		log.Warnf("Audio unavailable: %v", err)
		return nil
	}

	player, err := music.Open(ctx, path)
	if err != nil {
		log.Warnf("Music unavailable: %v", err)
		return nil
	}

	if err := player.Play(); err != nil {
		log.Warnf("Music unavailable: %v", err)
		player.Close()
		return nil
	}
	return player
}

// newLoop builds the animation loop for a canvas and attaches the music
// controller when one is loaded.
func newLoop(canvas render.Canvas, player *music.Player) *spin.Loop {
	loop := spin.NewLoop(spin.DefaultConfig(), canvas)
	if player.Loaded() {
		loop.SetAudio(player)
	}
	return loop
}
