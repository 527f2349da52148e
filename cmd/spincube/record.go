package main

import (
	"context"
	"fmt"
	"image/color"

	"fortio.org/log"
	"github.com/taigrr/spincube/pkg/render"
	"github.com/taigrr/spincube/pkg/spin"
)

// recordPalette holds the only colours a frame contains.
var recordPalette = color.Palette{render.ColorBlack, render.ColorRed}

// stopAfter returns an event source that lets n frames render and then
// quits.
func stopAfter(n int) spin.EventSource {
	polls := 0
	return spin.EventFunc(func() []spin.Command {
		polls++
		if polls > n {
			return []spin.Command{spin.Quit}
		}
		return nil
	})
}

// runRecord renders frames headlessly as fast as possible and writes them as
// a GIF, plus the last frame as PNG when snapshot is set.
func runRecord(ctx context.Context, gifPath, snapshot string, frames int) error {
	if frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", frames)
	}

	rec := render.NewRecorder(render.NewViewport(), recordPalette)
	loop := spin.NewLoop(spin.DefaultConfig(), rec)
	loop.SetPacer(spin.NopPacer{})
	loop.SetEvents(stopAfter(frames))
	loop.Run(ctx)

	log.Infof("Recorded %d frames, angle %.3f rad", rec.Frames(), loop.Angle())

	if gifPath != "" {
		if err := rec.SaveGIF(gifPath, spin.DefaultFPS); err != nil {
			return fmt.Errorf("save recording: %w", err)
		}
		log.Infof("Wrote %s", gifPath)
	}
	if snapshot != "" {
		if err := rec.SavePNG(snapshot); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		log.Infof("Wrote %s", snapshot)
	}
	return nil
}
