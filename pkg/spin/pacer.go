package spin

import (
	"context"
	"time"
)

// Pacer holds the frame rate by blocking once per frame.
type Pacer interface {
	Wait(ctx context.Context)
}

// FixedDelay sleeps the same duration after every frame no matter how long
// the frame took, so the effective rate sits slightly below the nominal one.
type FixedDelay struct {
	Delay time.Duration
}

// NewFixedDelay returns a pacer sleeping 1000/fps whole milliseconds
// (16ms at 60 FPS).
func NewFixedDelay(fps int) FixedDelay {
	if fps <= 0 {
		return FixedDelay{}
	}
	return FixedDelay{Delay: time.Duration(1000/fps) * time.Millisecond}
}

// Wait blocks for Delay or until ctx is done.
func (p FixedDelay) Wait(ctx context.Context) {
	if p.Delay <= 0 {
		return
	}
	t := time.NewTimer(p.Delay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// NopPacer never blocks. Headless recording and tests use it so frames run
// back to back while the angle still advances by the fixed timestep.
type NopPacer struct{}

// Wait returns immediately.
func (NopPacer) Wait(context.Context) {}
