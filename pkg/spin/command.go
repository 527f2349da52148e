package spin

// Command is a discrete request from the input side of the program.
type Command int

const (
	// Quit stops the loop.
	Quit Command = iota + 1
	// TogglePause pauses the music if it is playing and resumes it otherwise.
	TogglePause
	// ToggleMute silences the music if it is audible and restores full
	// volume otherwise.
	ToggleMute
)

// String returns a readable command name.
func (c Command) String() string {
	switch c {
	case Quit:
		return "quit"
	case TogglePause:
		return "toggle-pause"
	case ToggleMute:
		return "toggle-mute"
	default:
		return "unknown"
	}
}

// EventSource hands the loop every command received since the last call.
// Poll must not block.
type EventSource interface {
	Poll() []Command
}

// AudioController receives the music commands.
// Both methods are toggles and must be no-ops when nothing is loaded.
type AudioController interface {
	TogglePause()
	ToggleMute()
}

// NoAudio is the controller for builds or runs without music.
type NoAudio struct{}

// TogglePause does nothing.
func (NoAudio) TogglePause() {}

// ToggleMute does nothing.
func (NoAudio) ToggleMute() {}

// CommandQueue is an EventSource fed from another goroutine, typically a
// terminal or signal reader. Commands pushed while the queue is full are
// dropped, except Quit which is remembered until the next Poll.
type CommandQueue struct {
	ch   chan Command
	quit chan struct{}
}

// NewCommandQueue creates a queue holding up to size pending commands.
func NewCommandQueue(size int) *CommandQueue {
	return &CommandQueue{
		ch:   make(chan Command, size),
		quit: make(chan struct{}, 1),
	}
}

// Push enqueues a command without blocking.
func (q *CommandQueue) Push(c Command) {
	select {
	case q.ch <- c:
		return
	default:
	}
	if c == Quit {
		select {
		case q.quit <- struct{}{}:
		default:
		}
	}
}

// Poll drains all pending commands.
func (q *CommandQueue) Poll() []Command {
	var out []Command
	for {
		select {
		case c := <-q.ch:
			out = append(out, c)
		case <-q.quit:
			out = append(out, Quit)
		default:
			return out
		}
	}
}

// EventFunc adapts a function to EventSource.
type EventFunc func() []Command

// Poll calls f.
func (f EventFunc) Poll() []Command {
	return f()
}
