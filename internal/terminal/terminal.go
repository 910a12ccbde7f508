package terminal

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

// Terminal manages raw mode, alternate screen buffer, and terminal dimensions.
type Terminal struct {
	in       *os.File
	out      io.Writer
	oldState *term.State
	width    int
	height   int
	sigwinch chan os.Signal
	restored bool
}

func NewTerminal() (*Terminal, error) {
	t := &Terminal{in: os.Stdin, out: os.Stdout}

	// Switch to raw mode.
	oldState, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return nil, err
	}
	t.oldState = oldState

	// Enter alternate screen buffer.
	io.WriteString(t.out, "\x1b[?1049h")

	// Query size.
	t.width, t.height, err = term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		t.Restore()
		return nil, err
	}

	// Listen for resize signals.
	t.sigwinch = make(chan os.Signal, 1)
	signal.Notify(t.sigwinch, syscall.SIGWINCH)

	return t, nil
}

// Resize re-queries terminal dimensions. Returns true if the size changed.
func (t *Terminal) Resize() bool {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return false
	}
	changed := w != t.width || h != t.height
	t.width = w
	t.height = h
	return changed
}

// Size returns the current terminal width and height.
func (t *Terminal) Size() (int, int) { return t.width, t.height }

// Write sends a rendered frame to the screen.
func (t *Terminal) Write(frame string) error {
	_, err := io.WriteString(t.out, frame)
	return err
}

// Restore returns the terminal to its original state. It is safe to call
// more than once.
func (t *Terminal) Restore() {
	if t.restored {
		return
	}
	t.restored = true
	// Leave alternate screen buffer.
	io.WriteString(t.out, "\x1b[?1049l")
	if t.oldState != nil {
		term.Restore(int(t.in.Fd()), t.oldState)
	}
	if t.sigwinch != nil {
		signal.Stop(t.sigwinch)
	}
}

// ReadEvent blocks for the next input event. A pending resize is reported
// as EventRedraw before any key.
func (t *Terminal) ReadEvent() (Event, error) {
	select {
	case <-t.sigwinch:
		t.Resize()
		return Event{Type: EventRedraw}, nil
	default:
	}

	buf := make([]byte, 32)
	n, err := t.in.Read(buf)
	if err != nil {
		return Event{}, err
	}
	return Parse(buf[:n]), nil
}
