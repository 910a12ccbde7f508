package prompt

import (
	"errors"
	"fmt"

	"github.com/JackWReid/veer/internal/terminal"
)

// ErrCancelled is returned when the user escapes out of a prompt.
var ErrCancelled = errors.New("prompt cancelled")

// Response is the answer to a yes/no/cancel question.
type Response int

const (
	Cancel Response = iota
	Yes
	No
)

func (r Response) String() string {
	switch r {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "cancel"
	}
}

// Input supplies one decoded event per call.
type Input interface {
	ReadEvent() (terminal.Event, error)
}

// Screen draws the prompt area. Redraw repaints everything under the
// prompt, for instance after a resize.
type Screen interface {
	DrawPrompt(label, hint, answer string, cursor int)
	ClearPrompt()
	Redraw()
}

// String asks for a line of text after label. Escape returns ErrCancelled.
// capacity is the answer's starting size.
func String(in Input, scr Screen, label string, capacity int) (string, error) {
	const hint = "(Press ESCAPE to cancel)"
	m := NewMiniEditor(len(label), capacity)
	draw := func() { scr.DrawPrompt(label, hint, m.Text(), m.Column()) }
	draw()
	defer scr.ClearPrompt()

	for {
		ev, err := in.ReadEvent()
		if err != nil {
			m.Cancel()
			return "", fmt.Errorf("reading prompt input: %w", err)
		}
		switch ev.Type {
		case terminal.EventPrintable:
			m.Insert(ev.Byte)
		case terminal.EventRedraw:
			scr.Redraw()
		case terminal.EventNav:
			switch ev.Nav {
			case terminal.NavLeft:
				m.Left()
			case terminal.NavRight:
				m.Right()
			case terminal.NavHome:
				m.Home()
			case terminal.NavEnd:
				m.End()
			case terminal.NavBackspace:
				m.Backspace()
			case terminal.NavEnter:
				return m.Confirm(), nil
			case terminal.NavEscape:
				m.Cancel()
				return "", ErrCancelled
			}
		}
		draw()
	}
}

// YesNoCancel asks question and waits for y, n or c. Escape counts as
// cancel; every other key is ignored.
func YesNoCancel(in Input, scr Screen, question string) (Response, error) {
	const hint = "[Y]es, [N]o, [C]ancel: "
	draw := func() { scr.DrawPrompt(question, hint, "", len(question)) }
	draw()
	defer scr.ClearPrompt()

	for {
		ev, err := in.ReadEvent()
		if err != nil {
			return Cancel, fmt.Errorf("reading prompt input: %w", err)
		}
		switch ev.Type {
		case terminal.EventPrintable:
			switch ev.Byte {
			case 'y', 'Y':
				return Yes, nil
			case 'n', 'N':
				return No, nil
			case 'c', 'C':
				return Cancel, nil
			}
		case terminal.EventNav:
			if ev.Nav == terminal.NavEscape {
				return Cancel, nil
			}
		case terminal.EventRedraw:
			scr.Redraw()
			draw()
		}
	}
}
