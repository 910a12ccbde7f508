// Package editor ties the document model to the terminal: it dispatches one
// input event at a time to the edit engine, prompts and commands, and asks
// the screen to repaint afterwards.
package editor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/JackWReid/veer/internal/config"
	"github.com/JackWReid/veer/internal/document"
	"github.com/JackWReid/veer/internal/fileio"
	"github.com/JackWReid/veer/internal/prompt"
	"github.com/JackWReid/veer/internal/terminal"
	"github.com/JackWReid/veer/internal/text"
)

// Console is the terminal as the app sees it.
type Console interface {
	prompt.Input
	Size() (int, int)
	Resize() bool
	Restore()
	Write(frame string) error
}

// App is the editor state threaded through every entry point.
type App struct {
	doc    *document.Document
	engine *Engine
	screen *Screen
	files  *fileio.Files
	in     prompt.Input
	cfg    config.Config
	log    *slog.Logger

	console  Console
	pending  []string // messages raised before the screen existed
	messaged bool     // a message occupies the prompt area
	quit     bool
}

// NewApp returns an app with no buffers and no terminal attached.
func NewApp(cfg config.Config, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	a := &App{
		doc: document.New(),
		cfg: cfg,
		log: log,
	}
	a.files = &fileio.Files{Confirm: a.confirmOverwrite}
	return a
}

// attach wires the input source and the output writer.
func (a *App) attach(in prompt.Input, out io.Writer, width, height int) {
	a.in = in
	a.screen = NewScreen(out, width, height)
	a.engine = &Engine{Rows: a.screen.Rows(), Out: a.screen}
}

// Open loads each path as a buffer, or one untitled buffer when there are
// none. A path that cannot be read still gets an empty buffer remembering
// it, and the reason is shown once the screen is up. The first buffer ends
// up active.
func (a *App) Open(paths []string) error {
	if len(paths) == 0 {
		a.doc.CreateBuffer("")
		return nil
	}
	for _, p := range paths {
		id, existed, err := a.doc.Open(a.files, p)
		if err != nil {
			a.log.Warn("open failed", "path", p, "err", err)
			a.pending = append(a.pending, openFailure(p, err))
			id = a.doc.CreateBuffer(p)
		}
		a.log.Info("opened buffer", "id", id, "path", p, "existed", existed)
	}
	return a.doc.Activate(a.doc.Buffers()[0].ID())
}

// openFailure words an open error for the message area.
func openFailure(path string, err error) string {
	var nr *fileio.NotRegularError
	if errors.As(err, &nr) {
		return nr.Error()
	}
	if cause := errors.Unwrap(err); cause != nil {
		err = cause
	}
	return fmt.Sprintf("'%s': %v", path, err)
}

// Run attaches to the terminal and processes input until the user exits.
// A storage growth failure restores the terminal and is returned as an
// error without saving anything.
func (a *App) Run() (err error) {
	t, err := terminal.NewTerminal()
	if err != nil {
		return err
	}
	return a.RunOn(t)
}

// RunOn is Run against an already initialised console.
func (a *App) RunOn(c Console) (err error) {
	a.console = c
	defer c.Restore()
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		fe, ok := r.(*text.FatalError)
		if !ok {
			panic(r)
		}
		a.log.Error("fatal", "err", fe)
		err = fe
	}()

	w, h := c.Size()
	a.attach(c, consoleWriter{c}, w, h)
	a.redrawAll()
	if len(a.pending) > 0 {
		a.message("%s", strings.Join(a.pending, "; "))
		a.pending = nil
		a.screen.Render(a.active(), Redraw{Kind: RedrawCursor})
	}

	for !a.quit {
		ev, err := a.in.ReadEvent()
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		a.Handle(ev)
	}
	return nil
}

type consoleWriter struct{ c Console }

func (w consoleWriter) Write(p []byte) (int, error) {
	if err := w.c.Write(string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (a *App) active() *document.Buffer { return a.doc.Active() }

// Handle dispatches exactly one event.
func (a *App) Handle(ev terminal.Event) {
	if a.messaged && ev.Type != terminal.EventRedraw {
		a.messaged = false
		a.screen.ClearPrompt()
	}
	b := a.active()
	switch ev.Type {
	case terminal.EventPrintable:
		a.engine.Insert(b, ev.Byte)
	case terminal.EventNav:
		a.handleNav(b, ev.Nav)
	case terminal.EventCommand:
		a.screen.ClearPrompt()
		a.handleCommand(ev.Command)
	case terminal.EventRedraw:
		a.Redraw()
	default:
		a.log.Debug("ignored input", "event", ev)
	}
}

func (a *App) handleNav(b *document.Buffer, n terminal.Nav) {
	switch n {
	case terminal.NavUp:
		a.engine.Up(b)
	case terminal.NavDown:
		a.engine.Down(b)
	case terminal.NavLeft:
		a.engine.Left(b)
	case terminal.NavRight:
		a.engine.Right(b)
	case terminal.NavHome:
		a.engine.Home(b)
	case terminal.NavEnd:
		a.engine.End(b)
	case terminal.NavEnter:
		a.engine.Enter(b)
	case terminal.NavBackspace:
		a.engine.Backspace(b)
	case terminal.NavEscape:
		a.screen.ClearPrompt()
	}
}

func (a *App) handleCommand(c terminal.Command) {
	switch c {
	case terminal.CmdSave:
		a.save(a.active())
	case terminal.CmdExit:
		a.exit()
	case terminal.CmdOpen:
		a.openPrompt()
	case terminal.CmdPrevBuffer:
		if a.doc.PreviousBuffer() {
			a.redrawAll()
		}
	case terminal.CmdNextBuffer:
		if a.doc.NextBuffer() {
			a.redrawAll()
		}
	case terminal.CmdSwitchBuffer:
		a.switchPrompt()
	}
	if !a.quit {
		a.screen.Render(a.active(), Redraw{Kind: RedrawCursor})
	}
}

func (a *App) redrawAll() {
	b := a.active()
	a.engine.Fit(b)
	a.screen.Render(b, Redraw{Kind: RedrawAll})
}

// Redraw re-queries the console size and repaints everything. Prompts call
// it when a resize arrives mid-question.
func (a *App) Redraw() {
	if a.console != nil {
		a.console.Resize()
		w, h := a.console.Size()
		a.screen.Resize(w, h)
		a.engine.Rows = a.screen.Rows()
	}
	a.redrawAll()
}

// DrawPrompt implements prompt.Screen.
func (a *App) DrawPrompt(label, hint, answer string, cursor int) {
	a.screen.DrawPrompt(label, hint, answer, cursor)
}

// ClearPrompt implements prompt.Screen.
func (a *App) ClearPrompt() { a.screen.ClearPrompt() }

func (a *App) message(format string, args ...any) {
	a.screen.Message(fmt.Sprintf(format, args...))
	a.messaged = true
}

// ask wraps prompt.String, treating cancel and an empty answer alike.
func (a *App) ask(label string) (string, bool) {
	answer, err := prompt.String(a.in, a, label, a.cfg.InitialLineCapacity)
	if errors.Is(err, prompt.ErrCancelled) || (err == nil && answer == "") {
		return "", false
	}
	if err != nil {
		a.log.Error("prompt failed", "err", err)
		return "", false
	}
	return answer, true
}
