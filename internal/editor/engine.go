package editor

import (
	"fmt"

	"github.com/JackWReid/veer/internal/document"
	"github.com/JackWReid/veer/internal/text"
)

// RedrawKind says how much of the text area must be repainted.
type RedrawKind int

const (
	RedrawCursor RedrawKind = iota // Only the cursor and status bar moved.
	RedrawLine                     // One line changed in place.
	RedrawFrom                     // Everything from one line down changed.
	RedrawAll                      // The viewport scrolled or switched buffers.
)

// Redraw is a repaint request. Line sits on screen row Row.
type Redraw struct {
	Kind RedrawKind
	Line document.LineRef
	Row  int
}

// Renderer repaints the screen after an edit. It only reads the buffer.
type Renderer interface {
	Render(b *document.Buffer, r Redraw)
}

// Engine applies edits and cursor motion to a buffer, keeping the cursor,
// the viewport and the line list consistent, then asks for a repaint.
type Engine struct {
	Rows int // text rows in the viewport
	Out  Renderer
}

func (e *Engine) request(b *document.Buffer, r Redraw) {
	if e.Out != nil {
		e.Out.Render(b, r)
	}
}

func (e *Engine) rows() int { return max(e.Rows, 1) }

func syncColumn(b *document.Buffer) {
	b.VisualX = text.RealToVisual(b.ActiveLine(), b.RealX)
	b.WantX = b.VisualX
}

// Insert puts c at the cursor and moves past it.
func (e *Engine) Insert(b *document.Buffer, c byte) {
	l := b.ActiveLine()
	if b.RealX > l.ContentLen() {
		panic(fmt.Sprintf("editor: insert at %d past content of length %d", b.RealX, l.ContentLen()))
	}
	l.InsertByte(b.RealX, c)
	b.RealX++
	syncColumn(b)
	b.Modified = true
	e.request(b, Redraw{Kind: RedrawLine, Line: b.Active, Row: b.Row})
}

// Enter splits the active line at the cursor and moves to the start of the
// new line.
func (e *Engine) Enter(b *document.Buffer) {
	at, row := b.Active, b.Row
	suffix := b.ActiveLine().SplitAt(b.RealX)
	b.Active = b.InsertLineAfter(at, suffix)
	b.RealX = 0
	syncColumn(b)
	b.Modified = true

	if e.stepDown(b) {
		e.request(b, Redraw{Kind: RedrawAll})
		return
	}
	e.request(b, Redraw{Kind: RedrawFrom, Line: at, Row: row})
}

// Backspace deletes left of the cursor, joining with the previous line at
// column 0. At the very start of the buffer it does nothing.
func (e *Engine) Backspace(b *document.Buffer) {
	switch {
	case b.RealX > 0:
		e.deleteLeft(b)
	case b.Prev(b.Active).Valid():
		e.join(b)
	}
}

func (e *Engine) deleteLeft(b *document.Buffer) {
	b.ActiveLine().DeleteByte(b.RealX - 1)
	b.RealX--
	syncColumn(b)
	b.Modified = true
	e.request(b, Redraw{Kind: RedrawLine, Line: b.Active, Row: b.Row})
}

func (e *Engine) join(b *document.Buffer) {
	cur := b.Active
	prev := b.Prev(cur)
	if !prev.Valid() {
		panic("editor: join without a previous line")
	}
	scrolled := e.stepUp(b)
	b.RealX = b.Line(prev).Join(b.Line(cur))
	b.Active = prev
	b.RemoveLine(cur)
	syncColumn(b)
	b.Modified = true

	if scrolled {
		e.request(b, Redraw{Kind: RedrawAll})
		return
	}
	e.request(b, Redraw{Kind: RedrawFrom, Line: prev, Row: b.Row})
}

// stepDown moves the screen row down after the active line advanced,
// scrolling when it falls off the bottom. It reports whether it scrolled.
func (e *Engine) stepDown(b *document.Buffer) bool {
	b.Row++
	if b.Row < e.rows() {
		return false
	}
	b.Row = e.rows() - 1
	b.Top = b.Next(b.Top)
	return true
}

// stepUp moves the screen row up before the active line retreats. On the
// top row the viewport scrolls instead.
func (e *Engine) stepUp(b *document.Buffer) bool {
	if b.Row > 0 {
		b.Row--
		return false
	}
	b.Top = b.Prev(b.Top)
	return true
}

// Up moves to the previous line, keeping the remembered visual column.
func (e *Engine) Up(b *document.Buffer) {
	prev := b.Prev(b.Active)
	if !prev.Valid() {
		return
	}
	scrolled := e.stepUp(b)
	b.Active = prev
	e.vertical(b, scrolled)
}

// Down moves to the next line, keeping the remembered visual column.
func (e *Engine) Down(b *document.Buffer) {
	next := b.Next(b.Active)
	if !next.Valid() {
		return
	}
	b.Active = next
	e.vertical(b, e.stepDown(b))
}

func (e *Engine) vertical(b *document.Buffer, scrolled bool) {
	want := b.WantX
	b.RealX = text.VisualToReal(b.ActiveLine(), want)
	b.VisualX = text.RealToVisual(b.ActiveLine(), b.RealX)
	b.WantX = want
	if scrolled {
		e.request(b, Redraw{Kind: RedrawAll})
		return
	}
	e.request(b, Redraw{Kind: RedrawCursor})
}

// Left moves one byte left within the line.
func (e *Engine) Left(b *document.Buffer) {
	if b.RealX > 0 {
		b.RealX--
	}
	e.horizontal(b)
}

// Right moves one byte right, never past the terminator.
func (e *Engine) Right(b *document.Buffer) {
	if b.RealX < b.ActiveLine().ContentLen() {
		b.RealX++
	}
	e.horizontal(b)
}

// Home moves to the start of the line.
func (e *Engine) Home(b *document.Buffer) {
	b.RealX = 0
	e.horizontal(b)
}

// End moves to just before the terminator.
func (e *Engine) End(b *document.Buffer) {
	b.RealX = b.ActiveLine().ContentLen()
	e.horizontal(b)
}

func (e *Engine) horizontal(b *document.Buffer) {
	syncColumn(b)
	e.request(b, Redraw{Kind: RedrawCursor})
}

// Fit scrolls the viewport so the cursor row lies inside it, for example
// after the terminal shrank.
func (e *Engine) Fit(b *document.Buffer) {
	for b.Row >= e.rows() {
		b.Top = b.Next(b.Top)
		b.Row--
	}
}
