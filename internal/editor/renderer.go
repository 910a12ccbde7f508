package editor

import (
	"fmt"
	"io"
	"strings"

	"github.com/JackWReid/veer/internal/document"
	"github.com/JackWReid/veer/internal/text"
)

// Rows below the text area: one status bar and a two-line prompt area.
const (
	statusHeight = 1
	promptHeight = 2
	chromeHeight = statusHeight + promptHeight
)

// Screen paints the text area, the status bar and the prompt area with
// ANSI escapes, writing each update in one go.
type Screen struct {
	out    io.Writer
	width  int
	height int
	buf    strings.Builder
}

func NewScreen(out io.Writer, width, height int) *Screen {
	return &Screen{out: out, width: width, height: height}
}

// Resize updates the screen dimensions.
func (s *Screen) Resize(width, height int) {
	s.width = width
	s.height = height
}

// Rows returns the number of text rows.
func (s *Screen) Rows() int { return max(s.height-chromeHeight, 1) }

func (s *Screen) moveTo(row, col int) {
	fmt.Fprintf(&s.buf, "\x1b[%d;%dH", row+1, col+1)
}

func (s *Screen) clearRow(row int) {
	s.moveTo(row, 0)
	s.buf.WriteString("\x1b[2K")
}

func (s *Screen) flush() {
	io.WriteString(s.out, s.buf.String())
	s.buf.Reset()
}

// Render implements Renderer.
func (s *Screen) Render(b *document.Buffer, r Redraw) {
	s.buf.Reset()
	s.buf.WriteString("\x1b[?25l")

	switch r.Kind {
	case RedrawAll:
		s.paintFrom(b, b.Top, 0)
	case RedrawFrom:
		s.paintFrom(b, r.Line, r.Row)
	case RedrawLine:
		s.clearRow(r.Row)
		s.buf.WriteString(expand(b.Line(r.Line), s.width))
	}

	s.paintStatus(b)
	s.moveTo(b.Row, min(b.VisualX, max(s.width-1, 0)))
	s.buf.WriteString("\x1b[?25h")
	s.flush()
}

func (s *Screen) paintFrom(b *document.Buffer, from document.LineRef, row int) {
	rows := s.Rows()
	for _, l := range b.From(from) {
		if row >= rows {
			break
		}
		s.clearRow(row)
		s.buf.WriteString(expand(l, s.width))
		row++
	}
	for ; row < rows; row++ {
		s.clearRow(row)
	}
}

// paintStatus fills the row under the text area with StatusLine in reverse
// video, padded to the full width.
func (s *Screen) paintStatus(b *document.Buffer) {
	s.clearRow(s.Rows())
	s.buf.WriteString("\x1b[7m")
	status := StatusLine(b)
	if len(status) > s.width {
		status = status[:s.width]
	}
	s.buf.WriteString(status)
	s.buf.WriteString(strings.Repeat(" ", s.width-len(status)))
	s.buf.WriteString("\x1b[0m")
}

// DrawPrompt shows label and answer on the first prompt row and hint on the
// second, leaving the cursor at column cursor of the first.
func (s *Screen) DrawPrompt(label, hint, answer string, cursor int) {
	s.buf.Reset()
	first := s.Rows() + statusHeight
	s.clearRow(first)
	s.buf.WriteString(clip(label+answer, s.width))
	s.clearRow(first + 1)
	s.buf.WriteString(clip(hint, s.width))
	s.moveTo(first, min(cursor, max(s.width-1, 0)))
	s.flush()
}

// ClearPrompt empties the prompt area.
func (s *Screen) ClearPrompt() {
	s.buf.Reset()
	first := s.Rows() + statusHeight
	s.clearRow(first)
	s.clearRow(first + 1)
	s.flush()
}

// Message shows msg in the prompt area until the next ClearPrompt.
func (s *Screen) Message(msg string) {
	s.buf.Reset()
	first := s.Rows() + statusHeight
	s.clearRow(first)
	s.buf.WriteString(clip(msg, s.width))
	s.clearRow(first + 1)
	s.flush()
}

func clip(str string, width int) string {
	if len(str) > width {
		return str[:max(width, 0)]
	}
	return str
}

// expand renders a line for display: tabs become spaces up to the next
// stop, other control and non-ASCII bytes show as '?', and output stops at
// width cells.
func expand(l *text.Line, width int) string {
	var sb strings.Builder
	col := 0
	for _, c := range l.Bytes() {
		if c == text.Terminator {
			break
		}
		if c == '\t' {
			next := col + text.TabStop - col%text.TabStop
			for ; col < next && col < width; col++ {
				sb.WriteByte(' ')
			}
		} else if col < width {
			if c < 32 || c >= 127 {
				c = '?'
			}
			sb.WriteByte(c)
			col++
		}
		if col >= width {
			break
		}
	}
	return sb.String()
}
