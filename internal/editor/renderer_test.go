package editor

import (
	"bytes"
	"strings"
	"testing"

	"github.com/JackWReid/veer/internal/text"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		line  string
		width int
		want  string
	}{
		{"abc\n", 10, "abc"},
		{"a\tb", 20, "a       b"},
		{"\t\tx", 10, "          "},
		{"abcdef", 3, "abc"},
		{"a\x01b\xff\n", 10, "a?b?"},
		{"", 10, ""},
	}
	for _, tc := range tests {
		if got := expand(text.LineFromString(tc.line), tc.width); got != tc.want {
			t.Errorf("expand(%q, %d) = %q, want %q", tc.line, tc.width, got, tc.want)
		}
	}
}

func TestStatusLine(t *testing.T) {
	b := bufferOf("ab\tc\n", "x")
	if got := StatusLine(b); got != " [Untitled]     1-1" {
		t.Errorf("got %q", got)
	}
	e := &Engine{Rows: 10}
	e.End(b)
	e.Insert(b, 'd')
	if got := StatusLine(b); got != " [Untitled] [+] 1-11" {
		t.Errorf("got %q", got)
	}
	e.Down(b)
	if got := StatusLine(b); got != " [Untitled] [+] 2-2" {
		t.Errorf("got %q", got)
	}
}

func TestRenderAllPaintsViewport(t *testing.T) {
	b := bufferOf("one\n", "two\n", "three\n", "four")
	var out bytes.Buffer
	s := NewScreen(&out, 20, 5)
	if s.Rows() != 2 {
		t.Fatalf("rows %d", s.Rows())
	}
	s.Render(b, Redraw{Kind: RedrawAll})
	got := out.String()
	for _, want := range []string{"one", "two", "[Untitled]"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if !strings.Contains(got, "\x1b[3;1H\x1b[2K\x1b[7m [Untitled]") {
		t.Error("status bar not in reverse video on the row under the text")
	}
	if strings.Contains(got, "three") {
		t.Error("painted past the text area")
	}
	// Cursor ends on the first text cell.
	if !strings.HasSuffix(got, "\x1b[1;1H\x1b[?25h") {
		t.Errorf("cursor not restored: %q", got[max(len(got)-20, 0):])
	}
}

func TestRenderLineOnlyPaintsOneRow(t *testing.T) {
	b := bufferOf("one\n", "two")
	var out bytes.Buffer
	s := NewScreen(&out, 20, 10)
	s.Render(b, Redraw{Kind: RedrawLine, Line: b.Last(), Row: 1})
	got := out.String()
	if strings.Contains(got, "one") || !strings.Contains(got, "\x1b[2;1H\x1b[2Ktwo") {
		t.Errorf("got %q", got)
	}
}

func TestRenderCursorClampsToWidth(t *testing.T) {
	b := bufferOf(strings.Repeat("x", 30))
	(&Engine{Rows: 5}).End(b)
	var out bytes.Buffer
	NewScreen(&out, 10, 8).Render(b, Redraw{Kind: RedrawCursor})
	if !strings.Contains(out.String(), "\x1b[1;10H") {
		t.Errorf("got %q", out.String())
	}
}

func TestPromptArea(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out, 40, 10)
	s.DrawPrompt("File to open: ", "(Press ESCAPE to cancel)", "a.txt", 19)
	got := out.String()
	// Rows 8 and 9 (1-based 9 and 10) hold the prompt.
	if !strings.Contains(got, "\x1b[9;1H\x1b[2KFile to open: a.txt") {
		t.Errorf("label row: %q", got)
	}
	if !strings.Contains(got, "\x1b[10;1H\x1b[2K(Press ESCAPE to cancel)") {
		t.Errorf("hint row: %q", got)
	}
	if !strings.HasSuffix(got, "\x1b[9;20H") {
		t.Errorf("cursor: %q", got)
	}
}
