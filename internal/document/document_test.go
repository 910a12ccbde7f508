package document

import (
	"bytes"
	"errors"
	"iter"
	"slices"
	"testing"

	"github.com/JackWReid/veer/internal/text"
)

func bufferOf(lines ...string) *Buffer {
	b := newBuffer("")
	for _, l := range lines {
		b.AppendLine(text.LineFromString(l))
	}
	return b
}

func contents(b *Buffer) []string {
	var out []string
	for _, l := range b.All() {
		out = append(out, l.String())
	}
	return out
}

// backwards walks from the tail, checking each prev link against the
// forward order.
func backwards(b *Buffer) []string {
	var out []string
	for it := b.Last(); it.Valid(); it = b.Prev(it) {
		out = append([]string{b.Line(it).String()}, out...)
	}
	return out
}

func refs(b *Buffer) []LineRef {
	var out []LineRef
	for r := range b.All() {
		out = append(out, r)
	}
	return out
}

func TestAppendLineFirstBecomesActiveAndTop(t *testing.T) {
	b := newBuffer("")
	r := b.AppendLine(text.LineFromString("one\n"))
	b.AppendLine(text.LineFromString("two"))
	if b.Active != r || b.Top != r || b.First() != r {
		t.Error("first appended line should be active, top and head")
	}
	if b.Len() != 2 {
		t.Errorf("expected 2 lines, got %d", b.Len())
	}
}

func TestInsertLineAfter(t *testing.T) {
	b := bufferOf("a\n", "c")
	first := b.First()
	b.InsertLineAfter(first, text.LineFromString("b\n"))
	b.InsertLineAfter(b.Last(), text.LineFromString("d"))

	want := []string{"a\n", "b\n", "c", "d"}
	if got := contents(b); !slices.Equal(got, want) {
		t.Errorf("forward order %q, want %q", got, want)
	}
	if got := backwards(b); !slices.Equal(got, want) {
		t.Errorf("backward order %q, want %q", got, want)
	}
	if b.Active != first {
		t.Error("insert should not move the active line")
	}
}

func TestRemoveLine(t *testing.T) {
	tests := []struct {
		name   string
		remove int
		want   []string
	}{
		{"head", 0, []string{"b\n", "c\n", "d"}},
		{"middle", 2, []string{"a\n", "b\n", "d"}},
		{"tail", 3, []string{"a\n", "b\n", "c\n"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := bufferOf("a\n", "b\n", "c\n", "d")
			b.RemoveLine(refs(b)[tc.remove])
			if got := contents(b); !slices.Equal(got, tc.want) {
				t.Errorf("forward %q, want %q", got, tc.want)
			}
			if got := backwards(b); !slices.Equal(got, tc.want) {
				t.Errorf("backward %q, want %q", got, tc.want)
			}
			if b.Len() != 3 {
				t.Errorf("expected 3 lines, got %d", b.Len())
			}
			if b.Prev(b.First()).Valid() || b.Next(b.Last()).Valid() {
				t.Error("head and tail must have no outer links")
			}
		})
	}
}

func TestRemoveHeadRelinksTopAndActive(t *testing.T) {
	b := bufferOf("a\n", "b\n", "c")
	head := b.First()
	second := b.Next(head)
	b.RemoveLine(head)
	if b.First() != second || b.Top != second || b.Active != second {
		t.Error("removing the head should move first, top and active to its successor")
	}
	if b.Contains(head) {
		t.Error("removed line still reported as contained")
	}
}

func TestRemoveOnlyLinePanics(t *testing.T) {
	b := bufferOf("")
	defer func() {
		if r := recover(); r != ErrLastLine {
			t.Errorf("expected ErrLastLine panic, got %v", r)
		}
	}()
	b.RemoveLine(b.First())
}

func TestStaleRefAfterSlotReuse(t *testing.T) {
	b := bufferOf("a\n", "b\n", "c")
	old := b.Next(b.First())
	b.RemoveLine(old)
	fresh := b.InsertLineAfter(b.First(), text.LineFromString("x\n"))
	if fresh.slot != old.slot {
		t.Fatalf("expected slot reuse")
	}
	if b.Contains(old) {
		t.Error("stale reference resolved after slot reuse")
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic on stale reference")
		}
	}()
	b.Line(old)
}

func TestLineNumber(t *testing.T) {
	b := bufferOf("a\n", "b\n", "c")
	for i, r := range refs(b) {
		if n := b.LineNumber(r); n != i+1 {
			t.Errorf("line %d numbered %d", i+1, n)
		}
	}
	b.RemoveLine(b.First())
	if n := b.LineNumber(b.Last()); n != 2 {
		t.Errorf("expected renumbering after removal, got %d", n)
	}
}

func TestCreateBufferIDsIncrease(t *testing.T) {
	d := New()
	a := d.CreateBuffer("")
	b := d.CreateBuffer("x.txt")
	if b != a+1 {
		t.Errorf("ids %d, %d not consecutive", a, b)
	}
	if d.Active().ID() != b {
		t.Error("new buffer should be active")
	}
	if d.Active().Len() != 1 || d.Active().ActiveLine().Len() != 0 {
		t.Error("new buffer should hold one empty line")
	}
	if d.Active().Path() != "x.txt" {
		t.Errorf("path %q", d.Active().Path())
	}
}

func TestNextPreviousBufferNoWrap(t *testing.T) {
	d := New()
	first := d.CreateBuffer("")
	d.CreateBuffer("")
	last := d.CreateBuffer("")

	if d.NextBuffer() {
		t.Error("next at the end should be a no-op")
	}
	if d.Active().ID() != last {
		t.Error("active changed at the end")
	}
	d.PreviousBuffer()
	d.PreviousBuffer()
	if d.Active().ID() != first {
		t.Error("expected first buffer")
	}
	if d.PreviousBuffer() {
		t.Error("previous at the start should be a no-op")
	}
	if !d.NextBuffer() || d.ActiveIndex() != 1 {
		t.Error("next should move to the second buffer")
	}
}

func TestActivate(t *testing.T) {
	d := New()
	a := d.CreateBuffer("")
	d.CreateBuffer("")
	if err := d.Activate(a); err != nil || d.Active().ID() != a {
		t.Errorf("activate failed: %v", err)
	}
	if err := d.Activate(42); !errors.Is(err, ErrNoBuffer) {
		t.Errorf("expected ErrNoBuffer, got %v", err)
	}
}

type memFiles struct {
	files   map[string][]string
	readErr error
	written map[string][]byte
	failOn  string
}

func (m *memFiles) ReadLines(path string) (iter.Seq2[[]byte, error], error) {
	lines, ok := m.files[path]
	if !ok {
		return nil, ErrNotFound
	}
	return func(yield func([]byte, error) bool) {
		for _, l := range lines {
			if !yield([]byte(l), nil) {
				return
			}
		}
		if m.readErr != nil {
			yield(nil, m.readErr)
		}
	}, nil
}

func (m *memFiles) WriteLines(path string, lines iter.Seq[[]byte]) error {
	if path == m.failOn {
		return errors.New("permission denied")
	}
	var buf bytes.Buffer
	for l := range lines {
		buf.Write(l)
	}
	if m.written == nil {
		m.written = map[string][]byte{}
	}
	m.written[path] = buf.Bytes()
	return nil
}

func TestOpenExisting(t *testing.T) {
	m := &memFiles{files: map[string][]string{"f": {"ab\tc\n", "xyz"}}}
	d := New()
	id, existed, err := d.Open(m, "f")
	if err != nil || !existed {
		t.Fatalf("Open: existed=%v err=%v", existed, err)
	}
	b, _ := d.Buffer(id)
	if got := contents(b); !slices.Equal(got, []string{"ab\tc\n", "xyz"}) {
		t.Errorf("contents %q", got)
	}
	if b.Modified {
		t.Error("freshly opened buffer should not be modified")
	}
}

func TestOpenAndCreateShareIDSequence(t *testing.T) {
	m := &memFiles{files: map[string][]string{"f": {"x\n"}, "bad": {"y\n"}}}
	d := New()
	first := d.CreateBuffer("")
	opened, _, err := d.Open(m, "f")
	if err != nil {
		t.Fatal(err)
	}
	created := d.CreateBuffer("g")
	if opened != first+1 || created != opened+1 {
		t.Errorf("ids %d, %d, %d not consecutive", first, opened, created)
	}
	if d.Active().ID() != created || d.Len() != 3 {
		t.Errorf("active %d, %d buffers", d.Active().ID(), d.Len())
	}

	m.readErr = errors.New("io failure")
	if _, _, err := d.Open(m, "bad"); err == nil {
		t.Fatal("expected read error")
	}
	if next := d.CreateBuffer(""); next != created+1 {
		t.Errorf("failed open consumed an id: got %d after %d", next, created)
	}
}

func TestOpenMissingRemembersPath(t *testing.T) {
	d := New()
	id, existed, err := d.Open(&memFiles{}, "new.txt")
	if err != nil || existed {
		t.Fatalf("existed=%v err=%v", existed, err)
	}
	b, _ := d.Buffer(id)
	if b.Path() != "new.txt" || b.Len() != 1 {
		t.Errorf("path %q, %d lines", b.Path(), b.Len())
	}
}

func TestOpenEmptyFileGivesOneLine(t *testing.T) {
	d := New()
	_, _, err := d.Open(&memFiles{files: map[string][]string{"e": nil}}, "e")
	if err != nil {
		t.Fatal(err)
	}
	if d.Active().Len() != 1 {
		t.Errorf("expected one line, got %d", d.Active().Len())
	}
}

func TestOpenReadErrorLeavesDocumentUnchanged(t *testing.T) {
	m := &memFiles{files: map[string][]string{"f": {"a\n"}}, readErr: errors.New("io")}
	d := New()
	d.CreateBuffer("")
	if _, _, err := d.Open(m, "f"); err == nil {
		t.Fatal("expected error")
	}
	if d.Len() != 1 {
		t.Errorf("partial buffer registered: %d buffers", d.Len())
	}
}

func TestSaveWritesVerbatim(t *testing.T) {
	m := &memFiles{}
	b := bufferOf("ab\tc\n", "xyz")
	b.Modified = true
	if err := b.Save(m, "out"); err != nil {
		t.Fatal(err)
	}
	if string(m.written["out"]) != "ab\tc\nxyz" {
		t.Errorf("wrote %q", m.written["out"])
	}
	if b.Modified || b.Path() != "out" {
		t.Error("successful save should clear modified and remember the path")
	}
}

func TestSaveFailureKeepsState(t *testing.T) {
	m := &memFiles{failOn: "ro"}
	b := bufferOf("x")
	b.SetPath("ro")
	b.Modified = true
	err := b.Save(m, "")
	var se *SaveError
	if !errors.As(err, &se) || se.Path != "ro" {
		t.Fatalf("expected SaveError for ro, got %v", err)
	}
	if !b.Modified || b.Path() != "ro" {
		t.Error("failed save must keep modified flag and path")
	}
}

func TestSaveAsFailureDoesNotRememberPath(t *testing.T) {
	m := &memFiles{failOn: "bad"}
	b := bufferOf("x")
	if err := b.Save(m, "bad"); err == nil {
		t.Fatal("expected error")
	}
	if b.Path() != "" {
		t.Errorf("path remembered after failed save: %q", b.Path())
	}
}
