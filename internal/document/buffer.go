// Package document holds the open buffers and the lines inside them.
package document

import (
	"fmt"
	"iter"

	"github.com/JackWReid/veer/internal/text"
)

// BufferID identifies a buffer for the life of the process. IDs are never
// reused.
type BufferID int

// LineRef is a stable handle to a line inside one Buffer. The zero value
// refers to no line. A handle to a removed line stays invalid even after
// its slot is recycled.
type LineRef struct {
	slot int32
	gen  uint32
}

// Valid reports whether r was ever issued.
func (r LineRef) Valid() bool { return r.gen != 0 }

type slot struct {
	line       *text.Line
	gen        uint32
	prev, next LineRef
}

// Buffer is an ordered sequence of lines plus the cursor and viewport state
// that goes with it.
type Buffer struct {
	id   BufferID
	path string

	slots []slot
	free  []int32
	count int

	first, last LineRef

	// Cursor and viewport. The edit engine keeps these consistent.
	Active   LineRef
	Top      LineRef
	RealX    int
	VisualX  int
	WantX    int // visual column that vertical motion aims for
	Row      int
	Modified bool
}

func newBuffer(path string) *Buffer {
	return &Buffer{path: path}
}

// ID returns the buffer's identity.
func (b *Buffer) ID() BufferID { return b.id }

// Path returns the backing file path, or "" for an untitled buffer.
func (b *Buffer) Path() string { return b.path }

// SetPath remembers a backing file path.
func (b *Buffer) SetPath(p string) { b.path = p }

// Name is the path, or "[Untitled]".
func (b *Buffer) Name() string {
	if b.path == "" {
		return "[Untitled]"
	}
	return b.path
}

// Len returns the number of lines.
func (b *Buffer) Len() int { return b.count }

// First returns the head line.
func (b *Buffer) First() LineRef { return b.first }

// Last returns the tail line.
func (b *Buffer) Last() LineRef { return b.last }

func (b *Buffer) lookup(r LineRef) *slot {
	if !r.Valid() || int(r.slot) >= len(b.slots) {
		panic(fmt.Sprintf("document: invalid line reference %v", r))
	}
	s := &b.slots[r.slot]
	if s.gen != r.gen || s.line == nil {
		panic(fmt.Sprintf("document: stale line reference %v", r))
	}
	return s
}

// Contains reports whether r refers to a line currently in b.
func (b *Buffer) Contains(r LineRef) bool {
	if !r.Valid() || int(r.slot) >= len(b.slots) {
		return false
	}
	s := &b.slots[r.slot]
	return s.gen == r.gen && s.line != nil
}

// Line returns the line r refers to.
func (b *Buffer) Line(r LineRef) *text.Line { return b.lookup(r).line }

// Next returns the line after r, or the zero LineRef at the tail.
func (b *Buffer) Next(r LineRef) LineRef { return b.lookup(r).next }

// Prev returns the line before r, or the zero LineRef at the head.
func (b *Buffer) Prev(r LineRef) LineRef { return b.lookup(r).prev }

// ActiveLine returns the line under the cursor.
func (b *Buffer) ActiveLine() *text.Line { return b.Line(b.Active) }

// LineNumber returns the 1-based position of r, counted on demand.
func (b *Buffer) LineNumber(r LineRef) int {
	n := 1
	for it := b.first; it != r; it = b.Next(it) {
		if !it.Valid() {
			panic(fmt.Sprintf("document: line reference %v not in buffer", r))
		}
		n++
	}
	return n
}

// All yields every line from the head on.
func (b *Buffer) All() iter.Seq2[LineRef, *text.Line] {
	return b.From(b.first)
}

// From yields the lines starting at r.
func (b *Buffer) From(r LineRef) iter.Seq2[LineRef, *text.Line] {
	return func(yield func(LineRef, *text.Line) bool) {
		for it := r; it.Valid(); it = b.Next(it) {
			if !yield(it, b.Line(it)) {
				return
			}
		}
	}
}

func (b *Buffer) alloc(l *text.Line) LineRef {
	if n := len(b.free); n > 0 {
		i := b.free[n-1]
		b.free = b.free[:n-1]
		s := &b.slots[i]
		s.gen++
		s.line = l
		s.prev, s.next = LineRef{}, LineRef{}
		return LineRef{slot: i, gen: s.gen}
	}
	b.slots = append(b.slots, slot{line: l, gen: 1})
	return LineRef{slot: int32(len(b.slots) - 1), gen: 1}
}

// AppendLine adds l at the tail. The first line ever appended also becomes
// the active line and the viewport top.
func (b *Buffer) AppendLine(l *text.Line) LineRef {
	r := b.alloc(l)
	if !b.last.Valid() {
		b.first, b.last = r, r
		b.Active, b.Top = r, r
	} else {
		b.lookup(b.last).next = r
		b.lookup(r).prev = b.last
		b.last = r
	}
	b.count++
	return r
}

// InsertLineAfter splices l in after ref. The active line does not move.
func (b *Buffer) InsertLineAfter(ref LineRef, l *text.Line) LineRef {
	if ref == b.last {
		return b.AppendLine(l)
	}
	at := b.lookup(ref)
	next := at.next
	r := b.alloc(l)
	// alloc may grow b.slots, so look the neighbours up again.
	s := b.lookup(r)
	s.prev, s.next = ref, next
	b.lookup(ref).next = r
	b.lookup(next).prev = r
	b.count++
	return r
}

// RemoveLine unlinks ref. The head, the tail and any cursor or viewport
// reference to ref are moved to a neighbour. The last remaining line cannot
// be removed.
func (b *Buffer) RemoveLine(ref LineRef) {
	s := b.lookup(ref)
	if b.count == 1 {
		panic(ErrLastLine)
	}
	prev, next := s.prev, s.next
	if prev.Valid() {
		b.lookup(prev).next = next
	} else {
		b.first = next
	}
	if next.Valid() {
		b.lookup(next).prev = prev
	} else {
		b.last = prev
	}

	neighbour := prev
	if !neighbour.Valid() {
		neighbour = next
	}
	if b.Active == ref {
		b.Active = neighbour
	}
	if b.Top == ref {
		// Removing the top line keeps the viewport anchored at the same row.
		if next.Valid() {
			b.Top = next
		} else {
			b.Top = prev
		}
	}

	s.line = nil
	s.prev, s.next = LineRef{}, LineRef{}
	b.free = append(b.free, ref.slot)
	b.count--
}
