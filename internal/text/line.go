package text

import "fmt"

// Terminator ends every line except, possibly, the last line of a file.
const Terminator = '\n'

// Line is one physical line of a file, terminator included when present.
type Line struct {
	s Storage
}

// NewLine returns an empty, unterminated line.
func NewLine() *Line {
	return &Line{s: NewStorage(nil)}
}

// LineFromBytes returns a line holding a copy of b.
func LineFromBytes(b []byte) *Line {
	return &Line{s: NewStorage(b)}
}

// LineFromString is LineFromBytes for strings.
func LineFromString(s string) *Line {
	return LineFromBytes([]byte(s))
}

// Len returns the number of bytes, terminator included.
func (l *Line) Len() int { return l.s.Len() }

// Bytes returns the raw bytes. The slice is only valid until the next mutation.
func (l *Line) Bytes() []byte { return l.s.Bytes() }

// String returns a copy of the raw bytes.
func (l *Line) String() string { return l.s.String() }

// Terminated reports whether the line ends with a Terminator.
func (l *Line) Terminated() bool {
	n := l.s.Len()
	return n > 0 && l.s.At(n-1) == Terminator
}

// ContentLen returns the length without the terminator. This is the largest
// cursor position the line admits.
func (l *Line) ContentLen() int {
	if l.Terminated() {
		return l.s.Len() - 1
	}
	return l.s.Len()
}

// InsertByte inserts b before index at.
func (l *Line) InsertByte(at int, b byte) {
	if at < 0 || at > l.s.Len() {
		panic(fmt.Sprintf("text: insert at %d outside line of length %d", at, l.s.Len()))
	}
	l.s.Insert(at, b)
}

// DeleteByte removes the byte at index at.
func (l *Line) DeleteByte(at int) {
	if at < 0 || at >= l.s.Len() {
		panic(fmt.Sprintf("text: delete at %d outside line of length %d", at, l.s.Len()))
	}
	l.s.Delete(at)
}

// SplitAt truncates the line to [0, at) plus a terminator and returns a new
// line holding the rest. The original terminator, or its absence, moves to
// the returned line. at must not exceed ContentLen.
func (l *Line) SplitAt(at int) *Line {
	if at < 0 || at > l.ContentLen() {
		panic(fmt.Sprintf("text: split at %d outside line content of length %d", at, l.ContentLen()))
	}
	rest := LineFromBytes(l.s.Bytes()[at:])
	l.s.Truncate(at)
	l.s.Append(Terminator)
	return rest
}

// AppendBytes adds b at the end of the line.
func (l *Line) AppendBytes(b []byte) {
	l.s.Append(b...)
}

// Join drops the line's own terminator and appends next in its place, so the
// merged line ends the way next did. It returns the join position.
func (l *Line) Join(next *Line) int {
	at := l.ContentLen()
	l.s.Truncate(at)
	l.s.Append(next.Bytes()...)
	return at
}
