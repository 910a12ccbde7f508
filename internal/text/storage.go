// Package text holds the byte-level pieces of the editor: growable storage,
// single physical lines, and the real/visual column translation.
package text

import "fmt"

// MaxCapacity bounds a single Storage. Growing past it is treated like an
// allocation failure.
const MaxCapacity = 1 << 30

// FatalError is the panic value raised when storage cannot grow. The app
// recovers it at the top of the event loop, restores the terminal and exits.
type FatalError struct {
	Want int
	Err  error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("growing text storage to %d bytes: %v", e.Want, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// ErrTooLarge is wrapped by FatalError when a request exceeds MaxCapacity.
var ErrTooLarge = fmt.Errorf("requested capacity exceeds %d bytes", MaxCapacity)

// Storage is a byte sequence with a tracked length and capacity. Capacity
// doubles on overflow so appends and inserts are amortised O(1).
type Storage struct {
	data []byte // len(data) is the capacity
	n    int
}

// NewStorage returns storage holding a copy of b with room for at least
// one byte more.
func NewStorage(b []byte) Storage {
	s := Storage{data: make([]byte, len(b)+1)}
	s.n = copy(s.data, b)
	return s
}

// Len returns the number of bytes in use.
func (s *Storage) Len() int { return s.n }

// Bytes returns the used prefix. The slice aliases the storage and is only
// valid until the next mutation.
func (s *Storage) Bytes() []byte { return s.data[:s.n] }

// At returns the byte at index i.
func (s *Storage) At(i int) byte { return s.data[i] }

func (s *Storage) capacity() int { return len(s.data) }

// EnsureCapacity grows the storage so it can hold n bytes.
func (s *Storage) EnsureCapacity(n int) {
	if n <= len(s.data) {
		return
	}
	if n > MaxCapacity {
		panic(&FatalError{Want: n, Err: ErrTooLarge})
	}
	size := max(n, len(s.data)*2)
	if size > MaxCapacity {
		size = MaxCapacity
	}
	grown := make([]byte, size)
	copy(grown, s.data[:s.n])
	s.data = grown
}

// Insert places b at index at, shifting the tail right.
func (s *Storage) Insert(at int, b byte) {
	s.EnsureCapacity(s.n + 2)
	copy(s.data[at+1:s.n+1], s.data[at:s.n])
	s.data[at] = b
	s.n++
}

// Delete removes the byte at index at, shifting the tail left.
func (s *Storage) Delete(at int) {
	copy(s.data[at:], s.data[at+1:s.n])
	s.n--
}

// Append adds b at the end.
func (s *Storage) Append(b ...byte) {
	s.EnsureCapacity(s.n + len(b) + 1)
	s.n += copy(s.data[s.n:], b)
}

// Truncate drops everything from index n on.
func (s *Storage) Truncate(n int) {
	s.n = n
}

// String returns a copy of the used bytes.
func (s *Storage) String() string { return string(s.data[:s.n]) }
