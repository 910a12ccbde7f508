package document

import (
	"errors"

	"github.com/JackWReid/veer/internal/text"
)

var (
	// ErrNotFound is returned by a FileReader when the path does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrLastLine is the panic value for removing a buffer's only line.
	ErrLastLine = errors.New("cannot remove the only line of a buffer")

	// ErrNoBuffer is returned when a buffer ID is unknown.
	ErrNoBuffer = errors.New("no such buffer")
)

// Document owns the open buffers in the order they were created and tracks
// which one is active.
type Document struct {
	buffers []*Buffer
	active  int
	nextID  BufferID
}

// New returns a document with no buffers.
func New() *Document {
	return &Document{}
}

// register appends b and makes it active. IDs are handed out here only.
func (d *Document) register(b *Buffer) {
	b.id = d.nextID
	d.nextID++
	d.buffers = append(d.buffers, b)
	d.active = len(d.buffers) - 1
}

func (d *Document) push(path string) *Buffer {
	b := newBuffer(path)
	d.register(b)
	return b
}

// CreateBuffer appends a buffer holding one empty line and makes it active.
func (d *Document) CreateBuffer(path string) BufferID {
	b := d.push(path)
	b.AppendLine(text.NewLine())
	return b.id
}

// Len returns the number of buffers.
func (d *Document) Len() int { return len(d.buffers) }

// Active returns the active buffer, or nil before any buffer exists.
func (d *Document) Active() *Buffer {
	if len(d.buffers) == 0 {
		return nil
	}
	return d.buffers[d.active]
}

// ActiveIndex returns the 0-based position of the active buffer.
func (d *Document) ActiveIndex() int { return d.active }

// Buffers returns the buffers in order. The slice must not be modified.
func (d *Document) Buffers() []*Buffer { return d.buffers }

// Buffer returns the buffer with the given ID.
func (d *Document) Buffer(id BufferID) (*Buffer, error) {
	for _, b := range d.buffers {
		if b.id == id {
			return b, nil
		}
	}
	return nil, ErrNoBuffer
}

// Activate makes the buffer with the given ID active.
func (d *Document) Activate(id BufferID) error {
	for i, b := range d.buffers {
		if b.id == id {
			d.active = i
			return nil
		}
	}
	return ErrNoBuffer
}

// NextBuffer activates the following buffer. It reports false at the end.
func (d *Document) NextBuffer() bool {
	if d.active+1 >= len(d.buffers) {
		return false
	}
	d.active++
	return true
}

// PreviousBuffer activates the preceding buffer. It reports false at the
// start.
func (d *Document) PreviousBuffer() bool {
	if d.active == 0 {
		return false
	}
	d.active--
	return true
}

// Modified returns the buffers with unsaved changes, in order.
func (d *Document) Modified() []*Buffer {
	var out []*Buffer
	for _, b := range d.buffers {
		if b.Modified {
			out = append(out, b)
		}
	}
	return out
}
