package document

import (
	"errors"
	"fmt"
	"iter"

	"github.com/JackWReid/veer/internal/text"
)

// FileReader produces the raw lines of a file in order. Each line keeps its
// terminator; the last one may lack it. A missing file is ErrNotFound.
type FileReader interface {
	ReadLines(path string) (iter.Seq2[[]byte, error], error)
}

// FileWriter writes the concatenation of lines to path, byte for byte.
type FileWriter interface {
	WriteLines(path string, lines iter.Seq[[]byte]) error
}

// SaveError reports a failed save.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("'%s': %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Open reads path into a new active buffer. A missing file gives an empty
// buffer that remembers path, with existed false. A read error leaves the
// document unchanged.
func (d *Document) Open(r FileReader, path string) (id BufferID, existed bool, err error) {
	if path == "" {
		return d.CreateBuffer(""), false, nil
	}
	lines, err := r.ReadLines(path)
	if errors.Is(err, ErrNotFound) {
		return d.CreateBuffer(path), false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("opening %s: %w", path, err)
	}

	b := newBuffer(path)
	for raw, err := range lines {
		if err != nil {
			return 0, false, fmt.Errorf("reading %s: %w", path, err)
		}
		b.AppendLine(text.LineFromBytes(raw))
	}
	if b.Len() == 0 {
		b.AppendLine(text.NewLine())
	}

	d.register(b)
	return b.id, true, nil
}

// Bytes yields the raw bytes of every line in order.
func (b *Buffer) Bytes() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for _, l := range b.All() {
			if !yield(l.Bytes()) {
				return
			}
		}
	}
}

// Save writes the buffer to path, or to its own path when path is empty.
// On success the path is remembered and the buffer is no longer modified.
// On failure neither the path nor the modified flag change.
func (b *Buffer) Save(w FileWriter, path string) error {
	if path == "" {
		path = b.path
	}
	if path == "" {
		return &SaveError{Err: errors.New("no file name")}
	}
	if err := w.WriteLines(path, b.Bytes()); err != nil {
		return &SaveError{Path: path, Err: err}
	}
	b.path = path
	b.Modified = false
	return nil
}
