// Package fileio reads and writes the plain-text files behind buffers.
package fileio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"

	"github.com/JackWReid/veer/internal/document"
)

// ErrNotRegular is returned for directories, devices, FIFOs and sockets.
var ErrNotRegular = errors.New("not a regular file")

// Files is the disk-backed FileReader and FileWriter.
type Files struct {
	// Confirm, when set, is asked before an existing file is overwritten.
	// Returning false aborts the write with ErrDeclined.
	Confirm func(path string) bool
}

// ErrDeclined is returned when Confirm refuses an overwrite.
var ErrDeclined = errors.New("overwrite declined")

// NotRegularError names the kind of file found where a regular file was
// expected. It matches ErrNotRegular.
type NotRegularError struct {
	Path string
	Kind string
}

func (e *NotRegularError) Error() string {
	return fmt.Sprintf("'%s' is %s", e.Path, e.Kind)
}

func (e *NotRegularError) Is(target error) bool { return target == ErrNotRegular }

// probe stats path and describes why it cannot be edited, if so.
func probe(path string) (exists bool, err error) {
	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	m := fi.Mode()
	if m.IsRegular() {
		return true, nil
	}
	kind := "not a regular file"
	switch {
	case m.IsDir():
		kind = "directory"
	case m&fs.ModeCharDevice != 0:
		kind = "character device"
	case m&fs.ModeDevice != 0:
		kind = "block device"
	case m&fs.ModeNamedPipe != 0:
		kind = "FIFO"
	case m&fs.ModeSocket != 0:
		kind = "socket"
	}
	return true, &NotRegularError{Path: path, Kind: kind}
}

// ReadLines opens path and yields its lines lazily, each with its '\n'
// kept. The file is closed when iteration ends.
func (f *Files) ReadLines(path string) (iter.Seq2[[]byte, error], error) {
	exists, err := probe(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, document.ErrNotFound
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return func(yield func([]byte, error) bool) {
		defer fh.Close()
		r := bufio.NewReader(fh)
		for {
			line, err := r.ReadBytes('\n')
			if len(line) > 0 {
				if !yield(line, nil) {
					return
				}
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
		}
	}, nil
}

// WriteLines writes every line to path verbatim.
func (f *Files) WriteLines(path string, lines iter.Seq[[]byte]) error {
	exists, err := probe(path)
	if err != nil {
		return err
	}
	if exists && f.Confirm != nil && !f.Confirm(path) {
		return ErrDeclined
	}
	fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(fh)
	for l := range lines {
		if _, err := w.Write(l); err != nil {
			fh.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
