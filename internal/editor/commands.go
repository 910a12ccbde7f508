package editor

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/JackWReid/veer/internal/document"
	"github.com/JackWReid/veer/internal/fileio"
	"github.com/JackWReid/veer/internal/prompt"
)

// save writes b to its path, asking for one first if it has none. It
// reports whether the buffer ended up on disk.
func (a *App) save(b *document.Buffer) bool {
	path := b.Path()
	if path == "" {
		name, ok := a.ask("File name to save: ")
		if !ok {
			return false
		}
		path = name
	}

	if err := b.Save(a.files, path); err != nil {
		a.log.Error("save failed", "buffer", b.ID(), "err", err)
		if errors.Is(err, fileio.ErrDeclined) {
			a.message("Not saved")
		} else {
			a.message("Failed to save %v", err)
		}
		return false
	}
	a.log.Info("saved buffer", "buffer", b.ID(), "path", path)
	a.message("Saved '%s'", path)
	return true
}

// confirmOverwrite is asked by the file layer before replacing an existing
// file. Writing a buffer back to its own file never asks.
func (a *App) confirmOverwrite(path string) bool {
	if !a.cfg.ConfirmOverwrite {
		return true
	}
	if b := a.active(); b != nil && samePath(b.Path(), path) {
		return true
	}
	r, err := prompt.YesNoCancel(a.in, a, fmt.Sprintf("File '%s' exists. Overwrite?", path))
	if err != nil {
		a.log.Error("prompt failed", "err", err)
		return false
	}
	return r == prompt.Yes
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// exit asks about every modified buffer in creation order. Yes saves that
// buffer and No skips it; cancelling or a failed save keeps the editor
// running.
func (a *App) exit() {
	for _, b := range a.doc.Modified() {
		if err := a.doc.Activate(b.ID()); err == nil {
			a.redrawAll()
		}
		q := fmt.Sprintf("Save modified buffer '%s'?", b.Name())
		r, err := prompt.YesNoCancel(a.in, a, q)
		if err != nil {
			a.log.Error("prompt failed", "err", err)
			return
		}
		switch r {
		case prompt.Cancel:
			return
		case prompt.Yes:
			if !a.save(b) {
				return
			}
		}
	}
	a.log.Info("exiting")
	a.quit = true
}

// openPrompt asks for a path and opens it, or activates the buffer that
// already holds it.
func (a *App) openPrompt() {
	path, ok := a.ask("File to open: ")
	if !ok {
		return
	}
	for _, b := range a.doc.Buffers() {
		if samePath(b.Path(), path) {
			a.doc.Activate(b.ID())
			a.redrawAll()
			return
		}
	}

	id, existed, err := a.doc.Open(a.files, path)
	if err != nil {
		a.log.Error("open failed", "path", path, "err", err)
		a.message("%s", openFailure(path, err))
		return
	}
	a.log.Info("opened buffer", "id", id, "path", path, "existed", existed)
	a.redrawAll()
	if !existed {
		a.message("New file")
	}
}

// switchPrompt asks for a buffer name and activates the best match.
func (a *App) switchPrompt() {
	name, ok := a.ask("Switch to buffer: ")
	if !ok {
		return
	}
	b := NewSwitcher(a.doc.Buffers()).Find(name)
	if b == nil {
		a.message("No buffer '%s'", name)
		return
	}
	a.doc.Activate(b.ID())
	a.redrawAll()
}
