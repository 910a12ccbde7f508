package editor

import (
	"path/filepath"
	"strings"

	"github.com/sajari/fuzzy"

	"github.com/JackWReid/veer/internal/document"
)

// Switcher resolves a typed buffer name to an open buffer. Exact names win,
// then full paths, then a unique prefix of a file name, then the closest
// spelling.
type Switcher struct {
	buffers []*document.Buffer
	model   *fuzzy.Model
}

// NewSwitcher indexes the names of buffers.
func NewSwitcher(buffers []*document.Buffer) *Switcher {
	model := fuzzy.NewModel()
	model.SetThreshold(1)
	model.SetDepth(2)
	for _, b := range buffers {
		name := strings.ToLower(label(b))
		// Twice, so a single occurrence clears the threshold.
		model.TrainWord(name)
		model.TrainWord(name)
	}
	return &Switcher{buffers: buffers, model: model}
}

// label is the file name of b without its directory.
func label(b *document.Buffer) string {
	if b.Path() == "" {
		return b.Name()
	}
	return filepath.Base(b.Path())
}

// Find returns the buffer query names, or nil when nothing matches.
func (s *Switcher) Find(query string) *document.Buffer {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	for _, b := range s.buffers {
		if b.Name() == query || label(b) == query {
			return b
		}
	}
	if abs, err := filepath.Abs(query); err == nil {
		for _, b := range s.buffers {
			if p, err := filepath.Abs(b.Path()); err == nil && b.Path() != "" && p == abs {
				return b
			}
		}
	}

	lower := strings.ToLower(query)
	var prefixed *document.Buffer
	for _, b := range s.buffers {
		if strings.HasPrefix(strings.ToLower(label(b)), lower) {
			if prefixed != nil {
				prefixed = nil
				break
			}
			prefixed = b
		}
	}
	if prefixed != nil {
		return prefixed
	}

	guess := s.model.SpellCheck(lower)
	if guess == "" {
		return nil
	}
	for _, b := range s.buffers {
		if strings.ToLower(label(b)) == guess {
			return b
		}
	}
	return nil
}
