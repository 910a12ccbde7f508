// Package prompt implements the one-line input area used for questions
// such as file names and yes/no/cancel confirmations.
package prompt

import "github.com/JackWReid/veer/internal/text"

// DefaultCapacity is the initial size of an answer.
const DefaultCapacity = 80

// MiniEditor is a single editable line shown after a fixed label. It is
// created per prompt and consumed by Confirm or Cancel.
type MiniEditor struct {
	s      text.Storage
	cursor int
	margin int
	done   bool
}

// NewMiniEditor returns an empty editor whose text starts margin cells in.
func NewMiniEditor(margin, capacity int) *MiniEditor {
	if capacity < 2 {
		capacity = DefaultCapacity
	}
	m := &MiniEditor{s: text.NewStorage(nil), margin: margin}
	m.s.EnsureCapacity(capacity)
	return m
}

// Text returns the current answer.
func (m *MiniEditor) Text() string { return m.s.String() }

// Cursor returns the cursor offset within the answer.
func (m *MiniEditor) Cursor() int { return m.cursor }

// Margin returns the label width.
func (m *MiniEditor) Margin() int { return m.margin }

// Column returns the screen column of the cursor.
func (m *MiniEditor) Column() int { return m.margin + m.cursor }

// Insert adds b at the cursor and moves past it.
func (m *MiniEditor) Insert(b byte) {
	m.s.Insert(m.cursor, b)
	m.cursor++
}

// Backspace deletes the byte left of the cursor. It reports false at
// offset 0.
func (m *MiniEditor) Backspace() bool {
	if m.cursor == 0 {
		return false
	}
	m.s.Delete(m.cursor - 1)
	m.cursor--
	return true
}

// Left moves the cursor one byte left, stopping at 0.
func (m *MiniEditor) Left() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// Right moves the cursor one byte right, stopping at the end.
func (m *MiniEditor) Right() {
	if m.cursor < m.s.Len() {
		m.cursor++
	}
}

// Home moves the cursor to the start.
func (m *MiniEditor) Home() { m.cursor = 0 }

// End moves the cursor past the last byte.
func (m *MiniEditor) End() { m.cursor = m.s.Len() }

// Confirm returns the answer and consumes the editor.
func (m *MiniEditor) Confirm() string {
	m.mustBeLive()
	m.done = true
	out := m.s.String()
	m.s = text.Storage{}
	m.cursor = 0
	return out
}

// Cancel discards the answer and consumes the editor.
func (m *MiniEditor) Cancel() {
	m.mustBeLive()
	m.done = true
	m.s = text.Storage{}
	m.cursor = 0
}

func (m *MiniEditor) mustBeLive() {
	if m.done {
		panic("prompt: mini-editor used after confirm or cancel")
	}
}
