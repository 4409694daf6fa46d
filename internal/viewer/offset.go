package viewer

import (
	"strconv"
	"strings"
)

// Offset returns the current printed-to-physical page offset.
func (s *Session) Offset() int {
	return s.offset
}

// ToActual converts a printed page number to a physical page index.
func (s *Session) ToActual(printed int) int {
	return printed + s.offset
}

// ToPrinted converts a physical page index to a printed page number.
func (s *Session) ToPrinted(actual int) int {
	return actual - s.offset
}

// Editing reports whether the offset control is in its editing state.
func (s *Session) Editing() bool {
	return s.editing
}

// OffsetBuffer returns the text buffer of an in-progress offset edit.
func (s *Session) OffsetBuffer() string {
	return s.buffer
}

// StartOffsetEdit switches the offset control from Display to Editing,
// seeding the edit buffer with the current offset.
func (s *Session) StartOffsetEdit() {
	s.editing = true
	s.buffer = strconv.Itoa(s.offset)
}

// SetOffsetBuffer replaces the in-progress edit buffer.
func (s *Session) SetOffsetBuffer(text string) {
	if s.editing {
		s.buffer = text
	}
}

// SaveOffsetEdit returns the control to Display. A parseable buffer is
// committed as the new offset; anything else discards the edit and keeps
// the prior offset, with no error surfaced.
func (s *Session) SaveOffsetEdit() {
	if !s.editing {
		return
	}
	s.editing = false
	if v, err := strconv.Atoi(strings.TrimSpace(s.buffer)); err == nil {
		s.offset = v
	}
	s.buffer = ""
}

// CancelOffsetEdit discards an in-progress edit and keeps the prior offset.
func (s *Session) CancelOffsetEdit() {
	s.editing = false
	s.buffer = ""
}
