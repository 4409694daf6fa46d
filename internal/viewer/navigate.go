package viewer

import (
	"strconv"
	"strings"
)

// GoToPrinted resolves a printed page number through the offset and brings
// the resulting physical page into view. Out-of-range targets are a silent
// no-op: nothing navigates and no state changes.
func (s *Session) GoToPrinted(printed int) {
	actual := s.ToActual(printed)
	if s.totalPages == 0 || actual < 1 || actual > s.totalPages {
		return
	}
	s.current = actual
	if s.positioner != nil {
		s.positioner.BringIntoView(actual)
	}
}

// GoToPrintedInput navigates from raw user input. Input that does not
// parse as an integer is discarded silently.
func (s *Session) GoToPrintedInput(text string) {
	printed, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return
	}
	s.GoToPrinted(printed)
}

// Step moves the current physical page by delta, clamped to the document.
func (s *Session) Step(delta int) {
	if s.totalPages == 0 {
		return
	}
	next := s.current + delta
	if next < 1 {
		next = 1
	}
	if next > s.totalPages {
		next = s.totalPages
	}
	if next == s.current {
		return
	}
	s.current = next
	if s.positioner != nil {
		s.positioner.BringIntoView(next)
	}
}
