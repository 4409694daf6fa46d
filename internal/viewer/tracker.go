package viewer

// RecordRendered marks a physical page as having finished rendering.
// It is idempotent and tolerates pages completing in any order, including
// pages reported before the total count is known. A readiness transition
// re-evaluates any deep-link target.
func (s *Session) RecordRendered(page int) {
	if page < 1 {
		return
	}
	wasReady := s.Ready()
	s.rendered[page] = true
	if !wasReady && s.Ready() {
		s.evaluateDeepLink()
	}
}

// Rendered reports whether a physical page has finished rendering.
func (s *Session) Rendered(page int) bool {
	return s.rendered[page]
}

// Ready reports whether the document is fully rendered: the page count is
// known and every physical page in [1, totalPages] has been recorded.
func (s *Session) Ready() bool {
	if s.totalPages == 0 {
		return false
	}
	for p := 1; p <= s.totalPages; p++ {
		if !s.rendered[p] {
			return false
		}
	}
	return true
}
