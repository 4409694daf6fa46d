package viewer

import (
	"strconv"
	"strings"
)

// fragmentPrefix is the expected shape of a deep-link fragment.
const fragmentPrefix = "page-"

// ParseFragment extracts the printed page number from a fragment of the
// form "page-<number>". The boolean reports whether parsing succeeded.
func ParseFragment(fragment string) (int, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(fragment), fragmentPrefix)
	if !ok {
		return 0, false
	}
	printed, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return printed, true
}

// SetFragment records a deep-link fragment signal ("page-<printed>") and
// re-evaluates it. A fragment that does not parse replaces any earlier
// target: only the latest value at the moment of evaluation counts.
func (s *Session) SetFragment(fragment string) {
	printed, ok := ParseFragment(fragment)
	s.pendingPrinted = printed
	s.hasPending = ok
	s.evaluateDeepLink()
}

// SetCitedPage records an externally supplied target printed page (e.g. a
// citation click in the findings panel) and re-evaluates it.
func (s *Session) SetCitedPage(printed int) {
	s.pendingPrinted = printed
	s.hasPending = true
	s.evaluateDeepLink()
}

// evaluateDeepLink honours the latest deep-link target once the document
// is ready. Before readiness the request is dropped, not queued; it is
// only honoured again because readiness transitions re-invoke this with
// whatever value is current at that moment.
func (s *Session) evaluateDeepLink() {
	if !s.Ready() || !s.hasPending {
		return
	}
	s.GoToPrinted(s.pendingPrinted)
}
