package viewer

import (
	"github.com/google/uuid"

	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
)

// Positioner brings a physical page into view on the rendering surface.
// The engine never renders; it only emits positioning requests.
type Positioner interface {
	// BringIntoView scrolls the surface to the given physical page.
	BringIntoView(page int)
}

// Marker applies a highlight to one rendered text fragment of a page.
// Marking must be idempotent: marking the same fragment twice produces
// the same visible result.
type Marker interface {
	// MarkFragment highlights fragment index on the given physical page.
	MarkFragment(page, fragment int)
}

// Session owns all viewer state for one loaded document source.
// It is created when a source is supplied and discarded wholesale when the
// source changes; no state survives a document swap.
type Session struct {
	id string

	positioner Positioner
	marker     Marker

	// totalPages is zero until the rendering collaborator reports it.
	// A failed load never sets it, leaving the session permanently inert.
	totalPages int

	// rendered records which physical pages have completed rendering.
	// Once true a key never reverts within the session.
	rendered map[int]bool

	// offset maps printed page numbers to physical indices:
	// actual = printed + offset.
	offset int

	// editing is true while the offset control is in its Editing state.
	editing bool
	buffer  string

	// current is the physical page the viewer is positioned on.
	current int

	// evidence is the flattened, validated evidence set for this document.
	evidence []domain.EvidenceEntry

	// pendingPrinted is the latest deep-link target, kept only as a value
	// to re-check on readiness transitions. Requests arriving before
	// readiness are dropped, not queued.
	pendingPrinted int
	hasPending     bool
}

// NewSession creates a session for a freshly supplied document source.
func NewSession(positioner Positioner, marker Marker) *Session {
	return &Session{
		id:         uuid.NewString(),
		positioner: positioner,
		marker:     marker,
		rendered:   make(map[int]bool),
	}
}

// ID returns the session identity. Events tagged with a different ID
// belong to a discarded session and must be ignored by the host.
func (s *Session) ID() string {
	return s.id
}

// SetTotalPages records the physical page count reported by the rendering
// collaborator. A readiness transition re-evaluates any deep-link target.
func (s *Session) SetTotalPages(n int) {
	if n <= 0 {
		return
	}
	wasReady := s.Ready()
	s.totalPages = n
	if s.current == 0 {
		s.current = 1
	}
	if !wasReady && s.Ready() {
		s.evaluateDeepLink()
	}
}

// TotalPages returns the known physical page count, zero if unknown.
func (s *Session) TotalPages() int {
	return s.totalPages
}

// CurrentPage returns the physical page the viewer is positioned on,
// zero before the page count is known.
func (s *Session) CurrentPage() int {
	return s.current
}

// SetEvidence replaces the evidence set for this document. Malformed
// entries (missing text or page anchor) are excluded silently.
func (s *Session) SetEvidence(entries []domain.EvidenceEntry) {
	s.evidence = s.evidence[:0]
	for _, e := range entries {
		if e.Valid() {
			s.evidence = append(s.evidence, e)
		}
	}
}

// Evidence returns the validated evidence set.
func (s *Session) Evidence() []domain.EvidenceEntry {
	return s.evidence
}
