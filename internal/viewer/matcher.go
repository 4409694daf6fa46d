package viewer

import "strings"

// PageTextRendered runs evidence matching for a page whose text fragments
// just finished rendering. Only the currently targeted page is marked;
// calls for other pages are a no-op so evidence is never pre-marked.
//
// A fragment matches when its case-folded text is a non-empty substring of
// at least one evidence entry anchored (after offset resolution) to this
// page. The evidence text is the haystack: the collaborator emits many
// small word/line fragments whose boundaries never align with a full
// evidence sentence, so containment rather than equality is required.
// No minimum fragment length is enforced, so very short fragments can
// false-positive against unrelated evidence.
func (s *Session) PageTextRendered(page int, fragments []string) {
	if page != s.current {
		return
	}

	var haystacks []string
	for _, e := range s.evidence {
		if s.ToActual(e.PrintedPage) == page {
			haystacks = append(haystacks, strings.ToLower(e.Text))
		}
	}
	if len(haystacks) == 0 {
		return
	}

	for i, frag := range fragments {
		needle := strings.ToLower(strings.TrimSpace(frag))
		if needle == "" {
			continue
		}
		for _, hay := range haystacks {
			if strings.Contains(hay, needle) {
				if s.marker != nil {
					s.marker.MarkFragment(page, i)
				}
				break
			}
		}
	}
}
