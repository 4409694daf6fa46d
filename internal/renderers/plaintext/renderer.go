// Package plaintext renders plain text documents. Pages are split on form
// feed characters when present, otherwise the document is paginated at a
// fixed number of lines per page.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
	"github.com/custodia-labs/pagemark-cli/internal/core/ports/driven"
)

// DefaultLinesPerPage paginates documents without form feeds.
const DefaultLinesPerPage = 40

// Renderer implements driven.Renderer for plain text documents.
type Renderer struct {
	linesPerPage int
}

// Ensure Renderer implements the interface.
var _ driven.Renderer = (*Renderer)(nil)

// New creates a plain text renderer with the default pagination.
func New() *Renderer {
	return NewWithLinesPerPage(DefaultLinesPerPage)
}

// NewWithLinesPerPage creates a renderer paginating at n lines per page.
func NewWithLinesPerPage(n int) *Renderer {
	if n < 1 {
		n = DefaultLinesPerPage
	}
	return &Renderer{linesPerPage: n}
}

// SupportedMIMETypes returns the MIME types this renderer handles.
func (r *Renderer) SupportedMIMETypes() []string {
	return []string{"text/plain"}
}

// Priority returns the selection priority. Plain text is the fallback.
func (r *Renderer) Priority() int {
	return 5
}

// Load reads the document and reports its page count.
func (r *Renderer) Load(_ context.Context, path string) (int, error) {
	pages, err := r.paginate(path)
	if err != nil {
		return 0, err
	}
	return len(pages), nil
}

// RenderPage renders one page into word-granularity fragments.
func (r *Renderer) RenderPage(_ context.Context, path string, page, width int) (*domain.RenderedPage, error) {
	pages, err := r.paginate(path)
	if err != nil {
		return nil, err
	}
	if page < 1 || page > len(pages) {
		return nil, fmt.Errorf("page %d of %d: %w", page, len(pages), domain.ErrInvalidInput)
	}

	var frags []domain.Fragment
	for line, raw := range pages[page-1] {
		for _, word := range strings.Fields(raw) {
			frags = append(frags, domain.Fragment{Text: word, Line: line})
		}
	}
	return &domain.RenderedPage{Page: page, Fragments: frags}, nil
}

// paginate splits the document into pages of lines. Form feeds take
// precedence over the fixed lines-per-page fallback.
func (r *Renderer) paginate(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w: %v", path, domain.ErrRenderFailed, err)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if strings.Contains(text, "\f") {
		var pages [][]string
		for _, chunk := range strings.Split(text, "\f") {
			pages = append(pages, strings.Split(strings.Trim(chunk, "\n"), "\n"))
		}
		return pages, nil
	}

	lines := strings.Split(text, "\n")
	var pages [][]string
	for start := 0; start < len(lines); start += r.linesPerPage {
		end := start + r.linesPerPage
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, lines[start:end])
	}
	if len(pages) == 0 {
		pages = [][]string{nil}
	}
	return pages, nil
}
