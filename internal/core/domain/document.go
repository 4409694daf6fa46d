package domain

import (
	"path/filepath"
	"strings"
)

// Document describes a source document under review.
type Document struct {
	// Path is the location of the document on disk.
	Path string

	// Name is the human-readable file name.
	Name string

	// MIMEType is the detected content type.
	MIMEType string

	// TotalPages is the physical page count, zero until the
	// rendering collaborator reports it.
	TotalPages int
}

// Fragment is one small rendered text piece of a page's text layer.
// The rendering collaborator emits many word-granularity fragments whose
// boundaries never align with a full evidence sentence.
type Fragment struct {
	// Text is the rendered content of the fragment.
	Text string

	// Line is the zero-based layout line the fragment belongs to.
	Line int
}

// RenderedPage is the text layer of one physical page.
type RenderedPage struct {
	// Page is the 1-based physical page index.
	Page int

	// Fragments are the rendered text fragments in layout order.
	Fragments []Fragment
}

// Text reassembles the page text from its fragments, one line per layout line.
func (p *RenderedPage) Text() string {
	var b strings.Builder
	line := 0
	for i, f := range p.Fragments {
		if i > 0 {
			if f.Line != line {
				b.WriteString("\n")
			} else {
				b.WriteString(" ")
			}
		}
		line = f.Line
		b.WriteString(f.Text)
	}
	return b.String()
}

// mimeByExtension maps known file extensions to MIME types.
var mimeByExtension = map[string]string{
	".pdf": "application/pdf",
	".txt": "text/plain",
	".md":  "text/plain",
	".log": "text/plain",
}

// DetectMIMEType returns the MIME type for a document path based on its
// extension. Unknown extensions fall back to text/plain.
func DetectMIMEType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mime, ok := mimeByExtension[ext]; ok {
		return mime
	}
	return "text/plain"
}

// NewDocument builds a Document for a path with the MIME type detected.
func NewDocument(path string) Document {
	return Document{
		Path:     path,
		Name:     filepath.Base(path),
		MIMEType: DetectMIMEType(path),
	}
}
