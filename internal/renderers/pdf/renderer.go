// Package pdf renders PDF documents. Page counts come from pdfcpu;
// per-page text extraction shells out to the poppler pdftotext tool
// through a CommandRunner seam so it can be tested without the binary.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
	"github.com/custodia-labs/pagemark-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pagemark-cli/internal/logger"
)

// ErrPDFToolNotFound indicates the pdftotext binary is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// execRunner runs commands via os/exec. It is the production CommandRunner.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return nil, ErrPDFToolNotFound
		}
		return nil, err
	}
	return out, nil
}

// Renderer implements driven.Renderer for PDF documents.
type Renderer struct {
	runner driven.CommandRunner
}

// Ensure Renderer implements the interface.
var _ driven.Renderer = (*Renderer)(nil)

// New creates a PDF renderer using the system pdftotext binary.
func New() *Renderer {
	return &Renderer{runner: execRunner{}}
}

// NewWithRunner creates a PDF renderer with a custom command runner.
func NewWithRunner(runner driven.CommandRunner) *Renderer {
	return &Renderer{runner: runner}
}

// SupportedMIMETypes returns the MIME types this renderer handles.
func (r *Renderer) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority.
func (r *Renderer) Priority() int {
	return 80
}

// InstallInstructions describes how to install the required tooling.
func InstallInstructions() string {
	return "install poppler-utils to get pdftotext (apt install poppler-utils / brew install poppler)"
}

// Load reports the physical page count. A corrupt or unreadable PDF fails
// the whole load; no partial count is returned.
func (r *Renderer) Load(_ context.Context, path string) (int, error) {
	count, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w: %v", path, domain.ErrRenderFailed, err)
	}
	if count < 1 {
		return 0, fmt.Errorf("empty document %s: %w", path, domain.ErrRenderFailed)
	}
	logger.Debug("pdf: %s has %d pages", path, count)
	return count, nil
}

// RenderPage extracts the text layer of one physical page and splits it
// into word-granularity fragments grouped by layout line.
func (r *Renderer) RenderPage(ctx context.Context, path string, page, width int) (*domain.RenderedPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("page %d: %w", page, domain.ErrInvalidInput)
	}

	out, err := r.runner.Run(ctx, "pdftotext",
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
		"-layout",
		path, "-")
	if err != nil {
		if errors.Is(err, ErrPDFToolNotFound) {
			return nil, fmt.Errorf("%w (%s)", err, InstallInstructions())
		}
		return nil, fmt.Errorf("extracting page %d of %s: %w", page, path, err)
	}

	return &domain.RenderedPage{
		Page:      page,
		Fragments: Fragments(string(out)),
	}, nil
}

// Fragments splits extracted page text into word fragments tagged with
// their layout line. Blank lines are skipped but still advance the line
// counter so vertical layout survives.
func Fragments(text string) []domain.Fragment {
	var frags []domain.Fragment
	for line, raw := range strings.Split(strings.ReplaceAll(text, "\f", ""), "\n") {
		for _, word := range strings.Fields(raw) {
			frags = append(frags, domain.Fragment{Text: word, Line: line})
		}
	}
	return frags
}
