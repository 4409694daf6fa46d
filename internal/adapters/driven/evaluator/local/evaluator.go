// Package local provides an offline fallback evaluator. It scans page
// text for regulation-specific keyword rules and emits findings with
// page-anchored evidence snippets. It exists so the viewer workflow works
// without a remote evaluation endpoint configured.
package local

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
	"github.com/custodia-labs/pagemark-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pagemark-cli/internal/logger"
)

// rule is one keyword check of the local rule set.
type rule struct {
	id       string
	summary  string
	severity domain.Severity
	keywords []string
}

// rulesByRegulation carries the built-in rule sets keyed by regulation ID.
var rulesByRegulation = map[string][]rule{
	"aml-ctf": {
		{
			id:       "aml-cash-threshold",
			summary:  "Possible reportable cash transaction",
			severity: domain.SeverityCritical,
			keywords: []string{"cash deposit", "cash payment", "bearer instrument"},
		},
		{
			id:       "aml-offshore",
			summary:  "Offshore transfer mention",
			severity: domain.SeverityWarning,
			keywords: []string{"offshore", "shell company", "nominee account"},
		},
		{
			id:       "aml-sanctions",
			summary:  "Sanctions-relevant term",
			severity: domain.SeverityCritical,
			keywords: []string{"sanctioned", "embargo"},
		},
	},
	"gdpr": {
		{
			id:       "gdpr-personal-data",
			summary:  "Personal data category mentioned",
			severity: domain.SeverityWarning,
			keywords: []string{"date of birth", "passport number", "national id"},
		},
		{
			id:       "gdpr-retention",
			summary:  "Retention statement found",
			severity: domain.SeverityInfo,
			keywords: []string{"retention period", "data retention"},
		},
	},
	"pci-dss": {
		{
			id:       "pci-pan",
			summary:  "Possible primary account number exposure",
			severity: domain.SeverityCritical,
			keywords: []string{"card number", "pan", "cvv"},
		},
	},
}

// Ensure Evaluator implements the interface.
var _ driven.Evaluator = (*Evaluator)(nil)

// Evaluator is the offline keyword evaluator.
type Evaluator struct{}

// New creates a local evaluator.
func New() *Evaluator {
	return &Evaluator{}
}

// Name identifies the evaluator in stored reviews.
func (e *Evaluator) Name() string {
	return "local"
}

// Evaluate scans each page for the regulation's keywords. Evidence is
// anchored by the page's physical index; printed numbering corrections
// are the viewer's concern via its offset control.
func (e *Evaluator) Evaluate(_ context.Context, pages []domain.RenderedPage, regulation domain.Regulation) ([]domain.Finding, error) {
	rules, ok := rulesByRegulation[regulation.ID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownRegulation, regulation.ID)
	}

	var findings []domain.Finding
	for _, r := range rules {
		evidence := scan(pages, r.keywords)
		if len(evidence) == 0 {
			continue
		}
		findings = append(findings, domain.Finding{
			ID:       uuid.NewString(),
			Rule:     r.id,
			Severity: r.severity,
			Summary:  r.summary,
			Evidence: evidence,
		})
	}

	logger.Info("local evaluator: %d findings for %s", len(findings), regulation.ID)
	return findings, nil
}

// scan returns one evidence entry per page and keyword hit, using the
// matched layout line as the snippet.
func scan(pages []domain.RenderedPage, keywords []string) []domain.EvidenceEntry {
	var out []domain.EvidenceEntry
	for _, page := range pages {
		for _, line := range strings.Split(page.Text(), "\n") {
			folded := strings.ToLower(line)
			for _, kw := range keywords {
				if strings.Contains(folded, kw) {
					out = append(out, domain.EvidenceEntry{
						PrintedPage: page.Page,
						Text:        strings.TrimSpace(line),
					})
					break
				}
			}
		}
	}
	return out
}
