package domain

import "strings"

// Severity classifies how serious a finding is.
type Severity string

// Severity levels reported by evaluators.
const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// ParseSeverity maps a string to a known severity.
// Unknown values fall back to info.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical", "high":
		return SeverityCritical
	case "warning", "medium":
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// EvidenceEntry anchors a text snippet to a printed page number.
// Printed page numbers are the numbers as rendered inside the document
// (e.g. a footer numeral); they are resolved to physical pages via the
// session offset before matching.
type EvidenceEntry struct {
	// PrintedPage is the page number as printed in the document.
	PrintedPage int

	// Text is the evidence snippet.
	Text string
}

// Valid reports whether the entry carries both a usable page anchor and text.
func (e EvidenceEntry) Valid() bool {
	return e.PrintedPage > 0 && strings.TrimSpace(e.Text) != ""
}

// Transaction groups evidence under a sub-item of a finding.
// Some evaluators report evidence nested per transaction instead of flat.
type Transaction struct {
	// Ref identifies the transaction within the finding.
	Ref string

	// Evidence is the page-anchored evidence for this transaction.
	Evidence []EvidenceEntry
}

// Finding is a single structured result from an evaluation.
// Evidence appears either flat in Evidence or nested in Transactions;
// consumers use FlattenEvidence rather than reading the fields directly.
type Finding struct {
	// ID is the unique identifier for the finding.
	ID string

	// Rule is the regulation rule the finding refers to.
	Rule string

	// Severity classifies the finding.
	Severity Severity

	// Summary is the evaluator's human-readable description.
	Summary string

	// Evidence is the flat evidence list, when the evaluator reports one.
	Evidence []EvidenceEntry

	// Transactions hold nested per-transaction evidence, when the
	// evaluator reports that shape instead.
	Transactions []Transaction
}

// FlattenEvidence normalises both evidence shapes into one flat list.
// Malformed entries (missing text or non-positive page) are dropped silently.
func (f Finding) FlattenEvidence() []EvidenceEntry {
	var out []EvidenceEntry
	for _, e := range f.Evidence {
		if e.Valid() {
			out = append(out, e)
		}
	}
	for _, tx := range f.Transactions {
		for _, e := range tx.Evidence {
			if e.Valid() {
				out = append(out, e)
			}
		}
	}
	return out
}

// FlattenEvidence collects the normalised evidence of all findings.
func FlattenEvidence(findings []Finding) []EvidenceEntry {
	var out []EvidenceEntry
	for _, f := range findings {
		out = append(out, f.FlattenEvidence()...)
	}
	return out
}
