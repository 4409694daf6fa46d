package domain

import "time"

// Review is one completed evaluation of a document against a regulation.
// Reviews are persisted so past findings can be reopened in the viewer.
type Review struct {
	// ID is the unique identifier for the review.
	ID string

	// DocumentPath is the location of the reviewed document.
	DocumentPath string

	// DocumentName is the file name at review time.
	DocumentName string

	// RegulationID identifies the regulation the document was checked against.
	RegulationID string

	// EvaluatorName records which evaluator produced the findings.
	EvaluatorName string

	// Findings are the structured results.
	Findings []Finding

	// CreatedAt is when the review completed.
	CreatedAt time.Time
}

// EvidenceCount returns the number of valid evidence entries across findings.
func (r Review) EvidenceCount() int {
	return len(FlattenEvidence(r.Findings))
}
