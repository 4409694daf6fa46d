package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates no renderer handles the document type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEvaluatorUnavailable indicates no evaluator is configured or reachable.
	// Reviews cannot run without one; the local fallback covers the offline case.
	ErrEvaluatorUnavailable = errors.New("evaluator unavailable")

	// ErrRenderFailed indicates the rendering collaborator could not load
	// the document. The viewer session stays inert until a new source is set.
	ErrRenderFailed = errors.New("render failed")

	// ErrInvalidEvidence indicates an evaluator response did not match the
	// expected findings shape.
	ErrInvalidEvidence = errors.New("invalid evidence payload")

	// ErrUnknownRegulation indicates the requested regulation is not registered.
	ErrUnknownRegulation = errors.New("unknown regulation")
)
