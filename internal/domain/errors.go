package domain

import "errors"

// Domain errors returned by the ingestion and query use cases.
// Adapters wrap them with %w so callers can match with errors.Is.
var (
	// ErrExtraction indicates no text could be produced from a source document.
	ErrExtraction = errors.New("failed to extract text from document")

	// ErrCorpusNotFound indicates no chunk list is stored under an identifier.
	ErrCorpusNotFound = errors.New("corpus not found")

	// ErrMalformedCorpus indicates stored data is not a valid chunk list.
	ErrMalformedCorpus = errors.New("malformed corpus")

	// ErrInvalidInput indicates a missing or malformed request field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrGeneration indicates the generation service failed or was unreachable.
	ErrGeneration = errors.New("generation service failure")

	// ErrEmptyGeneration indicates the generation service answered with
	// no usable text.
	ErrEmptyGeneration = errors.New("generation service returned no answer")
)
