package port

import "pdfqa/internal/domain"

// CorpusStore persists one ordered chunk list per identifier.
type CorpusStore interface {
	// Save replaces the corpus stored under id.
	Save(id string, corpus domain.Corpus) error

	// Load returns the corpus stored under id. Missing corpora yield
	// domain.ErrCorpusNotFound, undecodable ones domain.ErrMalformedCorpus.
	Load(id string) (domain.Corpus, error)

	Delete(id string) error

	List() ([]domain.CorpusInfo, error)

	Close() error
}
