package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"pdfqa/internal/domain"
	"pdfqa/internal/port"
)

// IngestUseCase turns source documents into stored corpora.
type IngestUseCase struct {
	extractor port.Extractor
	chunker   port.Chunker
	store     port.CorpusStore
	walker    port.FileWalker
	logger    *slog.Logger
}

// NewIngestUseCase creates a new ingest use case. walker may be nil when
// only single documents are ingested.
func NewIngestUseCase(
	extractor port.Extractor,
	chunker port.Chunker,
	store port.CorpusStore,
	walker port.FileWalker,
	logger *slog.Logger,
) *IngestUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestUseCase{
		extractor: extractor,
		chunker:   chunker,
		store:     store,
		walker:    walker,
		logger:    logger,
	}
}

// IngestResult describes one stored corpus.
type IngestResult struct {
	CorpusID string `json:"corpus"`
	Chunks   int    `json:"chunks"`
}

// Ingest stores data under the identifier derived from name: its base
// name without extension.
func (u *IngestUseCase) Ingest(name string, data []byte) (*IngestResult, error) {
	return u.IngestAs(domain.NormalizeID(name), data)
}

// IngestAs extracts, chunks and stores data under id, replacing any
// corpus already stored there. Nothing is stored when extraction fails.
func (u *IngestUseCase) IngestAs(id string, data []byte) (*IngestResult, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}

	text, err := u.extractor.Extract(data)
	if err != nil {
		if !errors.Is(err, domain.ErrExtraction) {
			err = fmt.Errorf("%w: %v", domain.ErrExtraction, err)
		}
		return nil, err
	}

	doc := domain.Document{Name: id, Text: text}
	chunks := u.chunker.Chunk(doc.Text)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: document %s has no text", domain.ErrExtraction, doc.Name)
	}

	if err := u.store.Save(id, chunks); err != nil {
		return nil, fmt.Errorf("failed to save corpus: %w", err)
	}

	u.logger.Info("corpus stored", "corpus", id, "chunks", len(chunks), "bytes", len(text))
	return &IngestResult{CorpusID: id, Chunks: len(chunks)}, nil
}

// BatchResult contains the results of a directory ingest.
type BatchResult struct {
	Corpora       []IngestResult
	ChunksCreated int
	Errors        []string
}

// ListSources returns the documents IngestDir would process.
func (u *IngestUseCase) ListSources(root string) ([]port.FileInfo, error) {
	if u.walker == nil {
		return nil, fmt.Errorf("no file walker configured")
	}
	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	return files, nil
}

// IngestDir ingests every document under root as its own corpus. A failing
// file is recorded in Errors and does not stop the batch. onFile, when set,
// is called after each file.
func (u *IngestUseCase) IngestDir(root string, onFile func(path string)) (*BatchResult, error) {
	files, err := u.ListSources(root)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{}
	for _, file := range files {
		res, err := u.ingestFile(file.Path)
		if err != nil {
			u.logger.Warn("ingest failed", "path", file.Path, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("failed to ingest %s: %v", file.Path, err))
		} else {
			result.Corpora = append(result.Corpora, *res)
			result.ChunksCreated += res.Chunks
		}
		if onFile != nil {
			onFile(file.Path)
		}
	}
	return result, nil
}

func (u *IngestUseCase) ingestFile(path string) (*IngestResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return u.Ingest(path, data)
}
