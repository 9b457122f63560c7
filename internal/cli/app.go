package cli

import (
	"fmt"
	"time"

	"pdfqa/internal/adapter/analyzer"
	"pdfqa/internal/adapter/chunker"
	"pdfqa/internal/adapter/extractor"
	"pdfqa/internal/adapter/fs"
	"pdfqa/internal/adapter/llm"
	"pdfqa/internal/adapter/retriever"
	"pdfqa/internal/adapter/store"
	"pdfqa/internal/port"
	"pdfqa/internal/usecase"
)

func openStore() (port.CorpusStore, error) {
	st, err := store.Open(GetConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus store: %w", err)
	}
	return st, nil
}

func newIngestUseCase(st port.CorpusStore) *usecase.IngestUseCase {
	cfg := GetConfig()
	return usecase.NewIngestUseCase(
		extractor.NewPDFExtractor(),
		chunker.NewLineChunker(cfg.Chunk.MaxSize),
		st,
		fs.NewWalker(cfg.Ingest.Includes, cfg.Ingest.Excludes),
		logger,
	)
}

// newQueryUseCase wires the ranking pipeline. Without generation the
// disabled provider is used, so no API key is needed.
func newQueryUseCase(st port.CorpusStore, generate bool) (*usecase.QueryUseCase, error) {
	cfg := GetConfig()

	var gen port.LLM = llm.Disabled{}
	if generate {
		var err error
		gen, err = llm.New(cfg.Generation, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create generation client: %w", err)
		}
	}

	synth, err := usecase.NewSynthesizer(gen, usecase.SynthesizerConfig{
		PromptTemplate: cfg.Generation.PromptTemplate,
		MaxTokens:      cfg.Generation.MaxOutputTokens,
		Temperature:    cfg.Generation.Temperature,
		Timeout:        time.Duration(cfg.Generation.TimeoutSecs) * time.Second,
	}, logger)
	if err != nil {
		return nil, err
	}

	ranker := retriever.NewTFIDFRanker(
		analyzer.NewTokenizer(cfg.Retrieve.Stemming),
		cfg.Retrieve.TopK,
		cfg.Retrieve.MinScore,
		cfg.Retrieve.SurfaceWeight,
	)

	return usecase.NewQueryUseCase(st, ranker, synth, logger), nil
}
