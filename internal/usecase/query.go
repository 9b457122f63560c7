package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"pdfqa/internal/domain"
	"pdfqa/internal/port"
)

// QueryUseCase answers prompts against stored corpora. It keeps no state
// between calls; chat history travels in domain.Session.
type QueryUseCase struct {
	store       port.CorpusStore
	ranker      port.Ranker
	synthesizer *Synthesizer
	logger      *slog.Logger
}

func NewQueryUseCase(
	store port.CorpusStore,
	ranker port.Ranker,
	synthesizer *Synthesizer,
	logger *slog.Logger,
) *QueryUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryUseCase{
		store:       store,
		ranker:      ranker,
		synthesizer: synthesizer,
		logger:      logger,
	}
}

// Retrieve ranks the corpus against prompt without generating an answer.
// An empty prompt returns every chunk in corpus order, as Query does.
func (u *QueryUseCase) Retrieve(req domain.QueryRequest) ([]domain.RankedChunk, error) {
	corpus, err := u.load(req.CorpusID)
	if err != nil {
		return nil, err
	}
	if req.Prompt == "" {
		return unranked(corpus), nil
	}
	return u.ranker.Rank(req.Prompt, corpus), nil
}

// Query ranks the corpus and asks the generation service. An empty prompt
// skips both and returns every chunk in corpus order. A blank but
// non-empty prompt is ranked like any other.
func (u *QueryUseCase) Query(ctx context.Context, req domain.QueryRequest) (*domain.QueryResponse, error) {
	corpus, err := u.load(req.CorpusID)
	if err != nil {
		return nil, err
	}

	if req.Prompt == "" {
		return &domain.QueryResponse{
			Chunks:    unranked(corpus),
			AllChunks: append([]domain.Chunk{}, corpus...),
		}, nil
	}

	ranked := u.ranker.Rank(req.Prompt, corpus)
	u.logger.Debug("ranked chunks", "corpus", req.CorpusID, "candidates", len(corpus), "kept", len(ranked))

	top := make([]domain.Chunk, len(ranked))
	for i, rc := range ranked {
		top[i] = rc.Chunk
	}

	return &domain.QueryResponse{
		Chunks:         ranked,
		GeminiResponse: u.synthesizer.Synthesize(ctx, req.Prompt, top),
	}, nil
}

// Ask runs one chat turn and returns the session extended with it.
func (u *QueryUseCase) Ask(ctx context.Context, session domain.Session, prompt string) (domain.Session, *domain.QueryResponse, error) {
	if strings.TrimSpace(prompt) == "" {
		return session, nil, fmt.Errorf("%w: empty prompt", domain.ErrInvalidInput)
	}

	resp, err := u.Query(ctx, domain.QueryRequest{Prompt: prompt, CorpusID: session.CorpusID})
	if err != nil {
		return session, nil, err
	}

	return session.With(domain.Turn{Prompt: prompt, Answer: resp.GeminiResponse}), resp, nil
}

func unranked(corpus domain.Corpus) []domain.RankedChunk {
	all := make([]domain.RankedChunk, len(corpus))
	for i, c := range corpus {
		all[i] = domain.RankedChunk{Chunk: c}
	}
	return all
}

func (u *QueryUseCase) load(id string) (domain.Corpus, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	return u.store.Load(id)
}
