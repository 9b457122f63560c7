package port

import "pdfqa/internal/domain"

// Ranker scores every chunk of a corpus against a prompt.
type Ranker interface {
	// Rank returns the chunks that clear the score threshold, best first.
	// An empty result is not an error.
	Rank(prompt string, chunks []domain.Chunk) []domain.RankedChunk
}
