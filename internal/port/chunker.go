package port

import "pdfqa/internal/domain"

type Chunker interface {
	Chunk(text string) []domain.Chunk
}
