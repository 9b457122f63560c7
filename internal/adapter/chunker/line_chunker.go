package chunker

import (
	"regexp"
	"strings"

	"pdfqa/internal/domain"
	"pdfqa/internal/port"
)

var _ port.Chunker = (*LineChunker)(nil)

var lineBreak = regexp.MustCompile(`\r\n|\r|\n`)

// LineChunker packs consecutive non-blank lines into chunks of at most
// maxSize bytes. A single line longer than maxSize becomes its own chunk.
type LineChunker struct {
	maxSize int
}

func NewLineChunker(maxSize int) *LineChunker {
	return &LineChunker{maxSize: maxSize}
}

// Chunk lowercases text and splits it into chunks. Lines are joined with a
// single space; blank lines are dropped.
func (c *LineChunker) Chunk(text string) []domain.Chunk {
	lines := splitLines(strings.ToLower(text))

	var chunks []domain.Chunk
	var current strings.Builder

	for _, line := range lines {
		if current.Len() == 0 {
			current.WriteString(line)
			continue
		}
		if current.Len()+len(line)+1 <= c.maxSize {
			current.WriteByte(' ')
			current.WriteString(line)
			continue
		}
		chunks = append(chunks, domain.Chunk{Text: current.String()})
		current.Reset()
		current.WriteString(line)
	}

	if current.Len() > 0 {
		chunks = append(chunks, domain.Chunk{Text: current.String()})
	}
	return chunks
}

// splitLines returns the lines of text that contain something other than
// whitespace, untrimmed.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	var lines []string
	for _, line := range lineBreak.Split(text, -1) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
