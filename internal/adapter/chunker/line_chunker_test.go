package chunker

import (
	"strings"
	"testing"
)

func TestLineChunkerBasic(t *testing.T) {
	chunker := NewLineChunker(50)

	content := "The Cat sat on the mat.\nIt was a sunny day.\n\nDogs barked outside.\nEverything was calm."

	chunks := chunker.Chunk(content)
	if len(chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}

	for _, chunk := range chunks {
		if strings.TrimSpace(chunk.Text) == "" {
			t.Error("chunk has empty text")
		}
		if chunk.Text != strings.ToLower(chunk.Text) {
			t.Errorf("chunk should be lowercased: %q", chunk.Text)
		}
	}

	if chunks[0].Text != "the cat sat on the mat. it was a sunny day." {
		t.Errorf("unexpected first chunk: %q", chunks[0].Text)
	}
}

func TestLineChunkerSizeBound(t *testing.T) {
	chunker := NewLineChunker(30)

	lines := []string{
		"Line one",
		"Line two",
		"Line three",
		"Line four",
		"Line five",
		"Line six",
		"Line seven",
		"Line eight",
	}
	chunks := chunker.Chunk(strings.Join(lines, "\n"))

	for i, chunk := range chunks {
		if len(chunk.Text) > 30 {
			t.Errorf("chunk %d exceeds max size: %d bytes", i, len(chunk.Text))
		}
	}
}

func TestLineChunkerCoverage(t *testing.T) {
	chunker := NewLineChunker(25)

	lines := []string{"Alpha beta", "", "Gamma delta", "   ", "Epsilon", "Zeta eta theta", "Iota"}
	chunks := chunker.Chunk(strings.Join(lines, "\r\n"))

	var kept []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, strings.ToLower(line))
		}
	}

	var parts []string
	for _, chunk := range chunks {
		parts = append(parts, chunk.Text)
	}

	if got, want := strings.Join(parts, " "), strings.Join(kept, " "); got != want {
		t.Errorf("chunks do not cover the input\n got: %q\nwant: %q", got, want)
	}
}

func TestLineChunkerLineBreaks(t *testing.T) {
	chunker := NewLineChunker(100)

	chunks := chunker.Chunk("one\r\ntwo\rthree\nfour")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "one two three four" {
		t.Errorf("unexpected chunk text: %q", chunks[0].Text)
	}
}

func TestLineChunkerEmptyContent(t *testing.T) {
	chunker := NewLineChunker(50)

	for _, content := range []string{"", "\n\n", "  \r\n\t\n"} {
		if chunks := chunker.Chunk(content); len(chunks) != 0 {
			t.Errorf("expected 0 chunks for %q, got %d", content, len(chunks))
		}
	}
}

func TestLineChunkerSingleLine(t *testing.T) {
	chunker := NewLineChunker(50)

	chunks := chunker.Chunk("Just a single line of text")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for single line, got %d", len(chunks))
	}
	if chunks[0].Text != "just a single line of text" {
		t.Errorf("unexpected chunk text: %q", chunks[0].Text)
	}
}

func TestLineChunkerLongLine(t *testing.T) {
	chunker := NewLineChunker(10)

	long := "this is a very long line with many many words that will exceed the limit"
	chunks := chunker.Chunk("short\n" + long + "\ntail")

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %v", len(chunks), chunks)
	}
	if chunks[1].Text != long {
		t.Error("chunk should contain the full oversized line")
	}
}

func TestLineChunkerLongFirstLine(t *testing.T) {
	chunker := NewLineChunker(10)

	chunks := chunker.Chunk("an oversized opening line\nend")
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.Text == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}

func TestLineChunkerDeterministic(t *testing.T) {
	chunker := NewLineChunker(20)
	content := "a b c\nd e f\ng h i\nj k l\nm n o"

	first := chunker.Chunk(content)
	second := chunker.Chunk(content)
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs: %q vs %q", i, first[i].Text, second[i].Text)
		}
	}
}
