package domain

import (
	"errors"
	"testing"
)

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"report.pdf", "report"},
		{"/tmp/uploads/annual report.PDF", "annual report"},
		{`C:\docs\manual.v2.pdf`, "manual.v2"},
		{".hidden", ".hidden"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		if got := NormalizeID(tt.input); got != tt.expected {
			t.Errorf("NormalizeID(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestValidateID(t *testing.T) {
	for _, id := range []string{"report", "annual report", "manual.v2"} {
		if err := ValidateID(id); err != nil {
			t.Errorf("ValidateID(%q) unexpected error: %v", id, err)
		}
	}
	for _, id := range []string{"", "  ", ".", "..", ".hidden", ".report-123.tmp", "../etc/passwd", `a\b`} {
		err := ValidateID(id)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ValidateID(%q) = %v, want ErrInvalidInput", id, err)
		}
	}
}

func TestSessionWith(t *testing.T) {
	s := Session{CorpusID: "doc"}
	s1 := s.With(Turn{Prompt: "q1", Answer: "a1"})
	s2 := s1.With(Turn{Prompt: "q2", Answer: "a2"})

	if len(s.History) != 0 {
		t.Errorf("original session modified: %+v", s)
	}
	if len(s1.History) != 1 {
		t.Errorf("expected 1 turn, got %d", len(s1.History))
	}
	if len(s2.History) != 2 || s2.History[1].Prompt != "q2" {
		t.Errorf("unexpected history: %+v", s2.History)
	}
	if s2.CorpusID != "doc" {
		t.Errorf("corpus id not carried: %q", s2.CorpusID)
	}
}

func TestCorpusTexts(t *testing.T) {
	c := Corpus{{Text: "one"}, {Text: "two"}}
	texts := c.Texts()
	if len(texts) != 2 || texts[0] != "one" || texts[1] != "two" {
		t.Errorf("unexpected texts: %v", texts)
	}
}
