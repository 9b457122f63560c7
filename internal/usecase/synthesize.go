package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"pdfqa/internal/domain"
	"pdfqa/internal/port"
)

// Fixed answers used in place of generated text.
const (
	OutOfContextMessage = "Prompt out of context. No relevant information found."
	FetchErrorMessage   = "Error fetching response. Please try again later."
	NoAnswerMessage     = "Sorry, I couldn't get a good answer. Please try rephrasing."
)

// SynthesizerConfig holds generation settings.
type SynthesizerConfig struct {
	PromptTemplate string
	MaxTokens      int
	Temperature    float64
	Timeout        time.Duration
}

// Synthesizer turns ranked context into an answer from the generation
// service. It never fails: every error becomes one of the fixed messages.
type Synthesizer struct {
	llm     port.LLM
	tmpl    *template.Template
	opts    port.GenerateOptions
	timeout time.Duration
	logger  *slog.Logger
}

type promptData struct {
	Context string
	Query   string
}

func NewSynthesizer(llm port.LLM, cfg SynthesizerConfig, logger *slog.Logger) (*Synthesizer, error) {
	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(cfg.PromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{
		llm:  llm,
		tmpl: tmpl,
		opts: port.GenerateOptions{
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		},
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// Prompt renders the instruction sent to the generation service. Chunk
// texts are joined by blank lines.
func (s *Synthesizer) Prompt(query string, top []domain.Chunk) (string, error) {
	texts := make([]string, len(top))
	for i, c := range top {
		texts[i] = c.Text
	}

	var sb strings.Builder
	err := s.tmpl.Execute(&sb, promptData{
		Context: strings.Join(texts, "\n\n"),
		Query:   query,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return sb.String(), nil
}

// Synthesize answers query from top. With no context chunks the service
// is not called.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, top []domain.Chunk) string {
	if len(top) == 0 {
		return OutOfContextMessage
	}

	prompt, err := s.Prompt(query, top)
	if err != nil {
		s.logger.Error("prompt rendering failed", "error", err)
		return FetchErrorMessage
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	answer, err := s.llm.Generate(ctx, prompt, s.opts)
	switch {
	case errors.Is(err, domain.ErrEmptyGeneration):
		s.logger.Warn("generation returned no answer", "model", s.llm.ModelName(), "error", err)
		return NoAnswerMessage
	case err != nil:
		s.logger.Error("generation failed", "model", s.llm.ModelName(), "error", err)
		return FetchErrorMessage
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return NoAnswerMessage
	}
	return answer
}
