package llm

import (
	"context"
	"fmt"

	"pdfqa/internal/domain"
	"pdfqa/internal/port"
)

var _ port.LLM = Disabled{}

// Disabled is the "none" provider: every call fails, so answers fall back
// to the fixed error message while retrieval keeps working offline.
type Disabled struct{}

func (Disabled) Generate(context.Context, string, port.GenerateOptions) (string, error) {
	return "", fmt.Errorf("%w: generation is disabled", domain.ErrGeneration)
}

func (Disabled) ModelName() string {
	return "none"
}
