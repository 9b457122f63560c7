package port

import "context"

// LLM represents a hosted language model for text generation.
type LLM interface {
	// Generate produces a completion for the prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}

// GenerateOptions bounds a single generation request.
type GenerateOptions struct {
	MaxTokens   int
	Temperature float64
}
