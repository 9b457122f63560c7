package llm

import (
	"fmt"
	"log/slog"
	"time"

	"pdfqa/config"
	"pdfqa/internal/port"
)

// New builds the configured provider wrapped in retry and circuit breaker
// layers. The "none" provider is returned bare.
func New(cfg config.GenerationConfig, logger *slog.Logger) (port.LLM, error) {
	var client port.LLM
	switch cfg.Provider {
	case "gemini", "":
		c, err := NewGeminiClient(cfg.APIKeyEnv, cfg.Model, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		client = c
	case "openai":
		c, err := NewOpenAIClient(cfg.APIKeyEnv, cfg.Model, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		client = c
	case "ollama":
		client = NewOllamaClient(cfg.Model, cfg.BaseURL)
	case "none":
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("unknown generation provider: %s", cfg.Provider)
	}

	client = NewRetryingLLM(client, cfg.MaxRetries, 0, logger)
	return NewBreakerLLM(client, uint32(cfg.BreakerFailures), time.Duration(cfg.BreakerCooldownSecs)*time.Second, logger), nil
}
