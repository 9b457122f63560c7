package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"pdfqa/internal/domain"
	"pdfqa/internal/port"
)

var _ port.LLM = (*BreakerLLM)(nil)

// BreakerLLM stops calling the wrapped LLM after consecutive failures and
// fails fast until the cooldown has passed. Empty answers and cancelled
// requests do not count as failures.
type BreakerLLM struct {
	next port.LLM
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerLLM(next port.LLM, failures uint32, cooldown time.Duration, logger *slog.Logger) *BreakerLLM {
	if failures == 0 {
		failures = 5
	}
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:        "llm-" + next.ModelName(),
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, domain.ErrEmptyGeneration) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}

	return &BreakerLLM{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

func (b *BreakerLLM) Generate(ctx context.Context, prompt string, opts port.GenerateOptions) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Generate(ctx, prompt, opts)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
		}
		return "", err
	}
	text, _ := out.(string)
	return text, nil
}

func (b *BreakerLLM) ModelName() string {
	return b.next.ModelName()
}

// Open reports whether calls are currently being rejected.
func (b *BreakerLLM) Open() bool {
	return b.cb.State() == gobreaker.StateOpen
}
