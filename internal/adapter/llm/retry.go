package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"pdfqa/internal/port"
)

var _ port.LLM = (*RetryingLLM)(nil)

// RetryingLLM retries retryable failures of the wrapped LLM with
// exponential backoff. The caller's context bounds the total time.
type RetryingLLM struct {
	next            port.LLM
	maxRetries      int
	initialInterval time.Duration
	logger          *slog.Logger
}

func NewRetryingLLM(next port.LLM, maxRetries int, initialInterval time.Duration, logger *slog.Logger) *RetryingLLM {
	if initialInterval <= 0 {
		initialInterval = 500 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryingLLM{
		next:            next,
		maxRetries:      maxRetries,
		initialInterval: initialInterval,
		logger:          logger,
	}
}

func (r *RetryingLLM) Generate(ctx context.Context, prompt string, opts port.GenerateOptions) (string, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = 8 * r.initialInterval
	b.MaxElapsedTime = 0

	var policy backoff.BackOff = b
	if r.maxRetries >= 0 {
		policy = backoff.WithMaxRetries(b, uint64(r.maxRetries))
	}
	policy = backoff.WithContext(policy, ctx)

	var text string
	err := backoff.RetryNotify(func() error {
		out, err := r.next.Generate(ctx, prompt, opts)
		if err != nil {
			if !Retryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		text = out
		return nil
	}, policy, func(err error, wait time.Duration) {
		r.logger.Warn("generation failed, retrying", "model", r.next.ModelName(), "error", err, "wait", wait)
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

func (r *RetryingLLM) ModelName() string {
	return r.next.ModelName()
}
