package llm

import (
	"errors"
	"fmt"
	"net/http"

	"pdfqa/internal/domain"
)

// ErrMalformedResponse marks a 2xx reply that could not be read as an
// answer. It wraps into domain.ErrGeneration and is not retried.
var ErrMalformedResponse = errors.New("malformed response")

// StatusError is returned when the generation service answers with a
// non-2xx status.
type StatusError struct {
	Provider string
	Code     int
	Message  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	return domain.ErrGeneration
}

// Retryable reports whether err is worth another attempt: throttling,
// server errors and transport failures are; client errors, malformed
// replies and empty answers are not.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, domain.ErrEmptyGeneration) || errors.Is(err, ErrMalformedResponse) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}
	return errors.Is(err, domain.ErrGeneration)
}

func truncate(body []byte, n int) string {
	if len(body) > n {
		return string(body[:n])
	}
	return string(body)
}
