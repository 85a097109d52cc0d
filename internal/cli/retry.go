package cli

import (
	"errors"
	"fmt"

	"github.com/isseis/go-ishmael/internal/safefileio"
)

// RetryPolicy bounds how often the menu re-prompts after a missing file.
// Only safefileio.ErrResourceNotFound is retried; every other error is
// returned at once.
type RetryPolicy struct {
	MaxAttempts int
}

// FailFast never retries.
var FailFast = RetryPolicy{MaxAttempts: 1}

// Do calls attempt until it succeeds, fails with a non-retryable error, or
// the attempt budget is spent. attempt receives the 1-based attempt number.
func (p RetryPolicy) Do(attempt func(n int) error) error {
	maxAttempts := max(p.MaxAttempts, 1)

	var err error
	for n := 1; n <= maxAttempts; n++ {
		err = attempt(n)
		if err == nil || !retryable(err) {
			return err
		}
	}
	return fmt.Errorf("%w (%d): %w", ErrRetriesExhausted, maxAttempts, err)
}

func retryable(err error) bool {
	return errors.Is(err, safefileio.ErrResourceNotFound)
}
