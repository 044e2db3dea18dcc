package runtime

import (
	"chat-router/errors"
	"context"
	stderrors "errors"
	"time"
)

// WithTimeout races fn against a timer. Whichever resolves first wins and a
// late completion of fn is disregarded.
func WithTimeout(ctx context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- fn(ctx) }()

	select {
	case err := <-done:
		if stderrors.Is(err, context.DeadlineExceeded) {
			return errors.ErrOfferTimeout
		}
		return err
	case <-ctx.Done():
		return errors.ErrOfferTimeout
	}
}
