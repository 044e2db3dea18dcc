package runtime

import (
	"chat-router/errors"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWithTimeout(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	err := WithTimeout(ctx, time.Second, func(context.Context) error { return nil })
	req.NoError(err)

	boom := fmt.Errorf("boom")
	err = WithTimeout(ctx, time.Second, func(context.Context) error { return boom })
	req.ErrorIs(err, boom)

	err = WithTimeout(ctx, 10*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	req.ErrorIs(err, errors.ErrOfferTimeout)
	req.EqualError(err, "timeout")

	// A callee ignoring its context loses the race too
	err = WithTimeout(ctx, 10*time.Millisecond, func(context.Context) error {
		time.Sleep(100 * time.Millisecond)
		return nil
	})
	req.ErrorIs(err, errors.ErrOfferTimeout)
}
