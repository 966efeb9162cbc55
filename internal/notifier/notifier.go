// Package notifier delivers scan results to the outside world.
//
// Delivery is best effort: the scan pipeline treats a failed send as a
// log-worthy event, never as a reason to abort a run that has already
// persisted its results.
package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Message is one outbound alert. Attachments are paths to files on disk;
// they are read at send time so reports can be generated first and
// attached afterwards.
type Message struct {
	Subject     string
	Body        string
	Attachments []string
}

// Notifier sends a message through a single channel.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// SendWithRetry attempts delivery with exponential backoff. It gives up
// after maxRetries+1 attempts or when the context is cancelled.
func SendWithRetry(ctx context.Context, n Notifier, msg Message, maxRetries int, log zerolog.Logger) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := n.Send(ctx, msg); err != nil {
			lastErr = err
			log.Warn().Err(err).Int("attempt", i+1).Msg("send failed, retrying")
			backoff := time.Duration(1<<uint(i)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}
