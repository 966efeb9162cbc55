package notifier

import "context"

// NoopNotifier discards every message. Used when email is not configured
// or during dry runs.
type NoopNotifier struct{}

func (NoopNotifier) Send(context.Context, Message) error { return nil }
