package notification

import "context"

// Notifier delivers fire-and-forget messages to customers. Delivery
// failures never abort the transaction that triggered them.
type Notifier interface {
	Notify(ctx context.Context, customerID, title, description string) error
}

type noopNotifier struct{}

// NewNoop returns a Notifier that drops every message; used when no
// delivery backend is configured.
func NewNoop() Notifier { return noopNotifier{} }

func (noopNotifier) Notify(context.Context, string, string, string) error { return nil }
