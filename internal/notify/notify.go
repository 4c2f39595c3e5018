package notify

import "context"

// Notifier delivers short operational messages to the studio's preconfigured
// out-of-band channel. The recipient is fixed by server configuration, never
// by request input.
type Notifier interface {
	Send(ctx context.Context, subject string, body string) error
}
