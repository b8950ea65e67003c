package ports

import "context"

// Mailer delivers transactional email. Implementations own the transport;
// callers own the content.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}
