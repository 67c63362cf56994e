package auth

import (
	"context"
	"log/slog"

	"github.com/garrettladley/synthonia/internal/xslog"
)

// LogMailer writes reset links to the request logger instead of sending
// email.
type LogMailer struct{}

var _ Mailer = LogMailer{}

func (LogMailer) SendPasswordReset(ctx context.Context, email, link string) error {
	xslog.FromContext(ctx).InfoContext(ctx, "password reset requested",
		slog.String("email", email),
		slog.String("reset_link", link),
	)
	return nil
}
