package notify

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// LogNotifier writes codes to the request logger instead of sending them.
// Development only: config refuses it when ENV=prod.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) SendOTP(ctx context.Context, email, code string) error {
	l := n.Logger
	if l == nil {
		l = slogx.FromContext(ctx)
	}
	l.InfoContext(ctx, "otp issued", slog.String("email", email), slog.String("otp", code))
	return nil
}
