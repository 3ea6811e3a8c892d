// Package notify delivers one-time codes to users out of band.
package notify

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("notify: not configured")

// Notifier delivers an OTP to email. Implementations must not retry; a
// failed delivery is returned to the caller as is.
type Notifier interface {
	SendOTP(ctx context.Context, email, code string) error
}

// Func adapts a plain function to Notifier.
type Func func(ctx context.Context, email, code string) error

func (f Func) SendOTP(ctx context.Context, email, code string) error { return f(ctx, email, code) }
