package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier emails codes through an SMTP relay using PLAIN auth.
type SMTPNotifier struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Subject  string
	AppName  string

	// Send defaults to smtp.SendMail.
	Send SendFunc
}

// NewSMTPNotifier returns a notifier for host:port. Username may be empty
// for relays that accept unauthenticated mail.
func NewSMTPNotifier(host string, port int, username, password, from, appName string) (*SMTPNotifier, error) {
	if host == "" || from == "" {
		return nil, fmt.Errorf("%w: smtp host and from address are required", ErrNotConfigured)
	}
	if port == 0 {
		port = 587
	}
	if appName == "" {
		appName = "Storefront"
	}
	return &SMTPNotifier{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		Subject:  appName + " verification code",
		AppName:  appName,
		Send:     smtp.SendMail,
	}, nil
}

func (n *SMTPNotifier) SendOTP(ctx context.Context, email, code string) error {
	if strings.ContainsAny(email, "\r\n") {
		return fmt.Errorf("notify: invalid recipient %q", email)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if n.Username != "" {
		auth = smtp.PlainAuth("", n.Username, n.Password, n.Host)
	}

	send := n.Send
	if send == nil {
		send = smtp.SendMail
	}

	addr := net.JoinHostPort(n.Host, fmt.Sprint(n.Port))
	if err := send(addr, auth, n.From, []string{email}, n.message(email, code, time.Now())); err != nil {
		return fmt.Errorf("notify: send otp: %w", err)
	}
	return nil
}

func (n *SMTPNotifier) message(to, code string, now time.Time) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", n.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", n.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", now.UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Your %s verification code is %s\r\n", n.AppName, code)
	b.WriteString("\r\nIf you did not request this code you can ignore this email.\r\n")
	return []byte(b.String())
}
