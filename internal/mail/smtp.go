package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/wizonweb/wizon-server/internal/config"
)

// ErrNotConfigured is returned by Send when SMTP credentials are missing.
var ErrNotConfigured = errors.New("mail transport not configured")

const sendTimeout = 15 * time.Second

// SMTPNotifier delivers HTML messages through an authenticated SMTP relay.
// Port 465 uses implicit TLS; any other port requires STARTTLS.
type SMTPNotifier struct {
	host     string
	port     int
	username string
	password string
	fromName string

	deliver func(ctx context.Context, msg *gomail.Msg) error
}

// NewSMTPNotifier builds a notifier from the mail settings.
func NewSMTPNotifier(cfg config.MailConfig) *SMTPNotifier {
	n := &SMTPNotifier{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.User,
		password: cfg.Password,
		fromName: cfg.FromName,
	}
	n.deliver = n.dialAndSend
	return n
}

// Configured reports whether the relay credentials are present.
func (n *SMTPNotifier) Configured() bool {
	return n.host != "" && n.username != "" && n.password != ""
}

// Send delivers one HTML message to a single recipient.
func (n *SMTPNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	if !n.Configured() {
		return ErrNotConfigured
	}
	if to == "" {
		return errors.New("mail: no recipient address")
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(n.fromName, n.username); err != nil {
		return fmt.Errorf("mail: set from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mail: set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	return n.deliver(ctx, msg)
}

func (n *SMTPNotifier) dialAndSend(ctx context.Context, msg *gomail.Msg) error {
	opts := []gomail.Option{
		gomail.WithPort(n.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(n.username),
		gomail.WithPassword(n.password),
		gomail.WithTimeout(sendTimeout),
	}
	if n.port == 465 {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	}

	client, err := gomail.NewClient(n.host, opts...)
	if err != nil {
		return fmt.Errorf("mail: new client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mail: send via %s:%d: %w", n.host, n.port, err)
	}
	return nil
}
