package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/manosay/manosay/backend/go-services/internal/config"
	"github.com/manosay/manosay/backend/go-services/pkg/logger"
)

const sendTimeout = 30 * time.Second

// SMTPRelay opens one authenticated SMTP session per message.
// Port 465 uses implicit TLS, 587 requires STARTTLS, other ports try STARTTLS.
type SMTPRelay struct {
	cfg     config.SMTPConfig
	timeout time.Duration
}

func NewSMTPRelay(cfg config.SMTPConfig) *SMTPRelay {
	return &SMTPRelay{cfg: cfg, timeout: sendTimeout}
}

func (r *SMTPRelay) options() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(r.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(r.cfg.Username),
		mail.WithPassword(r.cfg.Password),
		mail.WithTimeout(r.timeout),
	}
	switch r.cfg.Port {
	case 465:
		opts = append(opts, mail.WithSSL())
	case 587:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	default:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	return opts
}

// Send delivers m to the configured recipient. Every failure is a *DeliveryError.
func (r *SMTPRelay) Send(ctx context.Context, m Message) error {
	msg := mail.NewMsg()
	if err := msg.From(r.cfg.Username); err != nil {
		return &DeliveryError{Cause: fmt.Errorf("from address: %w", err)}
	}
	if err := msg.To(r.cfg.Recipient); err != nil {
		return &DeliveryError{Cause: fmt.Errorf("recipient address: %w", err)}
	}
	if m.ReplyTo != "" {
		if err := msg.ReplyTo(m.ReplyTo); err != nil {
			logger.Debugf("ignoring reply-to %q: %v", m.ReplyTo, err)
		}
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextPlain, m.Body)

	client, err := mail.NewClient(r.cfg.Server, r.options()...)
	if err != nil {
		return &DeliveryError{Cause: fmt.Errorf("smtp client: %w", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return &DeliveryError{Cause: err}
	}
	logger.Infof("%s email sent to %s", m.Kind, r.cfg.Recipient)
	return nil
}
