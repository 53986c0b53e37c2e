package mailer

import (
	"context"
	"fmt"

	"github.com/manosay/manosay/backend/go-services/internal/config"
	"github.com/manosay/manosay/backend/go-services/pkg/logger"
	"github.com/manosay/manosay/backend/go-services/pkg/metrics"
)

// Notification kinds, used as the metrics label.
const (
	KindContact = "contact"
	KindLead    = "lead"
)

// Message is one plain-text notification to the site operator.
type Message struct {
	Kind    string
	Subject string
	Body    string
	// ReplyTo is the submitter's address, when it parses.
	ReplyTo string
}

// Relay delivers a Message.
type Relay interface {
	Send(ctx context.Context, m Message) error
}

// DeliveryError wraps any transport failure.
type DeliveryError struct {
	Cause error
}

func (e *DeliveryError) Error() string { return fmt.Sprintf("mail delivery failed: %v", e.Cause) }

func (e *DeliveryError) Unwrap() error { return e.Cause }

// NewRelay returns an SMTP relay, or a NoopRelay when mail is not configured.
func NewRelay(cfg config.SMTPConfig) Relay {
	if !cfg.Configured() {
		logger.Warnf("SMTP not configured; notifications will be logged and dropped")
		return NoopRelay{}
	}
	return NewSMTPRelay(cfg)
}

// NoopRelay accepts every message without sending it.
type NoopRelay struct{}

func (NoopRelay) Send(ctx context.Context, m Message) error {
	logger.Infof("SMTP not configured; skipping %s email %q", m.Kind, m.Subject)
	return nil
}

// Deliver sends m through r and records the outcome.
func Deliver(ctx context.Context, r Relay, m Message) error {
	kind := m.Kind
	if kind == "" {
		kind = "other"
	}
	if err := r.Send(ctx, m); err != nil {
		metrics.MailDeliveries.WithLabelValues(kind, "failed").Inc()
		return err
	}
	metrics.MailDeliveries.WithLabelValues(kind, "sent").Inc()
	return nil
}
