package mail

import (
	"context"

	"github.com/go-faster/errors"
	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/chic-classics/checkout-service/internal/config"
)

// Message is one outbound plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers messages over the configured transport. Callers decide
// whether a delivery failure matters; the checkout path treats both
// notification sends as best-effort.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// Ensure SMTPMailer implements Mailer
var _ Mailer = (*SMTPMailer)(nil)

// SMTPMailer implements Mailer over an authenticated SMTP relay. One
// instance is constructed at startup and shared across requests; the
// underlying client dials per send.
type SMTPMailer struct {
	client *gomail.Client
	from   string
	logger *zap.Logger
}

// NewSMTPMailer creates a mailer for the shop's mail account. The account
// username is used as the From address on every message.
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) (*SMTPMailer, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create smtp client")
	}

	return &SMTPMailer{
		client: client,
		from:   cfg.Username,
		logger: logger,
	}, nil
}

// Send delivers a single plain-text message.
func (m *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	mm := gomail.NewMsg()
	if err := mm.From(m.from); err != nil {
		return errors.Wrap(err, "from address")
	}
	if err := mm.To(msg.To); err != nil {
		return errors.Wrap(err, "to address")
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(gomail.TypeTextPlain, msg.Body)

	if err := m.client.DialAndSendWithContext(ctx, mm); err != nil {
		m.logger.Error("Email delivery failed",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
		return errors.Wrap(err, "send mail")
	}

	m.logger.Debug("Email sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
