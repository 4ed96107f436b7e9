// Package mailer sends single transactional messages with one optional attachment.
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diewo77/product-organizer/internal/config"
	"github.com/sirupsen/logrus"
	gomail "github.com/wneessen/go-mail"
)

// ErrMissingCredentials is returned at send time when the sender address or password is not configured.
var ErrMissingCredentials = errors.New("mail credentials not configured (APP_EMAIL / APP_PASSWORD)")

type Attachment struct {
	Name string
	Data []byte
}

type Message struct {
	From       string
	To         string
	Subject    string
	Body       string
	Attachment *Attachment
}

// Transport delivers a message to a mail submission endpoint.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPTransport submits over STARTTLS with PLAIN authentication.
type SMTPTransport struct {
	cfg config.MailConfig
	log logrus.FieldLogger
}

func NewSMTPTransport(cfg config.MailConfig, log logrus.FieldLogger) *SMTPTransport {
	return &SMTPTransport{cfg: cfg, log: log}
}

// Send builds the message and delivers it. Nothing is retried.
func (t *SMTPTransport) Send(ctx context.Context, msg Message) error {
	if !t.cfg.HasCredentials() {
		return ErrMissingCredentials
	}
	if msg.From == "" {
		msg.From = t.cfg.Username
	}
	m, err := Build(msg)
	if err != nil {
		return err
	}
	opts := []gomail.Option{
		gomail.WithPort(t.cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(t.cfg.Username),
		gomail.WithPassword(t.cfg.Password),
	}
	if t.cfg.TimeoutSeconds > 0 {
		opts = append(opts, gomail.WithTimeout(time.Duration(t.cfg.TimeoutSeconds)*time.Second))
	}
	client, err := gomail.NewClient(t.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client %s:%d: %w", t.cfg.Host, t.cfg.Port, err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	t.log.WithFields(logrus.Fields{"recipient": msg.To, "host": t.cfg.Host}).Info("mail submitted")
	return nil
}

// Build converts msg into a go-mail message. The attachment is declared as
// application/octet-stream and keeps its file name.
func Build(msg Message) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("sender %q: %w", msg.From, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("recipient %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)
	if a := msg.Attachment; a != nil {
		if err := m.AttachReader(a.Name, bytes.NewReader(a.Data), gomail.WithFileContentType(gomail.TypeAppOctetStream)); err != nil {
			return nil, fmt.Errorf("attach %s: %w", a.Name, err)
		}
	}
	return m, nil
}
