package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"jobscout/internal/domain/digest"
)

type EmailConfig struct {
	APIKey     string
	From       string
	Recipients []string
}

// Email sends the digest through SendGrid to one or more recipients.
type Email struct {
	cfg    EmailConfig
	client *sendgrid.Client
}

func NewEmail(cfg EmailConfig) (*Email, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("email: api key is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("email: from address is required")
	}
	if len(cfg.Recipients) == 0 {
		return nil, fmt.Errorf("email: at least one recipient is required")
	}
	return &Email{
		cfg:    cfg,
		client: sendgrid.NewSendClient(cfg.APIKey),
	}, nil
}

func (e *Email) Name() string {
	return "email"
}

func (e *Email) Send(ctx context.Context, d digest.Digest) error {
	text, err := d.Text()
	if err != nil {
		return err
	}
	html, err := d.HTML()
	if err != nil {
		return err
	}

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail("", e.cfg.From))
	message.Subject = d.Subject()

	personalization := mail.NewPersonalization()
	for _, rcpt := range e.cfg.Recipients {
		personalization.AddTos(mail.NewEmail("", rcpt))
	}
	message.AddPersonalizations(personalization)

	// SendGrid requires the text part before the html part.
	message.AddContent(mail.NewContent("text/plain", text))
	message.AddContent(mail.NewContent("text/html", html))

	resp, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("email: sending digest: %w", err)
	}
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return nil
	}
	return fmt.Errorf("email: unexpected status %d: %s", resp.StatusCode, resp.Body)
}

var _ Notifier = (*Email)(nil)
