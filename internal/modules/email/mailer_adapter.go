package email

import (
	"context"

	"github.com/sakevn/Gateways/internal/mailer"
)

// MailerAdapter bridges a mailer.Service (SMTP or mock) to the email.Service
// interface used by the hooks.
type MailerAdapter struct {
	mailer   mailer.Service
	fromAddr string
	fromName string
}

func NewMailerAdapter(m mailer.Service, fromAddr, fromName string) *MailerAdapter {
	return &MailerAdapter{
		mailer:   m,
		fromAddr: fromAddr,
		fromName: fromName,
	}
}

func (a *MailerAdapter) SendEmail(to string, toName string, subject string, htmlBody string, textBody string) error {
	_ = toName
	email := mailer.Email{
		From:     a.fromAddr,
		FromName: a.fromName,
		To:       []string{to},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
	return a.mailer.Send(context.Background(), email)
}
