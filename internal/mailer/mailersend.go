package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSend struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSend {
	m := &MailerSend{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}
	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}
	return m
}

func (m *MailerSend) SendPasswordResetOTP(toEmail, toName, code string) error {
	if !m.enabled {
		return fmt.Errorf("mailersend not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	text := fmt.Sprintf("Your OTP for password reset is: %s. It will expire in 15 minutes.", code)
	html := fmt.Sprintf(`
		<h2>Password Reset</h2>
		<p>Your one-time password is: <strong style="font-size: 24px;">%s</strong></p>
		<p>It will expire in 15 minutes. If you did not request a reset, ignore this email.</p>
	`, code)

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject("Password Reset OTP")
	msg.SetText(text)
	msg.SetHTML(html)

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
