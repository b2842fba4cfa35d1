package mailer

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strings"
)

type SMTP struct {
	Host string
	Port string
	From string
	User string
	Pass string
}

func NewSMTP(host, port, from, user, pass string) *SMTP {
	return &SMTP{
		Host: strings.TrimSpace(host),
		Port: strings.TrimSpace(port),
		From: strings.TrimSpace(from),
		User: strings.TrimSpace(user),
		Pass: strings.TrimSpace(pass),
	}
}

func (s *SMTP) SendPasswordResetOTP(toEmail, toName, code string) error {
	subject := "Password Reset OTP"
	text := fmt.Sprintf("Your OTP for password reset is: %s. It will expire in 15 minutes.", code)
	return s.send(toEmail, subject, text)
}

func (s *SMTP) send(toEmail, subject, text string) error {
	toEmail = strings.TrimSpace(toEmail)
	if toEmail == "" {
		return fmt.Errorf("empty recipient email")
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", s.From)
	fmt.Fprintf(&buf, "To: %s\r\n", toEmail)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n", text)

	addr := s.Host + ":" + s.Port

	// No-auth mode for local SMTP catchers like Mailpit.
	if s.User == "" {
		return smtp.SendMail(addr, nil, s.From, []string{toEmail}, buf.Bytes())
	}

	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
	return smtp.SendMail(addr, auth, s.From, []string{toEmail}, buf.Bytes())
}
