package mailer

import "github.com/elitehands/elitehands-api/internal/config"

type Service interface {
	SendPasswordResetOTP(toEmail, toName, code string) error
}

// FromConfig picks the mailer implementation for the configured driver.
func FromConfig(cfg *config.Config) Service {
	switch cfg.MailerDriver {
	case "mailersend":
		return NewMailerSend(cfg.MailerSendAPIKey, "EliteHands", cfg.MailFrom)
	case "smtp":
		return NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.MailFrom, cfg.SMTPUser, cfg.SMTPPass)
	default:
		return NewDev()
	}
}
