package mailer

import "log"

// Dev prints the code instead of sending anything. Default driver so the
// reset flow works on a laptop with no mail credentials.
type Dev struct{}

func NewDev() *Dev {
	return &Dev{}
}

func (d *Dev) SendPasswordResetOTP(toEmail, toName, code string) error {
	log.Printf("[DEV MAIL] password reset OTP for %s <%s>: %s", toName, toEmail, code)
	return nil
}
