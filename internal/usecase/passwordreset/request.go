package passwordreset

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/elitehands/elitehands-api/internal/mailer"
	"github.com/elitehands/elitehands-api/internal/models"
)

const (
	otpTTL        = 15 * time.Minute
	resetTokenTTL = 15 * time.Minute

	// RequestedMessage is returned verbatim whether or not the email matched
	// an account, so the endpoint cannot be used to enumerate users.
	RequestedMessage = "If your email is registered, you will receive an OTP"
)

type RequestReset struct {
	repo Repository
	mail mailer.Service
}

func NewRequestReset(repo Repository, mail mailer.Service) *RequestReset {
	return &RequestReset{repo: repo, mail: mail}
}

// Execute issues a fresh OTP when the email matches an active account.
// Earlier outstanding OTPs stay valid until they are used or expire.
func (uc *RequestReset) Execute(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.repo.GetActiveUserByEmail(ctx, email)
	if err != nil {
		// Unknown email: same outcome for the caller, no OTP row.
		return nil
	}

	code, err := GenerateOTP()
	if err != nil {
		return err
	}

	otp := &models.OTP{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(otpTTL),
	}
	if err := uc.repo.CreateOTP(ctx, otp); err != nil {
		return err
	}

	if err := uc.mail.SendPasswordResetOTP(user.Email, user.FullName(), code); err != nil {
		log.Printf("failed to send reset OTP to user %d: %v", user.ID, err)
	}

	return nil
}
