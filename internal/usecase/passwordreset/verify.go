package passwordreset

import (
	"context"
	"strings"
	"time"

	"github.com/elitehands/elitehands-api/internal/httperr"
)

// errInvalidOTP deliberately covers wrong, expired, already-used and
// unknown-email cases so a caller cannot tell which one applied.
func errInvalidOTP() error {
	return httperr.ErrBusiness("invalid_otp", "Invalid or expired OTP")
}

type VerifyOTP struct {
	repo Repository
}

func NewVerifyOTP(repo Repository) *VerifyOTP {
	return &VerifyOTP{repo: repo}
}

// Execute consumes the OTP and mints the single-use reset token that gates
// the confirm step. The short code never sets a password by itself.
func (uc *VerifyOTP) Execute(ctx context.Context, email, code string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	now := time.Now()

	user, err := uc.repo.GetActiveUserByEmail(ctx, email)
	if err != nil {
		return "", errInvalidOTP()
	}

	otp, err := uc.repo.FindValidOTP(ctx, user.ID, code, now)
	if err != nil {
		return "", errInvalidOTP()
	}

	if err := uc.repo.MarkOTPUsed(ctx, otp); err != nil {
		return "", err
	}

	token, err := GenerateResetToken()
	if err != nil {
		return "", err
	}

	if err := uc.repo.SetResetToken(ctx, user.ID, token, now.Add(resetTokenTTL)); err != nil {
		return "", err
	}

	return token, nil
}
