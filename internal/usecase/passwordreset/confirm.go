package passwordreset

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/elitehands/elitehands-api/internal/httperr"
)

func errInvalidToken() error {
	return httperr.ErrBusiness("invalid_reset_token", "Invalid or expired reset token")
}

type ConfirmReset struct {
	repo     Repository
	sessions SessionRevoker
}

func NewConfirmReset(repo Repository, sessions SessionRevoker) *ConfirmReset {
	return &ConfirmReset{repo: repo, sessions: sessions}
}

// Execute finishes the reset: exact token match, unexpired, and the email
// must belong to the same user. The token is cleared with the password
// update, so it can never confirm a second change.
func (uc *ConfirmReset) Execute(ctx context.Context, token, email, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	if len(newPassword) < 6 {
		return httperr.ErrBusiness("weak_password", "Password must be at least 6 characters")
	}

	user, err := uc.repo.GetUserByResetToken(ctx, token, time.Now())
	if err != nil {
		return errInvalidToken()
	}
	if !strings.EqualFold(user.Email, email) {
		return errInvalidToken()
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := uc.repo.UpdatePassword(ctx, user.ID, string(hashed)); err != nil {
		return err
	}

	// Sessions issued under the old credential stop working.
	if uc.sessions != nil {
		_ = uc.sessions.RevokeAllBefore(ctx, user.ID, time.Now())
	}

	return nil
}
