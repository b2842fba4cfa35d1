package passwordreset

import (
	"context"
	"time"

	"github.com/elitehands/elitehands-api/internal/models"
)

type Repository interface {
	GetActiveUserByEmail(
		ctx context.Context,
		email string,
	) (*models.User, error)

	CreateOTP(
		ctx context.Context,
		otp *models.OTP,
	) error

	// FindValidOTP matches an unused, unexpired code for the user.
	FindValidOTP(
		ctx context.Context,
		userID uint,
		code string,
		now time.Time,
	) (*models.OTP, error)

	MarkOTPUsed(
		ctx context.Context,
		otp *models.OTP,
	) error

	SetResetToken(
		ctx context.Context,
		userID uint,
		token string,
		expires time.Time,
	) error

	// GetUserByResetToken matches the stored token with an unexpired window.
	GetUserByResetToken(
		ctx context.Context,
		token string,
		now time.Time,
	) (*models.User, error)

	// UpdatePassword sets the hash and clears the reset token pair.
	UpdatePassword(
		ctx context.Context,
		userID uint,
		passwordHash string,
	) error
}

// SessionRevoker invalidates tokens issued before a password change.
type SessionRevoker interface {
	RevokeAllBefore(ctx context.Context, userID uint, t time.Time) error
}
