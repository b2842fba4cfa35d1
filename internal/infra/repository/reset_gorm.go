package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/elitehands/elitehands-api/internal/models"
	"github.com/elitehands/elitehands-api/internal/usecase/passwordreset"
)

type ResetGormRepository struct {
	db *gorm.DB
}

func NewResetGormRepository(db *gorm.DB) *ResetGormRepository {
	return &ResetGormRepository{db: db}
}

func (r *ResetGormRepository) GetActiveUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ? AND active = ?", email, true).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *ResetGormRepository) CreateOTP(
	ctx context.Context,
	otp *models.OTP,
) error {
	return r.db.WithContext(ctx).Create(otp).Error
}

func (r *ResetGormRepository) FindValidOTP(
	ctx context.Context,
	userID uint,
	code string,
	now time.Time,
) (*models.OTP, error) {

	var otp models.OTP
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND code = ? AND used = ? AND expires_at > ?",
			userID, code, false, now).
		Order("created_at DESC").
		First(&otp).Error; err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *ResetGormRepository) MarkOTPUsed(
	ctx context.Context,
	otp *models.OTP,
) error {
	otp.Used = true
	return r.db.WithContext(ctx).
		Model(otp).
		Update("used", true).Error
}

func (r *ResetGormRepository) SetResetToken(
	ctx context.Context,
	userID uint,
	token string,
	expires time.Time,
) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"reset_token":         token,
			"reset_token_expires": expires,
		}).Error
}

func (r *ResetGormRepository) GetUserByResetToken(
	ctx context.Context,
	token string,
	now time.Time,
) (*models.User, error) {

	if token == "" {
		return nil, gorm.ErrRecordNotFound
	}

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("reset_token = ? AND reset_token_expires > ?", token, now).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *ResetGormRepository) UpdatePassword(
	ctx context.Context,
	userID uint,
	passwordHash string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash":       passwordHash,
			"reset_token":         nil,
			"reset_token_expires": nil,
		}).Error
}

// Compile-time check
var _ passwordreset.Repository = (*ResetGormRepository)(nil)
