package passwordreset

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/elitehands/elitehands-api/internal/httperr"
	"github.com/elitehands/elitehands-api/internal/models"
)

// resetMockRepo mirrors the gorm repository's contract over in-memory rows.
type resetMockRepo struct {
	users []*models.User
	otps  []*models.OTP
}

func (m *resetMockRepo) GetActiveUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email && u.Active {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *resetMockRepo) CreateOTP(_ context.Context, otp *models.OTP) error {
	otp.ID = uint(len(m.otps) + 1)
	m.otps = append(m.otps, otp)
	return nil
}

func (m *resetMockRepo) FindValidOTP(_ context.Context, userID uint, code string, now time.Time) (*models.OTP, error) {
	for _, otp := range m.otps {
		if otp.UserID == userID && otp.Code == code && !otp.Used && otp.ExpiresAt.After(now) {
			return otp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *resetMockRepo) MarkOTPUsed(_ context.Context, otp *models.OTP) error {
	otp.Used = true
	return nil
}

func (m *resetMockRepo) SetResetToken(_ context.Context, userID uint, token string, expires time.Time) error {
	for _, u := range m.users {
		if u.ID == userID {
			u.ResetToken = &token
			u.ResetTokenExpires = &expires
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *resetMockRepo) GetUserByResetToken(_ context.Context, token string, now time.Time) (*models.User, error) {
	if token == "" {
		return nil, gorm.ErrRecordNotFound
	}
	for _, u := range m.users {
		if u.ResetToken != nil && *u.ResetToken == token &&
			u.ResetTokenExpires != nil && u.ResetTokenExpires.After(now) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *resetMockRepo) UpdatePassword(_ context.Context, userID uint, passwordHash string) error {
	for _, u := range m.users {
		if u.ID == userID {
			u.PasswordHash = passwordHash
			u.ResetToken = nil
			u.ResetTokenExpires = nil
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type recordingMailer struct {
	sent []string
}

func (m *recordingMailer) SendPasswordResetOTP(toEmail, toName, code string) error {
	m.sent = append(m.sent, code)
	return nil
}

type recordingRevoker struct {
	revoked []uint
}

func (r *recordingRevoker) RevokeAllBefore(_ context.Context, userID uint, _ time.Time) error {
	r.revoked = append(r.revoked, userID)
	return nil
}

func fixture() (*resetMockRepo, *models.User) {
	u := &models.User{ID: 1, Email: "dana@example.com", Active: true}
	return &resetMockRepo{users: []*models.User{u}}, u
}

func TestRequestCreatesOTPAndMails(t *testing.T) {
	repo, _ := fixture()
	mail := &recordingMailer{}
	uc := NewRequestReset(repo, mail)

	if err := uc.Execute(context.Background(), "Dana@Example.com"); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(repo.otps) != 1 {
		t.Fatalf("otps = %d, want 1", len(repo.otps))
	}
	otp := repo.otps[0]
	if !regexp.MustCompile(`^\d{6}$`).MatchString(otp.Code) {
		t.Errorf("code = %q, want 6 digits", otp.Code)
	}
	if otp.Used {
		t.Error("fresh OTP marked used")
	}
	if len(mail.sent) != 1 || mail.sent[0] != otp.Code {
		t.Errorf("mailed codes = %v", mail.sent)
	}
}

func TestRequestUnknownEmailIsSilent(t *testing.T) {
	repo, _ := fixture()
	mail := &recordingMailer{}
	uc := NewRequestReset(repo, mail)

	if err := uc.Execute(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("unknown email must not error: %v", err)
	}
	if len(repo.otps) != 0 {
		t.Fatalf("otps = %d, want none for unknown email", len(repo.otps))
	}
	if len(mail.sent) != 0 {
		t.Fatalf("mail sent for unknown email")
	}
}

func TestVerifyConsumesOTPExactlyOnce(t *testing.T) {
	repo, _ := fixture()
	repo.otps = []*models.OTP{{
		ID: 1, UserID: 1, Code: "123456",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}}

	uc := NewVerifyOTP(repo)

	token, err := uc.Execute(context.Background(), "dana@example.com", "123456")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if len(token) != 64 {
		t.Fatalf("token length = %d, want 64", len(token))
	}
	if !repo.otps[0].Used {
		t.Fatal("OTP not marked used")
	}

	_, err = uc.Execute(context.Background(), "dana@example.com", "123456")
	if !httperr.IsBusiness(err, "invalid_otp") {
		t.Fatalf("second verify err = %v, want invalid_otp", err)
	}
}

func TestVerifyRejectsExpiredOTP(t *testing.T) {
	repo, _ := fixture()
	repo.otps = []*models.OTP{{
		ID: 1, UserID: 1, Code: "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
	}}

	uc := NewVerifyOTP(repo)

	_, err := uc.Execute(context.Background(), "dana@example.com", "123456")
	if !httperr.IsBusiness(err, "invalid_otp") {
		t.Fatalf("expired verify err = %v, want invalid_otp", err)
	}
}

func TestVerifyWrongCodeAndUnknownEmailLookTheSame(t *testing.T) {
	repo, _ := fixture()
	repo.otps = []*models.OTP{{
		ID: 1, UserID: 1, Code: "123456",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}}

	uc := NewVerifyOTP(repo)

	_, errWrong := uc.Execute(context.Background(), "dana@example.com", "000000")
	_, errUnknown := uc.Execute(context.Background(), "nobody@example.com", "123456")

	if !httperr.IsBusiness(errWrong, "invalid_otp") || !httperr.IsBusiness(errUnknown, "invalid_otp") {
		t.Fatalf("errs = %v / %v, want the same invalid_otp for both", errWrong, errUnknown)
	}
}

func TestConfirmSetsPasswordAndRevokesSessions(t *testing.T) {
	repo, user := fixture()
	revoker := &recordingRevoker{}

	token := strings.Repeat("ab", 32)
	expires := time.Now().Add(10 * time.Minute)
	user.ResetToken = &token
	user.ResetTokenExpires = &expires

	uc := NewConfirmReset(repo, revoker)

	if err := uc.Execute(context.Background(), token, "dana@example.com", "new-password"); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("new-password")) != nil {
		t.Fatal("password hash does not match the new password")
	}
	if user.ResetToken != nil || user.ResetTokenExpires != nil {
		t.Fatal("reset token not cleared")
	}
	if len(revoker.revoked) != 1 || revoker.revoked[0] != user.ID {
		t.Fatalf("revoked = %v", revoker.revoked)
	}

	// The consumed token can never confirm a second change.
	err := uc.Execute(context.Background(), token, "dana@example.com", "another-password")
	if !httperr.IsBusiness(err, "invalid_reset_token") {
		t.Fatalf("reused token err = %v, want invalid_reset_token", err)
	}
}

func TestConfirmRejectsMismatchedEmail(t *testing.T) {
	repo, user := fixture()

	token := strings.Repeat("cd", 32)
	expires := time.Now().Add(10 * time.Minute)
	user.ResetToken = &token
	user.ResetTokenExpires = &expires

	uc := NewConfirmReset(repo, &recordingRevoker{})

	err := uc.Execute(context.Background(), token, "other@example.com", "new-password")
	if !httperr.IsBusiness(err, "invalid_reset_token") {
		t.Fatalf("mismatched email err = %v, want invalid_reset_token", err)
	}
}

func TestConfirmRejectsShortPassword(t *testing.T) {
	repo, _ := fixture()
	uc := NewConfirmReset(repo, &recordingRevoker{})

	err := uc.Execute(context.Background(), "whatever", "dana@example.com", "abc")
	if !httperr.IsBusiness(err, "weak_password") {
		t.Fatalf("short password err = %v, want weak_password", err)
	}
}

func TestGeneratedCodesHaveTheRightShape(t *testing.T) {
	code, err := GenerateOTP()
	if err != nil {
		t.Fatalf("GenerateOTP: %v", err)
	}
	if !regexp.MustCompile(`^\d{6}$`).MatchString(code) {
		t.Errorf("code = %q, want 6 digits", code)
	}

	token, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken: %v", err)
	}
	if !regexp.MustCompile(`^[0-9a-f]{64}$`).MatchString(token) {
		t.Errorf("token = %q, want 64 hex chars", token)
	}
}
