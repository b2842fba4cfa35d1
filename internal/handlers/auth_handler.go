package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/elitehands/elitehands-api/internal/audit"
	"github.com/elitehands/elitehands-api/internal/authz"
	"github.com/elitehands/elitehands-api/internal/config"
	"github.com/elitehands/elitehands-api/internal/httperr"
	"github.com/elitehands/elitehands-api/internal/httpresp"
	"github.com/elitehands/elitehands-api/internal/media"
	"github.com/elitehands/elitehands-api/internal/middleware"
	"github.com/elitehands/elitehands-api/internal/models"
	"github.com/elitehands/elitehands-api/internal/sessions"
	"github.com/elitehands/elitehands-api/internal/validators"
)

const tokenTTL = 24 * time.Hour

// Swappable so tests do not depend on live DNS.
var emailDomainValid = validators.IsEmailDomainValid

type AuthHandler struct {
	db       *gorm.DB
	config   *config.Config
	sessions *sessions.Store
	media    *media.Store
	audit    *audit.Dispatcher
}

func NewAuthHandler(
	db *gorm.DB,
	cfg *config.Config,
	store *sessions.Store,
	mediaStore *media.Store,
	dispatcher *audit.Dispatcher,
) *AuthHandler {
	return &AuthHandler{
		db:       db,
		config:   cfg,
		sessions: store,
		media:    mediaStore,
		audit:    dispatcher,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
}

type RegisterStaffRequest struct {
	RegisterRequest

	Role      string `json:"role"`
	Position  string `json:"position"`
	WorkEmail string `json:"work_email"`
	WorkPhone string `json:"work_phone"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	PostalCode *string `json:"postal_code"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid registration payload")
		return
	}

	user, err := h.createUser(c, req, models.RoleCustomer, "", "", "")
	if err != nil {
		return
	}

	h.issueSession(c, user, http.StatusCreated)
}

// RegisterStaff creates staff or admin accounts; admin only.
func (h *AuthHandler) RegisterStaff(c *gin.Context) {
	actor := actorFrom(c)
	if !authz.CanRegisterStaff(actor) {
		httperr.Forbidden(c, "Only admins can register staff accounts")
		return
	}

	var req RegisterStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid registration payload")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleStaff
	}
	if role != models.RoleStaff && role != models.RoleAdmin {
		httperr.BadRequest(c, "Role must be staff or admin")
		return
	}

	user, err := h.createUser(c, req.RegisterRequest, role, req.Position, req.WorkEmail, req.WorkPhone)
	if err != nil {
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "staff_registered",
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]any{"role": role},
	})

	httpresp.Created(c, user)
}

// createUser writes the row and answers the request itself on failure; the
// returned error only signals the caller to stop.
func (h *AuthHandler) createUser(
	c *gin.Context,
	req RegisterRequest,
	role, position, workEmail, workPhone string,
) (*models.User, error) {

	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !emailDomainValid(email) {
		httperr.BadRequest(c, "Email domain does not appear to be valid")
		return nil, httperr.ErrBusiness("invalid_email_domain", "")
	}

	var count int64
	h.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "Username or email is already taken")
		return nil, httperr.ErrBusiness("user_exists", "")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "Could not process password")
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		Province:     req.Province,
		PostalCode:   req.PostalCode,
		Position:     position,
		WorkEmail:    workEmail,
		WorkPhone:    workPhone,
		Active:       true,
		ActiveStaff:  true,
	}

	if err := h.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.BadRequest(c, "Username or email is already taken")
			return nil, err
		}
		httperr.Internal(c, "Could not create account")
		return nil, err
	}

	return user, nil
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid login payload")
		return
	}

	login := strings.ToLower(strings.TrimSpace(req.Username))

	var user models.User
	err := h.db.
		Where("username = ? OR email = ?", login, login).
		First(&user).Error
	if err != nil {
		httperr.Unauthorized(c, "Invalid credentials")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		httperr.Unauthorized(c, "Invalid credentials")
		return
	}

	// Deactivated accounts get the same answer as bad credentials so the
	// login endpoint leaks nothing about account state.
	if !user.CanLogin() {
		httperr.Unauthorized(c, "Invalid credentials")
		return
	}

	h.issueSession(c, &user, http.StatusOK)
}

func (h *AuthHandler) issueSession(c *gin.Context, user *models.User, status int) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":  float64(user.ID),
		"role": user.Role,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.config.JWTSecret))
	if err != nil {
		httperr.Internal(c, "Could not create session")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", signed, int(tokenTTL.Seconds()), "/", "", false, true)

	c.JSON(status, gin.H{
		"token": signed,
		"user":  user,
	})
}

// Logout denylists the presented token until its natural expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.MustGet(middleware.ContextTokenJTI).(string)
	exp := c.MustGet(middleware.ContextTokenExp).(int64)

	ttl := time.Until(time.Unix(exp, 0))
	_ = h.sessions.RevokeToken(c.Request.Context(), jti, ttl)

	c.SetCookie("access_token", "", -1, "/", "", false, true)

	httpresp.OK(c, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	actor := actorFrom(c)

	var user models.User
	if err := h.db.First(&user, actor.ID).Error; err != nil {
		httperr.NotFound(c, "User not found")
		return
	}

	httpresp.OK(c, user)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	actor := actorFrom(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid profile payload")
		return
	}

	var user models.User
	if err := h.db.First(&user, actor.ID).Error; err != nil {
		httperr.NotFound(c, "User not found")
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.Province != nil {
		user.Province = *req.Province
	}
	if req.PostalCode != nil {
		user.PostalCode = *req.PostalCode
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "Could not update profile")
		return
	}

	httpresp.OK(c, user)
}

func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	actor := actorFrom(c)

	file, _, err := c.Request.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "Missing avatar file")
		return
	}
	defer file.Close()

	url, err := h.media.UploadAvatar(c.Request.Context(), actor.ID, file)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.db.Model(&models.User{}).
		Where("id = ?", actor.ID).
		Update("avatar_url", url).Error; err != nil {
		httperr.Internal(c, "Could not save avatar")
		return
	}

	httpresp.OK(c, gin.H{"avatar_url": url})
}
