package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/elitehands/elitehands-api/internal/httperr"
	"github.com/elitehands/elitehands-api/internal/httpresp"
	"github.com/elitehands/elitehands-api/internal/usecase/passwordreset"
)

type PasswordResetHandler struct {
	request *passwordreset.RequestReset
	verify  *passwordreset.VerifyOTP
	confirm *passwordreset.ConfirmReset
}

func NewPasswordResetHandler(
	request *passwordreset.RequestReset,
	verify *passwordreset.VerifyOTP,
	confirm *passwordreset.ConfirmReset,
) *PasswordResetHandler {
	return &PasswordResetHandler{
		request: request,
		verify:  verify,
		confirm: confirm,
	}
}

type requestResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

type confirmResetRequest struct {
	Email       string `json:"email" binding:"required,email"`
	ResetToken  string `json:"reset_token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (h *PasswordResetHandler) Request(c *gin.Context) {
	var req requestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "A valid email is required")
		return
	}

	if err := h.request.Execute(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": passwordreset.RequestedMessage})
}

func (h *PasswordResetHandler) Verify(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Email and a 6-digit OTP are required")
		return
	}

	token, err := h.verify.Execute(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"reset_token": token})
}

func (h *PasswordResetHandler) Confirm(c *gin.Context) {
	var req confirmResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Email, reset token and new password are required")
		return
	}

	err := h.confirm.Execute(c.Request.Context(), req.ResetToken, req.Email, req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Password has been reset"})
}
