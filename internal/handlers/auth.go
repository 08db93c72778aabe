package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tasknest/task-tracker-api/internal/dto"
	"github.com/tasknest/task-tracker-api/internal/middleware"
	"github.com/tasknest/task-tracker-api/internal/response"
	"github.com/tasknest/task-tracker-api/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account. The first account on a fresh system
// becomes the admin.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string  `json:"name" binding:"required,min=3,max=50"`
		Email    string  `json:"email" binding:"required,email,max=50"`
		Contact  *string `json:"contact" binding:"omitempty,min=9,max=12"`
		Password string  `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	user, err := h.authService.Register(0, services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Contact:  req.Contact,
		Password: req.Password,
	})
	if err != nil {
		respondRegisterError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "User registered successfully", gin.H{
		"user": dto.ToUserDTO(*user),
	})
}

// Login verifies credentials and returns a signed token. The response
// carries is_first_login so clients can force the initial rotation.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Invalid email or password", "")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to log in", "")
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"token":          token,
		"user":           dto.ToUserDTO(*user),
		"is_first_login": user.IsFirstLogin,
	})
}

// ChangePassword rotates the caller's own password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	var req struct {
		Email       string `json:"email" binding:"required,email"`
		NewPassword string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	if err := h.authService.ChangePassword(principal, req.Email, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrNotOwnAccount):
			response.Error(c, http.StatusForbidden, "You can only change your own password", "")
		case errors.Is(err, services.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "User not found", "")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to change password", "")
		}
		return
	}

	response.Success(c, http.StatusOK, "Password changed successfully", nil)
}

// FirstChangePassword is the forced rotation after the initial login.
func (h *AuthHandler) FirstChangePassword(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	var req struct {
		NewPassword string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	if err := h.authService.FirstChangePassword(principal, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFirstLogin):
			response.Error(c, http.StatusBadRequest, "Password has already been changed", "")
		case errors.Is(err, services.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "User not found", "")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to change password", "")
		}
		return
	}

	response.Success(c, http.StatusOK, "Password changed successfully", nil)
}

// ForgotPassword responds identically for registered and unknown emails
// so the endpoint cannot be used to probe accounts.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil && !errors.Is(err, services.ErrUserNotFound) {
		response.Error(c, http.StatusInternalServerError, "Failed to process request", "")
		return
	}

	response.Success(c, http.StatusOK, "If the email is registered, reset instructions have been sent", nil)
}

// ResetPassword sets a new password for the given account.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		NewPassword string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	if err := h.authService.ResetPassword(req.Email, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found", "")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to reset password", "")
		return
	}

	response.Success(c, http.StatusOK, "Password reset successfully", nil)
}

func respondRegisterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailExists):
		response.Error(c, http.StatusConflict, "Email already exists", "")
	case errors.Is(err, services.ErrContactExists):
		response.Error(c, http.StatusConflict, "Contact already exists", "")
	default:
		response.Error(c, http.StatusInternalServerError, "Failed to register user", "")
	}
}
