package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tasknest/task-tracker-api/internal/dto"
	"github.com/tasknest/task-tracker-api/internal/middleware"
	"github.com/tasknest/task-tracker-api/internal/response"
	"github.com/tasknest/task-tracker-api/internal/services"
)

type UserHandler struct {
	userService *services.UserService
	authService *services.AuthService
}

func NewUserHandler(userService *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{userService: userService, authService: authService}
}

// ListUsers returns all live users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch users", "")
		return
	}

	response.Success(c, http.StatusOK, "Users fetched successfully", gin.H{
		"users": dto.ToUserDTOs(users),
	})
}

// GetUser returns one live user by id
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Get(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User fetched successfully", gin.H{
		"user": dto.ToUserDTO(*user),
	})
}

// CreateUser lets an admin provision an account. It reuses the
// registration flow, so the account starts with the first-login flag set.
func (h *UserHandler) CreateUser(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}

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

	user, err := h.authService.Register(principal.ID, services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Contact:  req.Contact,
		Password: req.Password,
	})
	if err != nil {
		respondRegisterError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "User created successfully", gin.H{
		"user": dto.ToUserDTO(*user),
	})
}

// UpdateUser replaces a user's profile
func (h *UserHandler) UpdateUser(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name     string  `json:"name" binding:"required,min=3,max=50"`
		Email    string  `json:"email" binding:"required,email,max=50"`
		Contact  *string `json:"contact" binding:"omitempty,min=9,max=12"`
		Password *string `json:"password" binding:"omitempty,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	user, err := h.userService.Update(principal, userID, services.UserUpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Contact:  req.Contact,
		Password: req.Password,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User updated successfully", gin.H{
		"user": dto.ToUserDTO(*user),
	})
}

// PatchUser applies a partial update to a user's profile
func (h *UserHandler) PatchUser(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name     *string `json:"name" binding:"omitempty,min=3,max=50"`
		Email    *string `json:"email" binding:"omitempty,email,max=50"`
		Contact  *string `json:"contact" binding:"omitempty,min=9,max=12"`
		Password *string `json:"password" binding:"omitempty,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}
	if req.Name == nil && req.Email == nil && req.Contact == nil && req.Password == nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", "at least one field (name, email, contact, password) is required")
		return
	}

	user, err := h.userService.Patch(principal, userID, services.UserPatchInput{
		Name:     req.Name,
		Email:    req.Email,
		Contact:  req.Contact,
		Password: req.Password,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User updated successfully", gin.H{
		"user": dto.ToUserDTO(*user),
	})
}

// DeleteUser soft-deletes a user
func (h *UserHandler) DeleteUser(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(principal, userID); err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User deleted successfully", nil)
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "User not found", "")
	case errors.Is(err, services.ErrEmailExists):
		response.Error(c, http.StatusConflict, "Email already exists", "")
	case errors.Is(err, services.ErrContactExists):
		response.Error(c, http.StatusConflict, "Contact already exists", "")
	default:
		response.Error(c, http.StatusInternalServerError, "Failed to process user", "")
	}
}

// parseID reads a numeric path parameter, responding 400 on garbage.
func parseID(c *gin.Context, param string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid "+param, "")
		return 0, false
	}
	return id, true
}
