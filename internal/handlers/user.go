package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lrmsph/lrms-backend/internal/logger"
	"github.com/lrmsph/lrms-backend/internal/services"
)

type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
}

func NewUserHandler(baseLog *logger.Logger, userService services.UserService) *UserHandler {
	return &UserHandler{
		log:         baseLog.With("handler", "UserHandler"),
		userService: userService,
	}
}

// POST /users/register
func (h *UserHandler) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if input.Email == "" || input.Password == "" || input.FirstName == "" || input.LastName == "" {
		RespondFailure(c, http.StatusBadRequest, "All fields are required")
		return
	}

	user, err := h.userService.Register(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			RespondFailure(c, http.StatusBadRequest, err.Error())
			return
		}
		RespondError(c, http.StatusBadRequest, "Registration failed", err)
		return
	}

	RespondSuccess(c, http.StatusCreated, "Registration successful", gin.H{"user": user})
}

// POST /users/login
func (h *UserHandler) Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.Email == "" || body.Password == "" {
		RespondFailure(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, token, err := h.userService.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound),
			errors.Is(err, services.ErrInvalidCredentials),
			errors.Is(err, services.ErrDeactivated):
			RespondFailure(c, http.StatusUnauthorized, err.Error())
		default:
			RespondError(c, http.StatusUnauthorized, "Login failed", err)
		}
		return
	}

	RespondSuccess(c, http.StatusOK, "Login successful", gin.H{"user": user, "token": token})
}

// GET /users/getAllUsers
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Failed to fetch users", err)
		return
	}
	RespondSuccess(c, http.StatusOK, "Users fetched successfully", users)
}

func parseUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		RespondFailure(c, http.StatusBadRequest, "Invalid user ID provided.")
		return 0, false
	}
	return uint(id), true
}

// DELETE /users/deleteUser/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			RespondFailure(c, http.StatusNotFound, err.Error())
			return
		}
		RespondError(c, http.StatusBadRequest, "Failed to delete user", err)
		return
	}
	RespondSuccess(c, http.StatusOK, "User deleted successfully", nil)
}

// PUT /users/updateUser/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	var update services.UserUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	user, err := h.userService.UpdateUser(c.Request.Context(), id, update)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			RespondFailure(c, http.StatusNotFound, err.Error())
			return
		}
		RespondError(c, http.StatusBadRequest, "Failed to update user", err)
		return
	}
	RespondSuccess(c, http.StatusOK, "User updated successfully", gin.H{"user": user})
}

// PUT /users/updateProfile/:id
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	var update services.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	user, err := h.userService.UpdateProfile(c.Request.Context(), id, update)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			RespondFailure(c, http.StatusNotFound, err.Error())
			return
		}
		RespondError(c, http.StatusBadRequest, "Failed to update profile", err)
		return
	}
	RespondSuccess(c, http.StatusOK, "Profile updated successfully", gin.H{"user": user})
}

// PATCH /users/changePassword/:id
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	var body struct {
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.NewPassword == "" {
		RespondFailure(c, http.StatusBadRequest, "New password is required")
		return
	}
	if err := h.userService.ChangePassword(c.Request.Context(), id, body.NewPassword); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			RespondFailure(c, http.StatusNotFound, err.Error())
			return
		}
		RespondError(c, http.StatusBadRequest, "Failed to change password", err)
		return
	}
	RespondSuccess(c, http.StatusOK, "Password changed successfully", nil)
}

// POST /users/resetPassword
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var body struct {
		Email       string `json:"email"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.Email == "" || body.NewPassword == "" {
		RespondFailure(c, http.StatusBadRequest, "Email and new password are required")
		return
	}
	if err := h.userService.ResetPassword(c.Request.Context(), body.Email, body.NewPassword); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			RespondFailure(c, http.StatusNotFound, err.Error())
			return
		}
		RespondError(c, http.StatusBadRequest, "Failed to reset password", err)
		return
	}
	RespondSuccess(c, http.StatusOK, "Password reset successfully", nil)
}
