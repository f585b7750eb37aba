package controllers

import (
	"net/http"

	"civilregistry/internal/middleware"
	"civilregistry/internal/models"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	users AuthService
}

func NewAuthController(users AuthService) *AuthController {
	return &AuthController{users: users}
}

// Register godoc
// @Summary Register a new account
// @Description Self-registered accounts get the Reviewer role
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.RegisterInput true "Account data"
// @Success 201 {object} map[string]interface{} "User registered successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 409 {object} map[string]interface{} "Email or username already taken"
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var in models.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := ac.users.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, "Failed to register user", err)
		return
	}
	respondOK(c, http.StatusCreated, "User registered successfully", user)
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginInput true "Email and password"
// @Success 200 {object} map[string]interface{} "Login successful"
// @Failure 401 {object} map[string]interface{} "Invalid email or password"
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var in models.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, err)
		return
	}

	token, user, err := ac.users.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		respondError(c, "Login failed", err)
		return
	}
	respondOK(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "User retrieved successfully"
// @Router /auth/me [get]
func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.users.Get(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, "User not found", err)
		return
	}
	respondOK(c, http.StatusOK, "User retrieved successfully", user)
}

// UpdateProfile godoc
// @Summary Update own name and email
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body models.ProfileInput true "Profile"
// @Success 200 {object} map[string]interface{} "Profile updated successfully"
// @Failure 409 {object} map[string]interface{} "Email already taken"
// @Router /auth/profile [put]
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	var in models.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := ac.users.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), in)
	if err != nil {
		respondError(c, "Failed to update profile", err)
		return
	}
	respondOK(c, http.StatusOK, "Profile updated successfully", user)
}

// ChangePassword godoc
// @Summary Change own password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param passwords body models.ChangePasswordInput true "Current and new password"
// @Success 200 {object} map[string]interface{} "Password changed successfully"
// @Failure 400 {object} map[string]interface{} "Current password is incorrect"
// @Router /auth/change-password [put]
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var in models.ChangePasswordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := ac.users.ChangePassword(c.Request.Context(), middleware.CurrentUserID(c), in); err != nil {
		respondError(c, "Failed to change password", err)
		return
	}
	respondOK(c, http.StatusOK, "Password changed successfully", nil)
}
