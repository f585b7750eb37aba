package controllers

import (
	"errors"
	"net/http"
	"time"

	"civilregistry/internal/models"
	"civilregistry/internal/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users UserAdminService
	stats StatsProvider
	now   func() time.Time
}

func NewUserController(users UserAdminService, stats StatsProvider) *UserController {
	return &UserController{users: users, stats: stats, now: time.Now}
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Users retrieved successfully"
// @Router /users [get]
func (uc *UserController) ListUsers(c *gin.Context) {
	users, err := uc.users.List(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to retrieve users", err)
		return
	}
	respondOK(c, http.StatusOK, "Users retrieved successfully", users)
}

// CreateUser godoc
// @Summary Create a user with any role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body models.RegisterInput true "User data"
// @Success 201 {object} map[string]interface{} "User created successfully"
// @Failure 409 {object} map[string]interface{} "Email or username already taken"
// @Router /users [post]
func (uc *UserController) CreateUser(c *gin.Context) {
	var in models.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := uc.users.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, "Failed to create user", err)
		return
	}
	respondOK(c, http.StatusCreated, "User created successfully", user)
}

// UpdateUser godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param user body models.UserUpdateInput true "Fields to change"
// @Success 200 {object} map[string]interface{} "User updated successfully"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /users/{id} [put]
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in models.UserUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := uc.users.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, "Failed to update user", err)
		return
	}
	respondOK(c, http.StatusOK, "User updated successfully", user)
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{} "User deleted successfully"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /users/{id} [delete]
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := uc.users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "Failed to delete user", err)
		return
	}
	respondOK(c, http.StatusOK, "User deleted successfully", nil)
}

// GetStats godoc
// @Summary Dashboard statistics
// @Description Partial snapshots are returned with 200 and list the failed counters
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Stats retrieved successfully"
// @Failure 500 {object} map[string]interface{} "Stats fetch failed"
// @Router /users/stats [get]
func (uc *UserController) GetStats(c *gin.Context) {
	snapshot, err := uc.stats.Snapshot(c.Request.Context(), uc.now())
	if err != nil {
		if !errors.Is(err, services.ErrStatsUnavailable) || snapshot == nil {
			snapshot = &models.StatsSnapshot{AsOf: uc.now(), Partial: true}
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Stats fetch failed",
			"error":   true,
			"data":    snapshot,
		})
		return
	}
	respondOK(c, http.StatusOK, "Stats retrieved successfully", snapshot)
}
