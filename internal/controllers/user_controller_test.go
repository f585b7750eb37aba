package controllers_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"civilregistry/internal/apperrors"
	"civilregistry/internal/controllers"
	"civilregistry/internal/mocks"
	"civilregistry/internal/models"
	"civilregistry/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupUserRouter(users *mocks.MockUserAdminService, stats *mocks.MockStatsProvider) *gin.Engine {
	router := setupTestRouter()
	uc := controllers.NewUserController(users, stats)
	g := router.Group("/api/users", addAuth(1, models.RoleAdmin))
	g.GET("", uc.ListUsers)
	g.POST("", uc.CreateUser)
	g.PUT("/:id", uc.UpdateUser)
	g.DELETE("/:id", uc.DeleteUser)
	router.GET("/api/stats", uc.GetStats)
	return router
}

func TestGetStats(t *testing.T) {
	t.Run("complete snapshot", func(t *testing.T) {
		stats := new(mocks.MockStatsProvider)
		stats.On("Snapshot", mock.Anything, mock.AnythingOfType("time.Time")).
			Return(&models.StatsSnapshot{AsOf: time.Now(), BirthRecords: 12, Male: 7, Female: 5}, nil)

		w, body := serve(setupUserRouter(new(mocks.MockUserAdminService), stats), jsonRequest(t, http.MethodGet, "/api/stats", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		data := body["data"].(map[string]interface{})
		assert.EqualValues(t, 12, data["birthRecords"])
		assert.EqualValues(t, 7, data["male"])
	})

	t.Run("every count failed", func(t *testing.T) {
		stats := new(mocks.MockStatsProvider)
		partial := &models.StatsSnapshot{Partial: true, Errors: []string{"births.total"}}
		stats.On("Snapshot", mock.Anything, mock.Anything).
			Return(partial, fmt.Errorf("compute: %w", services.ErrStatsUnavailable))

		w, body := serve(setupUserRouter(new(mocks.MockUserAdminService), stats), jsonRequest(t, http.MethodGet, "/api/stats", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, true, body["error"])
		assert.Equal(t, "Stats fetch failed", body["message"])
		data := body["data"].(map[string]interface{})
		assert.Equal(t, true, data["partial"])
		assert.EqualValues(t, 0, data["birthRecords"])
	})

	t.Run("unexpected error still answers with zeros", func(t *testing.T) {
		stats := new(mocks.MockStatsProvider)
		stats.On("Snapshot", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		w, body := serve(setupUserRouter(new(mocks.MockUserAdminService), stats), jsonRequest(t, http.MethodGet, "/api/stats", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		require.NotNil(t, body["data"])
		assert.EqualValues(t, 0, body["data"].(map[string]interface{})["totalUsers"])
	})
}

func TestAdminUserManagement(t *testing.T) {
	users := new(mocks.MockUserAdminService)
	create := models.RegisterInput{Username: "clerk", Email: "clerk@nira.gov", Password: "secret123", FullName: "Clerk", Role: models.RoleBirthRecorder}
	users.On("Create", mock.Anything, create).Return(&models.User{ID: 5, Role: models.RoleBirthRecorder}, nil)
	users.On("Update", mock.Anything, uint(5), models.UserUpdateInput{Role: "Janitor"}).Return(nil, apperrors.ErrInvalidRole)
	users.On("Delete", mock.Anything, uint(99)).Return(apperrors.ErrNotFound)
	users.On("List", mock.Anything).Return([]models.User{{ID: 1}, {ID: 5}}, nil)
	router := setupUserRouter(users, new(mocks.MockStatsProvider))

	w, _ := serve(router, jsonRequest(t, http.MethodPost, "/api/users", create))
	assert.Equal(t, http.StatusCreated, w.Code)

	w, _ = serve(router, jsonRequest(t, http.MethodPut, "/api/users/5", models.UserUpdateInput{Role: "Janitor"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = serve(router, jsonRequest(t, http.MethodDelete, "/api/users/99", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body := serve(router, jsonRequest(t, http.MethodGet, "/api/users", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["data"], 2)

	users.AssertExpectations(t)
}
