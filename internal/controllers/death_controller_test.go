package controllers_test

import (
	"net/http"
	"testing"

	"civilregistry/internal/apperrors"
	"civilregistry/internal/controllers"
	"civilregistry/internal/mocks"
	"civilregistry/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupDeathRouter(svc *mocks.MockDeathService) *gin.Engine {
	router := setupTestRouter()
	dc := controllers.NewDeathController(svc)
	g := router.Group("/api/deaths")
	g.GET("", dc.List)
	g.GET("/today", dc.Today)
	g.GET("/:id", dc.Get)
	g.POST("", dc.Create)
	g.PUT("/:id", dc.Update)
	g.DELETE("/:id", dc.Delete)
	return router
}

func deathBody(serial string) map[string]string {
	return map[string]string{
		"serial_number": serial,
		"name":          "Omar Jama Hussein",
		"gender":        "Male",
		"date_of_death": "2024-03-01T00:00:00Z",
		"location":      "Kismayo",
		"reason":        "Natural causes",
	}
}

func TestDeathCreate(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		err            error
		callsService   bool
		expectedStatus int
	}{
		{name: "created", body: deathBody("DR-1"), callsService: true, expectedStatus: http.StatusCreated},
		{name: "serial already used", body: deathBody("DR-1"), err: apperrors.ErrDuplicateRecord, callsService: true, expectedStatus: http.StatusConflict},
		{name: "gender outside the enum", body: func() map[string]string {
			b := deathBody("DR-2")
			b["gender"] = "Unknown"
			return b
		}(), expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockDeathService)
			if tt.callsService {
				svc.On("Create", mock.Anything, mock.AnythingOfType("*models.DeathRecord")).Return(tt.err)
			}

			w, body := serve(setupDeathRouter(svc), jsonRequest(t, http.MethodPost, "/api/deaths", tt.body))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				assert.EqualValues(t, 1, body["data"].(map[string]interface{})["id"])
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestDeathTodayAndList(t *testing.T) {
	svc := new(mocks.MockDeathService)
	svc.On("Today", mock.Anything).Return([]models.DeathRecord{{ID: 1}}, nil)
	svc.On("List", mock.Anything).Return([]models.DeathRecord{{ID: 1}, {ID: 2}}, nil)
	router := setupDeathRouter(svc)

	w, body := serve(router, jsonRequest(t, http.MethodGet, "/api/deaths/today", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["data"], 1)

	w, body = serve(router, jsonRequest(t, http.MethodGet, "/api/deaths", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["data"], 2)
}

func TestDeathStoreUnavailable(t *testing.T) {
	svc := new(mocks.MockDeathService)
	svc.On("Get", mock.Anything, uint(3)).Return(nil, apperrors.ErrStoreUnavailable)

	w, body := serve(setupDeathRouter(svc), jsonRequest(t, http.MethodGet, "/api/deaths/3", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, true, body["retryable"])
}
