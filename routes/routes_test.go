package routes_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"civilregistry/internal/controllers"
	"civilregistry/internal/metrics"
	"civilregistry/internal/middleware"
	"civilregistry/internal/mocks"
	"civilregistry/internal/models"
	"civilregistry/internal/utils"
	"civilregistry/routes"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RoutesSuite struct {
	suite.Suite
	router *gin.Engine
	tokens *utils.TokenIssuer
	births *mocks.MockBirthService
	ids    *mocks.MockIDCardService
	users  *mocks.MockUserAdminService
}

func (s *RoutesSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.tokens = utils.NewTokenIssuer("routes-test-secret", time.Hour)
	s.births = new(mocks.MockBirthService)
	s.ids = new(mocks.MockIDCardService)
	s.users = new(mocks.MockUserAdminService)

	reg := prometheus.NewRegistry()
	metrics.New(reg).IncSubmission("birth", "accepted")

	s.router = gin.New()
	auth := middleware.AuthMiddleware(s.tokens)
	api := s.router.Group("/api")
	routes.RegisterBirthRoutes(api, auth, controllers.NewBirthController(s.births, nil, 1<<20))
	routes.RegisterIDCardRoutes(api, auth, controllers.NewIDCardController(s.ids, nil, 1<<20))
	routes.RegisterUserRoutes(api, auth, controllers.NewUserController(s.users, new(mocks.MockStatsProvider)))
	routes.RegisterSystemRoutes(s.router, controllers.NewHealthController(nil, nil), reg)
}

func (s *RoutesSuite) do(method, path string, role models.Role) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		token, err := s.tokens.Generate(1, "staff@nira.gov", string(role))
		s.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RoutesSuite) TestMissingTokenIsUnauthorized() {
	w := s.do(http.MethodGet, "/api/births", "")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RoutesSuite) TestBirthSubmitIsForRecorders() {
	// binding fails after the role check, so 400 means the role was accepted
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/births", models.RoleBirthRecorder).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/births", models.RoleAdmin).Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodPost, "/api/births", models.RoleReviewer).Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodPost, "/api/births", models.RoleIDCardRecorder).Code)
}

func (s *RoutesSuite) TestApproveIsForReviewers() {
	approved := &models.BirthRecord{}
	approved.ID = 2
	approved.Status = models.StatusApproved
	s.births.On("Approve", mock.Anything, uint(2)).Return(approved, nil)

	s.Equal(http.StatusForbidden, s.do(http.MethodPost, "/api/births/approve/2", models.RoleBirthRecorder).Code)
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/api/births/approve/2", models.RoleReviewer).Code)
	s.births.AssertNumberOfCalls(s.T(), "Approve", 1)
}

func (s *RoutesSuite) TestIDCardDeleteIsAdminOnly() {
	s.ids.On("Delete", mock.Anything, uint(5)).Return(nil)

	s.Equal(http.StatusForbidden, s.do(http.MethodDelete, "/api/ids/5", models.RoleIDCardRecorder).Code)
	s.Equal(http.StatusOK, s.do(http.MethodDelete, "/api/ids/5", models.RoleAdmin).Code)
}

func (s *RoutesSuite) TestUserAdministration() {
	s.users.On("List", mock.Anything).Return([]models.User{}, nil)

	s.Equal(http.StatusForbidden, s.do(http.MethodGet, "/api/users", models.RoleReviewer).Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/users", models.RoleAdmin).Code)
}

func (s *RoutesSuite) TestMetricsExposition() {
	w := s.do(http.MethodGet, "/metrics", "")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "civilregistry_submissions_total")
}

func TestRoutesSuite(t *testing.T) {
	suite.Run(t, new(RoutesSuite))
}
