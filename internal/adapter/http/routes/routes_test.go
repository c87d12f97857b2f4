package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	. "mygene/pkg/test"

	"mygene/internal/adapter/database/sqlite/repository"
	"mygene/internal/adapter/http/handler"
	"mygene/internal/core/domain"
	"mygene/internal/core/model/response"
	"mygene/internal/core/port"
	"mygene/internal/core/service"
	"mygene/pkg/auth"
	"mygene/pkg/config"
	"mygene/pkg/tracing"

	factory "mygene/pkg/test/factory"
)

// Exercises the full router wiring with the response cache enabled, the way
// production assembles it.
type ProtectedCacheSuite struct {
	suite.Suite
	UserRepo    port.UserRepository
	ProfileRepo port.ProfileRepository
	Router      *gin.Engine
}

func (s *ProtectedCacheSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db := InitTestDB()

	s.ProfileRepo = repository.NewProfileRepository(db, nil)
	s.UserRepo = repository.NewUserRepository(db, nil)

	profileHandler := handler.NewProfileHandler(service.NewProfileService(s.ProfileRepo, nil), nil)

	logger, err := config.NewLokiLogger("mygene-test", "http://localhost:3100")
	s.Require().NoError(err)

	metrics := tracing.NewAppMetrics(prometheus.NewRegistry())

	cfg := &config.AppConfig{
		CacheEnabled: true,
		Environment:  "test",
	}

	s.Router = SetupRouterWithConfig(HandlersConfig{ProfileHandler: profileHandler}, metrics, logger, cfg)
}

func TestProtectedCacheSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(ProtectedCacheSuite))
}

func (s *ProtectedCacheSuite) createUser(email string) domain.User {
	user, err := s.UserRepo.Create(context.Background(), factory.NewUser[domain.User](map[string]any{
		"Email": email,
	}))
	s.Require().NoError(err)

	return user
}

func (s *ProtectedCacheSuite) authGet(path string, userID int) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	jwtToken, _ := auth.CreateJwtTokenForUser(userID)
	req.Header.Set("Authorization", "Bearer "+jwtToken)

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	return rr
}

const newProfileBody = `{
	"name": "Helena Prado",
	"birth_date": "1918-06-20T00:00:00Z",
	"death_date": "2001-02-11T00:00:00Z",
	"family_details": "Survived by two daughters and a son.",
	"burial_info": "Buried at Campo Santo cemetery."
}`

func (s *ProtectedCacheSuite) TestCachedListingNotServedWithoutToken() {
	user := s.createUser("cache1@example.com")

	warm := s.authGet("/profiles", user.ID)
	Expect(warm.Code).To(Equal(http.StatusOK))

	// same client address, no credentials
	req, _ := http.NewRequest("GET", "/profiles", nil)
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
	Expect(rr.Header().Get("X-Cache")).To(BeEmpty())
}

func (s *ProtectedCacheSuite) TestRepeatListingServedFromCacheForSameUser() {
	user := s.createUser("cache2@example.com")

	first := s.authGet("/profiles", user.ID)
	Expect(first.Code).To(Equal(http.StatusOK))

	second := s.authGet("/profiles", user.ID)
	Expect(second.Code).To(Equal(http.StatusOK))
	Expect(second.Header().Get("X-Cache")).To(Equal("HIT"))
	Expect(second.Body.String()).To(Equal(first.Body.String()))
}

func (s *ProtectedCacheSuite) TestMutationRefreshesCachedListing() {
	user := s.createUser("cache3@example.com")

	warm := s.authGet("/profiles", user.ID)
	Expect(warm.Code).To(Equal(http.StatusOK))

	req, _ := http.NewRequest("POST", "/profiles", strings.NewReader(newProfileBody))
	jwtToken, _ := auth.CreateJwtTokenForUser(user.ID)
	req.Header.Set("Authorization", "Bearer "+jwtToken)

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	after := s.authGet("/profiles", user.ID)
	Expect(after.Code).To(Equal(http.StatusOK))
	Expect(after.Header().Get("X-Cache")).NotTo(Equal("HIT"))

	body, _ := io.ReadAll(after.Body)

	data := struct {
		Data response.ProfileListResponse `json:"data"`
	}{}
	json.Unmarshal(body, &data)

	Expect(data.Data.Size).To(Equal(1))
	Expect(data.Data.Profiles[0].Name).To(Equal("Helena Prado"))
}
