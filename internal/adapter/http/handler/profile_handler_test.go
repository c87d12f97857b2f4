package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "mygene/pkg/test"

	"mygene/internal/adapter/database/sqlite/repository"
	"mygene/internal/adapter/http/middleware"
	"mygene/internal/core/domain"
	"mygene/internal/core/model/response"
	"mygene/internal/core/port"
	"mygene/internal/core/service"
	"mygene/pkg/auth"

	factory "mygene/pkg/test/factory"
)

type ProfileHandlerSuite struct {
	suite.Suite
	UserRepo    port.UserRepository
	ProfileRepo port.ProfileRepository
	Router      *gin.Engine
}

var ctx = context.Background()

func (s *ProfileHandlerSuite) SetupTest() {
	db := InitTestDB()

	s.ProfileRepo = repository.NewProfileRepository(db, nil)
	s.UserRepo = repository.NewUserRepository(db, nil)

	profileUseCase := service.NewProfileService(s.ProfileRepo, nil)
	profileHandler := NewProfileHandler(profileUseCase, nil)

	s.Router = setupProfileTestRouter(profileHandler)
}

func TestProfileHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(ProfileHandlerSuite))
}

func setupProfileTestRouter(profileHandler *ProfileHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(gin.Recovery())

	protected := router.Group("/")
	protected.Use(middleware.CurrentMiddleware())
	protected.Use(auth.GinJwtMiddleware())
	{
		protected.GET("/profiles", profileHandler.GetAllProfiles)
		protected.POST("/profiles", profileHandler.CreateProfile)
		protected.GET("/profiles/:code", profileHandler.GetProfileByCode)
		protected.PUT("/profiles/:code", profileHandler.UpdateProfileByCode)
		protected.DELETE("/profiles/:code", profileHandler.DeleteProfileByCode)
	}

	return router
}

func createUserMock(repo port.UserRepository, email string) domain.User {
	user, _ := repo.Create(ctx, factory.NewUser[domain.User](map[string]any{
		"Name":  "User99",
		"Email": email,
	}))

	return user
}

func createProfileMock(repo port.ProfileRepository, name string, ownerID int) domain.Profile {
	profile, _ := repo.Create(ctx, factory.NewProfile[domain.Profile](map[string]any{
		"Name":        name,
		"SubmittedBy": ownerID,
	}))

	return profile
}

const validProfileBody = `{
	"name": "Joaquim Barbosa",
	"birth_date": "1921-04-03T00:00:00Z",
	"death_date": "1999-12-12T00:00:00Z",
	"family_details": "Married to Alzira, four children.",
	"burial_info": "Buried at Sao Joao cemetery.",
	"religion": "Catholic",
	"country": "Brazil"
}`

func (s *ProfileHandlerSuite) authHeader(req *http.Request, userID int) {
	jwtToken, _ := auth.CreateJwtTokenForUser(userID)
	req.Header.Set("Authorization", "Bearer "+jwtToken)
}

func (s *ProfileHandlerSuite) TestListProfilesRequiresAuth() {
	req, _ := http.NewRequest("GET", "/profiles", nil)
	rr := httptest.NewRecorder()

	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}

func (s *ProfileHandlerSuite) TestListProfilesWithData() {
	user := createUserMock(s.UserRepo, "user99@example.com")

	createProfileMock(s.ProfileRepo, "Benedita Souza", user.ID)
	createProfileMock(s.ProfileRepo, "Armando Souza", user.ID)

	req, _ := http.NewRequest("GET", "/profiles", nil)
	rr := httptest.NewRecorder()
	s.authHeader(req, user.ID)

	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(rr.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

	body, _ := io.ReadAll(rr.Body)

	data := struct {
		Data response.ProfileListResponse `json:"data"`
	}{}
	json.Unmarshal(body, &data)

	Expect(data.Data.Size).To(Equal(2))
	Expect(data.Data.Sort).To(Equal("name-asc"))
	Expect(data.Data.Profiles[0].Name).To(Equal("Armando Souza"))
	Expect(data.Data.Profiles[1].Name).To(Equal("Benedita Souza"))
}

func (s *ProfileHandlerSuite) TestListProfilesWithSearchAndSort() {
	user := createUserMock(s.UserRepo, "user99@example.com")

	createProfileMock(s.ProfileRepo, "Ana Braga", user.ID)
	createProfileMock(s.ProfileRepo, "Zeca Braga", user.ID)
	createProfileMock(s.ProfileRepo, "Olga Pinto", user.ID)

	req, _ := http.NewRequest("GET", "/profiles?search=braga&sort=name-desc", nil)
	rr := httptest.NewRecorder()
	s.authHeader(req, user.ID)

	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusOK))

	body, _ := io.ReadAll(rr.Body)

	data := struct {
		Data response.ProfileListResponse `json:"data"`
	}{}
	json.Unmarshal(body, &data)

	Expect(data.Data.Size).To(Equal(2))
	Expect(data.Data.Search).To(Equal("braga"))
	Expect(data.Data.Profiles[0].Name).To(Equal("Zeca Braga"))
	Expect(data.Data.Profiles[1].Name).To(Equal("Ana Braga"))
}

func (s *ProfileHandlerSuite) TestListProfilesInvalidSort() {
	user := createUserMock(s.UserRepo, "user99@example.com")

	req, _ := http.NewRequest("GET", "/profiles?sort=alphabetical", nil)
	rr := httptest.NewRecorder()
	s.authHeader(req, user.ID)

	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *ProfileHandlerSuite) TestCreateProfile() {
	user := createUserMock(s.UserRepo, "user99@example.com")

	req, _ := http.NewRequest("POST", "/profiles", strings.NewReader(validProfileBody))
	rr := httptest.NewRecorder()
	s.authHeader(req, user.ID)

	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusCreated))

	body, _ := io.ReadAll(rr.Body)

	data := struct {
		Data response.ProfileResponse `json:"data"`
	}{}
	json.Unmarshal(body, &data)

	Expect(data.Data.Name).To(Equal("Joaquim Barbosa"))
	Expect(data.Data.Code).To(MatchRegexp("^[0-9a-f]{32}$"))
	Expect(data.Data.SubmittedBy).To(Equal(user.ID))
}

func (s *ProfileHandlerSuite) TestCreateProfileValidationError() {
	user := createUserMock(s.UserRepo, "user99@example.com")

	reqBody := strings.NewReader(`{"name": "X", "family_details": "short"}`)

	req, _ := http.NewRequest("POST", "/profiles", reqBody)
	rr := httptest.NewRecorder()
	s.authHeader(req, user.ID)

	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	body, _ := io.ReadAll(rr.Body)

	errorResponse := response.ErrorResponse{}
	json.Unmarshal(body, &errorResponse)

	Expect(errorResponse.Error.Code).To(Equal("VALIDATION_ERROR"))
	Expect(len(errorResponse.Error.Errors)).To(BeNumerically(">", 0))
}

func (s *ProfileHandlerSuite) TestCreateProfileDeathBeforeBirth() {
	user := createUserMock(s.UserRepo, "user99@example.com")

	reqBody := strings.NewReader(`{
		"name": "Inverted Dates",
		"birth_date": "1999-12-12T00:00:00Z",
		"death_date": "1921-04-03T00:00:00Z",
		"family_details": "Married to Alzira, four children.",
		"burial_info": "Buried at Sao Joao cemetery."
	}`)

	req, _ := http.NewRequest("POST", "/profiles", reqBody)
	rr := httptest.NewRecorder()
	s.authHeader(req, user.ID)

	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	body, _ := io.ReadAll(rr.Body)

	errorResponse := response.ErrorResponse{}
	json.Unmarshal(body, &errorResponse)

	Expect(errorResponse.Error.Code).To(Equal("VALIDATION_ERROR"))
}

func (s *ProfileHandlerSuite) TestCreateProfileAttributesErrorToOffendingField() {
	user := createUserMock(s.UserRepo, "user99@example.com")

	cases := []struct {
		name  string
		body  string
		field string
	}{
		{
			name: "name too short",
			body: `{"name": "J",
				"birth_date": "1921-04-03T00:00:00Z",
				"death_date": "1999-12-12T00:00:00Z",
				"family_details": "Married to Alzira, four children.",
				"burial_info": "Buried at Sao Joao cemetery."}`,
			field: "name",
		},
		{
			name: "name missing",
			body: `{"birth_date": "1921-04-03T00:00:00Z",
				"death_date": "1999-12-12T00:00:00Z",
				"family_details": "Married to Alzira, four children.",
				"burial_info": "Buried at Sao Joao cemetery."}`,
			field: "name",
		},
		{
			name: "family details too short",
			body: `{"name": "Joaquim Barbosa",
				"birth_date": "1921-04-03T00:00:00Z",
				"death_date": "1999-12-12T00:00:00Z",
				"family_details": "short",
				"burial_info": "Buried at Sao Joao cemetery."}`,
			field: "familydetails",
		},
		{
			name: "burial info too short",
			body: `{"name": "Joaquim Barbosa",
				"birth_date": "1921-04-03T00:00:00Z",
				"death_date": "1999-12-12T00:00:00Z",
				"family_details": "Married to Alzira, four children.",
				"burial_info": "short"}`,
			field: "burialinfo",
		},
		{
			name: "death before birth",
			body: `{"name": "Joaquim Barbosa",
				"birth_date": "1921-04-03T00:00:00Z",
				"death_date": "1920-01-01T00:00:00Z",
				"family_details": "Married to Alzira, four children.",
				"burial_info": "Buried at Sao Joao cemetery."}`,
			field: "deathdate",
		},
		{
			name: "birth date missing",
			body: `{"name": "Joaquim Barbosa",
				"death_date": "1999-12-12T00:00:00Z",
				"family_details": "Married to Alzira, four children.",
				"burial_info": "Buried at Sao Joao cemetery."}`,
			field: "birthdate",
		},
		{
			name: "death date missing",
			body: `{"name": "Joaquim Barbosa",
				"birth_date": "1921-04-03T00:00:00Z",
				"family_details": "Married to Alzira, four children.",
				"burial_info": "Buried at Sao Joao cemetery."}`,
			field: "deathdate",
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			req, _ := http.NewRequest("POST", "/profiles", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			s.authHeader(req, user.ID)

			s.Router.ServeHTTP(rr, req)

			Expect(rr.Code).To(Equal(http.StatusBadRequest))

			body, _ := io.ReadAll(rr.Body)

			errorResponse := response.ErrorResponse{}
			json.Unmarshal(body, &errorResponse)

			Expect(errorResponse.Error.Code).To(Equal("VALIDATION_ERROR"))
			Expect(errorResponse.Error.Errors).To(HaveLen(1))
			Expect(errorResponse.Error.Errors[0].Field).To(Equal(tc.field))
		})
	}
}

func (s *ProfileHandlerSuite) TestGetProfileByCode() {
	user := createUserMock(s.UserRepo, "user99@example.com")
	profile := createProfileMock(s.ProfileRepo, "Teresa Moura", user.ID)

	req, _ := http.NewRequest("GET", fmt.Sprintf("/profiles/%s", profile.Code), nil)
	rr := httptest.NewRecorder()
	s.authHeader(req, user.ID)

	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusOK))

	body, _ := io.ReadAll(rr.Body)

	data := struct {
		Data response.ProfileResponse `json:"data"`
	}{}
	json.Unmarshal(body, &data)

	Expect(data.Data.Name).To(Equal("Teresa Moura"))
	Expect(data.Data.Code).To(Equal(profile.Code))
}

func (s *ProfileHandlerSuite) TestGetProfileNotFound() {
	user := createUserMock(s.UserRepo, "user99@example.com")

	req, _ := http.NewRequest("GET", "/profiles/0123456789abcdef0123456789abcdef", nil)
	rr := httptest.NewRecorder()
	s.authHeader(req, user.ID)

	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusNotFound))
}

func (s *ProfileHandlerSuite) TestUpdateProfileByOwner() {
	user := createUserMock(s.UserRepo, "user99@example.com")
	profile := createProfileMock(s.ProfileRepo, "Before Edit", user.ID)

	req, _ := http.NewRequest("PUT", fmt.Sprintf("/profiles/%s", profile.Code), strings.NewReader(validProfileBody))
	rr := httptest.NewRecorder()
	s.authHeader(req, user.ID)

	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusOK))

	body, _ := io.ReadAll(rr.Body)

	data := struct {
		Data response.ProfileResponse `json:"data"`
	}{}
	json.Unmarshal(body, &data)

	Expect(data.Data.Name).To(Equal("Joaquim Barbosa"))
	Expect(data.Data.Code).To(Equal(profile.Code))
	Expect(data.Data.SubmittedBy).To(Equal(user.ID))
}

func (s *ProfileHandlerSuite) TestUpdateProfileByNonOwnerForbidden() {
	owner := createUserMock(s.UserRepo, "owner@example.com")
	intruder := createUserMock(s.UserRepo, "intruder@example.com")
	profile := createProfileMock(s.ProfileRepo, "Protected", owner.ID)

	req, _ := http.NewRequest("PUT", fmt.Sprintf("/profiles/%s", profile.Code), strings.NewReader(validProfileBody))
	rr := httptest.NewRecorder()
	s.authHeader(req, intruder.ID)

	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusForbidden))

	body, _ := io.ReadAll(rr.Body)

	errorResponse := response.ErrorResponse{}
	json.Unmarshal(body, &errorResponse)

	Expect(errorResponse.Error.Code).To(Equal("FORBIDDEN"))
}

func (s *ProfileHandlerSuite) TestDeleteProfileByOwner() {
	user := createUserMock(s.UserRepo, "user99@example.com")
	profile := createProfileMock(s.ProfileRepo, "To Delete", user.ID)

	req, _ := http.NewRequest("DELETE", fmt.Sprintf("/profiles/%s", profile.Code), nil)
	rr := httptest.NewRecorder()
	s.authHeader(req, user.ID)

	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusOK))

	body, _ := io.ReadAll(rr.Body)

	data := gin.H{}
	json.Unmarshal(body, &data)

	Expect(data["message"]).To(Equal("Profile deleted successfully"))

	_, err := s.ProfileRepo.GetByCode(ctx, profile.Code)
	Expect(err).To(MatchError(domain.ErrProfileNotFound))
}

func (s *ProfileHandlerSuite) TestDeleteProfileByNonOwnerForbidden() {
	owner := createUserMock(s.UserRepo, "owner@example.com")
	intruder := createUserMock(s.UserRepo, "intruder@example.com")
	profile := createProfileMock(s.ProfileRepo, "Still Here", owner.ID)

	req, _ := http.NewRequest("DELETE", fmt.Sprintf("/profiles/%s", profile.Code), nil)
	rr := httptest.NewRecorder()
	s.authHeader(req, intruder.ID)

	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusForbidden))

	_, err := s.ProfileRepo.GetByCode(ctx, profile.Code)
	Expect(err).To(BeNil())
}
