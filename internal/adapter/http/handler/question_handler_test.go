package handler

import (
	"context"
	"encoding/json"
	"errors"
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
	"mygene/internal/core/model/response"
	"mygene/internal/core/port"
	"mygene/internal/core/service"
	"mygene/pkg/auth"
)

type fakeAnswerer struct {
	answer string
	err    error
}

func (f *fakeAnswerer) Ask(ctx context.Context, profileData string, question string) (string, error) {
	return f.answer, f.err
}

type QuestionHandlerSuite struct {
	suite.Suite
	UserRepo    port.UserRepository
	ProfileRepo port.ProfileRepository
	Answerer    *fakeAnswerer
	Router      *gin.Engine
}

func (s *QuestionHandlerSuite) SetupTest() {
	db := InitTestDB()

	s.ProfileRepo = repository.NewProfileRepository(db, nil)
	s.UserRepo = repository.NewUserRepository(db, nil)
	s.Answerer = &fakeAnswerer{answer: "She taught school for forty years."}

	qaUseCase := service.NewQAService(s.ProfileRepo, s.Answerer)
	questionHandler := NewQuestionHandler(qaUseCase)

	s.Router = setupQuestionTestRouter(questionHandler)
}

func TestQuestionHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(QuestionHandlerSuite))
}

func setupQuestionTestRouter(questionHandler *QuestionHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	protected := router.Group("/")
	protected.Use(middleware.CurrentMiddleware())
	protected.Use(auth.GinJwtMiddleware())
	{
		protected.POST("/profiles/:code/question", questionHandler.AskQuestion)
	}

	return router
}

func (s *QuestionHandlerSuite) TestAskQuestionSuccess() {
	user := createUserMock(s.UserRepo, "asker@example.com")
	profile := createProfileMock(s.ProfileRepo, "Alice Teles", user.ID)

	reqBody := strings.NewReader(`{"question": "What did she do for a living?"}`)
	req, _ := http.NewRequest("POST", fmt.Sprintf("/profiles/%s/question", profile.Code), reqBody)
	rr := httptest.NewRecorder()

	jwtToken, _ := auth.CreateJwtTokenForUser(user.ID)
	req.Header.Set("Authorization", "Bearer "+jwtToken)

	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusOK))

	body, _ := io.ReadAll(rr.Body)

	data := struct {
		Data response.AnswerResponse `json:"data"`
	}{}
	json.Unmarshal(body, &data)

	Expect(data.Data.Answer).To(Equal("She taught school for forty years."))
}

func (s *QuestionHandlerSuite) TestAskQuestionTooShort() {
	user := createUserMock(s.UserRepo, "asker@example.com")
	profile := createProfileMock(s.ProfileRepo, "Alice Teles", user.ID)

	reqBody := strings.NewReader(`{"question": "Who?"}`)
	req, _ := http.NewRequest("POST", fmt.Sprintf("/profiles/%s/question", profile.Code), reqBody)
	rr := httptest.NewRecorder()

	jwtToken, _ := auth.CreateJwtTokenForUser(user.ID)
	req.Header.Set("Authorization", "Bearer "+jwtToken)

	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	body, _ := io.ReadAll(rr.Body)

	errorResponse := response.ErrorResponse{}
	json.Unmarshal(body, &errorResponse)

	Expect(errorResponse.Error.Code).To(Equal("VALIDATION_ERROR"))
}

func (s *QuestionHandlerSuite) TestAskQuestionProfileNotFound() {
	user := createUserMock(s.UserRepo, "asker@example.com")

	reqBody := strings.NewReader(`{"question": "Where was he born?"}`)
	req, _ := http.NewRequest("POST", "/profiles/0123456789abcdef0123456789abcdef/question", reqBody)
	rr := httptest.NewRecorder()

	jwtToken, _ := auth.CreateJwtTokenForUser(user.ID)
	req.Header.Set("Authorization", "Bearer "+jwtToken)

	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusNotFound))
}

func (s *QuestionHandlerSuite) TestAskQuestionAnswererFailure() {
	user := createUserMock(s.UserRepo, "asker@example.com")
	profile := createProfileMock(s.ProfileRepo, "Alice Teles", user.ID)

	s.Answerer.err = errors.New("model unavailable")

	reqBody := strings.NewReader(`{"question": "Where was she buried?"}`)
	req, _ := http.NewRequest("POST", fmt.Sprintf("/profiles/%s/question", profile.Code), reqBody)
	rr := httptest.NewRecorder()

	jwtToken, _ := auth.CreateJwtTokenForUser(user.ID)
	req.Header.Set("Authorization", "Bearer "+jwtToken)

	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusInternalServerError))

	body, _ := io.ReadAll(rr.Body)

	errorResponse := response.ErrorResponse{}
	json.Unmarshal(body, &errorResponse)

	Expect(errorResponse.Error.Code).To(Equal("INTERNAL_ERROR"))
	Expect(errorResponse.Error.Errors[0].Message).To(Equal("Could not get an answer. Please try again."))
}
