package handler

import (
	"errors"
	"log/slog"
	"net/http"

	. "mygene/internal/adapter/http/helper"
	. "mygene/internal/adapter/http/validation"
	"mygene/internal/core/domain"
	"mygene/internal/core/model/request"
	"mygene/internal/core/model/response"
	"mygene/internal/core/port"
	"mygene/internal/core/util"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	svc port.QAService
}

func NewQuestionHandler(svc port.QAService) *QuestionHandler {
	return &QuestionHandler{
		svc: svc,
	}
}

func (q *QuestionHandler) AskQuestion(c *gin.Context) {
	ctx := c.Request.Context()

	code := c.Param("code")

	params, err := util.ParamsToMap[request.QuestionRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	answer, err := q.svc.AskAboutProfile(ctx, code, params.Question)

	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			SendNotFoundError(c, "Profile not found")
			return
		}

		slog.Error("QuestionHandler#AskQuestion", "error", err, "code", code)
		SendInternalError(c, "Could not get an answer. Please try again.")
		return
	}

	SendSuccess(c, http.StatusOK, response.AnswerResponse{Answer: answer})
}
