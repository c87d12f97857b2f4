package handler

import (
	"log/slog"
	"net/http"

	. "mygene/internal/adapter/http/helper"
	. "mygene/internal/adapter/http/validation"
	"mygene/internal/core/model/request"
	"mygene/internal/core/model/response"
	"mygene/internal/core/port"
	"mygene/internal/core/util"
	"mygene/pkg/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc port.AuthService
}

func NewAuthHandler(svc port.AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

func (a *AuthHandler) RegisterByEmailAndPassword(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.SignUpRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	user, err := a.svc.Registration(ctx, &params)

	if err != nil {
		slog.Error("AuthHandler#RegisterByEmailAndPassword", "error", err)
		SendBadRequestError(c, "registration", err.Error())
		return
	}

	userResponse := response.UserResponse{
		UUID:              user.UUID.String(),
		Name:              user.Name,
		Email:             user.Email,
		CountryPreference: user.CountryPreference,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}

	SendSuccess(c, http.StatusCreated, userResponse)
}

func (a *AuthHandler) AuthByEmailAndPassword(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.LoginRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	user, err := a.svc.Authenticate(ctx, &params)

	if err != nil {
		slog.Error("AuthHandler#AuthByEmailAndPassword", "after_authenticate", err)
		SendUnauthorizedError(c, "Invalid email or password")
		return
	}

	token, err := auth.CreateJwtTokenForUser(user.ID)

	if err != nil {
		SendUnauthorizedError(c, "Invalid email or password")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
	})
}
