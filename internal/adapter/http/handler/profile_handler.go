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
	"mygene/pkg/config"
	. "mygene/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	svc    port.ProfileService
	Logger *config.LokiLogger
}

func NewProfileHandler(svc port.ProfileService, logger *config.LokiLogger) *ProfileHandler {
	return &ProfileHandler{
		svc:    svc,
		Logger: logger,
	}
}

func (p *ProfileHandler) GetAllProfiles(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.profile.GetAllProfiles", []attribute.KeyValue{
		attribute.String("handler.operation", "GetAllProfiles"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	search := c.Query("search")
	sortKey, err := domain.ParseSortKey(c.Query("sort"))

	if err != nil {
		SendBadRequestError(c, "sort", err.Error())
		return
	}

	span.SetAttributes(
		attribute.String("profile.search", search),
		attribute.String("profile.sort", string(sortKey)),
	)

	profiles, err := p.svc.ListView(ctx, search, sortKey)

	if err != nil {
		AddSpanError(span, err)

		p.Logger.Logger.Ctx(ctx).Error("Failed to list profiles",
			zap.Error(err),
			zap.String("search", search),
			zap.String("sort", string(sortKey)),
		)

		SendInternalError(c, "Error getting profiles")
		return
	}

	list := response.ProfileListResponse{
		Size:     len(profiles),
		Search:   search,
		Sort:     string(sortKey),
		Profiles: make([]response.ProfileResponse, 0, len(profiles)),
	}

	for _, profile := range profiles {
		list.Profiles = append(list.Profiles, toProfileResponse(profile))
	}

	span.SetAttributes(
		attribute.Int("http.status_code", http.StatusOK),
		attribute.Int("profile.count", list.Size),
	)

	SendSuccess(c, http.StatusOK, list)
}

func (p *ProfileHandler) GetProfileByCode(c *gin.Context) {
	ctx := c.Request.Context()

	profile, err := p.svc.GetByCode(ctx, c.Param("code"))

	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			SendNotFoundError(c, "Profile not found")
			return
		}

		SendInternalError(c, "Error getting profile")
		return
	}

	SendSuccess(c, http.StatusOK, toProfileResponse(profile))
}

func (p *ProfileHandler) CreateProfile(c *gin.Context) {
	ctx := c.Request.Context()

	userId := c.GetInt("x-user-id")

	params, err := util.ParamsToMap[request.ProfileRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	profile := profileFromRequest(params)

	if err := Validator.Struct(profile); err != nil {
		SendValidationError(c, err)
		return
	}

	slog.Info("Profile#create", "name", profile.Name, "user_id", userId)

	profile, err = p.svc.Create(ctx, profile, userId)

	if err != nil {
		slog.Error("ProfileHandler#CreateProfile", "error", err)

		if validationErrors := FormatValidationErrors(err); len(validationErrors) > 0 {
			SendValidationError(c, err)
			return
		}

		SendBadRequestError(c, "creation", err.Error())
		return
	}

	SendSuccess(c, http.StatusCreated, toProfileResponse(profile))
}

func (p *ProfileHandler) UpdateProfileByCode(c *gin.Context) {
	ctx := c.Request.Context()

	userId := c.GetInt("x-user-id")
	code := c.Param("code")

	params, err := util.ParamsToMap[request.ProfileRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	candidate := profileFromRequest(params)

	if err := Validator.Struct(candidate); err != nil {
		SendValidationError(c, err)
		return
	}

	profile, err := p.svc.UpdateByCode(ctx, code, userId, candidate)

	if err != nil {
		p.sendMutationError(c, err, "update")
		return
	}

	SendSuccess(c, http.StatusOK, toProfileResponse(profile))
}

func (p *ProfileHandler) DeleteProfileByCode(c *gin.Context) {
	ctx := c.Request.Context()

	userId := c.GetInt("x-user-id")

	err := p.svc.DeleteByCode(ctx, c.Param("code"), userId)

	if err != nil {
		p.sendMutationError(c, err, "delete")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile deleted successfully",
	})
}

func (p *ProfileHandler) sendMutationError(c *gin.Context, err error, field string) {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		SendNotFoundError(c, "Profile not found")
	case errors.Is(err, domain.ErrNotOwner):
		SendForbiddenError(c, "You do not have permission to modify this profile")
	default:
		slog.Error("ProfileHandler#sendMutationError", "error", err)
		SendBadRequestError(c, field, err.Error())
	}
}

func profileFromRequest(params request.ProfileRequest) domain.Profile {
	return domain.Profile{
		Name:          params.Name,
		ImageURL:      params.ImageURL,
		BirthDate:     params.BirthDate,
		DeathDate:     params.DeathDate,
		FamilyDetails: params.FamilyDetails,
		Religion:      params.Religion,
		Education:     params.Education,
		Occupation:    params.Occupation,
		BurialInfo:    params.BurialInfo,
		Country:       params.Country,
	}
}

func toProfileResponse(profile domain.Profile) response.ProfileResponse {
	return response.ProfileResponse{
		Code:          profile.Code,
		Name:          profile.Name,
		ImageURL:      profile.ImageURL,
		BirthDate:     profile.BirthDate,
		DeathDate:     profile.DeathDate,
		FamilyDetails: profile.FamilyDetails,
		Religion:      profile.Religion,
		Education:     profile.Education,
		Occupation:    profile.Occupation,
		BurialInfo:    profile.BurialInfo,
		Country:       profile.Country,
		SubmittedBy:   profile.SubmittedBy,
		CreatedAt:     profile.CreatedAt,
		UpdatedAt:     profile.UpdatedAt,
	}
}
