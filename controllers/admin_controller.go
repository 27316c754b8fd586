package controllers

import (
	"crumbs/constants"
	"crumbs/dto"
	"crumbs/models"
	"crumbs/services"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type IAdminController interface {
	ListUsers(ctx *gin.Context)
	UpdateUser(ctx *gin.Context)
	SetRole(ctx *gin.Context)
	BanUser(ctx *gin.Context)
	UnbanUser(ctx *gin.Context)
	DeleteUser(ctx *gin.Context)
	CreateAdmin(ctx *gin.Context)
}

type AdminController struct {
	service services.IAdminService
	logger  *slog.Logger
}

func NewAdminController(service services.IAdminService, logger *slog.Logger) IAdminController {
	return &AdminController{service: service, logger: logger}
}

func (c *AdminController) ListUsers(ctx *gin.Context) {
	actor, ok := caller(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	directory, err := c.service.ListUsers(ctx.Request.Context(), actor)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": dto.UserDirectoryResponse{
		Users:  toUserResponses(directory.Users),
		Admins: toUserResponses(directory.Admins),
	}})
}

func (c *AdminController) UpdateUser(ctx *gin.Context) {
	actor, targetID, ok := c.target(ctx)
	if !ok {
		return
	}

	var input dto.UpdateUserInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput})
		return
	}

	user, err := c.service.UpdateUser(ctx.Request.Context(), actor, targetID, input)
	c.respondUser(ctx, http.StatusOK, user, err)
}

func (c *AdminController) SetRole(ctx *gin.Context) {
	actor, targetID, ok := c.target(ctx)
	if !ok {
		return
	}

	var input dto.SetRoleInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput})
		return
	}

	user, err := c.service.SetRole(ctx.Request.Context(), actor, targetID, input.Role)
	c.respondUser(ctx, http.StatusOK, user, err)
}

func (c *AdminController) BanUser(ctx *gin.Context) {
	actor, targetID, ok := c.target(ctx)
	if !ok {
		return
	}

	var input dto.BanUserInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput})
		return
	}

	user, err := c.service.BanUser(ctx.Request.Context(), actor, targetID, input)
	c.respondUser(ctx, http.StatusOK, user, err)
}

func (c *AdminController) UnbanUser(ctx *gin.Context) {
	actor, targetID, ok := c.target(ctx)
	if !ok {
		return
	}

	user, err := c.service.UnbanUser(ctx.Request.Context(), actor, targetID)
	c.respondUser(ctx, http.StatusOK, user, err)
}

func (c *AdminController) DeleteUser(ctx *gin.Context) {
	actor, targetID, ok := c.target(ctx)
	if !ok {
		return
	}

	if err := c.service.DeleteUser(ctx.Request.Context(), actor, targetID); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.Status(http.StatusOK)
}

func (c *AdminController) CreateAdmin(ctx *gin.Context) {
	actor, ok := caller(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var input dto.CreateAdminInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput})
		return
	}

	user, err := c.service.CreateAdmin(ctx.Request.Context(), actor, input)
	c.respondUser(ctx, http.StatusCreated, user, err)
}

func (c *AdminController) target(ctx *gin.Context) (services.Caller, uint, bool) {
	actor, ok := caller(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return services.Caller{}, 0, false
	}
	targetID, ok := idParam(ctx)
	if !ok {
		return services.Caller{}, 0, false
	}
	return actor, targetID, true
}

func (c *AdminController) respondUser(ctx *gin.Context, status int, user *models.User, err error) {
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(status, gin.H{"data": toUserResponse(*user)})
}

func toUserResponse(user models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
		BusinessName:  user.BusinessName,
		Role:          user.Role.Normalize().String(),
		Plan:          user.Plan,
		PlanExpiresAt: user.PlanExpiresAt,
		Currency:      user.Currency,
		Banned:        user.Banned,
		BanReason:     user.BanReason,
		BanExpiresAt:  user.BanExpiresAt,
		CreatedAt:     user.CreatedAt,
	}
}

func toUserResponses(users []models.User) []dto.UserResponse {
	response := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, toUserResponse(u))
	}
	return response
}
