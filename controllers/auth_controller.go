package controllers

import (
	"crumbs/constants"
	"crumbs/dto"
	"crumbs/services"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type IAuthController interface {
	Signup(ctx *gin.Context)
	Login(ctx *gin.Context)
	Logout(ctx *gin.Context)
}

type AuthController struct {
	service services.IAuthService
	logger  *slog.Logger
}

func NewAuthController(service services.IAuthService, logger *slog.Logger) IAuthController {
	return &AuthController{service: service, logger: logger}
}

func (c *AuthController) Signup(ctx *gin.Context) {
	var input dto.SignupInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput})
		return
	}

	user, err := c.service.Signup(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"data": toUserResponse(*user)})
}

func (c *AuthController) Login(ctx *gin.Context) {
	var input dto.LoginInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput})
		return
	}

	token, err := c.service.Login(ctx.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.LoginResponse{AccessToken: *token})
}

func (c *AuthController) Logout(ctx *gin.Context) {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": constants.ErrAuthHeaderRequired})
		return
	}

	if !strings.HasPrefix(header, "Bearer ") {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": constants.ErrInvalidAuthHeader})
		return
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")
	if err := c.service.Logout(ctx.Request.Context(), tokenString); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": constants.MsgSuccessfullyLogout})
}
