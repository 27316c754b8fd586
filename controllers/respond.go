package controllers

import (
	"crumbs/constants"
	"crumbs/services"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the HTTP error envelope.
func respondError(ctx *gin.Context, logger *slog.Logger, err error) {
	var (
		validationErr *services.ValidationError
		notFoundErr   *services.NotFoundError
		forbiddenErr  *services.ForbiddenError
		conflictErr   *services.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "field": validationErr.Field})
	case errors.As(err, &notFoundErr):
		ctx.JSON(http.StatusNotFound, gin.H{"error": capitalize(notFoundErr.Resource) + constants.MsgNotFoundSuffix})
	case errors.As(err, &forbiddenErr):
		ctx.JSON(http.StatusForbidden, gin.H{"error": constants.ErrForbidden})
	case errors.As(err, &conflictErr):
		ctx.JSON(http.StatusConflict, gin.H{"error": capitalize(conflictErr.Field) + constants.MsgAlreadyExistsSuffix, "field": conflictErr.Field})
	case errors.Is(err, services.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": constants.ErrInvalidCredentials})
	case errors.Is(err, services.ErrInvalidToken):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": constants.ErrInvalidToken})
	default:
		logger.Error("request failed",
			slog.String("method", ctx.Request.Method),
			slog.String("path", ctx.FullPath()),
			slog.String("request_id", ctx.GetString(constants.RequestIDKey)),
			slog.String("error", err.Error()),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrUnexpected})
	}
}

func caller(ctx *gin.Context) (services.Caller, bool) {
	value, exists := ctx.Get(constants.CallerKey)
	if !exists {
		return services.Caller{}, false
	}
	c, ok := value.(services.Caller)
	return c, ok
}

func idParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidID})
		return 0, false
	}
	return uint(id), true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
