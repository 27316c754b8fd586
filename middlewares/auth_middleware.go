package middlewares

import (
	"crumbs/constants"
	"crumbs/services"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token and stores the caller's identity under constants.CallerKey.
func AuthMiddleware(authService services.IAuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": constants.ErrUnauthorized})
			return
		}

		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": constants.ErrInvalidAuthHeader})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		user, err := authService.GetUserFromToken(ctx.Request.Context(), tokenString)
		if err != nil {
			var forbiddenErr *services.ForbiddenError
			if errors.As(err, &forbiddenErr) {
				ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": constants.ErrForbidden})
				return
			}
			if !errors.Is(err, services.ErrInvalidToken) {
				ctx.Error(err)
			}
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": constants.ErrInvalidToken})
			return
		}

		ctx.Set(constants.CallerKey, services.CallerFor(user))

		ctx.Next()
	}
}
